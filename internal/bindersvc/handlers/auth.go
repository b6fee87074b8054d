package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/harukin/binder-services/internal/bindersvc/models"
)

const tokenLifetime = 7 * 24 * time.Hour

// LoginHandler upserts the user by email and issues the session JWT,
// both as a cookie and in the response body.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "email is required"})
		return
	}

	user, err := h.userService.GetOrCreateUser(r.Context(), models.User{
		Email: payload.Email,
		Name:  payload.Name,
	})
	if err != nil {
		log.Errorf("login failed for %s: %v", payload.Email, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	expiry := time.Now().Add(tokenLifetime)
	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": user.UserId,
		"role":    user.Role,
		"exp":     expiry.Unix(),
	})
	if err != nil {
		log.Errorf("token encode failed: %v", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    tokenString,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.CreateResponse(w, Response{
		Message: "login ok",
		Code:    http.StatusOK,
		Data: map[string]interface{}{
			"token": tokenString,
			"user":  user,
		},
	})
}
