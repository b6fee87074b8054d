package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/harukin/binder-services/internal/bindersvc/store"
)

func (h *Handler) ListCollectionHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerFromContext(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	items, err := h.collectionService.ListCollection(r.Context(), userID)
	if err != nil {
		log.Errorf("failed to list collection for user %d: %v", userID, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "ok",
		Code:    http.StatusOK,
		Data:    items,
	})
}

func (h *Handler) AddInstanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerFromContext(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	var payload struct {
		CardID   string `json:"card_id"`
		Location string `json:"location"`
		IsProxy  bool   `json:"is_proxy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.CardID == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "card_id is required"})
		return
	}

	oc, err := h.collectionService.AddInstance(r.Context(), userID, payload.CardID, payload.Location, payload.IsProxy)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCopyLimit):
			h.CreateResponse(w, Response{Code: http.StatusConflict, Error: "copy limit reached for this card"})
		case errors.Is(err, store.ErrUnknownCard):
			h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "card does not exist"})
		default:
			log.Errorf("failed to add instance for user %d: %v", userID, err)
			h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		}
		return
	}

	h.CreateResponse(w, Response{
		Message: "instance added",
		Code:    http.StatusCreated,
		Data:    oc,
	})
}

func (h *Handler) RemoveInstanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerFromContext(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "card id is required"})
		return
	}

	isProxy, err := parseBoolParam(r, "proxy")
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "proxy must be a boolean"})
		return
	}

	if err := h.collectionService.RemoveInstance(r.Context(), userID, cardID, isProxy); err != nil {
		if errors.Is(err, store.ErrNoInstance) {
			h.CreateResponse(w, Response{Code: http.StatusNotFound, Error: "no instance to remove"})
			return
		}
		log.Errorf("failed to remove instance for user %d: %v", userID, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "instance removed",
		Code:    http.StatusOK,
	})
}
