package handlers

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/api", func(r chi.Router) {

		// public routes
		r.Get("/health", h.HealthHandler)
		r.Post("/auth/login", h.LoginHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/cards/search", h.SearchCardsHandler)
			r.Get("/cards/{id}", h.GetCardHandler)
			r.Get("/packs", h.ListPacksHandler)

			r.Get("/collection", h.ListCollectionHandler)
			r.Post("/collection", h.AddInstanceHandler)
			r.Delete("/collection/{cardID}", h.RemoveInstanceHandler)

			r.Group(func(r chi.Router) {
				r.Use(h.AdminOnly)

				r.Get("/admin/users", h.ListUsersHandler)
				r.Post("/admin/sync", h.TriggerSyncHandler)
				r.Get("/admin/sync/jobs", h.ListSyncJobsHandler)
			})
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	// a usable admin token in the boot log is handy locally and a
	// leak everywhere else, so it stays opt-in
	if os.Getenv("DEBUG_JWT") != "true" {
		return
	}

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": int64(1),
		"role":    "admin",
		"exp":     expirationTime,
	})

	log.Infof("DEBUG: JWT for testing expires soon : %s", tokenString)
}
