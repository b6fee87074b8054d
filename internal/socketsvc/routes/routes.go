package routes

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/harukin/binder-services/internal/socketsvc/handlers"
	"github.com/harukin/binder-services/internal/socketsvc/ws"
)

var tokenAuth *jwtauth.JWTAuth

func SetRoutes(r *chi.Mux, ws *ws.Ws) {
	h := handlers.NewHandler(ws)
	r.Route("/api", func(r chi.Router) {
		// public routes
		r.Get("/health", h.HealthHandler)

		// Secure routes; the jwt cookie set at login authenticates
		// the websocket upgrade
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/ws", h.HandleWebSocket)
		})
	})
}

func InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	// a usable admin token in the boot log is handy locally and a
	// leak everywhere else, so it stays opt-in
	if os.Getenv("DEBUG_JWT") != "true" {
		return
	}

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := tokenAuth.Encode(map[string]interface{}{
		"user_id": int64(1),
		"role":    "admin",
		"exp":     expirationTime,
	})

	log.Infof("DEBUG: JWT for testing expires soon : %s", tokenString)
}
