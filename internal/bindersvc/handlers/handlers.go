package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth"
	"github.com/nats-io/nats.go"

	"github.com/harukin/binder-services/internal/bindersvc/service"
	"github.com/harukin/binder-services/internal/syncsvc/jobs"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	cardService       *service.CardService
	packService       *service.PackService
	collectionService *service.CollectionService
	userService       *service.UserService

	natsConn *nats.Conn
	jobStore *jobs.JobStore
}

func NewHandler(cardService *service.CardService, packService *service.PackService,
	collectionService *service.CollectionService, userService *service.UserService,
	natsConn *nats.Conn, jobStore *jobs.JobStore) *Handler {
	return &Handler{
		cardService:       cardService,
		packService:       packService,
		collectionService: collectionService,
		userService:       userService,
		natsConn:          natsConn,
		jobStore:          jobStore,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (rs *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "binder service is running at port " + os.Getenv("BINDER_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}

var errNoIdentity = errors.New("no caller identity in token")

// callerFromContext pulls the authenticated user id and role out of
// the verified JWT claims.
func callerFromContext(r *http.Request) (int64, string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, "", err
	}

	var userID int64
	switch v := claims["user_id"].(type) {
	case float64:
		userID = int64(v)
	case int64:
		userID = v
	default:
		return 0, "", errNoIdentity
	}

	role, _ := claims["role"].(string)

	return userID, role, nil
}
