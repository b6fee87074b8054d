package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/harukin/binder-services/internal/comm"
)

// AdminOnly gates a route group on the role claim.
func (h *Handler) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, role, err := callerFromContext(r)
		if err != nil || role != "admin" {
			h.CreateResponse(w, Response{Code: http.StatusForbidden, Error: "admin role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		log.Errorf("failed to list users: %v", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "ok",
		Code:    http.StatusOK,
		Data:    users,
	})
}

// TriggerSyncHandler publishes a catalog-sync command for the sync
// service and returns the job id. The sync runs asynchronously;
// progress is visible via the jobs endpoint and the socket relay.
func (h *Handler) TriggerSyncHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerFromContext(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	var payload struct {
		SeriesID string `json:"series_id"`
	}
	// empty body means "sync everything"
	_ = json.NewDecoder(r.Body).Decode(&payload)

	cmd := comm.SyncCommand{
		JobID:       uuid.New().String(),
		SeriesID:    payload.SeriesID,
		RequestedBy: userID,
		RequestedAt: time.Now().UTC(),
	}

	bytes, err := json.Marshal(cmd)
	if err != nil {
		log.Errorf("failed to marshal sync command: %v", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	if err := h.natsConn.Publish(comm.TopicSyncCommand, bytes); err != nil {
		log.Errorf("failed to publish sync command: %v", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	log.Infof("catalog sync %s requested by user %d", cmd.JobID, userID)

	h.CreateResponse(w, Response{
		Message: "sync requested",
		Code:    http.StatusAccepted,
		Data:    map[string]string{"job_id": cmd.JobID},
	})
}

func (h *Handler) ListSyncJobsHandler(w http.ResponseWriter, r *http.Request) {
	recent, err := h.jobStore.ListRecent(r.Context(), 20)
	if err != nil {
		log.Errorf("failed to list sync jobs: %v", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "ok",
		Code:    http.StatusOK,
		Data:    recent,
	})
}
