package comm

import (
	"encoding/json"
	"time"
)

// Topics on the NATS bus shared by the services.
const (
	TopicSyncCommand  = "catalog.sync"
	TopicSyncProgress = "sync.progress"
)

// WSMessage is the frame pushed to admin browsers over the socket
// service.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "sync-progress"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// SyncCommand asks the sync service to resynchronize the catalog.
// SeriesID empty means every series the scraper knows about.
type SyncCommand struct {
	JobID       string    `json:"job_id"`
	SeriesID    string    `json:"series_id,omitempty"`
	RequestedBy int64     `json:"requested_by"`
	RequestedAt time.Time `json:"requested_at"`
}

// SyncProgress is published by the sync service while a job runs.
type SyncProgress struct {
	JobID     string    `json:"job_id"`
	SeriesID  string    `json:"series_id"`
	Stage     string    `json:"stage"` // "series", "cards", "done", "failed"
	PacksDone int       `json:"packs_done"`
	CardsDone int       `json:"cards_done"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ServiceHeartbeat lets services advertise liveness on the bus.
type ServiceHeartbeat struct {
	ID        string    `json:"id"` // service id
	Timestamp time.Time `json:"timestamp"`
}
