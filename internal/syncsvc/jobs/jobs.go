package jobs

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harukin/binder-services/internal/db"
)

const collectionName = "sync_jobs"

// Job documents are TTL-expired by Mongo at expires_at, so the history
// stays bounded without any sweeper process.
const retention = 14 * 24 * time.Hour

const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// SyncJob is one catalog resync run.
type SyncJob struct {
	JobID       string    `bson:"job_id" json:"job_id"`
	SeriesID    string    `bson:"series_id,omitempty" json:"series_id,omitempty"`
	Status      string    `bson:"status" json:"status"`
	PacksDone   int       `bson:"packs_done" json:"packs_done"`
	CardsDone   int       `bson:"cards_done" json:"cards_done"`
	Error       string    `bson:"error,omitempty" json:"error,omitempty"`
	RequestedBy int64     `bson:"requested_by" json:"requested_by"`
	StartedAt   time.Time `bson:"started_at" json:"started_at"`
	FinishedAt  time.Time `bson:"finished_at,omitempty" json:"finished_at,omitempty"`
	ExpiresAt   time.Time `bson:"expires_at" json:"-"`
}

type JobStore struct {
	col *mongo.Collection
}

// NewJobStore ensures the TTL index exists and returns the store.
func NewJobStore(database *mongo.Database) (*JobStore, error) {
	if err := db.CreateTTLIndexForCollection(database, collectionName); err != nil {
		return nil, err
	}
	return &JobStore{col: database.Collection(collectionName)}, nil
}

func (s *JobStore) Create(ctx context.Context, jobID, seriesID string, requestedBy int64) error {
	now := time.Now().UTC()
	job := SyncJob{
		JobID:       jobID,
		SeriesID:    seriesID,
		Status:      StatusRunning,
		RequestedBy: requestedBy,
		StartedAt:   now,
		ExpiresAt:   now.Add(retention),
	}

	_, err := s.col.InsertOne(ctx, job)
	return err
}

func (s *JobStore) UpdateProgress(ctx context.Context, jobID string, packsDone, cardsDone int) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"job_id": jobID},
		bson.M{"$set": bson.M{"packs_done": packsDone, "cards_done": cardsDone}},
	)
	return err
}

// Finish marks the job done, or failed when errMsg is non-empty.
func (s *JobStore) Finish(ctx context.Context, jobID, errMsg string) error {
	status := StatusDone
	if errMsg != "" {
		status = StatusFailed
	}

	_, err := s.col.UpdateOne(ctx,
		bson.M{"job_id": jobID},
		bson.M{"$set": bson.M{
			"status":      status,
			"error":       errMsg,
			"finished_at": time.Now().UTC(),
		}},
	)
	return err
}

// ListRecent returns the latest jobs, newest first.
func (s *JobStore) ListRecent(ctx context.Context, limit int64) ([]SyncJob, error) {
	opts := options.Find().
		SetSort(bson.M{"started_at": -1}).
		SetLimit(limit)

	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	jobs := []SyncJob{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}
