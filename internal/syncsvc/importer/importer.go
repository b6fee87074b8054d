package importer

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/harukin/binder-services/internal/comm"
	"github.com/harukin/binder-services/internal/syncsvc/jobs"
	"github.com/harukin/binder-services/internal/syncsvc/scraper"
	"github.com/harukin/binder-services/internal/syncsvc/store"
)

// ProgressFunc receives progress events as the import advances. The
// broker wires this to a NATS publish.
type ProgressFunc func(comm.SyncProgress)

// Importer pulls series and cards from the scraper and writes them
// into the catalog tables, recording job state as it goes.
type Importer struct {
	scraper *scraper.Client
	catalog *store.CatalogStore
	jobs    *jobs.JobStore
}

func New(sc *scraper.Client, catalog *store.CatalogStore, jobStore *jobs.JobStore) *Importer {
	return &Importer{
		scraper: sc,
		catalog: catalog,
		jobs:    jobStore,
	}
}

// Run executes one sync command to completion. Errors finish the job
// as failed; they are not retried here (the admin re-triggers).
func (im *Importer) Run(ctx context.Context, cmd comm.SyncCommand, progress ProgressFunc) {
	if err := im.jobs.Create(ctx, cmd.JobID, cmd.SeriesID, cmd.RequestedBy); err != nil {
		log.Errorf("failed to record sync job %s: %v", cmd.JobID, err)
		return
	}

	err := im.run(ctx, cmd, progress)

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
		log.Errorf("sync job %s failed: %v", cmd.JobID, err)
		progress(comm.SyncProgress{
			JobID:     cmd.JobID,
			SeriesID:  cmd.SeriesID,
			Stage:     "failed",
			Message:   "catalog sync failed",
			Timestamp: time.Now().UTC(),
		})
	}
	if err := im.jobs.Finish(ctx, cmd.JobID, errMsg); err != nil {
		log.Errorf("failed to finish sync job %s: %v", cmd.JobID, err)
	}
}

func (im *Importer) run(ctx context.Context, cmd comm.SyncCommand, progress ProgressFunc) error {
	series, err := im.scraper.ListSeries(ctx)
	if err != nil {
		return err
	}

	packsDone := 0
	cardsDone := 0

	for _, sr := range series {
		if cmd.SeriesID != "" && sr.ID != cmd.SeriesID {
			continue
		}

		if err := im.catalog.UpsertPack(ctx, sr.Code, sr.ID, sr.Name); err != nil {
			return err
		}
		packsDone++

		progress(comm.SyncProgress{
			JobID:     cmd.JobID,
			SeriesID:  sr.ID,
			Stage:     "series",
			PacksDone: packsDone,
			CardsDone: cardsDone,
			Timestamp: time.Now().UTC(),
		})

		cards, err := im.scraper.FetchSeriesCards(ctx, sr.ID)
		if err != nil {
			return err
		}

		for _, c := range cards {
			if err := im.catalog.UpsertCard(ctx, c); err != nil {
				return err
			}
			cardsDone++
		}

		if err := im.jobs.UpdateProgress(ctx, cmd.JobID, packsDone, cardsDone); err != nil {
			log.Warnf("failed to update progress for job %s: %v", cmd.JobID, err)
		}

		progress(comm.SyncProgress{
			JobID:     cmd.JobID,
			SeriesID:  sr.ID,
			Stage:     "cards",
			PacksDone: packsDone,
			CardsDone: cardsDone,
			Timestamp: time.Now().UTC(),
		})
	}

	progress(comm.SyncProgress{
		JobID:     cmd.JobID,
		SeriesID:  cmd.SeriesID,
		Stage:     "done",
		PacksDone: packsDone,
		CardsDone: cardsDone,
		Timestamp: time.Now().UTC(),
	})

	log.Infof("sync job %s finished: %d packs, %d cards", cmd.JobID, packsDone, cardsDone)
	return nil
}
