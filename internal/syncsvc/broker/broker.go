package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/harukin/binder-services/internal/comm"
	"github.com/harukin/binder-services/internal/syncsvc/importer"
)

// Broker consumes sync commands from the bus and hands them to the
// importer, publishing progress back for the socket service.
type Broker struct {
	Conn     *nats.Conn
	Importer *importer.Importer
}

func NewBroker(nc *nats.Conn, im *importer.Importer) *Broker {
	return &Broker{
		Conn:     nc,
		Importer: im,
	}
}

// SubscribeSyncCommands joins the queue group so only one sync service
// instance picks up each command.
func (b *Broker) SubscribeSyncCommands(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.QueueSubscribe(topic, "syncsvc", b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessage(msgNat *nats.Msg) {
	cmd := comm.SyncCommand{}
	if err := json.Unmarshal(msgNat.Data, &cmd); err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	log.Infof("sync command received: job %s series %q by user %d", cmd.JobID, cmd.SeriesID, cmd.RequestedBy)

	// A full catalog pull takes a while; run it off the NATS callback
	// goroutine with its own deadline.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		b.Importer.Run(ctx, cmd, b.publishProgress)
	}()
}

func (b *Broker) publishProgress(p comm.SyncProgress) {
	bytes, err := json.Marshal(p)
	if err != nil {
		log.Errorf("Failed to marshal sync progress: %v", err)
		return
	}

	if err := b.Conn.Publish(comm.TopicSyncProgress, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", comm.TopicSyncProgress, err)
	}
}
