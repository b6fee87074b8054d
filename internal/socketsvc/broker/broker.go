package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/harukin/binder-services/internal/comm"
)

// Broker bridges the NATS bus to connected websockets: sync progress
// events come in from the sync service and fan out to every socket.
type Broker struct {
	Conn      *nats.Conn
	Broadcast func(payload []byte)
}

func NewBroker(conn *nats.Conn, fncBroadcast func([]byte)) *Broker {
	return &Broker{
		Conn:      conn,
		Broadcast: fncBroadcast,
	}
}

// SubscribeProgress consumes sync progress events from the sync service.
func (b *Broker) SubscribeProgress(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// publish message to the bus
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	progress := comm.SyncProgress{}
	if err := json.Unmarshal(msgNats.Data, &progress); err != nil {
		log.Errorf("Error %s", err)
		return
	}

	frame := comm.WSMessage{
		Type: "sync-progress",
		Data: msgNats.Data,
	}

	bytes, err := json.Marshal(frame)
	if err != nil {
		log.Errorf("Failed to marshal progress frame: %v", err)
		return
	}

	b.Broadcast(bytes)
	log.Debugf("relayed progress for job %s stage %s", progress.JobID, progress.Stage)
}
