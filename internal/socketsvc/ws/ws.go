package ws

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/harukin/binder-services/internal/comm"
)

// Ws tracks connected admin sockets. Progress frames fan out to every
// connection; the relay has no rooms.
type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
	writeMu sync.Mutex
}

func NewWs() *Ws {
	return &Ws{}
}

// SocketMessage handles frames coming from web clients. The relay is
// one-way, so only the keepalive type is meaningful.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "ping":
		// keepalive, nothing to do
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
}

// Send writes one frame to a single socket. All writes to a connection
// go through writeMu; gorilla allows only one concurrent writer per
// connection, so the read loops must never call WriteMessage directly.
func (s *Ws) Send(socketId string, payload []byte) error {
	conn, ok := s.GetConnection(socketId)
	if !ok {
		return fmt.Errorf("socket %s is not connected", socketId)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return conn.WriteMessage(websocket.TextMessage, payload)
}

// Broadcast writes one frame to every connected socket. Sockets that
// fail the write are dropped from the registry.
func (s *Ws) Broadcast(payload []byte) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.connMap.Range(func(key, value interface{}) bool {
		conn := value.(*websocket.Conn)
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warnf("dropping socket %s after write error: %v", key.(string), err)
			conn.Close()
			s.connMap.Delete(key)
		}
		return true
	})
}
