package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialSocket upgrades one client connection against a test server and
// registers the server side in the registry.
func dialSocket(t *testing.T, s *Ws, socketId string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		s.StoreConnection(socketId, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	// the server handler registers asynchronously
	for i := 0; i < 100; i++ {
		if _, ok := s.GetConnection(socketId); ok {
			return client
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("socket %s never registered", socketId)
	return nil
}

// Broadcast frames from the bus callback and per-socket error frames
// from a read loop can target the same connection at the same time.
// Both paths must serialize on the registry's write lock.
func TestConcurrentBroadcastAndSend(t *testing.T) {
	s := NewWs()
	client := dialSocket(t, s, "sock-1")

	const frames = 100

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < frames; i++ {
			s.Broadcast([]byte(`{"type":"sync-progress"}`))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < frames; i++ {
			require.NoError(t, s.Send("sock-1", []byte(`{"type":"error"}`)))
		}
	}()

	client.SetReadDeadline(time.Now().Add(5 * time.Second))
	for i := 0; i < 2*frames; i++ {
		_, _, err := client.ReadMessage()
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestSendUnknownSocket(t *testing.T) {
	s := NewWs()
	err := s.Send("missing", []byte("payload"))
	assert.Error(t, err)
}

func TestBroadcastDropsDeadSocket(t *testing.T) {
	s := NewWs()
	client := dialSocket(t, s, "sock-1")
	client.Close()

	conn, ok := s.GetConnection("sock-1")
	require.True(t, ok)
	conn.Close()

	s.Broadcast([]byte("payload"))
	_, ok = s.GetConnection("sock-1")
	assert.False(t, ok)
}
