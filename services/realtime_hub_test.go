package services

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

// dialTestSocket upgrades one connection and hands back both ends plus the
// registered hub client.
func dialTestSocket(t *testing.T, hub *ChatStreamHub, userID uint) (*WSClient, *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	registered := make(chan *WSClient, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		client := &WSClient{UserID: userID, Conn: conn}
		hub.Register(client)
		registered <- client
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientConn.Close() })

	return <-registered, clientConn
}

func TestChatStreamHub_RegisterUnregister(t *testing.T) {
	hub := NewChatStreamHub()
	serverClient, clientConn := dialTestSocket(t, hub, 1)

	hub.Broadcast(1, ChatEvent{Sender: "bot", Content: "hi", Timestamp: time.Now()})

	var event ChatEvent
	require.NoError(t, clientConn.ReadJSON(&event))
	assert.Equal(t, "bot", event.Sender)
	assert.Equal(t, "hi", event.Content)

	// events for other users never reach this socket
	hub.Broadcast(2, ChatEvent{Sender: "bot", Content: "wrong user"})

	hub.Unregister(serverClient)
	hub.Broadcast(1, ChatEvent{Sender: "bot", Content: "after close"})

	_ = clientConn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	err := clientConn.ReadJSON(&event)
	assert.Error(t, err, "socket should be closed after unregister")
}

// Broadcasts for the same user can run concurrently with each other and
// with keepalive pings; writes to one connection must serialize.
func TestChatStreamHub_ConcurrentBroadcasts(t *testing.T) {
	hub := NewChatStreamHub()
	serverClient, clientConn := dialTestSocket(t, hub, 1)

	const writers = 32
	const perWriter = 50

	// drain everything the client receives
	done := make(chan int)
	go func() {
		received := 0
		_ = clientConn.SetReadDeadline(time.Now().Add(10 * time.Second))
		for received < writers*perWriter {
			var event ChatEvent
			if err := clientConn.ReadJSON(&event); err != nil {
				done <- received
				return
			}
			received++
		}
		done <- received
	}()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Broadcast(1, ChatEvent{Sender: "bot", Content: "turn", Timestamp: time.Now()})
				_ = serverClient.Send(websocket.PingMessage, nil)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, <-done)
}
