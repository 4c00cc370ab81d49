package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", want, hub.ClientCount())
}

// TestHub_BasicOperation tests registration and delivery.
func TestHub_BasicOperation(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go hub.Run(ctx)

	client := NewClient("test-1", hub, nil)
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Broadcast(Message{Type: "catalog.reloaded", Timestamp: time.Now(), Data: map[string]any{"generation": 2}})

	select {
	case received := <-client.send:
		if received.Type != "catalog.reloaded" {
			t.Errorf("expected type catalog.reloaded, got %s", received.Type)
		}
	case <-time.After(500 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

// TestHub_Shutdown tests graceful shutdown.
func TestHub_Shutdown(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client1 := NewClient("test-1", hub, nil)
	client2 := NewClient("test-2", hub, nil)
	hub.Register(client1)
	hub.Register(client2)
	waitForClients(t, hub, 2)

	cancel()
	waitForClients(t, hub, 0)

	if _, ok := <-client1.send; ok {
		t.Error("expected send channel to be closed")
	}
}

// TestHub_ClientBufferFull tests that slow clients are disconnected.
func TestHub_ClientBufferFull(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{id: "slow", hub: hub, send: make(chan Message, 1)}
	hub.Register(client)
	waitForClients(t, hub, 1)

	for i := 0; i < 5; i++ {
		hub.Broadcast(Message{Type: "catalog.reloaded", Timestamp: time.Now()})
	}
	waitForClients(t, hub, 0)
}

// TestHub_ConcurrentRegisterUnregister tests concurrent client churn.
func TestHub_ConcurrentRegisterUnregister(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	clients := make([]*Client, 20)
	var wg sync.WaitGroup
	for i := range clients {
		clients[i] = NewClient("churn", hub, nil)
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			hub.Register(c)
			hub.Broadcast(Message{Type: "catalog.reloaded", Timestamp: time.Now()})
		}(clients[i])
	}
	wg.Wait()
	waitForClients(t, hub, len(clients))

	for _, c := range clients {
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			hub.Unregister(c)
		}(c)
	}
	wg.Wait()
	waitForClients(t, hub, 0)
}

// TestHub_ServeHTTP tests the full upgrade path with a real connection.
func TestHub_ServeHTTP(t *testing.T) {
	logger := zerolog.Nop()
	hub := NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer func() { _ = conn.Close() }()

	waitForClients(t, hub, 1)
	hub.Broadcast(Message{ID: 9, Type: "catalog.reloaded", Timestamp: time.Now(), Data: map[string]int{"records": 4}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if msg.Type != "catalog.reloaded" || msg.ID != 9 {
		t.Errorf("unexpected message: %+v", msg)
	}

	_ = conn.Close()
	waitForClients(t, hub, 0)
}
