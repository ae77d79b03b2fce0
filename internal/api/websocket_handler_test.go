package api

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

// Simultaneous broadcasts must be able to evict slow clients without
// corrupting the client maps; eviction is a map write and runs under the
// hub's write lock.
func TestHandlePubSubMessage_ConcurrentSlowClientEviction(t *testing.T) {
	testLogger := logger.NewLogger("test")
	h := NewWebSocketHandler(nil, testLogger, nil)
	go h.Start()
	defer h.Stop()

	const clients = 8
	for i := 0; i < clients; i++ {
		client := &Client{siteID: "site1", send: make(chan []byte, 1)}
		// A full send channel marks the client slow; the next broadcast
		// evicts it.
		client.send <- []byte("backlog")
		h.register <- client
	}

	require.Eventually(t, func() bool {
		h.mutex.RLock()
		defer h.mutex.RUnlock()
		return h.siteClients["site1"] == clients
	}, time.Second, 5*time.Millisecond)

	const broadcasters = 16
	var wg sync.WaitGroup
	wg.Add(broadcasters)
	for i := 0; i < broadcasters; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, h.Publish(context.Background(), &dto.StorefrontEvent{
				Type:   dto.EventCakeSaved,
				SiteID: "site1",
			}))
		}()
	}
	wg.Wait()

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	assert.Empty(t, h.clients)
	_, tracked := h.siteClients["site1"]
	assert.False(t, tracked)
}

// A healthy client keeps receiving while slow ones are dropped.
func TestHandlePubSubMessage_HealthyClientStillReceives(t *testing.T) {
	testLogger := logger.NewLogger("test")
	h := NewWebSocketHandler(nil, testLogger, nil)
	go h.Start()
	defer h.Stop()

	healthy := &Client{siteID: "site1", send: make(chan []byte, 4)}
	slow := &Client{siteID: "site1", send: make(chan []byte, 1)}
	slow.send <- []byte("backlog")
	h.register <- healthy
	h.register <- slow

	require.Eventually(t, func() bool {
		h.mutex.RLock()
		defer h.mutex.RUnlock()
		return h.siteClients["site1"] == 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, h.Publish(context.Background(), &dto.StorefrontEvent{
		Type:   dto.EventCouponSaved,
		SiteID: "site1",
	}))

	select {
	case msg := <-healthy.send:
		assert.Contains(t, string(msg), dto.EventCouponSaved)
	case <-time.After(time.Second):
		t.Fatal("healthy client received nothing")
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	assert.Equal(t, 1, h.siteClients["site1"])
	assert.True(t, h.clients[healthy])
	assert.False(t, h.clients[slow])
}
