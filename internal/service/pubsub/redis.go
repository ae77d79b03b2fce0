package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

const (
	channelPrefix = "storefront:"
)

// RedisPubSub fans storefront change events out across processes so every
// node's WebSocket clients see a tenant's mutations, whichever node accepted
// them.
type RedisPubSub struct {
	client       *redis.Client
	logger       *logger.Logger
	subscribers  map[string]*redis.PubSub // Map of site ID to subscriber
	subscriberMu sync.RWMutex
}

func NewRedisPubSub(client *redis.Client, logger *logger.Logger) *RedisPubSub {
	return &RedisPubSub{
		client:      client,
		logger:      logger,
		subscribers: make(map[string]*redis.PubSub),
	}
}

func (ps *RedisPubSub) getChannelName(siteID string) string {
	return channelPrefix + siteID
}

// Publish publishes a storefront event to the tenant's Redis channel
func (ps *RedisPubSub) Publish(ctx context.Context, event *dto.StorefrontEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal storefront event: %w", err)
	}

	channel := ps.getChannelName(event.SiteID)
	if err := ps.client.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", channel, err)
	}

	return nil
}

// Subscribe subscribes to storefront events for a specific tenant
func (ps *RedisPubSub) Subscribe(ctx context.Context, siteID string, callback func(*dto.StorefrontEvent)) error {
	channel := ps.getChannelName(siteID)

	// Check if we're already subscribed to this tenant's channel
	ps.subscriberMu.RLock()
	_, exists := ps.subscribers[siteID]
	ps.subscriberMu.RUnlock()
	if exists {
		ps.logger.Infof("Already subscribed to tenant channel: %s", channel)
		return nil
	}

	pubsub := ps.client.Subscribe(ctx, channel)

	ps.subscriberMu.Lock()
	ps.subscribers[siteID] = pubsub
	ps.subscriberMu.Unlock()

	go func() {
		defer func() {
			ps.logger.Infof("Closing subscription for tenant channel: %s", channel)
			pubsub.Close()
			ps.subscriberMu.Lock()
			delete(ps.subscribers, siteID)
			ps.subscriberMu.Unlock()
		}()

		ch := pubsub.Channel()
		for {
			select {
			case msg := <-ch:
				var event dto.StorefrontEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					ps.logger.Errorf("Failed to unmarshal storefront event from channel %s: %v", channel, err)
					continue
				}
				callback(&event)

			case <-ctx.Done():
				return
			}
		}
	}()

	ps.logger.Infof("Subscribed to tenant channel: %s", channel)
	return nil
}

// Unsubscribe removes subscription for a tenant
func (ps *RedisPubSub) Unsubscribe(siteID string) {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	if pubsub, exists := ps.subscribers[siteID]; exists {
		pubsub.Close()
		delete(ps.subscribers, siteID)
		ps.logger.Infof("Unsubscribed from tenant channel: %s", ps.getChannelName(siteID))
	}
}

func (ps *RedisPubSub) Close() {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	for siteID, pubsub := range ps.subscribers {
		pubsub.Close()
		delete(ps.subscribers, siteID)
		ps.logger.Infof("Closed subscription for tenant channel: %s", ps.getChannelName(siteID))
	}
}
