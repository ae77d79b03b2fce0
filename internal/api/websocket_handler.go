package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/farahcakes/bakery-engine/internal/api/dto"
	"github.com/farahcakes/bakery-engine/internal/service"
	"github.com/farahcakes/bakery-engine/internal/service/pubsub"
	"github.com/farahcakes/bakery-engine/internal/tenant"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

const (
	websocketReadBufferSize        = 1024
	websocketWriteBufferSize       = 1024
	websocketSendChannelBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  websocketReadBufferSize,
	WriteBufferSize: websocketWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	conn   *websocket.Conn
	siteID string
	send   chan []byte
}

// WebSocketHandler streams storefront change events to browsing customers.
// The stream is public: clients subscribe by boutique slug and receive every
// event for that boutique, fanned across nodes over Redis pub/sub. Without
// Redis the hub still delivers events published in-process.
type WebSocketHandler struct {
	sites       *service.SiteService
	clients     map[*Client]bool
	register    chan *Client
	unregister  chan *Client
	mutex       sync.RWMutex
	logger      *logger.Logger
	pubsub      *pubsub.RedisPubSub
	ctx         context.Context
	cancel      context.CancelFunc
	siteClients map[string]int // Count of clients per boutique
}

func NewWebSocketHandler(sites *service.SiteService, logger *logger.Logger, pubsub *pubsub.RedisPubSub) *WebSocketHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHandler{
		sites:       sites,
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      logger,
		pubsub:      pubsub,
		ctx:         ctx,
		cancel:      cancel,
		siteClients: make(map[string]int),
	}
}

// HandleWebSocket godoc
// @Summary Stream storefront changes for a boutique
// @Description Upgrades to a WebSocket and pushes cake, coupon, category, and site events for one boutique
// @Tags storefront
// @Param slug path string true "Boutique slug"
// @Success 101
// @Failure 404 {object} dto.Error
// @Router /storefront/{slug}/stream [get]
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	snapshot := h.sites.Snapshot()
	site := tenant.FindBySlug(snapshot, c.Param("slug"))
	if site == nil {
		site = tenant.FindByID(snapshot, c.Param("slug"))
	}
	if site == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "boutique not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &Client{
		conn:   conn,
		siteID: site.ID,
		send:   make(chan []byte, websocketSendChannelBufferSize),
	}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.siteClients[client.siteID]++

			// Subscribe to the boutique's channel on the first client
			if h.pubsub != nil && h.siteClients[client.siteID] == 1 {
				if err := h.pubsub.Subscribe(h.ctx, client.siteID, h.handlePubSubMessage); err != nil {
					h.logger.Errorf("Failed to subscribe to site %s: %v", client.siteID, err)
				}
			}
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				h.siteClients[client.siteID]--
				if h.siteClients[client.siteID] == 0 {
					if h.pubsub != nil {
						h.pubsub.Unsubscribe(client.siteID)
					}
					delete(h.siteClients, client.siteID)
				}
			}
			h.mutex.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandler) Stop() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}

// Publish sends a storefront event to every subscribed client. With Redis
// configured the event crosses nodes through pub/sub; otherwise it is
// delivered to local clients only.
func (h *WebSocketHandler) Publish(ctx context.Context, event *dto.StorefrontEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if h.pubsub != nil {
		return h.pubsub.Publish(ctx, event)
	}
	h.handlePubSubMessage(event)
	return nil
}

// handlePubSubMessage relays an event received from Redis to local clients.
// The slow-client branch evicts from the client maps, so the whole relay
// holds the write lock.
func (h *WebSocketHandler) handlePubSubMessage(event *dto.StorefrontEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorf("Error marshaling storefront event: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.siteID == event.SiteID {
			select {
			case client.send <- message:
			default: // If the channel is full, close the channel and remove the client
				close(client.send)
				delete(h.clients, client)
				h.siteClients[client.siteID]--

				if h.siteClients[client.siteID] == 0 {
					if h.pubsub != nil {
						h.pubsub.Unsubscribe(client.siteID)
					}
					delete(h.siteClients, client.siteID)
				}
			}
		}
	}
}

func (h *WebSocketHandler) writePump(client *Client) {
	defer func() {
		client.conn.Close()
	}()

	for message := range client.send {
		w, err := client.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}

	// Channel was closed, send close message
	client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *Client) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()

	for {
		messageType, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnf("Unexpected close error for client %s: %v", client.siteID, err)
			} else {
				h.logger.Warnf("Read error for client %s: %v", client.siteID, err)
			}
			break
		}

		// Clients are not expected to send anything on this stream
		if messageType == websocket.TextMessage || messageType == websocket.BinaryMessage {
			h.logger.Infof("Received message from client %s: %s", client.siteID, string(message))
		}
	}
}
