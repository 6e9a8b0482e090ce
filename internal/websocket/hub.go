package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"customs-evidence-be/internal/dto"
	"customs-evidence-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans ingestion-run events out to the websocket clients of a tenant.
// Local delivery goes straight to the connection; a Redis channel carries
// the same payload to other instances.
type Hub struct {
	// Registered clients map: tenant id -> list of clients (multi-session)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, nil when Redis is off
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.TenantId] = append(h.clients[client.TenantId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"tenant_id": client.TenantId})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.TenantId]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.TenantId] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.TenantId]) == 0 {
					delete(h.clients, client.TenantId)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"tenant_id": client.TenantId})
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishRunEvent delivers one run lifecycle event to every session of the
// tenant, locally and via Redis for sibling instances.
func (h *Hub) PublishRunEvent(ctx context.Context, tenantId string, eventType string, run dto.RunSummary) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": run,
	})

	h.deliverLocal(tenantId, data)

	if h.rdb != nil {
		payload := map[string]interface{}{
			"tenant_id": tenantId,
			"message":   data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(ctx, "evidence_run_events", jsonPayload)
	}
}

func (h *Hub) deliverLocal(tenantId string, data []byte) {
	// Held across the sends so the unregister branch cannot close a
	// channel mid-delivery. Sends never block, the select falls through.
	h.mu.RLock()
	var slow []*Client
	for _, client := range h.clients[tenantId] {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Only the unregister branch closes Send, and it skips clients it no
	// longer tracks, so a repeated drop cannot close the channel twice.
	for _, client := range slow {
		h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"tenant_id": tenantId})
		h.unregister <- client
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel and delivers to the
	// tenants it has locally. Instances without that tenant just skip.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "evidence_run_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TenantId string          `json:"tenant_id"`
			Message  json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.deliverLocal(payload.TenantId, payload.Message)
	}
}
