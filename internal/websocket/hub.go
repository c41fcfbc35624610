package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-reportgen-be/internal/model"
	"ai-reportgen-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel is the Redis pub/sub channel that fans notifications out to
// the other instances. A target of "*" means broadcast.
const clusterChannel = "cluster_events"

// Hub tracks the live WebSocket connections of this instance and relays
// notifications to them. With Redis configured it also forwards every push
// over pub/sub so users connected to other instances receive it too.
type Hub struct {
	// UserID -> open connections, one entry per device
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
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
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// push writes to one connection without blocking. A full send buffer means a
// stuck client; it gets closed and evicted instead of stalling the hub.
func (h *Hub) push(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		close(client.Send)
		h.unregister <- client
	}
}

// pushAllLocal delivers to every connection on this instance. Caller must not
// hold the write lock.
func (h *Hub) pushAllLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			h.push(client, data)
		}
	}
}

// pushUserLocal delivers to the user's connections on this instance, if any.
func (h *Hub) pushUserLocal(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	for _, client := range clients {
		h.push(client, data)
	}
}

// publishCluster relays the frame to the other instances over Redis.
func (h *Hub) publishCluster(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	jsonPayload, _ := json.Marshal(map[string]interface{}{
		"target_user_id": target,
		"message":        data,
	})
	h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
}

func envelope(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}

// Broadcast sends a notification to every connected client, on this instance
// and (via Redis) on the others.
func (h *Hub) Broadcast(notification model.Notification) {
	data := envelope(notification)
	h.pushAllLocal(data)
	h.publishCluster("*", data)
}

// Send delivers a notification to all of one user's devices. Implements
// service.NotificationDelivery. The cluster relay always runs: the user may
// be connected both here and on another instance.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data := envelope(notification)
	h.pushUserLocal(userID, data)
	h.publishCluster(userID.String(), data)
}

// subscribeToRedis consumes the cluster channel and replays frames to
// whichever targets are connected locally. Frames this instance published
// come back too; duplicate local delivery is acceptable for notifications.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetUserID == "*" {
			h.pushAllLocal(payload.Message)
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.pushUserLocal(uid, payload.Message)
	}
}
