package ws

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
	"go.uber.org/zap"
)

// MemberChecker answers "is this user in this room". Satisfied by the room
// repository; the hub re-checks membership server-side on every subscribe.
type MemberChecker interface {
	GetMember(ctx context.Context, roomID, userID uuid.UUID) (*domain.RoomMember, error)
}

// Hub manages all active WebSocket clients and routes events.
type Hub struct {
	// clients maps userID → client. A second connection for the same user
	// replaces the first.
	clients map[uuid.UUID]*Client

	members MemberChecker
	logger  *zap.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg
	direct     chan *directMsg
}

type broadcastMsg struct {
	roomID uuid.UUID
	data   []byte
}

type directMsg struct {
	userID uuid.UUID
	data   []byte
}

func NewHub(members MemberChecker, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		members:    members,
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMsg, 256),
		direct:     make(chan *directMsg, 256),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if old, ok := h.clients[client.userID]; ok {
				h.drop(old)
			}
			h.clients[client.userID] = client
			h.logger.Debug("ws client connected",
				zap.String("user_id", client.userID.String()),
				zap.Int("total", len(h.clients)))

		case client := <-h.unregister:
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				h.drop(client)
				h.logger.Debug("ws client disconnected",
					zap.String("user_id", client.userID.String()),
					zap.Int("total", len(h.clients)))
			}

		case msg := <-h.broadcast:
			for _, client := range h.clients {
				if !client.registry.Covers(msg.roomID) {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// Client buffer full - disconnect
					delete(h.clients, client.userID)
					h.drop(client)
				}
			}

		case msg := <-h.direct:
			if client, ok := h.clients[msg.userID]; ok {
				select {
				case client.send <- msg.data:
				default:
				}
			}
		}
	}
}

// drop tears down a client's subscriptions and channels.
func (h *Hub) drop(client *Client) {
	client.registry.DetachAll()
	close(client.send)
	close(client.done)
}

// BroadcastToRoom sends an event to every client with a live subscription on
// the room.
func (h *Hub) BroadcastToRoom(roomID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("ws marshal error", zap.Error(err))
		return
	}
	h.broadcast <- &broadcastMsg{roomID: roomID, data: data}
}

// BroadcastToUser sends an event directly to a specific user.
func (h *Hub) BroadcastToUser(userID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.direct <- &directMsg{userID: userID, data: data}
}
