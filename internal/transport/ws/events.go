package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
)

// Event types - Client → Server
const (
	EventTypeSubscribe   = "subscribe"
	EventTypeUnsubscribe = "unsubscribe"
	EventTypePing        = "ping"
)

// Event types - Server → Client
const (
	EventTypeMessageNew      = "message.new"
	EventTypeMessageEdited   = "message.edited"
	EventTypeMessageDeleted  = "message.deleted"
	EventTypeReactionUpdated = "reaction.updated"
	EventTypeRoomUpdated     = "room.updated"
	EventTypeMemberJoined    = "member.joined"
	EventTypeMemberLeft      = "member.left"
	EventTypePong            = "pong"
	EventTypeError           = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	RoomID    *uuid.UUID      `json:"room_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

// SubscribePayload attaches a live subscription under a caller-chosen key.
// Attaching a key that is already live replaces the old subscription.
type SubscribePayload struct {
	Key    string    `json:"key"`
	RoomID uuid.UUID `json:"room_id"`
}

type UnsubscribePayload struct {
	Key string `json:"key"`
}

// --- Server → Client payloads ---

type MessagePayload struct {
	domain.Message
}

type MessageDeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

type ReactionPayload struct {
	MessageID uuid.UUID              `json:"message_id"`
	Reactions map[string][]uuid.UUID `json:"reactions"`
}

type RoomPayload struct {
	domain.Room
}

type MemberPayload struct {
	domain.RoomMember
}

type MemberLeftPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, roomID *uuid.UUID, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		RoomID:    roomID,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
