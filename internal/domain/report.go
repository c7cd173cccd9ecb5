package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report is a moderation-queue entry. Filing one records the complaint and an
// audit trail entry; it takes no moderation action by itself.
type Report struct {
	ID         uuid.UUID  `json:"id"`
	RoomID     uuid.UUID  `json:"room_id"`
	MessageID  *uuid.UUID `json:"message_id,omitempty"`
	ReportedBy uuid.UUID  `json:"reported_by"`
	Reason     string     `json:"reason"`
	Details    string     `json:"details"`
	Status     string     `json:"status"` // "open" | "resolved"
	CreatedAt  time.Time  `json:"created_at"`
}

type AuditEntry struct {
	ID        uuid.UUID  `json:"id"`
	ActorID   uuid.UUID  `json:"actor_id"`
	Action    string     `json:"action"`
	RoomID    *uuid.UUID `json:"room_id,omitempty"`
	MessageID *uuid.UUID `json:"message_id,omitempty"`
	Detail    string     `json:"detail"`
	CreatedAt time.Time  `json:"created_at"`
}
