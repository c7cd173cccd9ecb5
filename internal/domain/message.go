package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageText    MessageType = "text"
	MessageFile    MessageType = "file"
	MessageImage   MessageType = "image"
	MessageVideo   MessageType = "video"
	MessageVoice   MessageType = "voice"
	MessageSystem  MessageType = "system"
	MessageAIReply MessageType = "aiReply"
)

// FileInfo describes an attachment. Approval tracks moderation of uploads.
type FileInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Mime     string `json:"mime"`
	URL      string `json:"url"`
	Approval string `json:"approval"`
}

type Message struct {
	ID           uuid.UUID   `json:"id"`
	RoomID       uuid.UUID   `json:"room_id"`
	SenderID     uuid.UUID   `json:"sender_id"`
	SenderName   string      `json:"sender_name"`
	SenderAvatar *string     `json:"sender_avatar,omitempty"`
	Type         MessageType `json:"type"`
	Text         string      `json:"text"`
	File         *FileInfo   `json:"file,omitempty"`
	ReplyTo      *uuid.UUID  `json:"reply_to,omitempty"`

	// Reactions never contains a key whose member set is empty.
	Reactions map[string][]uuid.UUID `json:"reactions"`
	ReadBy    []uuid.UUID            `json:"read_by"`

	IsPinned  bool       `json:"is_pinned"`
	IsEdited  bool       `json:"is_edited"`
	IsDeleted bool       `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

// Reaction is one (message, user, emoji) row.
type Reaction struct {
	MessageID uuid.UUID `json:"message_id"`
	UserID    uuid.UUID `json:"user_id"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// BuildReactionMap assembles reaction rows into the emoji -> users map.
// Emojis with no remaining rows are simply absent.
func BuildReactionMap(rows []Reaction) map[string][]uuid.UUID {
	m := make(map[string][]uuid.UUID)
	for _, row := range rows {
		m[row.Emoji] = append(m[row.Emoji], row.UserID)
	}
	for emoji := range m {
		users := m[emoji]
		sort.Slice(users, func(i, j int) bool { return users[i].String() < users[j].String() })
	}
	return m
}
