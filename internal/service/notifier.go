package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
	"github.com/rafthq/raftline/internal/repository"
)

// Notifier broadcasts real-time events to connected clients. Services treat it
// as optional: a nil notifier means no live delivery, never an error.
type Notifier interface {
	NotifyNewMessage(msg *domain.Message)
	NotifyMessageEdited(msg *domain.Message)
	NotifyMessageDeleted(roomID, messageID uuid.UUID)
	NotifyReaction(roomID, messageID uuid.UUID, reactions map[string][]uuid.UUID)
	NotifyRoomUpdated(room *domain.Room)
	NotifyMemberJoined(roomID uuid.UUID, member *domain.RoomMember)
	NotifyMemberLeft(roomID, userID uuid.UUID)
}

// postSystemMessage appends a RaftAI-authored message narrating a lifecycle
// event, touches the room's activity clock and broadcasts the message.
func postSystemMessage(
	ctx context.Context,
	messageRepo repository.MessageRepository,
	roomRepo repository.RoomRepository,
	notifier Notifier,
	roomID uuid.UUID,
	text string,
) (*domain.Message, error) {
	msg := &domain.Message{
		ID:         uuid.New(),
		RoomID:     roomID,
		SenderID:   domain.RaftAI,
		SenderName: domain.RaftAIName,
		Type:       domain.MessageSystem,
		Text:       text,
		Reactions:  map[string][]uuid.UUID{},
		ReadBy:     []uuid.UUID{domain.RaftAI},
		CreatedAt:  time.Now(),
	}

	if err := messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	if err := roomRepo.TouchActivity(ctx, roomID); err != nil {
		return nil, err
	}

	if notifier != nil {
		notifier.NotifyNewMessage(msg)
	}
	return msg, nil
}
