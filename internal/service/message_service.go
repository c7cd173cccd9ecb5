package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
	"github.com/rafthq/raftline/internal/repository"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotSender       = errors.New("only the message sender can perform this action")
	ErrBadReply        = errors.New("reply target is not in this room")
	ErrFilesDisabled   = errors.New("file sharing is disabled in this room")
	ErrFileTooLarge    = errors.New("file exceeds the room's size limit")
)

// messageHistoryLimit caps a room's message read to the newest messages.
const messageHistoryLimit = 100

type MessageService struct {
	messageRepo repository.MessageRepository
	roomRepo    repository.RoomRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

func NewMessageService(messageRepo repository.MessageRepository, roomRepo repository.RoomRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		roomRepo:    roomRepo,
		userRepo:    userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

type SendMessageInput struct {
	Text    string           `json:"text"`
	Type    string           `json:"type,omitempty"`
	File    *domain.FileInfo `json:"file,omitempty"`
	ReplyTo *uuid.UUID       `json:"reply_to,omitempty"`
}

func (s *MessageService) Send(ctx context.Context, userID, roomID uuid.UUID, input SendMessageInput) (*domain.Message, error) {
	room, _, err := s.requireMember(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if room.Status != domain.RoomActive {
		return nil, ErrRoomArchived
	}

	msgType := domain.MessageType(input.Type)
	if msgType == "" {
		msgType = domain.MessageText
	}

	if input.File != nil {
		if !room.Settings.FilesAllowed {
			return nil, ErrFilesDisabled
		}
		if room.Settings.MaxFileSize > 0 && input.File.Size > room.Settings.MaxFileSize {
			return nil, ErrFileTooLarge
		}
	}

	// A reply must reference a live message in the same room.
	if input.ReplyTo != nil {
		parent, err := s.messageRepo.GetByID(ctx, *input.ReplyTo)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.IsDeleted || parent.RoomID != roomID {
			return nil, ErrBadReply
		}
	}

	sender, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrNotMember
	}

	msg := &domain.Message{
		ID:           uuid.New(),
		RoomID:       roomID,
		SenderID:     userID,
		SenderName:   sender.PartyName(),
		SenderAvatar: domain.SanitizeLogoURL(sender.AvatarURL),
		Type:         msgType,
		Text:         input.Text,
		File:         input.File,
		ReplyTo:      input.ReplyTo,
		Reactions:    map[string][]uuid.UUID{},
		ReadBy:       []uuid.UUID{userID},
		CreatedAt:    time.Now(),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	if err := s.roomRepo.TouchActivity(ctx, roomID); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(msg)
	}
	return msg, nil
}

// List returns the newest messages of a room in ascending creation order.
// Soft-deleted messages never appear, regardless of position.
func (s *MessageService) List(ctx context.Context, userID, roomID uuid.UUID) ([]domain.Message, error) {
	if _, _, err := s.requireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListRecent(ctx, roomID, messageHistoryLimit)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// ToggleReaction toggles the caller's membership in reactions[emoji]. Applying
// it twice with the same arguments restores the prior state; an emoji whose
// member set empties disappears from the map entirely.
func (s *MessageService) ToggleReaction(ctx context.Context, userID, roomID, messageID uuid.UUID, emoji string) (*domain.Message, error) {
	if _, _, err := s.requireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}

	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil || msg.IsDeleted || msg.RoomID != roomID {
		return nil, ErrMessageNotFound
	}

	if _, err := s.messageRepo.ToggleReaction(ctx, messageID, userID, emoji); err != nil {
		return nil, fmt.Errorf("toggling reaction: %w", err)
	}

	updated, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyReaction(roomID, messageID, updated.Reactions)
	}
	return updated, nil
}

func (s *MessageService) MarkRead(ctx context.Context, userID, roomID, messageID uuid.UUID) error {
	if _, _, err := s.requireMember(ctx, roomID, userID); err != nil {
		return err
	}
	return s.messageRepo.MarkRead(ctx, messageID, userID)
}

func (s *MessageService) Edit(ctx context.Context, userID, messageID uuid.UUID, text string) (*domain.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil || msg.IsDeleted {
		return nil, ErrMessageNotFound
	}
	if msg.SenderID != userID {
		return nil, ErrNotSender
	}

	if err := s.messageRepo.UpdateText(ctx, messageID, text); err != nil {
		return nil, fmt.Errorf("updating message: %w", err)
	}

	updated, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyMessageEdited(updated)
	}
	return updated, nil
}

// Delete soft-deletes: the row stays for audit but leaves every read path.
func (s *MessageService) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil || msg.IsDeleted {
		return ErrMessageNotFound
	}
	if msg.SenderID != userID {
		return ErrNotSender
	}

	if err := s.messageRepo.SoftDelete(ctx, messageID); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.NotifyMessageDeleted(msg.RoomID, messageID)
	}
	return nil
}

func (s *MessageService) requireMember(ctx context.Context, roomID, userID uuid.UUID) (*domain.Room, *domain.RoomMember, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	if room == nil {
		return nil, nil, ErrRoomNotFound
	}

	member, err := s.roomRepo.GetMember(ctx, roomID, userID)
	if err != nil {
		return nil, nil, err
	}
	if member == nil {
		return nil, nil, ErrNotMember
	}
	return room, member, nil
}
