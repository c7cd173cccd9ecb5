package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
	"github.com/rafthq/raftline/internal/repository"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrNotMember      = errors.New("user is not a member of this room")
	ErrNotModerator   = errors.New("only the room owner or an admin can perform this action")
	ErrOwnerImmutable = errors.New("the room owner cannot be removed")
	ErrRoomArchived   = errors.New("room is archived")
)

type RoomService struct {
	roomRepo    repository.RoomRepository
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	notifier    Notifier
}

func NewRoomService(roomRepo repository.RoomRepository, userRepo repository.UserRepository, messageRepo repository.MessageRepository) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *RoomService) SetNotifier(n Notifier) {
	s.notifier = n
}

// ListUserRooms returns the active rooms the user belongs to, filtered by the
// role -> room-type visibility map and ordered by last activity descending.
// A vc who is technically a member of a campaign room will not see it.
func (s *RoomService) ListUserRooms(ctx context.Context, userID uuid.UUID) ([]domain.Room, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotMember
	}

	rooms, err := s.roomRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	visible := rooms[:0]
	for _, room := range rooms {
		if domain.RoleCanSeeRoom(user.Role, room.Type) {
			visible = append(visible, room)
		}
	}
	return visible, nil
}

func (s *RoomService) GetRoom(ctx context.Context, userID, roomID uuid.UUID) (*domain.Room, error) {
	room, _, err := s.requireMember(ctx, roomID, userID)
	return room, err
}

func (s *RoomService) ListMembers(ctx context.Context, userID, roomID uuid.UUID) ([]domain.RoomMember, error) {
	if _, _, err := s.requireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return s.roomRepo.ListMembers(ctx, roomID)
}

func (s *RoomService) ListPins(ctx context.Context, userID, roomID uuid.UUID) ([]uuid.UUID, error) {
	if _, _, err := s.requireMember(ctx, roomID, userID); err != nil {
		return nil, err
	}
	return s.roomRepo.ListPins(ctx, roomID)
}

func (s *RoomService) Rename(ctx context.Context, userID, roomID uuid.UUID, newName string) (*domain.Room, error) {
	room, member, err := s.requireMember(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanModerate() {
		return nil, ErrNotModerator
	}

	oldName := room.Name
	if err := s.roomRepo.Rename(ctx, roomID, newName); err != nil {
		return nil, fmt.Errorf("renaming room: %w", err)
	}
	room.Name = newName

	text := fmt.Sprintf("The room was renamed from %q to %q.", oldName, newName)
	if _, err := postSystemMessage(ctx, s.messageRepo, s.roomRepo, s.notifier, roomID, text); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyRoomUpdated(room)
	}
	return room, nil
}

// RemoveMember handles both self-leave (removedBy == userID) and moderation
// kicks. The system message distinguishes "left" from "was removed".
func (s *RoomService) RemoveMember(ctx context.Context, roomID, removedBy, userID uuid.UUID) error {
	_, remover, err := s.requireMember(ctx, roomID, removedBy)
	if err != nil {
		return err
	}

	selfLeave := removedBy == userID
	if !selfLeave && !remover.Role.CanModerate() {
		return ErrNotModerator
	}

	target, err := s.roomRepo.GetMember(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrNotMember
	}
	// The owner role is unique and immutable for the room's lifetime.
	if target.Role == domain.MemberOwner {
		return ErrOwnerImmutable
	}

	if err := s.roomRepo.RemoveMember(ctx, roomID, userID); err != nil {
		return fmt.Errorf("removing member: %w", err)
	}

	userName := "A member"
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil && user != nil {
		userName = user.PartyName()
	}

	text := fmt.Sprintf("%s left the room.", userName)
	if !selfLeave {
		text = fmt.Sprintf("%s was removed from the room.", userName)
	}
	if _, err := postSystemMessage(ctx, s.messageRepo, s.roomRepo, s.notifier, roomID, text); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.NotifyMemberLeft(roomID, userID)
	}
	return nil
}

func (s *RoomService) SetMuted(ctx context.Context, userID, roomID uuid.UUID, muted bool) error {
	if _, _, err := s.requireMember(ctx, roomID, userID); err != nil {
		return err
	}
	return s.roomRepo.SetMuted(ctx, roomID, userID, muted)
}

// Archive retires a room. Rooms are never hard-deleted.
func (s *RoomService) Archive(ctx context.Context, userID, roomID uuid.UUID) error {
	_, member, err := s.requireMember(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if member.Role != domain.MemberOwner {
		return ErrNotModerator
	}
	return s.roomRepo.Archive(ctx, roomID)
}

// TogglePin flips a message in and out of the room's pinned set. Owner/admin only.
func (s *RoomService) TogglePin(ctx context.Context, userID, roomID, messageID uuid.UUID) (bool, error) {
	_, member, err := s.requireMember(ctx, roomID, userID)
	if err != nil {
		return false, err
	}
	if !member.Role.CanModerate() {
		return false, ErrNotModerator
	}

	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return false, err
	}
	if msg == nil || msg.IsDeleted || msg.RoomID != roomID {
		return false, ErrMessageNotFound
	}

	pinned, err := s.roomRepo.TogglePin(ctx, roomID, messageID)
	if err != nil {
		return false, fmt.Errorf("toggling pin: %w", err)
	}

	if s.notifier != nil {
		msg.IsPinned = pinned
		s.notifier.NotifyMessageEdited(msg)
	}
	return pinned, nil
}

func (s *RoomService) requireMember(ctx context.Context, roomID, userID uuid.UUID) (*domain.Room, *domain.RoomMember, error) {
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
