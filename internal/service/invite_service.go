package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
	"github.com/rafthq/raftline/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrInviteInvalid = errors.New("invalid invite code")
	ErrInviteExpired = errors.New("invite expired")
	ErrInviteLimit   = errors.New("invite limit reached")
)

const (
	inviteCodeLength = 8
	inviteTTL        = 7 * 24 * time.Hour
	inviteMaxUses    = 10
)

// Code alphabet omits 0/O and 1/I/L so codes survive being read aloud.
const inviteAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

type InviteService struct {
	inviteRepo       repository.InviteRepository
	roomRepo         repository.RoomRepository
	userRepo         repository.UserRepository
	messageRepo      repository.MessageRepository
	notificationRepo repository.NotificationRepository
	notifier         Notifier
	logger           *zap.Logger
}

func NewInviteService(
	inviteRepo repository.InviteRepository,
	roomRepo repository.RoomRepository,
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
	notificationRepo repository.NotificationRepository,
	logger *zap.Logger,
) *InviteService {
	return &InviteService{
		inviteRepo:       inviteRepo,
		roomRepo:         roomRepo,
		userRepo:         userRepo,
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *InviteService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Generate mints an invite code for a room: 8 opaque characters, 7-day
// expiry, 10 uses. Any member may invite.
func (s *InviteService) Generate(ctx context.Context, userID, roomID uuid.UUID) (*domain.Invite, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if room.Status != domain.RoomActive {
		return nil, ErrRoomArchived
	}

	member, err := s.roomRepo.GetMember(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	code, err := generateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("generating invite code: %w", err)
	}

	now := time.Now()
	invite := &domain.Invite{
		ID:        uuid.New(),
		Code:      code,
		RoomID:    roomID,
		CreatedBy: userID,
		CreatedAt: now,
		ExpiresAt: now.Add(inviteTTL),
		MaxUses:   inviteMaxUses,
	}

	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("creating invite: %w", err)
	}
	return invite, nil
}

// Join redeems a code. Redemption is idempotent per user: a second attempt by
// the same user neither double-adds them nor burns another use.
func (s *InviteService) Join(ctx context.Context, userID uuid.UUID, code string) (*domain.Room, error) {
	invite, err := s.inviteRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, ErrInviteInvalid
	}

	now := time.Now()
	if invite.Expired(now) {
		return nil, ErrInviteExpired
	}
	if invite.Exhausted() {
		return nil, ErrInviteLimit
	}

	room, err := s.roomRepo.GetByID(ctx, invite.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	outcome, err := s.inviteRepo.Redeem(ctx, invite.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("redeeming invite: %w", err)
	}
	switch outcome {
	case domain.RedeemAlreadyUsed:
		// Redeemed before. Re-assert membership so a user who left the room
		// can come back on the same code without burning another use or
		// re-announcing the join.
		if err := s.roomRepo.AddMember(ctx, &domain.RoomMember{
			RoomID:   room.ID,
			UserID:   userID,
			Role:     domain.MemberMember,
			JoinedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("adding member: %w", err)
		}
		return room, nil
	case domain.RedeemRefused:
		// The pre-checks above passed but the transaction found the invite
		// spent or expired; distinguish for the caller.
		if invite.Expired(time.Now()) {
			return nil, ErrInviteExpired
		}
		return nil, ErrInviteLimit
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInviteInvalid
	}

	if err := s.roomRepo.AddMember(ctx, &domain.RoomMember{
		RoomID:   room.ID,
		UserID:   userID,
		Role:     domain.MemberMember,
		JoinedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("adding member: %w", err)
	}

	text := fmt.Sprintf("%s joined via invite.", user.PartyName())
	if _, err := postSystemMessage(ctx, s.messageRepo, s.roomRepo, s.notifier, room.ID, text); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyMemberJoined(room.ID, &domain.RoomMember{
			RoomID:      room.ID,
			UserID:      userID,
			Role:        domain.MemberMember,
			JoinedAt:    now,
			DisplayName: user.PartyName(),
		})
	}

	// Best-effort: the room owner learns about the join, but a failed
	// notification never fails the join.
	s.notifyBestEffort(ctx, &domain.Notification{
		ID:        uuid.New(),
		UserID:    room.FounderID,
		Type:      "member_joined",
		Title:     fmt.Sprintf("%s joined %s", user.PartyName(), room.Name),
		RoomID:    &room.ID,
		CreatedAt: now,
	})

	return room, nil
}

func (s *InviteService) notifyBestEffort(ctx context.Context, n *domain.Notification) {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Warn("notification write failed",
			zap.String("user_id", n.UserID.String()),
			zap.Error(err))
	}
}

func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}
