package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
	"github.com/rafthq/raftline/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrSelfAccept      = errors.New("a founder cannot accept their own project")
)

const defaultMaxFileSize = 10 << 20 // 10 MiB

// welcomeTemplates pick the first RaftAI message by counterpart role.
var welcomeTemplates = map[string]string{
	domain.RoleVC:         "Welcome! This deal room connects %s with %s. Share your deck, data room access and term discussions here.",
	domain.RoleExchange:   "Welcome! This listing room connects %s with %s. Coordinate listing requirements, technical integration and launch timing here.",
	domain.RoleIDO:        "Welcome! This IDO room connects %s with %s. Align on allocation, vesting and launchpad logistics here.",
	domain.RoleInfluencer: "Welcome! This campaign room connects %s with %s. Plan content, deliverables and schedules here.",
	domain.RoleAgency:     "Welcome! This proposal room connects %s with %s. Scope the engagement and track deliverables here.",
}

// AcceptanceService turns a pitched project into an accepted one and
// bootstraps exactly one chat room per (founder, counterpart, project) triple.
type AcceptanceService struct {
	projectRepo      repository.ProjectRepository
	userRepo         repository.UserRepository
	roomRepo         repository.RoomRepository
	messageRepo      repository.MessageRepository
	notificationRepo repository.NotificationRepository
	notifier         Notifier
	logger           *zap.Logger
}

func NewAcceptanceService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	roomRepo repository.RoomRepository,
	messageRepo repository.MessageRepository,
	notificationRepo repository.NotificationRepository,
	logger *zap.Logger,
) *AcceptanceService {
	return &AcceptanceService{
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		roomRepo:         roomRepo,
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *AcceptanceService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Accept is idempotent: the room id is derived from the triple, so a repeat
// acceptance finds the existing room and creates nothing.
func (s *AcceptanceService) Accept(ctx context.Context, counterpartID, projectID uuid.UUID) (*domain.Room, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if project.FounderID == counterpartID {
		return nil, ErrSelfAccept
	}

	roomID := domain.DeriveRoomID(project.FounderID, counterpartID, projectID)

	existing, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	founder, err := s.userRepo.GetByID(ctx, project.FounderID)
	if err != nil {
		return nil, err
	}
	counterpart, err := s.userRepo.GetByID(ctx, counterpartID)
	if err != nil {
		return nil, err
	}
	if founder == nil || counterpart == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	room := &domain.Room{
		ID:              roomID,
		Name:            fmt.Sprintf("%s - %s", project.Name, counterpart.PartyName()),
		Type:            domain.RoomTypeForRole(counterpart.Role),
		Status:          domain.RoomActive,
		FounderID:       founder.ID,
		FounderName:     founder.PartyName(),
		FounderLogo:     domain.SanitizeLogoURL(founder.AvatarURL),
		CounterpartID:   counterpart.ID,
		CounterpartName: counterpart.PartyName(),
		CounterpartRole: counterpart.Role,
		CounterpartLogo: domain.SanitizeLogoURL(counterpart.AvatarURL),
		ProjectID:       &project.ID,
		Settings: domain.RoomSettings{
			FilesAllowed: true,
			MaxFileSize:  defaultMaxFileSize,
		},
		CreatedAt:      now,
		LastActivityAt: now,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("creating room: %w", err)
	}

	members := []domain.RoomMember{
		{RoomID: roomID, UserID: founder.ID, Role: domain.MemberOwner, JoinedAt: now},
		{RoomID: roomID, UserID: counterpart.ID, Role: domain.MemberMember, JoinedAt: now},
		{RoomID: roomID, UserID: domain.RaftAI, Role: domain.MemberAdmin, JoinedAt: now},
	}
	for i := range members {
		if err := s.roomRepo.AddMember(ctx, &members[i]); err != nil {
			return nil, fmt.Errorf("adding member: %w", err)
		}
	}

	if err := s.projectRepo.MarkAccepted(ctx, projectID, counterpartID); err != nil {
		return nil, fmt.Errorf("marking project accepted: %w", err)
	}

	template, ok := welcomeTemplates[counterpart.Role]
	if !ok {
		template = "Welcome! This room connects %s with %s."
	}
	text := fmt.Sprintf(template, founder.PartyName(), counterpart.PartyName())
	if _, err := postSystemMessage(ctx, s.messageRepo, s.roomRepo, s.notifier, roomID, text); err != nil {
		return nil, err
	}

	// Best-effort: a failure here never rolls back the room.
	notification := &domain.Notification{
		ID:        uuid.New(),
		UserID:    founder.ID,
		Type:      "project_accepted",
		Title:     fmt.Sprintf("%s accepted %s", counterpart.PartyName(), project.Name),
		RoomID:    &roomID,
		CreatedAt: now,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("acceptance notification failed",
			zap.String("founder_id", founder.ID.String()),
			zap.Error(err))
	}

	if s.notifier != nil {
		s.notifier.NotifyRoomUpdated(room)
	}
	return room, nil
}
