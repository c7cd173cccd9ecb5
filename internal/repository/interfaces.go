package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetProfileCompleted(ctx context.Context, id uuid.UUID) error
	SetVerificationStatus(ctx context.Context, id uuid.UUID, track string, status domain.VerificationStatus) error
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	// ListActiveByUser returns active rooms the user is a member of, most
	// recently active first. Role visibility is applied by the service.
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.Room, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Archive(ctx context.Context, id uuid.UUID) error
	TouchActivity(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, member *domain.RoomMember) error
	RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error
	GetMember(ctx context.Context, roomID, userID uuid.UUID) (*domain.RoomMember, error)
	ListMembers(ctx context.Context, roomID uuid.UUID) ([]domain.RoomMember, error)
	SetMuted(ctx context.Context, roomID, userID uuid.UUID, muted bool) error

	// TogglePin flips membership of messageID in the room's pinned set and the
	// message's is_pinned flag in one transaction. Returns the new state.
	TogglePin(ctx context.Context, roomID, messageID uuid.UUID) (bool, error)
	ListPins(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	// ListRecent returns the newest `limit` non-deleted messages of a room in
	// ascending creation order, with reactions and read receipts attached.
	ListRecent(ctx context.Context, roomID uuid.UUID, limit int) ([]domain.Message, error)
	UpdateText(ctx context.Context, id uuid.UUID, text string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ToggleReaction is a single-row toggle: delete the (message, user, emoji)
	// row if present, insert it otherwise. Returns true if the reaction is now
	// present. Safe under concurrent togglers.
	ToggleReaction(ctx context.Context, messageID, userID uuid.UUID, emoji string) (bool, error)
	MarkRead(ctx context.Context, messageID, userID uuid.UUID) error
}

type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) error
	GetByCode(ctx context.Context, code string) (*domain.Invite, error)
	// Redeem atomically records a redemption: it inserts the per-user
	// redemption row (idempotent) and increments used_count only while the
	// invite is under its cap and unexpired.
	Redeem(ctx context.Context, inviteID, userID uuid.UUID) (domain.RedeemOutcome, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	MarkAccepted(ctx context.Context, id, counterpartID uuid.UUID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

type ReportRepository interface {
	CreateReport(ctx context.Context, report *domain.Report) error
	CreateAudit(ctx context.Context, entry *domain.AuditEntry) error
}

type BlogRepository interface {
	Create(ctx context.Context, post *domain.BlogPost) error
	GetBySourceID(ctx context.Context, sourceID string) (*domain.BlogPost, error)
}
