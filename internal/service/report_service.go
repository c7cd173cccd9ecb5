package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
	"github.com/rafthq/raftline/internal/repository"
)

type ReportService struct {
	reportRepo repository.ReportRepository
	roomRepo   repository.RoomRepository
}

func NewReportService(reportRepo repository.ReportRepository, roomRepo repository.RoomRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		roomRepo:   roomRepo,
	}
}

type ReportInput struct {
	RoomID    uuid.UUID  `json:"room_id"`
	MessageID *uuid.UUID `json:"message_id,omitempty"`
	Reason    string     `json:"reason"`
	Details   string     `json:"details"`
}

// File records a moderation-queue entry plus an audit trail entry.
// It takes no moderation action itself.
func (s *ReportService) File(ctx context.Context, reporterID uuid.UUID, input ReportInput) (*domain.Report, error) {
	member, err := s.roomRepo.GetMember(ctx, input.RoomID, reporterID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	now := time.Now()
	report := &domain.Report{
		ID:         uuid.New(),
		RoomID:     input.RoomID,
		MessageID:  input.MessageID,
		ReportedBy: reporterID,
		Reason:     input.Reason,
		Details:    input.Details,
		Status:     "open",
		CreatedAt:  now,
	}
	if err := s.reportRepo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	audit := &domain.AuditEntry{
		ID:        uuid.New(),
		ActorID:   reporterID,
		Action:    "report.filed",
		RoomID:    &input.RoomID,
		MessageID: input.MessageID,
		Detail:    input.Reason,
		CreatedAt: now,
	}
	if err := s.reportRepo.CreateAudit(ctx, audit); err != nil {
		return nil, fmt.Errorf("writing audit entry: %w", err)
	}

	return report, nil
}
