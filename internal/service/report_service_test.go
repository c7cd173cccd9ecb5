package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
)

func TestReportFile(t *testing.T) {
	rooms := newFakeRoomRepo()
	reports := &fakeReportRepo{}
	svc := NewReportService(reports, rooms)
	ctx := context.Background()

	roomID := uuid.New()
	reporter := uuid.New()
	rooms.Create(ctx, &domain.Room{ID: roomID, Status: domain.RoomActive})
	rooms.AddMember(ctx, &domain.RoomMember{RoomID: roomID, UserID: reporter, Role: domain.MemberMember})

	messageID := uuid.New()
	report, err := svc.File(ctx, reporter, ReportInput{
		RoomID:    roomID,
		MessageID: &messageID,
		Reason:    "spam",
		Details:   "repeated shill links",
	})
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	if report.Status != "open" {
		t.Errorf("new report status = %q, want open", report.Status)
	}

	// Filing records the report plus an audit trail entry; nothing else.
	if len(reports.reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports.reports))
	}
	if len(reports.audit) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(reports.audit))
	}
	if reports.audit[0].Action != "report.filed" {
		t.Errorf("audit action = %q, want report.filed", reports.audit[0].Action)
	}
	if reports.audit[0].ActorID != reporter {
		t.Error("audit entry should name the reporter as actor")
	}
}

func TestReportFile_NonMemberRejected(t *testing.T) {
	rooms := newFakeRoomRepo()
	svc := NewReportService(&fakeReportRepo{}, rooms)
	ctx := context.Background()

	roomID := uuid.New()
	rooms.Create(ctx, &domain.Room{ID: roomID, Status: domain.RoomActive})

	_, err := svc.File(ctx, uuid.New(), ReportInput{RoomID: roomID, Reason: "spam"})
	if !errors.Is(err, ErrNotMember) {
		t.Errorf("expected ErrNotMember, got %v", err)
	}
}
