package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
)

func newOnboardingFixture(role string) (*OnboardingService, *domain.User, *domain.User) {
	user := &domain.User{ID: uuid.New(), Email: "u@x.io", DisplayName: "U", Role: role, ProfileCompleted: true,
		KYCStatus: domain.VerificationNotSubmitted, KYBStatus: domain.VerificationNotSubmitted}
	admin := &domain.User{ID: uuid.New(), Email: "a@x.io", DisplayName: "A", Role: domain.RoleAdmin}
	return NewOnboardingService(newFakeUserRepo(user, admin)), user, admin
}

func TestOnboardingLadder(t *testing.T) {
	svc, user, admin := newOnboardingFixture(domain.RoleFounder)
	ctx := context.Background()

	status, err := svc.Status(ctx, user.ID)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Step != domain.StepVerification || status.Track != "kyc" {
		t.Errorf("fresh founder should be at verification on kyc, got %+v", status)
	}

	// Submitting before starting is out of order.
	if _, err := svc.Submit(ctx, user.ID); !errors.Is(err, ErrWrongStep) {
		t.Errorf("expected ErrWrongStep, got %v", err)
	}

	status, err = svc.Start(ctx, user.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if status.Status != domain.VerificationPending {
		t.Errorf("after Start status = %q, want pending", status.Status)
	}

	// Starting twice is out of order too.
	if _, err := svc.Start(ctx, user.ID); !errors.Is(err, ErrWrongStep) {
		t.Errorf("expected ErrWrongStep on double start, got %v", err)
	}

	status, err = svc.Submit(ctx, user.ID)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if status.Step != domain.StepPending {
		t.Errorf("after Submit step = %q, want pending_approval", status.Step)
	}

	status, err = svc.Review(ctx, admin.ID, user.ID, true)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if status.Step != domain.StepApproved {
		t.Errorf("after approval step = %q, want approved", status.Step)
	}
}

func TestOnboardingRejectionLoopsBack(t *testing.T) {
	svc, user, admin := newOnboardingFixture(domain.RoleVC)
	ctx := context.Background()

	svc.Start(ctx, user.ID)
	svc.Submit(ctx, user.ID)

	status, err := svc.Review(ctx, admin.ID, user.ID, false)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if status.Step != domain.StepVerification || status.Status != domain.VerificationRejected {
		t.Errorf("rejection should loop back to verification, got %+v", status)
	}
	if status.Track != "kyb" {
		t.Errorf("vc should be on the kyb track, got %q", status.Track)
	}

	// A rejected user may start over.
	if _, err := svc.Start(ctx, user.ID); err != nil {
		t.Errorf("restart after rejection failed: %v", err)
	}
}

func TestOnboardingReview_AdminOnly(t *testing.T) {
	svc, user, _ := newOnboardingFixture(domain.RoleFounder)
	ctx := context.Background()

	svc.Start(ctx, user.ID)
	svc.Submit(ctx, user.ID)

	if _, err := svc.Review(ctx, user.ID, user.ID, true); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("expected ErrNotAdmin for a non-admin reviewer, got %v", err)
	}
}

func TestOnboardingReview_RequiresSubmission(t *testing.T) {
	svc, user, admin := newOnboardingFixture(domain.RoleFounder)
	ctx := context.Background()

	if _, err := svc.Review(ctx, admin.ID, user.ID, true); !errors.Is(err, ErrWrongStep) {
		t.Errorf("expected ErrWrongStep reviewing an unsubmitted user, got %v", err)
	}
}

func TestOnboardingStatus_UnknownUser(t *testing.T) {
	svc, _, _ := newOnboardingFixture(domain.RoleFounder)

	if _, err := svc.Status(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
