package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
	"github.com/rafthq/raftline/internal/repository"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNotAdmin        = errors.New("only admins can review verifications")
	ErrWrongStep       = errors.New("operation not valid in the current onboarding step")
	ErrBadReviewAction = errors.New("review action must be approve or reject")
)

// OnboardingService drives the register -> verification -> pending_approval ->
// approved ladder, with rejected looping back to verification.
type OnboardingService struct {
	userRepo repository.UserRepository
}

func NewOnboardingService(userRepo repository.UserRepository) *OnboardingService {
	return &OnboardingService{userRepo: userRepo}
}

type OnboardingStatus struct {
	Step   domain.OnboardingStep     `json:"step"`
	Track  string                    `json:"track"`
	Status domain.VerificationStatus `json:"status"`
}

func (s *OnboardingService) Status(ctx context.Context, userID uuid.UUID) (*OnboardingStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &OnboardingStatus{
		Step:   domain.NextStep(user),
		Track:  user.VerificationTrack(),
		Status: user.TrackStatus(),
	}, nil
}

// Start opens (or reopens after rejection) the user's verification track.
func (s *OnboardingService) Start(ctx context.Context, userID uuid.UUID) (*OnboardingStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	switch user.TrackStatus() {
	case domain.VerificationNotSubmitted, domain.VerificationRejected:
	default:
		return nil, ErrWrongStep
	}

	if err := s.userRepo.SetVerificationStatus(ctx, userID, user.VerificationTrack(), domain.VerificationPending); err != nil {
		return nil, err
	}
	return s.Status(ctx, userID)
}

// Submit hands a pending verification off for review.
func (s *OnboardingService) Submit(ctx context.Context, userID uuid.UUID) (*OnboardingStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.TrackStatus() != domain.VerificationPending {
		return nil, ErrWrongStep
	}

	if err := s.userRepo.SetVerificationStatus(ctx, userID, user.VerificationTrack(), domain.VerificationSubmitted); err != nil {
		return nil, err
	}
	return s.Status(ctx, userID)
}

// Review approves or rejects a submitted verification. Admin only.
func (s *OnboardingService) Review(ctx context.Context, reviewerID, userID uuid.UUID, approve bool) (*OnboardingStatus, error) {
	reviewer, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if reviewer == nil || reviewer.Role != domain.RoleAdmin {
		return nil, ErrNotAdmin
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.TrackStatus() != domain.VerificationSubmitted {
		return nil, ErrWrongStep
	}

	status := domain.VerificationRejected
	if approve {
		status = domain.VerificationApproved
	}
	if err := s.userRepo.SetVerificationStatus(ctx, userID, user.VerificationTrack(), status); err != nil {
		return nil, err
	}
	return s.Status(ctx, userID)
}
