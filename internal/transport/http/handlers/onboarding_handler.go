package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/service"
	"github.com/rafthq/raftline/internal/transport/http/middleware"
	"go.uber.org/zap"
)

type OnboardingHandler struct {
	onboardingService *service.OnboardingService
	logger            *zap.Logger
}

func NewOnboardingHandler(onboardingService *service.OnboardingService, logger *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService, logger: logger}
}

func (h *OnboardingHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	status, err := h.onboardingService.Status(r.Context(), userID)
	if err != nil {
		h.onboardingError(w, "onboarding status", err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Start opens (or reopens, after a rejection) the caller's verification.
func (h *OnboardingHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	status, err := h.onboardingService.Start(r.Context(), userID)
	if err != nil {
		h.onboardingError(w, "start verification", err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	status, err := h.onboardingService.Submit(r.Context(), userID)
	if err != nil {
		h.onboardingError(w, "submit verification", err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Review is the admin decision endpoint for a submitted verification.
func (h *OnboardingHandler) Review(w http.ResponseWriter, r *http.Request) {
	reviewerID := middleware.GetUserID(r.Context())

	var input struct {
		UserID uuid.UUID `json:"user_id"`
		Action string    `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.UserID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var approve bool
	switch input.Action {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		writeError(w, http.StatusBadRequest, "INVALID_ACTION", "Action must be approve or reject")
		return
	}

	status, err := h.onboardingService.Review(r.Context(), reviewerID, input.UserID, approve)
	if err != nil {
		h.onboardingError(w, "review verification", err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *OnboardingHandler) onboardingError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrNotAdmin):
		writeError(w, http.StatusForbidden, "NOT_ADMIN", "Only admins can review verifications")
	case errors.Is(err, service.ErrWrongStep):
		writeError(w, http.StatusConflict, "WRONG_STEP", "Operation not valid in the current onboarding step")
	case errors.Is(err, service.ErrBadReviewAction):
		writeError(w, http.StatusBadRequest, "INVALID_ACTION", "Action must be approve or reject")
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
