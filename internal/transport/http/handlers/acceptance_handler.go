package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/service"
	"github.com/rafthq/raftline/internal/transport/http/middleware"
	"go.uber.org/zap"
)

type AcceptanceHandler struct {
	acceptanceService *service.AcceptanceService
	logger            *zap.Logger
}

func NewAcceptanceHandler(acceptanceService *service.AcceptanceService, logger *zap.Logger) *AcceptanceHandler {
	return &AcceptanceHandler{acceptanceService: acceptanceService, logger: logger}
}

// Accept bootstraps (or returns) the deal room between the caller and the
// project's founder. Calling it again for the same pair is a no-op that
// returns the existing room.
func (h *AcceptanceHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid project ID")
		return
	}

	room, err := h.acceptanceService.Accept(r.Context(), userID, projectID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
		case errors.Is(err, service.ErrSelfAccept):
			writeError(w, http.StatusBadRequest, "SELF_ACCEPT", "You cannot accept your own project")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		default:
			h.logger.Error("accept project failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, room)
}
