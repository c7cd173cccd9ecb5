package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/service"
	"github.com/rafthq/raftline/internal/transport/http/middleware"
	"go.uber.org/zap"
)

type InviteHandler struct {
	inviteService *service.InviteService
	logger        *zap.Logger
}

func NewInviteHandler(inviteService *service.InviteService, logger *zap.Logger) *InviteHandler {
	return &InviteHandler{inviteService: inviteService, logger: logger}
}

func (h *InviteHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	invite, err := h.inviteService.Generate(r.Context(), userID, roomID)
	if err != nil {
		h.inviteError(w, "generate invite", err)
		return
	}

	writeJSON(w, http.StatusCreated, invite)
}

// Join redeems an invite code. Joining twice with the same code returns the
// room again without consuming another use.
func (h *InviteHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	input.Code = strings.TrimSpace(input.Code)
	if input.Code == "" {
		writeError(w, http.StatusBadRequest, "INVALID_CODE", "Invite code is required")
		return
	}

	room, err := h.inviteService.Join(r.Context(), userID, input.Code)
	if err != nil {
		h.inviteError(w, "join via invite", err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (h *InviteHandler) inviteError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInviteInvalid):
		writeError(w, http.StatusNotFound, "INVITE_INVALID", "Invalid invite code")
	case errors.Is(err, service.ErrInviteExpired):
		writeError(w, http.StatusGone, "INVITE_EXPIRED", "This invite has expired")
	case errors.Is(err, service.ErrInviteLimit):
		writeError(w, http.StatusConflict, "INVITE_LIMIT", "This invite has reached its usage limit")
	case errors.Is(err, service.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, service.ErrNotMember):
		writeError(w, http.StatusForbidden, "NOT_MEMBER", "You are not a member of this room")
	case errors.Is(err, service.ErrRoomArchived):
		writeError(w, http.StatusConflict, "ROOM_ARCHIVED", "Room is archived")
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
