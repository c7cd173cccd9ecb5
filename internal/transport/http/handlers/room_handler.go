package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/service"
	"github.com/rafthq/raftline/internal/transport/http/middleware"
	"github.com/rafthq/raftline/pkg/validator"
	"go.uber.org/zap"
)

type RoomHandler struct {
	roomService *service.RoomService
	logger      *zap.Logger
}

func NewRoomHandler(roomService *service.RoomService, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{roomService: roomService, logger: logger}
}

// List returns the caller's active rooms, filtered by what their role may see.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	rooms, err := h.roomService.ListUserRooms(r.Context(), userID)
	if err != nil {
		h.roomError(w, "list rooms", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	room, err := h.roomService.GetRoom(r.Context(), userID, roomID)
	if err != nil {
		h.roomError(w, "get room", err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Members(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	members, err := h.roomService.ListMembers(r.Context(), userID, roomID)
	if err != nil {
		h.roomError(w, "list members", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

func (h *RoomHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateRoomName(input.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	room, err := h.roomService.Rename(r.Context(), userID, roomID, input.Name)
	if err != nil {
		h.roomError(w, "rename room", err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	if err := h.roomService.Archive(r.Context(), userID, roomID); err != nil {
		h.roomError(w, "archive room", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

// RemoveMember covers both leaving a room and kicking another member.
func (h *RoomHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}
	targetID, err := uuid.Parse(r.PathValue("uid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.roomService.RemoveMember(r.Context(), roomID, userID, targetID); err != nil {
		h.roomError(w, "remove member", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *RoomHandler) SetMuted(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	var input struct {
		Muted bool `json:"muted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.roomService.SetMuted(r.Context(), userID, roomID, input.Muted); err != nil {
		h.roomError(w, "set muted", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"muted": input.Muted})
}

func (h *RoomHandler) Pins(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	pins, err := h.roomService.ListPins(r.Context(), userID, roomID)
	if err != nil {
		h.roomError(w, "list pins", err)
		return
	}
	if pins == nil {
		pins = []uuid.UUID{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"pins": pins})
}

func (h *RoomHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}
	messageID, err := uuid.Parse(r.PathValue("mid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	pinned, err := h.roomService.TogglePin(r.Context(), userID, roomID, messageID)
	if err != nil {
		h.roomError(w, "toggle pin", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"pinned": pinned})
}

func (h *RoomHandler) roomError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, service.ErrNotMember):
		writeError(w, http.StatusForbidden, "NOT_MEMBER", "You are not a member of this room")
	case errors.Is(err, service.ErrNotModerator):
		writeError(w, http.StatusForbidden, "NOT_MODERATOR", "Only the room owner or an admin can do this")
	case errors.Is(err, service.ErrOwnerImmutable):
		writeError(w, http.StatusForbidden, "OWNER_IMMUTABLE", "The room owner cannot be removed")
	case errors.Is(err, service.ErrRoomArchived):
		writeError(w, http.StatusConflict, "ROOM_ARCHIVED", "Room is archived")
	case errors.Is(err, service.ErrMessageNotFound):
		writeError(w, http.StatusNotFound, "MESSAGE_NOT_FOUND", "Message not found")
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
