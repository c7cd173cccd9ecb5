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

type MessageHandler struct {
	messageService *service.MessageService
	logger         *zap.Logger
}

func NewMessageHandler(messageService *service.MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messageService: messageService, logger: logger}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	messages, err := h.messageService.List(r.Context(), userID, roomID)
	if err != nil {
		h.messageError(w, "list messages", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	roomID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	var input service.SendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateMessage(input.Text, input.Type, input.File != nil); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	msg, err := h.messageService.Send(r.Context(), userID, roomID, input)
	if err != nil {
		h.messageError(w, "send message", err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateMessage(input.Text, "text", false); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	msg, err := h.messageService.Edit(r.Context(), userID, messageID, input.Text)
	if err != nil {
		h.messageError(w, "edit message", err)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	if err := h.messageService.Delete(r.Context(), userID, messageID); err != nil {
		h.messageError(w, "delete message", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ToggleReaction adds the caller's reaction if absent, removes it if present.
func (h *MessageHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
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

	var input struct {
		Emoji string `json:"emoji"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Emoji == "" {
		writeError(w, http.StatusBadRequest, "INVALID_EMOJI", "Emoji is required")
		return
	}

	msg, err := h.messageService.ToggleReaction(r.Context(), userID, roomID, messageID, input.Emoji)
	if err != nil {
		h.messageError(w, "toggle reaction", err)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
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

	if err := h.messageService.MarkRead(r.Context(), userID, roomID, messageID); err != nil {
		h.messageError(w, "mark read", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (h *MessageHandler) messageError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, service.ErrNotMember):
		writeError(w, http.StatusForbidden, "NOT_MEMBER", "You are not a member of this room")
	case errors.Is(err, service.ErrRoomArchived):
		writeError(w, http.StatusConflict, "ROOM_ARCHIVED", "Room is archived")
	case errors.Is(err, service.ErrMessageNotFound):
		writeError(w, http.StatusNotFound, "MESSAGE_NOT_FOUND", "Message not found")
	case errors.Is(err, service.ErrNotSender):
		writeError(w, http.StatusForbidden, "NOT_SENDER", "Only the sender can modify this message")
	case errors.Is(err, service.ErrBadReply):
		writeError(w, http.StatusBadRequest, "BAD_REPLY", "Reply target is not in this room")
	case errors.Is(err, service.ErrFilesDisabled):
		writeError(w, http.StatusForbidden, "FILES_DISABLED", "File sharing is disabled in this room")
	case errors.Is(err, service.ErrFileTooLarge):
		writeError(w, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the room's size limit")
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
