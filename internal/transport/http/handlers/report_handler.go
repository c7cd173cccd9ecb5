package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rafthq/raftline/internal/service"
	"github.com/rafthq/raftline/internal/transport/http/middleware"
	"github.com/rafthq/raftline/pkg/validator"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, logger: logger}
}

// File records a report for human moderation. No automated action is taken.
func (h *ReportHandler) File(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.ReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateReport(input.Reason); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	report, err := h.reportService.File(r.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
		case errors.Is(err, service.ErrNotMember):
			writeError(w, http.StatusForbidden, "NOT_MEMBER", "You are not a member of this room")
		default:
			h.logger.Error("file report failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, report)
}
