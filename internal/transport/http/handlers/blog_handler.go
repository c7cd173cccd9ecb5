package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rafthq/raftline/internal/service"
	"go.uber.org/zap"
)

type BlogHandler struct {
	blogService *service.BlogService
	logger      *zap.Logger
}

func NewBlogHandler(blogService *service.BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{blogService: blogService, logger: logger}
}

// Webhook ingests a post from the external content pipeline. Validation
// problems downgrade the post to draft; only duplicates are rejected.
func (h *BlogHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var input service.BlogWebhookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.SourceID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_SOURCE_ID", "sourceId is required")
		return
	}

	result, err := h.blogService.Ingest(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateSource):
			writeJSON(w, http.StatusConflict, map[string]any{
				"success": false,
				"message": "Post with this sourceId was already ingested",
			})
		default:
			h.logger.Error("blog webhook failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
