package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rafthq/raftline/internal/domain"
	"github.com/rafthq/raftline/internal/service"
	"github.com/rafthq/raftline/internal/transport/http/handlers"
	"go.uber.org/zap"
)

type memBlogRepo struct {
	posts map[string]*domain.BlogPost
}

func (r *memBlogRepo) Create(_ context.Context, post *domain.BlogPost) error {
	r.posts[post.SourceID] = post
	return nil
}

func (r *memBlogRepo) GetBySourceID(_ context.Context, sourceID string) (*domain.BlogPost, error) {
	return r.posts[sourceID], nil
}

func newBlogHandler() *handlers.BlogHandler {
	repo := &memBlogRepo{posts: make(map[string]*domain.BlogPost)}
	svc := service.NewBlogService(repo, zap.NewNop())
	return handlers.NewBlogHandler(svc, zap.NewNop())
}

func postWebhook(t *testing.T, h *handlers.BlogHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/blog/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)
	return rec
}

func webhookBody(t *testing.T, sourceID string, publish bool) string {
	t.Helper()
	payload := map[string]any{
		"title":         "How founders should prepare a data room",
		"content":       strings.Repeat("A sentence about fundraising practice. ", 20),
		"canonical_url": "https://blog.raftline.io/data-rooms",
		"slug":          "data-rooms",
		"publish":       publish,
		"source":        "pipeline",
		"sourceId":      sourceID,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}
	return string(raw)
}

func TestWebhook_PublishesPost(t *testing.T) {
	h := newBlogHandler()

	rec := postWebhook(t, h, webhookBody(t, "src-1", true))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Success bool   `json:"success"`
		Status  string `json:"status"`
		PostID  string `json:"postId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if !result.Success || result.Status != "published" || result.PostID == "" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestWebhook_DuplicateIsConflict(t *testing.T) {
	h := newBlogHandler()

	if rec := postWebhook(t, h, webhookBody(t, "src-1", true)); rec.Code != http.StatusCreated {
		t.Fatalf("seeding post failed: %d", rec.Code)
	}
	rec := postWebhook(t, h, webhookBody(t, "src-1", true))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate sourceId should be 409, got %d", rec.Code)
	}
}

func TestWebhook_BadJSON(t *testing.T) {
	h := newBlogHandler()

	rec := postWebhook(t, h, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad JSON, got %d", rec.Code)
	}
}

func TestWebhook_MissingSourceID(t *testing.T) {
	h := newBlogHandler()

	rec := postWebhook(t, h, `{"title":"A perfectly fine title","content":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without sourceId, got %d", rec.Code)
	}
}

func TestWebhook_ValidationProblemsEchoed(t *testing.T) {
	h := newBlogHandler()

	body := `{"title":"Short","content":"Too little.","publish":true,"sourceId":"src-2"}`
	rec := postWebhook(t, h, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var result struct {
		Status     string   `json:"status"`
		Validation []string `json:"validation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if result.Status != "draft" {
		t.Errorf("invalid post should be saved as draft, got %q", result.Status)
	}
	if len(result.Validation) == 0 {
		t.Error("validation problems should be echoed back")
	}
}
