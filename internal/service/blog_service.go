package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rafthq/raftline/internal/domain"
	"github.com/rafthq/raftline/internal/repository"
	"go.uber.org/zap"
)

var ErrDuplicateSource = errors.New("post with this source id already ingested")

const (
	minTitleLen      = 10
	minContentLen    = 300
	maxExternalLinks = 20
)

// Obvious SEO-spam markers; any hit forces draft status.
var spamPhrases = []string{
	"buy now",
	"limited time offer",
	"click here",
	"100% guaranteed",
	"act now",
}

var linkPattern = regexp.MustCompile(`https?://[^\s"')<>\]]+`)

type BlogService struct {
	blogRepo repository.BlogRepository
	logger   *zap.Logger
}

func NewBlogService(blogRepo repository.BlogRepository, logger *zap.Logger) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		logger:   logger,
	}
}

type BlogWebhookInput struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Excerpt         string   `json:"excerpt"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	CanonicalURL    string   `json:"canonical_url"`
	Slug            string   `json:"slug"`
	Tags            []string `json:"tags"`
	Category        string   `json:"category"`
	Keywords        []string `json:"keywords"`
	ReadingTime     int      `json:"reading_time"`
	Publish         bool     `json:"publish"`
	Source          string   `json:"source"`
	SourceID        string   `json:"sourceId"`
}

type BlogIngestResult struct {
	Success    bool              `json:"success"`
	PostID     uuid.UUID         `json:"postId"`
	Status     domain.BlogStatus `json:"status"`
	Message    string            `json:"message"`
	Validation []string          `json:"validation,omitempty"`
}

// Ingest persists an incoming webhook post. Validation problems do not reject
// the post; they downgrade it to draft and are echoed back to the sender.
func (s *BlogService) Ingest(ctx context.Context, input BlogWebhookInput) (*BlogIngestResult, error) {
	existing, err := s.blogRepo.GetBySourceID(ctx, input.SourceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateSource
	}

	problems := validatePost(input)

	status := domain.BlogDraft
	if input.Publish && len(problems) == 0 {
		status = domain.BlogPublished
	}

	post := &domain.BlogPost{
		ID:              uuid.New(),
		Source:          input.Source,
		SourceID:        input.SourceID,
		Title:           input.Title,
		Slug:            input.Slug,
		Content:         input.Content,
		Excerpt:         input.Excerpt,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		CanonicalURL:    input.CanonicalURL,
		Category:        input.Category,
		Tags:            input.Tags,
		Keywords:        input.Keywords,
		ReadingTime:     input.ReadingTime,
		Status:          status,
		CreatedAt:       time.Now(),
	}
	if err := s.blogRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating blog post: %w", err)
	}

	message := "post published"
	if status == domain.BlogDraft {
		message = "post saved as draft"
		if len(problems) > 0 {
			s.logger.Info("blog post downgraded to draft",
				zap.String("source_id", input.SourceID),
				zap.Strings("problems", problems))
		}
	}

	return &BlogIngestResult{
		Success:    true,
		PostID:     post.ID,
		Status:     status,
		Message:    message,
		Validation: problems,
	}, nil
}

func validatePost(input BlogWebhookInput) []string {
	var problems []string

	if len(strings.TrimSpace(input.Title)) < minTitleLen {
		problems = append(problems, "title too short")
	}
	if len(strings.TrimSpace(input.Content)) < minContentLen {
		problems = append(problems, "content too short")
	}

	lower := strings.ToLower(input.Content)
	for _, phrase := range spamPhrases {
		if strings.Contains(lower, phrase) {
			problems = append(problems, fmt.Sprintf("spam phrase: %q", phrase))
		}
	}

	if n := countExternalLinks(input.Content, input.CanonicalURL); n > maxExternalLinks {
		problems = append(problems, fmt.Sprintf("too many external links (%d)", n))
	}

	return problems
}

// countExternalLinks counts links pointing away from the canonical host.
func countExternalLinks(content, canonical string) int {
	var ownHost string
	if u, err := url.Parse(canonical); err == nil {
		ownHost = u.Host
	}

	count := 0
	for _, link := range linkPattern.FindAllString(content, -1) {
		u, err := url.Parse(link)
		if err != nil {
			continue
		}
		if ownHost != "" && u.Host == ownHost {
			continue
		}
		count++
	}
	return count
}
