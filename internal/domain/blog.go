package domain

import (
	"time"

	"github.com/google/uuid"
)

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

type BlogPost struct {
	ID              uuid.UUID  `json:"id"`
	Source          string     `json:"source"`
	SourceID        string     `json:"source_id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	Excerpt         string     `json:"excerpt"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	CanonicalURL    string     `json:"canonical_url"`
	Category        string     `json:"category"`
	Tags            []string   `json:"tags"`
	Keywords        []string   `json:"keywords"`
	ReadingTime     int        `json:"reading_time"`
	Status          BlogStatus `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}
