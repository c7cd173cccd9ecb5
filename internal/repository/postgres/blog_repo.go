package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafthq/raftline/internal/domain"
)

type BlogRepo struct {
	pool *pgxpool.Pool
}

func NewBlogRepo(pool *pgxpool.Pool) *BlogRepo {
	return &BlogRepo{pool: pool}
}

func (r *BlogRepo) Create(ctx context.Context, post *domain.BlogPost) error {
	query := `
		INSERT INTO blog_posts (id, source, source_id, title, slug, content, excerpt,
			meta_title, meta_description, canonical_url, category, tags, keywords,
			reading_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.pool.Exec(ctx, query,
		post.ID, post.Source, post.SourceID, post.Title, post.Slug, post.Content, post.Excerpt,
		post.MetaTitle, post.MetaDescription, post.CanonicalURL, post.Category,
		post.Tags, post.Keywords, post.ReadingTime, string(post.Status), post.CreatedAt,
	)
	return err
}

func (r *BlogRepo) GetBySourceID(ctx context.Context, sourceID string) (*domain.BlogPost, error) {
	query := `
		SELECT id, source, source_id, title, slug, content, excerpt,
			meta_title, meta_description, canonical_url, category, tags, keywords,
			reading_time, status, created_at
		FROM blog_posts WHERE source_id = $1`

	var (
		post   domain.BlogPost
		status string
	)
	err := r.pool.QueryRow(ctx, query, sourceID).Scan(
		&post.ID, &post.Source, &post.SourceID, &post.Title, &post.Slug, &post.Content, &post.Excerpt,
		&post.MetaTitle, &post.MetaDescription, &post.CanonicalURL, &post.Category,
		&post.Tags, &post.Keywords, &post.ReadingTime, &status, &post.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	post.Status = domain.BlogStatus(status)
	return &post, nil
}
