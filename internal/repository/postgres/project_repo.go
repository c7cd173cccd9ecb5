package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafthq/raftline/internal/domain"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `
		INSERT INTO projects (id, founder_id, name, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, p.ID, p.FounderID, p.Name, string(p.Status), p.CreatedAt)
	return err
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	query := `
		SELECT id, founder_id, name, status, accepted_by, accepted_at, created_at
		FROM projects WHERE id = $1`

	var (
		p      domain.Project
		status string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FounderID, &p.Name, &status, &p.AcceptedBy, &p.AcceptedAt, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Status = domain.ProjectStatus(status)
	return &p, nil
}

func (r *ProjectRepo) MarkAccepted(ctx context.Context, id, counterpartID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE projects SET status = 'accepted', accepted_by = $1, accepted_at = $2 WHERE id = $3`,
		counterpartID, time.Now(), id)
	return err
}
