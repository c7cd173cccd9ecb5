package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafthq/raftline/internal/domain"
)

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) CreateReport(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (id, room_id, message_id, reported_by, reason, details, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		report.ID, report.RoomID, report.MessageID, report.ReportedBy,
		report.Reason, report.Details, report.Status, report.CreatedAt)
	return err
}

func (r *ReportRepo) CreateAudit(ctx context.Context, entry *domain.AuditEntry) error {
	query := `
		INSERT INTO chat_audit (id, actor_id, action, room_id, message_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.ActorID, entry.Action, entry.RoomID, entry.MessageID, entry.Detail, entry.CreatedAt)
	return err
}
