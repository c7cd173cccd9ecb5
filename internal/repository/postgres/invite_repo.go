package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafthq/raftline/internal/domain"
)

type InviteRepo struct {
	pool *pgxpool.Pool
}

func NewInviteRepo(pool *pgxpool.Pool) *InviteRepo {
	return &InviteRepo{pool: pool}
}

func (r *InviteRepo) Create(ctx context.Context, inv *domain.Invite) error {
	query := `
		INSERT INTO chat_invites (id, code, room_id, created_by, created_at, expires_at, max_uses, used_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0)`

	_, err := r.pool.Exec(ctx, query,
		inv.ID, inv.Code, inv.RoomID, inv.CreatedBy, inv.CreatedAt, inv.ExpiresAt, inv.MaxUses,
	)
	return err
}

func (r *InviteRepo) GetByCode(ctx context.Context, code string) (*domain.Invite, error) {
	query := `
		SELECT id, code, room_id, created_by, created_at, expires_at, max_uses, used_count
		FROM chat_invites WHERE code = $1`

	var inv domain.Invite
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&inv.ID, &inv.Code, &inv.RoomID, &inv.CreatedBy,
		&inv.CreatedAt, &inv.ExpiresAt, &inv.MaxUses, &inv.UsedCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM invite_redemptions WHERE invite_id = $1 ORDER BY redeemed_at`, inv.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		inv.UsedBy = append(inv.UsedBy, userID)
	}
	return &inv, rows.Err()
}

// Redeem runs the redemption as one transaction. The redemption row makes it
// idempotent per user; the conditional increment enforces the cap and expiry
// at commit time, so a burst at the boundary cannot exceed max_uses.
func (r *InviteRepo) Redeem(ctx context.Context, inviteID, userID uuid.UUID) (domain.RedeemOutcome, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.RedeemRefused, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO invite_redemptions (invite_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (invite_id, user_id) DO NOTHING`,
		inviteID, userID)
	if err != nil {
		return domain.RedeemRefused, err
	}
	if tag.RowsAffected() == 0 {
		return domain.RedeemAlreadyUsed, nil
	}

	tag, err = tx.Exec(ctx,
		`UPDATE chat_invites SET used_count = used_count + 1
		 WHERE id = $1 AND used_count < max_uses AND expires_at > now()`,
		inviteID)
	if err != nil {
		return domain.RedeemRefused, err
	}
	if tag.RowsAffected() == 0 {
		// Rollback discards the redemption row as well.
		return domain.RedeemRefused, nil
	}

	return domain.RedeemOK, tx.Commit(ctx)
}
