package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafthq/raftline/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, display_name, role, company_name, organization_name,
			avatar_url, password_hash, profile_completed, kyc_status, kyb_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.DisplayName, user.Role, user.CompanyName, user.OrganizationName,
		user.AvatarURL, user.PasswordHash, user.ProfileCompleted,
		string(user.KYCStatus), string(user.KYBStatus), user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, display_name, role, company_name, organization_name, avatar_url,
			password_hash, profile_completed, kyc_status, kyb_status, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanUser(ctx, query, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, display_name, role, company_name, organization_name, avatar_url,
			password_hash, profile_completed, kyc_status, kyb_status, created_at, updated_at
		FROM users WHERE email = $1`
	return r.scanUser(ctx, query, email)
}

func (r *UserRepo) SetProfileCompleted(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET profile_completed = TRUE, updated_at = $1 WHERE id = $2`,
		time.Now(), id)
	return err
}

func (r *UserRepo) SetVerificationStatus(ctx context.Context, id uuid.UUID, track string, status domain.VerificationStatus) error {
	var query string
	switch track {
	case "kyc":
		query = `UPDATE users SET kyc_status = $1, updated_at = $2 WHERE id = $3`
	case "kyb":
		query = `UPDATE users SET kyb_status = $1, updated_at = $2 WHERE id = $3`
	default:
		return fmt.Errorf("unknown verification track %q", track)
	}
	_, err := r.pool.Exec(ctx, query, string(status), time.Now(), id)
	return err
}

// scanUser decodes the stored status strings exactly once; bad values surface
// as errors here instead of being defaulted downstream.
func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		u        domain.User
		rawKYC   string
		rawKYB   string
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.Role, &u.CompanyName, &u.OrganizationName,
		&u.AvatarURL, &u.PasswordHash, &u.ProfileCompleted, &rawKYC, &rawKYB,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if u.KYCStatus, err = domain.ParseVerificationStatus(rawKYC); err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	if u.KYBStatus, err = domain.ParseVerificationStatus(rawKYB); err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	return &u, nil
}
