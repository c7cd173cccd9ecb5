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

type RoomRepo struct {
	pool *pgxpool.Pool
}

func NewRoomRepo(pool *pgxpool.Pool) *RoomRepo {
	return &RoomRepo{pool: pool}
}

const roomColumns = `id, name, type, status, founder_id, founder_name, founder_logo,
	counterpart_id, counterpart_name, counterpart_role, counterpart_logo, project_id,
	files_allowed, max_file_size, memory, created_at, last_activity_at, archived_at`

func (r *RoomRepo) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (id, name, type, status, founder_id, founder_name, founder_logo,
			counterpart_id, counterpart_name, counterpart_role, counterpart_logo, project_id,
			files_allowed, max_file_size, memory, created_at, last_activity_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.pool.Exec(ctx, query,
		room.ID, room.Name, string(room.Type), string(room.Status),
		room.FounderID, room.FounderName, room.FounderLogo,
		room.CounterpartID, room.CounterpartName, room.CounterpartRole, room.CounterpartLogo,
		room.ProjectID, room.Settings.FilesAllowed, room.Settings.MaxFileSize,
		[]byte(room.Memory), room.CreatedAt, room.LastActivityAt,
	)
	return err
}

func (r *RoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
	room, err := scanRoom(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *RoomRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.Room, error) {
	query := `
		SELECT r.id, r.name, r.type, r.status, r.founder_id, r.founder_name, r.founder_logo,
			r.counterpart_id, r.counterpart_name, r.counterpart_role, r.counterpart_logo, r.project_id,
			r.files_allowed, r.max_file_size, r.memory, r.created_at, r.last_activity_at, r.archived_at
		FROM rooms r
		INNER JOIN room_members rm ON r.id = rm.room_id
		WHERE rm.user_id = $1 AND r.status = 'active'
		ORDER BY r.last_activity_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepo) Rename(ctx context.Context, id uuid.UUID, name string) error {
	_, err := r.pool.Exec(ctx, `UPDATE rooms SET name = $1 WHERE id = $2`, name, id)
	return err
}

func (r *RoomRepo) Archive(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE rooms SET status = 'archived', archived_at = $1 WHERE id = $2`, time.Now(), id)
	return err
}

func (r *RoomRepo) TouchActivity(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE rooms SET last_activity_at = $1 WHERE id = $2`, time.Now(), id)
	return err
}

func (r *RoomRepo) AddMember(ctx context.Context, member *domain.RoomMember) error {
	query := `
		INSERT INTO room_members (room_id, user_id, role, muted, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (room_id, user_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query,
		member.RoomID, member.UserID, string(member.Role), member.Muted, member.JoinedAt)
	return err
}

func (r *RoomRepo) RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM room_members WHERE room_id = $1 AND user_id = $2`, roomID, userID)
	return err
}

func (r *RoomRepo) GetMember(ctx context.Context, roomID, userID uuid.UUID) (*domain.RoomMember, error) {
	query := `
		SELECT room_id, user_id, role, muted, joined_at
		FROM room_members WHERE room_id = $1 AND user_id = $2`

	var m domain.RoomMember
	var role string
	err := r.pool.QueryRow(ctx, query, roomID, userID).Scan(
		&m.RoomID, &m.UserID, &role, &m.Muted, &m.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Role = domain.MemberRole(role)
	return &m, nil
}

func (r *RoomRepo) ListMembers(ctx context.Context, roomID uuid.UUID) ([]domain.RoomMember, error) {
	query := `
		SELECT rm.room_id, rm.user_id, rm.role, rm.muted, rm.joined_at,
			COALESCE(u.display_name, '')
		FROM room_members rm
		LEFT JOIN users u ON rm.user_id = u.id
		WHERE rm.room_id = $1
		ORDER BY rm.joined_at`

	rows, err := r.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.RoomMember
	for rows.Next() {
		var m domain.RoomMember
		var role string
		if err := rows.Scan(&m.RoomID, &m.UserID, &role, &m.Muted, &m.JoinedAt, &m.DisplayName); err != nil {
			return nil, err
		}
		m.Role = domain.MemberRole(role)
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *RoomRepo) SetMuted(ctx context.Context, roomID, userID uuid.UUID, muted bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE room_members SET muted = $1 WHERE room_id = $2 AND user_id = $3`,
		muted, roomID, userID)
	return err
}

func (r *RoomRepo) TogglePin(ctx context.Context, roomID, messageID uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM room_pins WHERE room_id = $1 AND message_id = $2`, roomID, messageID)
	if err != nil {
		return false, err
	}

	pinned := tag.RowsAffected() == 0
	if pinned {
		_, err = tx.Exec(ctx,
			`INSERT INTO room_pins (room_id, message_id) VALUES ($1, $2)`, roomID, messageID)
		if err != nil {
			return false, err
		}
	}

	_, err = tx.Exec(ctx, `UPDATE messages SET is_pinned = $1 WHERE id = $2`, pinned, messageID)
	if err != nil {
		return false, err
	}

	return pinned, tx.Commit(ctx)
}

func (r *RoomRepo) ListPins(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT message_id FROM room_pins WHERE room_id = $1 ORDER BY pinned_at`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var (
		room       domain.Room
		roomType   string
		roomStatus string
		memory     []byte
	)
	err := row.Scan(
		&room.ID, &room.Name, &roomType, &roomStatus,
		&room.FounderID, &room.FounderName, &room.FounderLogo,
		&room.CounterpartID, &room.CounterpartName, &room.CounterpartRole, &room.CounterpartLogo,
		&room.ProjectID, &room.Settings.FilesAllowed, &room.Settings.MaxFileSize,
		&memory, &room.CreatedAt, &room.LastActivityAt, &room.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}
	room.Type = domain.RoomType(roomType)
	room.Status = domain.RoomStatus(roomStatus)
	room.Memory = memory
	return &room, nil
}
