package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafthq/raftline/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

const messageColumns = `id, room_id, sender_id, sender_name, sender_avatar, type, text,
	file, reply_to, is_pinned, created_at, edited_at, deleted_at`

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	var file []byte
	if msg.File != nil {
		var err error
		if file, err = json.Marshal(msg.File); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO messages (id, room_id, sender_id, sender_name, sender_avatar, type, text,
			file, reply_to, is_pinned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.RoomID, msg.SenderID, msg.SenderName, msg.SenderAvatar,
		string(msg.Type), msg.Text, file, msg.ReplyTo, msg.IsPinned, msg.CreatedAt,
	)
	if err != nil {
		return err
	}

	// Sender has implicitly read their own message.
	return r.MarkRead(ctx, msg.ID, msg.SenderID)
}

func (r *MessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id)
	msg, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachDetails(ctx, []*domain.Message{msg}); err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *MessageRepo) ListRecent(ctx context.Context, roomID uuid.UUID, limit int) ([]domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE room_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse to chronological order (query returns newest first).
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	ptrs := make([]*domain.Message, len(messages))
	for i := range messages {
		ptrs[i] = &messages[i]
	}
	if err := r.attachDetails(ctx, ptrs); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepo) UpdateText(ctx context.Context, id uuid.UUID, text string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE messages SET text = $1, edited_at = $2 WHERE id = $3`, text, time.Now(), id)
	return err
}

func (r *MessageRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE messages SET deleted_at = $1 WHERE id = $2`, time.Now(), id)
	return err
}

func (r *MessageRepo) ToggleReaction(ctx context.Context, messageID, userID uuid.UUID, emoji string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM message_reactions WHERE message_id = $1 AND user_id = $2 AND emoji = $3`,
		messageID, userID, emoji)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO message_reactions (message_id, user_id, emoji) VALUES ($1, $2, $3)
		 ON CONFLICT (message_id, user_id, emoji) DO NOTHING`,
		messageID, userID, emoji)
	return true, err
}

func (r *MessageRepo) MarkRead(ctx context.Context, messageID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO message_reads (message_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (message_id, user_id) DO NOTHING`,
		messageID, userID)
	return err
}

// attachDetails loads reactions and read receipts for a batch of messages.
func (r *MessageRepo) attachDetails(ctx context.Context, messages []*domain.Message) error {
	if len(messages) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(messages))
	byID := make(map[uuid.UUID]*domain.Message, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
		byID[m.ID] = m
		m.Reactions = map[string][]uuid.UUID{}
		m.ReadBy = []uuid.UUID{}
	}

	rows, err := r.pool.Query(ctx,
		`SELECT message_id, user_id, emoji, created_at FROM message_reactions
		 WHERE message_id = ANY($1) ORDER BY created_at`, ids)
	if err != nil {
		return err
	}
	reactions := make(map[uuid.UUID][]domain.Reaction)
	for rows.Next() {
		var row domain.Reaction
		if err := rows.Scan(&row.MessageID, &row.UserID, &row.Emoji, &row.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		reactions[row.MessageID] = append(reactions[row.MessageID], row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	for id, rs := range reactions {
		byID[id].Reactions = domain.BuildReactionMap(rs)
	}

	rows, err = r.pool.Query(ctx,
		`SELECT message_id, user_id FROM message_reads
		 WHERE message_id = ANY($1) ORDER BY read_at`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var msgID, userID uuid.UUID
		if err := rows.Scan(&msgID, &userID); err != nil {
			return err
		}
		byID[msgID].ReadBy = append(byID[msgID].ReadBy, userID)
	}
	return rows.Err()
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var (
		msg       domain.Message
		msgType   string
		file      []byte
		deletedAt *time.Time
	)
	err := row.Scan(
		&msg.ID, &msg.RoomID, &msg.SenderID, &msg.SenderName, &msg.SenderAvatar,
		&msgType, &msg.Text, &file, &msg.ReplyTo, &msg.IsPinned,
		&msg.CreatedAt, &msg.EditedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	msg.Type = domain.MessageType(msgType)
	msg.IsEdited = msg.EditedAt != nil
	msg.IsDeleted = deletedAt != nil
	if len(file) > 0 {
		var fi domain.FileInfo
		if err := json.Unmarshal(file, &fi); err != nil {
			return nil, err
		}
		msg.File = &fi
	}
	return &msg, nil
}
