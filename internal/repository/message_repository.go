package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bakery-crew/internal/domain"
)

// MessageRepository persists messages and serves the inbox/sent/detail views.
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.Message) error
	ListInbox(ctx context.Context, userID int64) ([]domain.Message, error)
	ListSent(ctx context.Context, userID int64) ([]domain.Message, error)
	GetByID(ctx context.Context, id, userID int64) (*domain.Message, error)
	MarkRead(ctx context.Context, id int64) (*domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds the repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (sender_id, receiver_id, content, message_type, related_entity_id, related_entity_type)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, sent_date, is_read`
	return r.pool.QueryRow(ctx, query,
		msg.SenderID,
		msg.ReceiverID,
		msg.Content,
		msg.MessageType,
		msg.RelatedEntityID,
		msg.RelatedEntityType,
	).Scan(&msg.ID, &msg.SentAt, &msg.IsRead)
}

const messageColumns = `
        m.id, m.sender_id, m.receiver_id, m.content, m.message_type,
        m.related_entity_id, m.related_entity_type, m.sent_date, m.is_read,
        s.name AS sender_name, r.name AS receiver_name`

const messageJoins = `
        FROM messages m
        JOIN users s ON m.sender_id = s.id
        JOIN users r ON m.receiver_id = r.id`

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var msg domain.Message
	if err := row.Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.ReceiverID,
		&msg.Content,
		&msg.MessageType,
		&msg.RelatedEntityID,
		&msg.RelatedEntityType,
		&msg.SentAt,
		&msg.IsRead,
		&msg.SenderName,
		&msg.ReceiverName,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) ListInbox(ctx context.Context, userID int64) ([]domain.Message, error) {
	const query = `SELECT` + messageColumns + messageJoins + `
        WHERE m.receiver_id=$1 ORDER BY m.sent_date DESC`
	return r.queryMessages(ctx, query, userID)
}

func (r *messageRepository) ListSent(ctx context.Context, userID int64) ([]domain.Message, error) {
	const query = `SELECT` + messageColumns + messageJoins + `
        WHERE m.sender_id=$1 ORDER BY m.sent_date DESC`
	return r.queryMessages(ctx, query, userID)
}

// GetByID returns the message only when userID is the sender or receiver.
func (r *messageRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Message, error) {
	const query = `SELECT` + messageColumns + messageJoins + `
        WHERE m.id=$1 AND (m.sender_id=$2 OR m.receiver_id=$2)`
	return scanMessage(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *messageRepository) MarkRead(ctx context.Context, id int64) (*domain.Message, error) {
	const query = `
        WITH updated AS (
            UPDATE messages SET is_read=true WHERE id=$1 RETURNING *
        )
        SELECT` + messageColumns + `
        FROM updated m
        JOIN users s ON m.sender_id = s.id
        JOIN users r ON m.receiver_id = r.id`
	return scanMessage(r.pool.QueryRow(ctx, query, id))
}

func (r *messageRepository) queryMessages(ctx context.Context, query string, userID int64) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *msg)
	}
	return result, rows.Err()
}
