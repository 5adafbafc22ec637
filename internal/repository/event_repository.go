package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bakery-crew/internal/domain"
)

// EventRepository persists organization events and their applications.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, id int64) error
	Apply(ctx context.Context, eventID, userID int64) (*domain.EventApplication, error)
	CancelApplication(ctx context.Context, eventID, userID int64) error
	ListApplicants(ctx context.Context, eventID int64) ([]domain.Applicant, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository builds the repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (title, description, event_date, shift, created_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Shift,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	const query = `
        SELECT id, title, description, event_date, shift, created_by, created_at
        FROM events WHERE id=$1`
	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Shift,
		&event.CreatedBy,
		&event.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	const query = `
        SELECT id, title, description, event_date, shift, created_by, created_at
        FROM events ORDER BY event_date ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.Shift,
			&event.CreatedBy,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) Apply(ctx context.Context, eventID, userID int64) (*domain.EventApplication, error) {
	const query = `
        INSERT INTO event_applications (event_id, user_id)
        VALUES ($1,$2)
        ON CONFLICT (event_id, user_id) DO UPDATE SET event_id=EXCLUDED.event_id
        RETURNING id, event_id, user_id, applied_at`
	var app domain.EventApplication
	if err := r.pool.QueryRow(ctx, query, eventID, userID).Scan(
		&app.ID,
		&app.EventID,
		&app.UserID,
		&app.AppliedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *eventRepository) CancelApplication(ctx context.Context, eventID, userID int64) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM event_applications WHERE event_id=$1 AND user_id=$2`, eventID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) ListApplicants(ctx context.Context, eventID int64) ([]domain.Applicant, error) {
	const query = `
        SELECT u.id, u.name, u.email, u.shift
        FROM event_applications a
        JOIN users u ON a.user_id = u.id
        WHERE a.event_id=$1
        ORDER BY a.applied_at ASC`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Applicant
	for rows.Next() {
		var applicant domain.Applicant
		if err := rows.Scan(&applicant.ID, &applicant.Name, &applicant.Email, &applicant.Shift); err != nil {
			return nil, err
		}
		result = append(result, applicant)
	}
	return result, rows.Err()
}
