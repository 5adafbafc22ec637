package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bakery-crew/internal/domain"
)

// UserRepository is the directory store: the authoritative source for role,
// shift, approval and manager relationships.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	FindManagerByShift(ctx context.Context, shift domain.Shift) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdateApproval(ctx context.Context, id int64) error
	UpdateManager(ctx context.Context, id int64, managerID *int64) error
	Delete(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListPending(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, phone, role, shift, is_approved, manager_id, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.Shift,
		&user.Approved,
		&user.ManagerID,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, phone, role, shift, is_approved, manager_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.Shift,
		user.Approved,
		user.ManagerID,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// FindManagerByShift picks the first manager sharing the shift. When several
// managers share a shift the lowest id wins.
func (r *userRepository) FindManagerByShift(ctx context.Context, shift domain.Shift) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE role='manager' AND shift=$1 ORDER BY id LIMIT 1`
	return scanUser(r.pool.QueryRow(ctx, query, shift))
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	const query = `UPDATE users SET name=$1, phone=$2, shift=$3 WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, user.Name, user.Phone, user.Shift, user.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateApproval(ctx context.Context, id int64) error {
	const query = `UPDATE users SET is_approved=true WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateManager(ctx context.Context, id int64, managerID *int64) error {
	const query = `UPDATE users SET manager_id=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, managerID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	const query = `DELETE FROM users WHERE id=$1 RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	return r.queryUsers(ctx, query)
}

func (r *userRepository) ListPending(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE is_approved=false ORDER BY id`
	return r.queryUsers(ctx, query)
}

func (r *userRepository) queryUsers(ctx context.Context, query string) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}
