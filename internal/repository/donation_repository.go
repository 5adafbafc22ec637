package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bakery-crew/internal/domain"
)

// DonationRepository persists donation campaigns and confirmed payments.
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	GetByID(ctx context.Context, id int64) (*domain.Donation, error)
	List(ctx context.Context) ([]domain.Donation, error)
	ListActive(ctx context.Context) ([]domain.Donation, error)
	Delete(ctx context.Context, id int64) error
	RecordPayment(ctx context.Context, payment *domain.DonationPayment) error
	ListApplicants(ctx context.Context, donationID int64) ([]domain.Applicant, error)
}

type donationRepository struct {
	pool *pgxpool.Pool
}

// NewDonationRepository builds the repository.
func NewDonationRepository(pool *pgxpool.Pool) DonationRepository {
	return &donationRepository{pool: pool}
}

func (r *donationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	const query = `
        INSERT INTO donations (title, description, deadline, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		donation.Title,
		donation.Description,
		donation.Deadline,
		donation.CreatedBy,
	).Scan(&donation.ID, &donation.CreatedAt)
}

func (r *donationRepository) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	const query = `
        SELECT id, title, description, deadline, created_by, created_at
        FROM donations WHERE id=$1`
	var donation domain.Donation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&donation.ID,
		&donation.Title,
		&donation.Description,
		&donation.Deadline,
		&donation.CreatedBy,
		&donation.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) List(ctx context.Context) ([]domain.Donation, error) {
	const query = `
        SELECT id, title, description, deadline, created_by, created_at
        FROM donations ORDER BY created_at DESC`
	return r.queryDonations(ctx, query)
}

func (r *donationRepository) ListActive(ctx context.Context) ([]domain.Donation, error) {
	const query = `
        SELECT id, title, description, deadline, created_by, created_at
        FROM donations
        WHERE deadline IS NULL OR deadline > NOW()
        ORDER BY created_at DESC`
	return r.queryDonations(ctx, query)
}

func (r *donationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM donations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *donationRepository) RecordPayment(ctx context.Context, payment *domain.DonationPayment) error {
	const query = `
        INSERT INTO donation_payments (donation_id, user_id, amount)
        VALUES ($1,$2,$3)
        RETURNING id, paid_at`
	return r.pool.QueryRow(ctx, query,
		payment.DonationID,
		payment.UserID,
		payment.Amount,
	).Scan(&payment.ID, &payment.PaidAt)
}

func (r *donationRepository) ListApplicants(ctx context.Context, donationID int64) ([]domain.Applicant, error) {
	const query = `
        SELECT DISTINCT u.id, u.name, u.email, u.shift
        FROM donation_payments p
        JOIN users u ON p.user_id = u.id
        WHERE p.donation_id=$1
        ORDER BY u.id`
	rows, err := r.pool.Query(ctx, query, donationID)
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

func (r *donationRepository) queryDonations(ctx context.Context, query string) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Donation
	for rows.Next() {
		var donation domain.Donation
		if err := rows.Scan(
			&donation.ID,
			&donation.Title,
			&donation.Description,
			&donation.Deadline,
			&donation.CreatedBy,
			&donation.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, donation)
	}
	return result, rows.Err()
}
