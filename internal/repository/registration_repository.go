package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bahafit/bahafit/internal/domain"
)

// RegistrationRepository encapsulates the event-registration ledger.
// Registrations are never hard-deleted; cancellation is a status change.
// The user reference is intentionally unconstrained: records denormalize
// the user's name and email so they outlive the account.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Registration, error)
	CountByStatusForUser(ctx context.Context, userID string) (map[domain.RegistrationStatus]int, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository instantiates the repository.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

const registrationColumns = `id, event_id, user_id, user_name, user_email, ticket_type,
        price, currency, status, payment_status, payment_ref, metadata, registered_at, checked_in_at`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	const query = `
        INSERT INTO registrations (event_id, user_id, user_name, user_email, ticket_type,
            price, currency, status, payment_status, payment_ref, metadata)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, registered_at`

	return r.pool.QueryRow(ctx, query,
		reg.EventID,
		reg.UserID,
		reg.UserName,
		reg.UserEmail,
		reg.TicketType,
		reg.Price,
		reg.Currency,
		reg.Status,
		reg.PaymentStatus,
		reg.PaymentRef,
		reg.Metadata,
	).Scan(&reg.ID, &reg.RegisteredAt)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id=$1`

	var reg domain.Registration
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.UserName,
		&reg.UserEmail,
		&reg.TicketType,
		&reg.Price,
		&reg.Currency,
		&reg.Status,
		&reg.PaymentStatus,
		&reg.PaymentRef,
		&reg.Metadata,
		&reg.RegisteredAt,
		&reg.CheckedInAt,
	); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Registration, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + registrationColumns + `
        FROM registrations WHERE user_id=$1
        ORDER BY registered_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func (r *registrationRepository) CountByStatusForUser(ctx context.Context, userID string) (map[domain.RegistrationStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM registrations WHERE user_id=$1 GROUP BY status`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RegistrationStatus]int)
	for rows.Next() {
		var status domain.RegistrationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanRegistrations(rows pgx.Rows) ([]domain.Registration, error) {
	var result []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.UserID,
			&reg.UserName,
			&reg.UserEmail,
			&reg.TicketType,
			&reg.Price,
			&reg.Currency,
			&reg.Status,
			&reg.PaymentStatus,
			&reg.PaymentRef,
			&reg.Metadata,
			&reg.RegisteredAt,
			&reg.CheckedInAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}
