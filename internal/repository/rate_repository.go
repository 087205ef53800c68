package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const rateColumns = `staffer_rate_id, staffer_id, cost_rate, bill_rate, created_at, last_updated_at`

// RateRepository stores the single rate record of a staffer.
type RateRepository interface {
	Create(ctx context.Context, rate *domain.StafferRate) error
	Update(ctx context.Context, id string, patch domain.StafferRateUpdate) (*domain.StafferRate, error)
	// GetByStaffer returns nil without error when the staffer has no rate.
	GetByStaffer(ctx context.Context, stafferID string) (*domain.StafferRate, error)
	Delete(ctx context.Context, id string) error
}

type rateRepository struct {
	db DB
}

// NewRateRepository builds the repository.
func NewRateRepository(db DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) Create(ctx context.Context, rate *domain.StafferRate) error {
	const query = `
        INSERT INTO staffer_rates (staffer_id, cost_rate, bill_rate)
        VALUES ($1,$2,$3)
        RETURNING staffer_rate_id, created_at, last_updated_at`
	err := r.db.QueryRow(ctx, query,
		rate.StafferID,
		rate.CostRate,
		rate.BillRate,
	).Scan(&rate.ID, &rate.CreatedAt, &rate.LastUpdatedAt)
	return errorutil.MapError(err, "rate")
}

func (r *rateRepository) Update(ctx context.Context, id string, patch domain.StafferRateUpdate) (*domain.StafferRate, error) {
	u := newUpdate("staffer_rates", "staffer_rate_id")
	if patch.CostRate != nil {
		u.set("cost_rate", *patch.CostRate)
	}
	if patch.BillRate != nil {
		u.set("bill_rate", *patch.BillRate)
	}
	query, args := u.build(id, rateColumns)
	rate, err := scanRate(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, errorutil.MapError(err, "rate")
	}
	return rate, nil
}

func (r *rateRepository) GetByStaffer(ctx context.Context, stafferID string) (*domain.StafferRate, error) {
	rate, err := scanRate(r.db.QueryRow(ctx, `SELECT `+rateColumns+` FROM staffer_rates WHERE staffer_id=$1`, stafferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errorutil.MapError(err, "rate")
	}
	return rate, nil
}

func (r *rateRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, "staffer_rates", "staffer_rate_id", id, "rate")
}

func scanRate(row pgx.Row) (*domain.StafferRate, error) {
	var rate domain.StafferRate
	if err := row.Scan(
		&rate.ID,
		&rate.StafferID,
		&rate.CostRate,
		&rate.BillRate,
		&rate.CreatedAt,
		&rate.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rate, nil
}
