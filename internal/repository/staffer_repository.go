package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const stafferColumns = `id, first_name, last_name, email, title, time_zone, capacity, seniority_id, created_at, last_updated_at`

var (
	stafferOrderColumns = map[string]bool{"last_name": true, "first_name": true, "email": true, "capacity": true, "created_at": true}
	defaultStafferOrder = Order{Column: "last_name"}
)

// StafferRepository handles persistence for staffers.
type StafferRepository interface {
	Create(ctx context.Context, staffer *domain.Staffer) error
	Update(ctx context.Context, id string, patch domain.StafferUpdate) (*domain.Staffer, error)
	GetByID(ctx context.Context, id string) (*domain.Staffer, error)
	List(ctx context.Context, filter StafferFilter) ([]domain.Staffer, error)
	Delete(ctx context.Context, id string) error
}

// StafferFilter defines query params for staffer listing.
type StafferFilter struct {
	Name        string
	SeniorityID *string
	Order       Order
	Page        Page
}

type stafferRepository struct {
	db DB
}

// NewStafferRepository instantiates the repository.
func NewStafferRepository(db DB) StafferRepository {
	return &stafferRepository{db: db}
}

func (r *stafferRepository) Create(ctx context.Context, staffer *domain.Staffer) error {
	const query = `
        INSERT INTO staffers (first_name, last_name, email, title, time_zone, capacity, seniority_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, last_updated_at`

	err := r.db.QueryRow(ctx, query,
		staffer.FirstName,
		staffer.LastName,
		staffer.Email,
		staffer.Title,
		staffer.TimeZone,
		staffer.Capacity,
		staffer.SeniorityID,
	).Scan(&staffer.ID, &staffer.CreatedAt, &staffer.LastUpdatedAt)
	return errorutil.MapError(err, "staffer")
}

func (r *stafferRepository) Update(ctx context.Context, id string, patch domain.StafferUpdate) (*domain.Staffer, error) {
	u := newUpdate("staffers", "id")
	if patch.FirstName != nil {
		u.set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		u.set("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		u.set("email", *patch.Email)
	}
	if patch.Title != nil {
		u.set("title", *patch.Title)
	}
	if patch.TimeZone != nil {
		u.set("time_zone", *patch.TimeZone)
	}
	if patch.Capacity != nil {
		u.set("capacity", *patch.Capacity)
	}
	if patch.SeniorityID != nil {
		u.set("seniority_id", *patch.SeniorityID)
	}

	query, args := u.build(id, stafferColumns)
	staffer, err := scanStaffer(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, errorutil.MapError(err, "staffer")
	}
	return staffer, nil
}

func (r *stafferRepository) GetByID(ctx context.Context, id string) (*domain.Staffer, error) {
	query := `SELECT ` + stafferColumns + ` FROM staffers WHERE id=$1`

	staffer, err := scanStaffer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, errorutil.MapError(err, "staffer")
	}
	return staffer, nil
}

func (r *stafferRepository) List(ctx context.Context, filter StafferFilter) ([]domain.Staffer, error) {
	q := newSelect(`SELECT ` + stafferColumns + ` FROM staffers`)
	if filter.SeniorityID != nil {
		q.eq("seniority_id", *filter.SeniorityID)
	}
	q.search(filter.Name, "first_name", "last_name", "first_name || ' ' || last_name")

	query, args := q.build(filter.Order.clause(stafferOrderColumns, defaultStafferOrder), filter.Page.clause())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errorutil.MapError(err, "staffer")
	}
	return collect(rows, "staffer", scanStaffer)
}

func (r *stafferRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, "staffers", "id", id, "staffer")
}

func scanStaffer(row pgx.Row) (*domain.Staffer, error) {
	var staffer domain.Staffer
	if err := row.Scan(
		&staffer.ID,
		&staffer.FirstName,
		&staffer.LastName,
		&staffer.Email,
		&staffer.Title,
		&staffer.TimeZone,
		&staffer.Capacity,
		&staffer.SeniorityID,
		&staffer.CreatedAt,
		&staffer.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	return &staffer, nil
}
