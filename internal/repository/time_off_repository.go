package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const timeOffColumns = `time_off_id, staffer_id, time_off_start_datetime, time_off_end_datetime, time_off_cumulative_hours, created_at, last_updated_at`

var (
	timeOffOrderColumns = map[string]bool{"time_off_start_datetime": true, "time_off_end_datetime": true, "created_at": true}
	defaultTimeOffOrder = Order{Column: "time_off_start_datetime"}
)

// TimeOffRepository stores staffer leave.
type TimeOffRepository interface {
	Create(ctx context.Context, entry *domain.TimeOffEntry) error
	Update(ctx context.Context, id string, patch domain.TimeOffUpdate) (*domain.TimeOffEntry, error)
	GetByID(ctx context.Context, id string) (*domain.TimeOffEntry, error)
	ListByStaffer(ctx context.Context, stafferID string, order Order) ([]domain.TimeOffEntry, error)
	Delete(ctx context.Context, id string) error
}

type timeOffRepository struct {
	db DB
}

// NewTimeOffRepository builds the repository.
func NewTimeOffRepository(db DB) TimeOffRepository {
	return &timeOffRepository{db: db}
}

func (r *timeOffRepository) Create(ctx context.Context, entry *domain.TimeOffEntry) error {
	const query = `
        INSERT INTO staffer_time_off (staffer_id, time_off_start_datetime, time_off_end_datetime, time_off_cumulative_hours)
        VALUES ($1,$2,$3,$4)
        RETURNING time_off_id, created_at, last_updated_at`
	err := r.db.QueryRow(ctx, query,
		entry.StafferID,
		entry.StartsAt,
		entry.EndsAt,
		entry.CumulativeHours,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.LastUpdatedAt)
	return errorutil.MapError(err, "time off")
}

func (r *timeOffRepository) Update(ctx context.Context, id string, patch domain.TimeOffUpdate) (*domain.TimeOffEntry, error) {
	u := newUpdate("staffer_time_off", "time_off_id")
	if patch.StartsAt != nil {
		u.set("time_off_start_datetime", *patch.StartsAt)
	}
	if patch.EndsAt != nil {
		u.set("time_off_end_datetime", *patch.EndsAt)
	}
	if patch.CumulativeHours != nil {
		u.set("time_off_cumulative_hours", *patch.CumulativeHours)
	}
	query, args := u.build(id, timeOffColumns)
	entry, err := scanTimeOff(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, errorutil.MapError(err, "time off")
	}
	return entry, nil
}

func (r *timeOffRepository) GetByID(ctx context.Context, id string) (*domain.TimeOffEntry, error) {
	entry, err := scanTimeOff(r.db.QueryRow(ctx, `SELECT `+timeOffColumns+` FROM staffer_time_off WHERE time_off_id=$1`, id))
	if err != nil {
		return nil, errorutil.MapError(err, "time off")
	}
	return entry, nil
}

func (r *timeOffRepository) ListByStaffer(ctx context.Context, stafferID string, order Order) ([]domain.TimeOffEntry, error) {
	query, args := newSelect(`SELECT `+timeOffColumns+` FROM staffer_time_off`).
		eq("staffer_id", stafferID).
		build(order.clause(timeOffOrderColumns, defaultTimeOffOrder), "")
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errorutil.MapError(err, "time off")
	}
	return collect(rows, "time off", scanTimeOff)
}

func (r *timeOffRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, "staffer_time_off", "time_off_id", id, "time off")
}

func scanTimeOff(row pgx.Row) (*domain.TimeOffEntry, error) {
	var entry domain.TimeOffEntry
	if err := row.Scan(
		&entry.ID,
		&entry.StafferID,
		&entry.StartsAt,
		&entry.EndsAt,
		&entry.CumulativeHours,
		&entry.CreatedAt,
		&entry.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}
