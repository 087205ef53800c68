package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// SeniorityRepository reads the seniority reference table.
type SeniorityRepository interface {
	List(ctx context.Context) ([]domain.Seniority, error)
}

type seniorityRepository struct {
	db DB
}

// NewSeniorityRepository builds the repository.
func NewSeniorityRepository(db DB) SeniorityRepository {
	return &seniorityRepository{db: db}
}

func (r *seniorityRepository) List(ctx context.Context) ([]domain.Seniority, error) {
	const query = `
        SELECT seniority_id, seniority_level, seniority_name, created_at, last_updated_at
        FROM seniorities ORDER BY seniority_level ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errorutil.MapError(err, "seniority")
	}
	return collect(rows, "seniority", func(row pgx.Row) (*domain.Seniority, error) {
		var s domain.Seniority
		if err := row.Scan(&s.ID, &s.Level, &s.Name, &s.CreatedAt, &s.LastUpdatedAt); err != nil {
			return nil, err
		}
		return &s, nil
	})
}
