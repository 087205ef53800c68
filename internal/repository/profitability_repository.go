package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const snapshotColumns = `id, project_id, baseline_id, total_profitability, triggered_by_agent, triggered_by_action, created_at`

// projectMarginQuery totals (bill - cost) * hours over every staffed task of a
// project. Actual hours win over the estimate; staffers without a rate add nothing.
const projectMarginQuery = `
        SELECT COALESCE(SUM((r.bill_rate - r.cost_rate) * COALESCE(t.actual_hours, t.estimated_hours, 0)), 0)
        FROM staffer_assignments a
        JOIN project_tasks t ON t.project_task_id = a.project_task_id
        JOIN staffer_rates r ON r.staffer_id = a.staffer_id
        WHERE t.project_id = $1`

// ProfitabilityRepository stores profitability snapshots and computes project margins.
type ProfitabilityRepository interface {
	Create(ctx context.Context, snapshot *domain.ProfitabilitySnapshot) error
	GetByID(ctx context.Context, id string) (*domain.ProfitabilitySnapshot, error)
	// LatestBaseline returns the newest snapshot of the project that has no baseline.
	LatestBaseline(ctx context.Context, projectID string) (*domain.ProfitabilitySnapshot, error)
	Latest(ctx context.Context, projectID string) (*domain.ProfitabilitySnapshot, error)
	List(ctx context.Context, projectID string, page Page) ([]domain.ProfitabilitySnapshot, error)
	// ProjectMargin computes the project's current total profitability.
	ProjectMargin(ctx context.Context, projectID string) (decimal.Decimal, error)
}

type profitabilityRepository struct {
	db DB
}

// NewProfitabilityRepository builds the repository.
func NewProfitabilityRepository(db DB) ProfitabilityRepository {
	return &profitabilityRepository{db: db}
}

func (r *profitabilityRepository) Create(ctx context.Context, snapshot *domain.ProfitabilitySnapshot) error {
	const query = `
        INSERT INTO project_profitability_snapshots (project_id, baseline_id, total_profitability, triggered_by_agent, triggered_by_action)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		snapshot.ProjectID,
		snapshot.BaselineID,
		snapshot.TotalProfitability,
		snapshot.TriggeredByAgent,
		snapshot.TriggeredByAction,
	).Scan(&snapshot.ID, &snapshot.CreatedAt)
	return errorutil.MapError(err, "profitability snapshot")
}

func (r *profitabilityRepository) GetByID(ctx context.Context, id string) (*domain.ProfitabilitySnapshot, error) {
	return r.one(ctx, "profitability snapshot", `SELECT `+snapshotColumns+` FROM project_profitability_snapshots WHERE id=$1`, id)
}

func (r *profitabilityRepository) LatestBaseline(ctx context.Context, projectID string) (*domain.ProfitabilitySnapshot, error) {
	return r.one(ctx, "profitability baseline", `SELECT `+snapshotColumns+` FROM project_profitability_snapshots
        WHERE project_id=$1 AND baseline_id IS NULL ORDER BY created_at DESC LIMIT 1`, projectID)
}

func (r *profitabilityRepository) Latest(ctx context.Context, projectID string) (*domain.ProfitabilitySnapshot, error) {
	return r.one(ctx, "profitability snapshot", `SELECT `+snapshotColumns+` FROM project_profitability_snapshots
        WHERE project_id=$1 ORDER BY created_at DESC LIMIT 1`, projectID)
}

func (r *profitabilityRepository) List(ctx context.Context, projectID string, page Page) ([]domain.ProfitabilitySnapshot, error) {
	query, args := newSelect(`SELECT `+snapshotColumns+` FROM project_profitability_snapshots`).
		eq("project_id", projectID).
		build(" ORDER BY created_at DESC", page.clause())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errorutil.MapError(err, "profitability snapshot")
	}
	return collect(rows, "profitability snapshot", scanSnapshot)
}

func (r *profitabilityRepository) ProjectMargin(ctx context.Context, projectID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, projectMarginQuery, projectID).Scan(&total); err != nil {
		return decimal.Zero, errorutil.MapError(err, "project")
	}
	return total, nil
}

func (r *profitabilityRepository) one(ctx context.Context, resource, query string, arg string) (*domain.ProfitabilitySnapshot, error) {
	snapshot, err := scanSnapshot(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, errorutil.MapError(err, resource)
	}
	return snapshot, nil
}

func scanSnapshot(row pgx.Row) (*domain.ProfitabilitySnapshot, error) {
	var snapshot domain.ProfitabilitySnapshot
	if err := row.Scan(
		&snapshot.ID,
		&snapshot.ProjectID,
		&snapshot.BaselineID,
		&snapshot.TotalProfitability,
		&snapshot.TriggeredByAgent,
		&snapshot.TriggeredByAction,
		&snapshot.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
