package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const phaseColumns = `project_phase_id, project_id, project_phase_number, project_phase_name, project_phase_description,
        project_phase_status, project_phase_start_date, project_phase_due_date, created_at, last_updated_at`

var (
	phaseOrderColumns = map[string]bool{"project_phase_number": true, "project_phase_start_date": true, "created_at": true}
	defaultPhaseOrder = Order{Column: "project_phase_number"}
)

// PhaseRepository manages project phases.
type PhaseRepository interface {
	Create(ctx context.Context, phase *domain.Phase) error
	Update(ctx context.Context, id string, patch domain.PhaseUpdate) (*domain.Phase, error)
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByProject(ctx context.Context, projectID string, order Order) ([]domain.Phase, error)
	Delete(ctx context.Context, id string) error
}

type phaseRepository struct {
	db DB
}

// NewPhaseRepository constructs repository.
func NewPhaseRepository(db DB) PhaseRepository {
	return &phaseRepository{db: db}
}

func (r *phaseRepository) Create(ctx context.Context, phase *domain.Phase) error {
	const query = `
        INSERT INTO project_phases (project_id, project_phase_number, project_phase_name, project_phase_description,
            project_phase_status, project_phase_start_date, project_phase_due_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING project_phase_id, created_at, last_updated_at`
	err := r.db.QueryRow(ctx, query,
		phase.ProjectID,
		phase.Number,
		phase.Name,
		phase.Description,
		phase.Status,
		phase.StartDate,
		phase.DueDate,
	).Scan(&phase.ID, &phase.CreatedAt, &phase.LastUpdatedAt)
	return errorutil.MapError(err, "phase")
}

func (r *phaseRepository) Update(ctx context.Context, id string, patch domain.PhaseUpdate) (*domain.Phase, error) {
	u := newUpdate("project_phases", "project_phase_id")
	if patch.Number != nil {
		u.set("project_phase_number", *patch.Number)
	}
	if patch.Name != nil {
		u.set("project_phase_name", *patch.Name)
	}
	if patch.Description != nil {
		u.set("project_phase_description", *patch.Description)
	}
	if patch.Status != nil {
		u.set("project_phase_status", *patch.Status)
	}
	if patch.StartDate != nil {
		u.set("project_phase_start_date", *patch.StartDate)
	}
	if patch.DueDate != nil {
		u.set("project_phase_due_date", *patch.DueDate)
	}
	query, args := u.build(id, phaseColumns)
	phase, err := scanPhase(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, errorutil.MapError(err, "phase")
	}
	return phase, nil
}

func (r *phaseRepository) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	phase, err := scanPhase(r.db.QueryRow(ctx, `SELECT `+phaseColumns+` FROM project_phases WHERE project_phase_id=$1`, id))
	if err != nil {
		return nil, errorutil.MapError(err, "phase")
	}
	return phase, nil
}

func (r *phaseRepository) ListByProject(ctx context.Context, projectID string, order Order) ([]domain.Phase, error) {
	query, args := newSelect(`SELECT `+phaseColumns+` FROM project_phases`).
		eq("project_id", projectID).
		build(order.clause(phaseOrderColumns, defaultPhaseOrder), "")
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errorutil.MapError(err, "phase")
	}
	return collect(rows, "phase", scanPhase)
}

func (r *phaseRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, "project_phases", "project_phase_id", id, "phase")
}

func scanPhase(row pgx.Row) (*domain.Phase, error) {
	var phase domain.Phase
	if err := row.Scan(
		&phase.ID,
		&phase.ProjectID,
		&phase.Number,
		&phase.Name,
		&phase.Description,
		&phase.Status,
		&phase.StartDate,
		&phase.DueDate,
		&phase.CreatedAt,
		&phase.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	return &phase, nil
}
