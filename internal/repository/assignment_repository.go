package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const assignmentColumns = `staffer_assignment_id, staffer_id, project_task_id, created_at, last_updated_at`

// AssignmentFilter narrows assignment listing to a staffer or a task.
type AssignmentFilter struct {
	StafferID *string
	TaskID    *string
	Page      Page
}

// AssignmentRepository stores staffer task assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error)
	Delete(ctx context.Context, id string) error
}

type assignmentRepository struct {
	db DB
}

// NewAssignmentRepository builds repository.
func NewAssignmentRepository(db DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO staffer_assignments (staffer_id, project_task_id)
        VALUES ($1,$2)
        RETURNING staffer_assignment_id, created_at, last_updated_at`
	err := r.db.QueryRow(ctx, query, assignment.StafferID, assignment.TaskID).
		Scan(&assignment.ID, &assignment.CreatedAt, &assignment.LastUpdatedAt)
	return errorutil.MapError(err, "assignment")
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	a, err := scanAssignment(r.db.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM staffer_assignments WHERE staffer_assignment_id=$1`, id))
	if err != nil {
		return nil, errorutil.MapError(err, "assignment")
	}
	return a, nil
}

func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error) {
	q := newSelect(`SELECT ` + assignmentColumns + ` FROM staffer_assignments`)
	if filter.StafferID != nil {
		q.eq("staffer_id", *filter.StafferID)
	}
	if filter.TaskID != nil {
		q.eq("project_task_id", *filter.TaskID)
	}
	query, args := q.build(" ORDER BY created_at DESC", filter.Page.clause())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errorutil.MapError(err, "assignment")
	}
	return collect(rows, "assignment", scanAssignment)
}

func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, "staffer_assignments", "staffer_assignment_id", id, "assignment")
}

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := row.Scan(&a.ID, &a.StafferID, &a.TaskID, &a.CreatedAt, &a.LastUpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
