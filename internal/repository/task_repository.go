package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const taskColumns = `project_task_id, project_id, project_phase_id, project_task_name, project_task_description,
        project_task_status, project_task_start_date, project_task_due_date, estimated_hours, actual_hours,
        created_at, last_updated_at`

var (
	taskOrderColumns = map[string]bool{"project_task_due_date": true, "project_task_start_date": true, "project_task_name": true, "created_at": true}
	defaultTaskOrder = Order{Column: "project_task_due_date"}
)

// TaskFilter captures task listing parameters.
type TaskFilter struct {
	ProjectID *string
	PhaseID   *string
	Status    *domain.TaskStatus
	// ExcludeStatuses drops tasks in any of these states.
	ExcludeStatuses []domain.TaskStatus
	// DueBefore keeps tasks due strictly before the instant.
	DueBefore *time.Time
	Search    string
	Order     Order
	Page      Page
}

// TaskRepository manages project tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, id string, patch domain.TaskUpdate) (*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	db DB
}

// NewTaskRepository constructs repository.
func NewTaskRepository(db DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO project_tasks (project_id, project_phase_id, project_task_name, project_task_description,
            project_task_status, project_task_start_date, project_task_due_date, estimated_hours, actual_hours)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING project_task_id, created_at, last_updated_at`
	err := r.db.QueryRow(ctx, query,
		task.ProjectID,
		task.PhaseID,
		task.Name,
		task.Description,
		task.Status,
		task.StartDate,
		task.DueDate,
		task.EstimatedHours,
		task.ActualHours,
	).Scan(&task.ID, &task.CreatedAt, &task.LastUpdatedAt)
	return errorutil.MapError(err, "task")
}

func (r *taskRepository) Update(ctx context.Context, id string, patch domain.TaskUpdate) (*domain.Task, error) {
	u := newUpdate("project_tasks", "project_task_id")
	if patch.PhaseID != nil {
		u.set("project_phase_id", *patch.PhaseID)
	}
	if patch.Name != nil {
		u.set("project_task_name", *patch.Name)
	}
	if patch.Description != nil {
		u.set("project_task_description", *patch.Description)
	}
	if patch.Status != nil {
		u.set("project_task_status", *patch.Status)
	}
	if patch.StartDate != nil {
		u.set("project_task_start_date", *patch.StartDate)
	}
	if patch.DueDate != nil {
		u.set("project_task_due_date", *patch.DueDate)
	}
	if patch.EstimatedHours != nil {
		u.set("estimated_hours", *patch.EstimatedHours)
	}
	if patch.ActualHours != nil {
		u.set("actual_hours", *patch.ActualHours)
	}
	query, args := u.build(id, taskColumns)
	task, err := scanTask(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, errorutil.MapError(err, "task")
	}
	return task, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	task, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM project_tasks WHERE project_task_id=$1`, id))
	if err != nil {
		return nil, errorutil.MapError(err, "task")
	}
	return task, nil
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	q := newSelect(`SELECT ` + taskColumns + ` FROM project_tasks`)
	if filter.ProjectID != nil {
		q.eq("project_id", *filter.ProjectID)
	}
	if filter.PhaseID != nil {
		q.eq("project_phase_id", *filter.PhaseID)
	}
	if filter.Status != nil {
		q.eq("project_task_status", *filter.Status)
	}
	excluded := make([]any, len(filter.ExcludeStatuses))
	for i, st := range filter.ExcludeStatuses {
		excluded[i] = st
	}
	q.notIn("project_task_status", excluded...)
	if filter.DueBefore != nil {
		q.cmp("project_task_due_date", "<", *filter.DueBefore)
	}
	q.search(filter.Search, "project_task_name", "project_task_description")

	query, args := q.build(filter.Order.clause(taskOrderColumns, defaultTaskOrder), filter.Page.clause())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errorutil.MapError(err, "task")
	}
	return collect(rows, "task", scanTask)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, "project_tasks", "project_task_id", id, "task")
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.PhaseID,
		&task.Name,
		&task.Description,
		&task.Status,
		&task.StartDate,
		&task.DueDate,
		&task.EstimatedHours,
		&task.ActualHours,
		&task.CreatedAt,
		&task.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}
