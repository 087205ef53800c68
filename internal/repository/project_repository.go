package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const projectColumns = `project_id, client_id, project_name, project_status, project_start_date, project_due_date, created_at, last_updated_at`

var (
	projectOrderColumns = map[string]bool{"project_name": true, "project_start_date": true, "project_due_date": true, "created_at": true}
	defaultProjectOrder = Order{Column: "created_at", Desc: true}
	// projectDateColumns are the columns a date range may bound.
	projectDateColumns = map[string]bool{"created_at": true, "project_start_date": true, "project_due_date": true}
)

// ProjectFilter captures project listing parameters.
type ProjectFilter struct {
	ClientID *string
	Status   *domain.ProjectStatus
	// ExcludeStatuses drops projects in any of these states.
	ExcludeStatuses []domain.ProjectStatus
	// DueBefore keeps projects due strictly before the instant.
	DueBefore *time.Time
	Range     *DateRange
	Search    string
	Order     Order
	Page      Page
}

// DateRange bounds Column inclusively; a nil end is open.
type DateRange struct {
	Column string
	From   *time.Time
	To     *time.Time
}

// ValidProjectDateColumn reports whether column can bound a project date range.
func ValidProjectDateColumn(column string) bool {
	return projectDateColumns[column]
}

// ProjectRepository encapsulates project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, id string, patch domain.ProjectUpdate) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	db DB
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(db DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (client_id, project_name, project_status, project_start_date, project_due_date)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING project_id, created_at, last_updated_at`
	err := r.db.QueryRow(ctx, query,
		project.ClientID,
		project.Name,
		project.Status,
		project.StartDate,
		project.DueDate,
	).Scan(&project.ID, &project.CreatedAt, &project.LastUpdatedAt)
	return errorutil.MapError(err, "project")
}

func (r *projectRepository) Update(ctx context.Context, id string, patch domain.ProjectUpdate) (*domain.Project, error) {
	u := newUpdate("projects", "project_id")
	if patch.ClientID != nil {
		u.set("client_id", *patch.ClientID)
	}
	if patch.Name != nil {
		u.set("project_name", *patch.Name)
	}
	if patch.Status != nil {
		u.set("project_status", *patch.Status)
	}
	if patch.StartDate != nil {
		u.set("project_start_date", *patch.StartDate)
	}
	if patch.DueDate != nil {
		u.set("project_due_date", *patch.DueDate)
	}
	query, args := u.build(id, projectColumns)
	project, err := scanProject(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, errorutil.MapError(err, "project")
	}
	return project, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	project, err := scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE project_id=$1`, id))
	if err != nil {
		return nil, errorutil.MapError(err, "project")
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error) {
	q := newSelect(`SELECT ` + projectColumns + ` FROM projects`)
	if filter.ClientID != nil {
		q.eq("client_id", *filter.ClientID)
	}
	if filter.Status != nil {
		q.eq("project_status", *filter.Status)
	}
	excluded := make([]any, len(filter.ExcludeStatuses))
	for i, st := range filter.ExcludeStatuses {
		excluded[i] = st
	}
	q.notIn("project_status", excluded...)
	if filter.DueBefore != nil {
		q.cmp("project_due_date", "<", *filter.DueBefore)
	}
	if rng := filter.Range; rng != nil && projectDateColumns[rng.Column] {
		if rng.From != nil {
			q.cmp(rng.Column, ">=", *rng.From)
		}
		if rng.To != nil {
			q.cmp(rng.Column, "<=", *rng.To)
		}
	}
	q.search(filter.Search, "project_name")

	query, args := q.build(filter.Order.clause(projectOrderColumns, defaultProjectOrder), filter.Page.clause())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errorutil.MapError(err, "project")
	}
	return collect(rows, "project", scanProject)
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, "projects", "project_id", id, "project")
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	if err := row.Scan(
		&project.ID,
		&project.ClientID,
		&project.Name,
		&project.Status,
		&project.StartDate,
		&project.DueDate,
		&project.CreatedAt,
		&project.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}
