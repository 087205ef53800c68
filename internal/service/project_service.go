package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// ProjectService manages projects and the records hanging off them.
type ProjectService struct {
	projects    repository.ProjectRepository
	phases      repository.PhaseRepository
	tasks       repository.TaskRepository
	teams       repository.TeamRepository
	assignments repository.AssignmentRepository
	now         func() time.Time
}

// ProjectDependencies encapsulates repositories required for project management.
type ProjectDependencies struct {
	ProjectRepo    repository.ProjectRepository
	PhaseRepo      repository.PhaseRepository
	TaskRepo       repository.TaskRepository
	TeamRepo       repository.TeamRepository
	AssignmentRepo repository.AssignmentRepository
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects:    deps.ProjectRepo,
		phases:      deps.PhaseRepo,
		tasks:       deps.TaskRepo,
		teams:       deps.TeamRepo,
		assignments: deps.AssignmentRepo,
		now:         time.Now,
	}
}

// overdueLimit bounds overdue reads, which are not paged.
const overdueLimit = 500

// today is the start of the current UTC day; anything due before it is overdue.
func (s *ProjectService) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}

func required(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = "is required"
	}
}

func fieldErrors(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return errorutil.NewFieldValidationError(fields)
}

// CreateProject validates and inserts a project.
func (s *ProjectService) CreateProject(ctx context.Context, project *domain.Project) error {
	if project.Status == "" {
		project.Status = domain.ProjectStatusPlanning
	}
	fields := map[string]string{}
	required(fields, "project_name", project.Name)
	required(fields, "client_id", project.ClientID)
	if !project.Status.Valid() {
		fields["project_status"] = "unknown status"
	}
	if err := fieldErrors(fields); err != nil {
		return err
	}
	return s.projects.Create(ctx, project)
}

// UpdateProject patches a project.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, patch domain.ProjectUpdate) (*domain.Project, error) {
	fields := map[string]string{}
	if patch.Name != nil {
		required(fields, "project_name", *patch.Name)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		fields["project_status"] = "unknown status"
	}
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}
	return s.projects.Update(ctx, id, patch)
}

// GetProject fetches a project.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// ListProjects lists projects.
func (s *ProjectService) ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	return s.projects.List(ctx, filter)
}

// OverdueProjects lists projects due before today that are neither completed
// nor cancelled, earliest due first.
func (s *ProjectService) OverdueProjects(ctx context.Context) ([]domain.Project, error) {
	cutoff := s.today()
	return s.projects.List(ctx, repository.ProjectFilter{
		ExcludeStatuses: []domain.ProjectStatus{domain.ProjectStatusCompleted, domain.ProjectStatusCancelled},
		DueBefore:       &cutoff,
		Order:           repository.Order{Column: "project_due_date"},
		Page:            repository.Page{Limit: overdueLimit},
	})
}

// ProjectsInRange lists projects whose column falls within [from, to], oldest first.
// Either bound may be nil.
func (s *ProjectService) ProjectsInRange(ctx context.Context, column string, from, to *time.Time, page repository.Page) ([]domain.Project, error) {
	if column == "" {
		column = "created_at"
	}
	fields := map[string]string{}
	if !repository.ValidProjectDateColumn(column) {
		fields["date_field"] = "must be one of created_at project_start_date project_due_date"
	}
	if from != nil && to != nil && to.Before(*from) {
		fields["to"] = "must not be before from"
	}
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}
	return s.projects.List(ctx, repository.ProjectFilter{
		Range: &repository.DateRange{Column: column, From: from, To: to},
		Order: repository.Order{Column: "created_at"},
		Page:  page,
	})
}

// DeleteProject removes a project.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

// CreatePhase validates and inserts a phase under an existing project.
func (s *ProjectService) CreatePhase(ctx context.Context, phase *domain.Phase) error {
	if phase.Status == "" {
		phase.Status = domain.PhaseStatusPlanned
	}
	fields := map[string]string{}
	required(fields, "project_phase_name", phase.Name)
	if phase.Number <= 0 {
		fields["project_phase_number"] = "must be greater than 0"
	}
	if !phase.Status.Valid() {
		fields["project_phase_status"] = "unknown status"
	}
	if err := fieldErrors(fields); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, phase.ProjectID); err != nil {
		return err
	}
	return s.phases.Create(ctx, phase)
}

// UpdatePhase patches a phase.
func (s *ProjectService) UpdatePhase(ctx context.Context, id string, patch domain.PhaseUpdate) (*domain.Phase, error) {
	fields := map[string]string{}
	if patch.Name != nil {
		required(fields, "project_phase_name", *patch.Name)
	}
	if patch.Number != nil && *patch.Number <= 0 {
		fields["project_phase_number"] = "must be greater than 0"
	}
	if patch.Status != nil && !patch.Status.Valid() {
		fields["project_phase_status"] = "unknown status"
	}
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}
	return s.phases.Update(ctx, id, patch)
}

// GetPhase fetches a phase.
func (s *ProjectService) GetPhase(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

// ListPhases lists a project's phases by number.
func (s *ProjectService) ListPhases(ctx context.Context, projectID string) ([]domain.Phase, error) {
	return s.phases.ListByProject(ctx, projectID, repository.Order{})
}

// DeletePhase removes a phase.
func (s *ProjectService) DeletePhase(ctx context.Context, id string) error {
	return s.phases.Delete(ctx, id)
}

// CreateTask validates and inserts a task.
func (s *ProjectService) CreateTask(ctx context.Context, task *domain.Task) error {
	if task.Status == "" {
		task.Status = domain.TaskStatusNotStarted
	}
	fields := map[string]string{}
	required(fields, "project_task_name", task.Name)
	required(fields, "project_id", task.ProjectID)
	if !task.Status.Valid() {
		fields["project_task_status"] = "unknown status"
	}
	if task.EstimatedHours != nil && *task.EstimatedHours < 0 {
		fields["estimated_hours"] = "must not be negative"
	}
	if task.ActualHours != nil && *task.ActualHours < 0 {
		fields["actual_hours"] = "must not be negative"
	}
	if err := fieldErrors(fields); err != nil {
		return err
	}
	if task.PhaseID != nil {
		phase, err := s.phases.GetByID(ctx, *task.PhaseID)
		if err != nil {
			return err
		}
		if phase.ProjectID != task.ProjectID {
			return errorutil.NewConflict("phase belongs to another project", map[string]any{"project_phase_id": phase.ID})
		}
	}
	return s.tasks.Create(ctx, task)
}

// UpdateTask patches a task.
func (s *ProjectService) UpdateTask(ctx context.Context, id string, patch domain.TaskUpdate) (*domain.Task, error) {
	fields := map[string]string{}
	if patch.Name != nil {
		required(fields, "project_task_name", *patch.Name)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		fields["project_task_status"] = "unknown status"
	}
	if patch.EstimatedHours != nil && *patch.EstimatedHours != nil && **patch.EstimatedHours < 0 {
		fields["estimated_hours"] = "must not be negative"
	}
	if patch.ActualHours != nil && *patch.ActualHours != nil && **patch.ActualHours < 0 {
		fields["actual_hours"] = "must not be negative"
	}
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}
	return s.tasks.Update(ctx, id, patch)
}

// UpdateTaskHours replaces the estimated and/or actual hours of a task.
func (s *ProjectService) UpdateTaskHours(ctx context.Context, id string, estimated, actual *int) (*domain.Task, error) {
	if estimated == nil && actual == nil {
		return nil, errorutil.NewValidationError("no hours provided", nil)
	}
	var patch domain.TaskUpdate
	if estimated != nil {
		patch.EstimatedHours = &estimated
	}
	if actual != nil {
		patch.ActualHours = &actual
	}
	return s.UpdateTask(ctx, id, patch)
}

// OverdueTasks lists uncompleted tasks due before today, optionally for one project.
func (s *ProjectService) OverdueTasks(ctx context.Context, projectID *string) ([]domain.Task, error) {
	cutoff := s.today()
	return s.tasks.List(ctx, repository.TaskFilter{
		ProjectID:       projectID,
		ExcludeStatuses: []domain.TaskStatus{domain.TaskStatusCompleted},
		DueBefore:       &cutoff,
		Order:           repository.Order{Column: "project_task_due_date"},
		Page:            repository.Page{Limit: overdueLimit},
	})
}

// GetTask fetches a task.
func (s *ProjectService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// ListTasks lists tasks.
func (s *ProjectService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return s.tasks.List(ctx, filter)
}

// DeleteTask removes a task.
func (s *ProjectService) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// CreateTeam validates and inserts a team.
func (s *ProjectService) CreateTeam(ctx context.Context, team *domain.Team) error {
	fields := map[string]string{}
	required(fields, "project_team_name", team.Name)
	required(fields, "project_id", team.ProjectID)
	if err := fieldErrors(fields); err != nil {
		return err
	}
	return s.teams.Create(ctx, team)
}

// UpdateTeam patches a team.
func (s *ProjectService) UpdateTeam(ctx context.Context, id string, patch domain.TeamUpdate) (*domain.Team, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, errorutil.NewFieldValidationError(map[string]string{"project_team_name": "is required"})
	}
	return s.teams.Update(ctx, id, patch)
}

// GetTeam fetches a team.
func (s *ProjectService) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	return s.teams.GetByID(ctx, id)
}

// ListTeams lists a project's teams.
func (s *ProjectService) ListTeams(ctx context.Context, projectID string) ([]domain.Team, error) {
	return s.teams.ListByProject(ctx, projectID)
}

// DeleteTeam removes a team.
func (s *ProjectService) DeleteTeam(ctx context.Context, id string) error {
	return s.teams.Delete(ctx, id)
}

// AddTeamMember puts a staffer on a team.
func (s *ProjectService) AddTeamMember(ctx context.Context, teamID, stafferID string) (*domain.TeamMembership, error) {
	if strings.TrimSpace(stafferID) == "" {
		return nil, errorutil.NewFieldValidationError(map[string]string{"staffer_id": "is required"})
	}
	membership := &domain.TeamMembership{TeamID: teamID, StafferID: stafferID}
	if err := s.teams.AddMember(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// ListTeamMembers lists a team's memberships.
func (s *ProjectService) ListTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMembership, error) {
	return s.teams.ListMembers(ctx, teamID)
}

// RemoveTeamMember removes a membership.
func (s *ProjectService) RemoveTeamMember(ctx context.Context, membershipID string) error {
	return s.teams.RemoveMember(ctx, membershipID)
}

// Assign puts a staffer on a task.
func (s *ProjectService) Assign(ctx context.Context, assignment *domain.Assignment) error {
	fields := map[string]string{}
	required(fields, "staffer_id", assignment.StafferID)
	required(fields, "project_task_id", assignment.TaskID)
	if err := fieldErrors(fields); err != nil {
		return err
	}
	return s.assignments.Create(ctx, assignment)
}

// GetAssignment fetches an assignment.
func (s *ProjectService) GetAssignment(ctx context.Context, id string) (*domain.Assignment, error) {
	return s.assignments.GetByID(ctx, id)
}

// ListAssignments lists assignments by staffer or task.
func (s *ProjectService) ListAssignments(ctx context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	return s.assignments.List(ctx, filter)
}

// Unassign removes an assignment.
func (s *ProjectService) Unassign(ctx context.Context, id string) error {
	return s.assignments.Delete(ctx, id)
}
