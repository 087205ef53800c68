package dto

import (
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// ProjectRequest payload for creating a project.
type ProjectRequest struct {
	ClientID  string               `json:"client_id" validate:"required"`
	Name      string               `json:"project_name" validate:"required"`
	Status    domain.ProjectStatus `json:"project_status" validate:"omitempty,oneof=planning active on_hold completed cancelled"`
	StartDate *time.Time           `json:"project_start_date"`
	DueDate   *time.Time           `json:"project_due_date"`
}

// ProjectUpdateRequest payload; absent fields are left untouched.
type ProjectUpdateRequest struct {
	ClientID  *string               `json:"client_id" validate:"omitempty,min=1"`
	Name      *string               `json:"project_name" validate:"omitempty,min=1"`
	Status    *domain.ProjectStatus `json:"project_status" validate:"omitempty,oneof=planning active on_hold completed cancelled"`
	StartDate *time.Time            `json:"project_start_date"`
	DueDate   *time.Time            `json:"project_due_date"`
}

// ProjectResponse represents a project.
type ProjectResponse struct {
	ID            string               `json:"project_id"`
	ClientID      string               `json:"client_id"`
	Name          string               `json:"project_name"`
	Status        domain.ProjectStatus `json:"project_status"`
	StartDate     *time.Time           `json:"project_start_date"`
	DueDate       *time.Time           `json:"project_due_date"`
	CreatedAt     time.Time            `json:"created_at"`
	LastUpdatedAt time.Time            `json:"last_updated_at"`
}

// PhaseRequest payload for creating a phase.
type PhaseRequest struct {
	Number      int                `json:"project_phase_number" validate:"gte=1"`
	Name        string             `json:"project_phase_name" validate:"required"`
	Description string             `json:"project_phase_description"`
	Status      domain.PhaseStatus `json:"project_phase_status" validate:"omitempty,oneof=Planned Active Completed 'On Hold' Cancelled"`
	StartDate   *time.Time         `json:"project_phase_start_date"`
	DueDate     *time.Time         `json:"project_phase_due_date"`
}

// PhaseUpdateRequest payload; absent fields are left untouched.
type PhaseUpdateRequest struct {
	Number      *int                `json:"project_phase_number" validate:"omitempty,gte=1"`
	Name        *string             `json:"project_phase_name" validate:"omitempty,min=1"`
	Description *string             `json:"project_phase_description"`
	Status      *domain.PhaseStatus `json:"project_phase_status" validate:"omitempty,oneof=Planned Active Completed 'On Hold' Cancelled"`
	StartDate   *time.Time          `json:"project_phase_start_date"`
	DueDate     *time.Time          `json:"project_phase_due_date"`
}

// PhaseResponse represents a project phase.
type PhaseResponse struct {
	ID            string             `json:"project_phase_id"`
	ProjectID     string             `json:"project_id"`
	Number        int                `json:"project_phase_number"`
	Name          string             `json:"project_phase_name"`
	Description   string             `json:"project_phase_description"`
	Status        domain.PhaseStatus `json:"project_phase_status"`
	StartDate     *time.Time         `json:"project_phase_start_date"`
	DueDate       *time.Time         `json:"project_phase_due_date"`
	CreatedAt     time.Time          `json:"created_at"`
	LastUpdatedAt time.Time          `json:"last_updated_at"`
}

// TaskRequest payload for creating a task.
type TaskRequest struct {
	PhaseID        *string           `json:"project_phase_id"`
	Name           string            `json:"project_task_name" validate:"required"`
	Description    string            `json:"project_task_description"`
	Status         domain.TaskStatus `json:"project_task_status" validate:"omitempty,oneof=not_started in_progress review completed blocked"`
	StartDate      *time.Time        `json:"project_task_start_date"`
	DueDate        *time.Time        `json:"project_task_due_date"`
	EstimatedHours *int              `json:"estimated_hours" validate:"omitempty,gte=0"`
	ActualHours    *int              `json:"actual_hours" validate:"omitempty,gte=0"`
}

// TaskUpdateRequest payload; absent fields are left untouched.
type TaskUpdateRequest struct {
	PhaseID        *string            `json:"project_phase_id"`
	Name           *string            `json:"project_task_name" validate:"omitempty,min=1"`
	Description    *string            `json:"project_task_description"`
	Status         *domain.TaskStatus `json:"project_task_status" validate:"omitempty,oneof=not_started in_progress review completed blocked"`
	StartDate      *time.Time         `json:"project_task_start_date"`
	DueDate        *time.Time         `json:"project_task_due_date"`
	EstimatedHours *int               `json:"estimated_hours" validate:"omitempty,gte=0"`
	ActualHours    *int               `json:"actual_hours" validate:"omitempty,gte=0"`
}

// TaskResponse represents a project task.
type TaskResponse struct {
	ID             string            `json:"project_task_id"`
	ProjectID      string            `json:"project_id"`
	PhaseID        *string           `json:"project_phase_id"`
	Name           string            `json:"project_task_name"`
	Description    string            `json:"project_task_description"`
	Status         domain.TaskStatus `json:"project_task_status"`
	StartDate      *time.Time        `json:"project_task_start_date"`
	DueDate        *time.Time        `json:"project_task_due_date"`
	EstimatedHours *int              `json:"estimated_hours"`
	ActualHours    *int              `json:"actual_hours"`
	CreatedAt      time.Time         `json:"created_at"`
	LastUpdatedAt  time.Time         `json:"last_updated_at"`
}

// TeamRequest payload for creating or renaming a team.
type TeamRequest struct {
	Name    string  `json:"project_team_name" validate:"required"`
	PhaseID *string `json:"project_phase_id"`
}

// TeamResponse represents a project team.
type TeamResponse struct {
	ID            string    `json:"project_team_id"`
	Name          string    `json:"project_team_name"`
	ProjectID     string    `json:"project_id"`
	PhaseID       *string   `json:"project_phase_id"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// TeamMemberRequest payload.
type TeamMemberRequest struct {
	StafferID string `json:"staffer_id" validate:"required"`
}

// TeamMembershipResponse represents a staffer on a team.
type TeamMembershipResponse struct {
	ID        string    `json:"project_team_membership_id"`
	TeamID    string    `json:"project_team_id"`
	StafferID string    `json:"staffer_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignmentRequest payload.
type AssignmentRequest struct {
	StafferID string `json:"staffer_id" validate:"required"`
	TaskID    string `json:"project_task_id" validate:"required"`
}

// AssignmentResponse represents a staffer assigned to a task.
type AssignmentResponse struct {
	ID        string    `json:"staffer_assignment_id"`
	StafferID string    `json:"staffer_id"`
	TaskID    string    `json:"project_task_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskHoursRequest payload; at least one of the fields must be present.
type TaskHoursRequest struct {
	EstimatedHours *int `json:"estimated_hours" validate:"omitempty,gte=0"`
	ActualHours    *int `json:"actual_hours" validate:"omitempty,gte=0"`
}
