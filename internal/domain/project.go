package domain

import "time"

// ProjectStatus enumerates lifecycle states for projects.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// PhaseStatus enumerates lifecycle states for project phases.
type PhaseStatus string

const (
	PhaseStatusPlanned   PhaseStatus = "Planned"
	PhaseStatusActive    PhaseStatus = "Active"
	PhaseStatusCompleted PhaseStatus = "Completed"
	PhaseStatusOnHold    PhaseStatus = "On Hold"
	PhaseStatusCancelled PhaseStatus = "Cancelled"
)

// TaskStatus enumerates lifecycle states for project tasks.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusBlocked    TaskStatus = "blocked"
)

// Project is a client engagement.
type Project struct {
	ID            string
	ClientID      string
	Name          string
	Status        ProjectStatus
	StartDate     *time.Time
	DueDate       *time.Time
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

// ProjectUpdate patches a project; nil fields are left untouched.
type ProjectUpdate struct {
	ClientID  *string
	Name      *string
	Status    *ProjectStatus
	StartDate **time.Time
	DueDate   **time.Time
}

// Phase is an ordered stage of a project.
type Phase struct {
	ID            string
	ProjectID     string
	Number        int
	Name          string
	Description   string
	Status        PhaseStatus
	StartDate     *time.Time
	DueDate       *time.Time
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

// PhaseUpdate patches a phase; nil fields are left untouched.
type PhaseUpdate struct {
	Number      *int
	Name        *string
	Description *string
	Status      *PhaseStatus
	StartDate   **time.Time
	DueDate     **time.Time
}

// Task is a unit of work inside a project, optionally inside a phase.
type Task struct {
	ID             string
	ProjectID      string
	PhaseID        *string
	Name           string
	Description    string
	Status         TaskStatus
	StartDate      *time.Time
	DueDate        *time.Time
	EstimatedHours *int
	ActualHours    *int
	CreatedAt      time.Time
	LastUpdatedAt  time.Time
}

// TaskUpdate patches a task; nil fields are left untouched.
type TaskUpdate struct {
	PhaseID        **string
	Name           *string
	Description    *string
	Status         *TaskStatus
	StartDate      **time.Time
	DueDate        **time.Time
	EstimatedHours **int
	ActualHours    **int
}

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Valid reports whether s is a known status.
func (s PhaseStatus) Valid() bool {
	switch s {
	case PhaseStatusPlanned, PhaseStatusActive, PhaseStatusCompleted, PhaseStatusOnHold, PhaseStatusCancelled:
		return true
	}
	return false
}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted, TaskStatusBlocked:
		return true
	}
	return false
}
