package domain

import "time"

// Team groups staffers on a project, optionally scoped to a phase.
type Team struct {
	ID            string
	Name          string
	ProjectID     string
	PhaseID       *string
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

// TeamUpdate patches a team; nil fields are left untouched.
type TeamUpdate struct {
	Name    *string
	PhaseID **string
}

// TeamMembership places a staffer on a team.
type TeamMembership struct {
	ID            string
	TeamID        string
	StafferID     string
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}
