package domain

import "time"

// Assignment puts a staffer on a project task.
type Assignment struct {
	ID            string
	StafferID     string
	TaskID        string
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}
