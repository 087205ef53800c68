package domain

import (
	"strings"
	"time"
)

// MaxWeeklyCapacity is the number of hours in a week.
const MaxWeeklyCapacity = 168.0

// Seniority is a reference level attached to staffers.
type Seniority struct {
	ID            string
	Level         int
	Name          string
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

// Staffer is a person available for project work.
type Staffer struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Title         string
	TimeZone      string
	Capacity      float64
	SeniorityID   *string
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

// FullName joins first and last name.
func (s Staffer) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// StafferUpdate patches staffer scalar fields; nil fields are left untouched.
type StafferUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Title       *string
	TimeZone    *string
	Capacity    *float64
	SeniorityID **string
}

// IsEmpty reports whether the patch touches no column.
func (u StafferUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Title == nil &&
		u.TimeZone == nil && u.Capacity == nil && u.SeniorityID == nil
}

// Apply copies the patched fields onto s.
func (u StafferUpdate) Apply(s *Staffer) {
	if u.FirstName != nil {
		s.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		s.LastName = *u.LastName
	}
	if u.Email != nil {
		s.Email = *u.Email
	}
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.TimeZone != nil {
		s.TimeZone = *u.TimeZone
	}
	if u.Capacity != nil {
		s.Capacity = *u.Capacity
	}
	if u.SeniorityID != nil {
		s.SeniorityID = *u.SeniorityID
	}
}
