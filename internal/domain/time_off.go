package domain

import "time"

// TimeOffPhase classifies an entry against the current time.
type TimeOffPhase string

const (
	TimeOffPast     TimeOffPhase = "past"
	TimeOffUpcoming TimeOffPhase = "upcoming"
	TimeOffActive   TimeOffPhase = "active"
)

// TimeOffEntry is a block of leave for a staffer.
type TimeOffEntry struct {
	ID              string
	StafferID       string
	StartsAt        time.Time
	EndsAt          time.Time
	CumulativeHours float64
	CreatedAt       time.Time
	LastUpdatedAt   time.Time
}

// Phase reports whether the entry is past, upcoming or active at now.
func (e TimeOffEntry) Phase(now time.Time) TimeOffPhase {
	switch {
	case e.StartsAt.After(now):
		return TimeOffUpcoming
	case e.EndsAt.Before(now):
		return TimeOffPast
	default:
		return TimeOffActive
	}
}

// TimeOffUpdate patches a time-off entry; nil fields are left untouched.
type TimeOffUpdate struct {
	StartsAt        *time.Time
	EndsAt          *time.Time
	CumulativeHours *float64
}

// IsEmpty reports whether the patch touches no column.
func (u TimeOffUpdate) IsEmpty() bool {
	return u.StartsAt == nil && u.EndsAt == nil && u.CumulativeHours == nil
}

// Apply copies the patched fields onto e.
func (u TimeOffUpdate) Apply(e *TimeOffEntry) {
	if u.StartsAt != nil {
		e.StartsAt = *u.StartsAt
	}
	if u.EndsAt != nil {
		e.EndsAt = *u.EndsAt
	}
	if u.CumulativeHours != nil {
		e.CumulativeHours = *u.CumulativeHours
	}
}

// TimeOffPartition groups entries by phase, preserving input order within each group.
type TimeOffPartition struct {
	Past     []TimeOffEntry
	Upcoming []TimeOffEntry
	Active   []TimeOffEntry
}

// PartitionTimeOff splits entries into past, upcoming and active at now.
func PartitionTimeOff(entries []TimeOffEntry, now time.Time) TimeOffPartition {
	p := TimeOffPartition{
		Past:     []TimeOffEntry{},
		Upcoming: []TimeOffEntry{},
		Active:   []TimeOffEntry{},
	}
	for _, e := range entries {
		switch e.Phase(now) {
		case TimeOffPast:
			p.Past = append(p.Past, e)
		case TimeOffUpcoming:
			p.Upcoming = append(p.Upcoming, e)
		default:
			p.Active = append(p.Active, e)
		}
	}
	return p
}
