package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTimeOffCreated EventType = "time_off_created"
	EventStafferSaved   EventType = "staffer_saved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	StafferID string    `json:"staffer_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// NewEvent stamps a fresh id and timestamp.
func NewEvent(eventType EventType, stafferID string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		StafferID: stafferID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// TimeOffCreatedPayload is the body POSTed to the orchestrator.
type TimeOffCreatedPayload struct {
	TimeOffID              string    `json:"time_off_id"`
	StafferID              string    `json:"staffer_id"`
	TimeOffStartDatetime   time.Time `json:"time_off_start_datetime"`
	TimeOffEndDatetime     time.Time `json:"time_off_end_datetime"`
	TimeOffCumulativeHours float64   `json:"time_off_cumulative_hours"`
	CreatedAt              time.Time `json:"created_at"`
	LastUpdatedAt          time.Time `json:"last_updated_at"`
}

// StafferSavedPayload describes a committed edit session.
type StafferSavedPayload struct {
	Created   bool `json:"created"`
	Succeeded int  `json:"succeeded"`
	Failed    int  `json:"failed"`
}
