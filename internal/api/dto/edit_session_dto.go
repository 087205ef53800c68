package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/editsession"
)

// OpenSessionRequest starts an edit session; an empty staffer id creates a new staffer.
type OpenSessionRequest struct {
	StafferID string `json:"staffer_id"`
}

// ProfilePatchRequest stages profile changes; absent fields are left untouched.
// Value checks run when the session commits.
type ProfilePatchRequest struct {
	FirstName   *string  `json:"first_name"`
	LastName    *string  `json:"last_name"`
	Email       *string  `json:"email"`
	Title       *string  `json:"title"`
	TimeZone    *string  `json:"time_zone"`
	Capacity    *float64 `json:"capacity"`
	SeniorityID *string  `json:"seniority_id"`
	// ClearSeniority removes the seniority level.
	ClearSeniority bool `json:"clear_seniority"`
}

// SkillAddRequest stages a new skill link.
type SkillAddRequest struct {
	SkillID                 string             `json:"skill_id" validate:"required"`
	Status                  domain.SkillStatus `json:"status" validate:"required"`
	CertificationActiveDate *time.Time         `json:"certification_active_date"`
	CertificationExpiryDate *time.Time         `json:"certification_expiry_date"`
}

// SkillPatchRequest stages changes to a visible skill link.
type SkillPatchRequest struct {
	Status *domain.SkillStatus `json:"status"`
	// Certification, when present, replaces both dates.
	Certification *CertificationDates `json:"certification"`
}

// CertificationDates carries both certification dates; null clears a date.
type CertificationDates struct {
	ActiveDate *time.Time `json:"certification_active_date"`
	ExpiryDate *time.Time `json:"certification_expiry_date"`
}

// RateRequest stages the staffer rate.
type RateRequest struct {
	CostRate decimal.Decimal `json:"cost_rate"`
	BillRate decimal.Decimal `json:"bill_rate"`
}

// TimeOffAddRequest stages a new time-off entry.
type TimeOffAddRequest struct {
	StartsAt        time.Time `json:"time_off_start_datetime" validate:"required"`
	EndsAt          time.Time `json:"time_off_end_datetime" validate:"required"`
	CumulativeHours float64   `json:"time_off_cumulative_hours"`
}

// TimeOffPatchRequest stages changes to a visible time-off entry. Start and end move together.
type TimeOffPatchRequest struct {
	StartsAt        *time.Time `json:"time_off_start_datetime" validate:"required_with=EndsAt"`
	EndsAt          *time.Time `json:"time_off_end_datetime" validate:"required_with=StartsAt"`
	CumulativeHours *float64   `json:"time_off_cumulative_hours"`
}

// AddedResponse reports the key of a staged addition.
type AddedResponse struct {
	Key string `json:"key"`
}

// SessionSkillResponse is a skill link as the session shows it.
type SessionSkillResponse struct {
	Key string `json:"key"`
	StafferSkillResponse
	Pending  bool `json:"pending"`
	Modified bool `json:"modified"`
	Expired  bool `json:"expired"`
}

// SessionRateResponse is the rate as the session shows it.
type SessionRateResponse struct {
	Key string `json:"key"`
	RateResponse
	Pending  bool `json:"pending"`
	Modified bool `json:"modified"`
}

// SessionTimeOffResponse is a time-off entry as the session shows it.
type SessionTimeOffResponse struct {
	Key string `json:"key"`
	TimeOffResponse
	Pending  bool `json:"pending"`
	Modified bool `json:"modified"`
}

// SessionTimeOffGroups groups visible time off by phase.
type SessionTimeOffGroups struct {
	Past     []SessionTimeOffResponse `json:"past"`
	Upcoming []SessionTimeOffResponse `json:"upcoming"`
	Active   []SessionTimeOffResponse `json:"active"`
}

// SessionResponse is the full visible state of an edit session.
type SessionResponse struct {
	ID        string                                   `json:"session_id"`
	StafferID string                                   `json:"staffer_id,omitempty"`
	Creating  bool                                     `json:"creating"`
	Profile   StafferResponse                          `json:"profile"`
	Skills    []SessionSkillResponse                   `json:"skills"`
	Rate      *SessionRateResponse                     `json:"rate"`
	TimeOff   SessionTimeOffGroups                     `json:"time_off"`
	States    map[editsession.Family]editsession.State `json:"states"`
	Pending   []editsession.Operation                  `json:"pending"`
}

// OperationResultResponse reports one committed operation.
type OperationResultResponse struct {
	editsession.Operation
	OK       bool   `json:"ok"`
	RecordID string `json:"record_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CommitResponse summarises a commit.
type CommitResponse struct {
	StafferID string                    `json:"staffer_id"`
	Created   bool                      `json:"created"`
	Committed bool                      `json:"committed"`
	Results   []OperationResultResponse `json:"results"`
}
