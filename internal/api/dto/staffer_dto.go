package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// StafferResponse represents a staffer profile.
type StafferResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Title         string    `json:"title"`
	TimeZone      string    `json:"time_zone"`
	Capacity      float64   `json:"capacity"`
	SeniorityID   *string   `json:"seniority_id"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// SeniorityResponse represents a seniority level.
type SeniorityResponse struct {
	ID    string `json:"seniority_id"`
	Level int    `json:"seniority_level"`
	Name  string `json:"seniority_name"`
}

// SkillRequest payload for adding a catalog skill.
type SkillRequest struct {
	Name            string `json:"skill_name" validate:"required"`
	Description     string `json:"skill_description"`
	IsCertification bool   `json:"is_certification"`
}

// SkillUpdateRequest payload; absent fields are left untouched.
type SkillUpdateRequest struct {
	Name            *string `json:"skill_name" validate:"omitempty,min=1"`
	Description     *string `json:"skill_description"`
	IsCertification *bool   `json:"is_certification"`
}

// SkillResponse represents a catalog skill.
type SkillResponse struct {
	ID              string `json:"skill_id"`
	Name            string `json:"skill_name"`
	Description     string `json:"skill_description"`
	IsCertification bool   `json:"is_certification"`
}

// StafferSkillResponse represents a staffer's link to a skill.
type StafferSkillResponse struct {
	ID                      string             `json:"staffer_skill_id,omitempty"`
	SkillID                 string             `json:"skill_id"`
	SkillName               string             `json:"skill_name,omitempty"`
	Status                  domain.SkillStatus `json:"status"`
	CertificationActiveDate *time.Time         `json:"certification_active_date"`
	CertificationExpiryDate *time.Time         `json:"certification_expiry_date"`
}

// RateResponse represents a staffer rate.
type RateResponse struct {
	ID       string          `json:"staffer_rate_id,omitempty"`
	CostRate decimal.Decimal `json:"cost_rate"`
	BillRate decimal.Decimal `json:"bill_rate"`
	Margin   decimal.Decimal `json:"margin"`
}

// TimeOffResponse represents a time-off entry.
type TimeOffResponse struct {
	ID              string              `json:"time_off_id,omitempty"`
	StafferID       string              `json:"staffer_id,omitempty"`
	StartsAt        time.Time           `json:"time_off_start_datetime"`
	EndsAt          time.Time           `json:"time_off_end_datetime"`
	CumulativeHours float64             `json:"time_off_cumulative_hours"`
	Phase           domain.TimeOffPhase `json:"phase"`
}

// TimeOffPartitionResponse groups time off by phase.
type TimeOffPartitionResponse struct {
	Past     []TimeOffResponse `json:"past"`
	Upcoming []TimeOffResponse `json:"upcoming"`
	Active   []TimeOffResponse `json:"active"`
}
