package editsession

import (
	"strings"
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// ProfilePatch changes one group of profile fields.
// The set of variants is closed: only the types in this file implement it.
type ProfilePatch interface {
	applyProfile(u *domain.StafferUpdate)
}

// SetName replaces first and last name.
type SetName struct {
	First string
	Last  string
}

// SetEmail replaces the email address.
type SetEmail struct{ Email string }

// SetTitle replaces the job title.
type SetTitle struct{ Title string }

// SetTimeZone replaces the IANA time zone.
type SetTimeZone struct{ TimeZone string }

// SetCapacity replaces the weekly capacity in hours.
type SetCapacity struct{ Hours float64 }

// SetSeniority replaces the seniority reference; nil clears it.
type SetSeniority struct{ SeniorityID *string }

func (p SetName) applyProfile(u *domain.StafferUpdate) {
	u.FirstName = trimmed(p.First)
	u.LastName = trimmed(p.Last)
}
func (p SetEmail) applyProfile(u *domain.StafferUpdate)    { u.Email = trimmed(p.Email) }
func (p SetTitle) applyProfile(u *domain.StafferUpdate)    { u.Title = trimmed(p.Title) }
func (p SetTimeZone) applyProfile(u *domain.StafferUpdate) { u.TimeZone = trimmed(p.TimeZone) }
func (p SetCapacity) applyProfile(u *domain.StafferUpdate) { u.Capacity = &p.Hours }

func (p SetSeniority) applyProfile(u *domain.StafferUpdate) {
	id := p.SeniorityID
	u.SeniorityID = &id
}

// trimmed strips surrounding whitespace from staged text so the value
// Validate checks is the value Commit writes.
func trimmed(v string) *string {
	v = strings.TrimSpace(v)
	return &v
}

// SkillPatch changes one group of skill-link fields.
type SkillPatch interface {
	applySkill(u *domain.StafferSkillUpdate)
}

// SetSkillStatus replaces the proficiency status.
type SetSkillStatus struct{ Status domain.SkillStatus }

// SetCertificationDates replaces both certification dates; nil clears a date.
type SetCertificationDates struct {
	Active *time.Time
	Expiry *time.Time
}

func (p SetSkillStatus) applySkill(u *domain.StafferSkillUpdate) { u.Status = &p.Status }

func (p SetCertificationDates) applySkill(u *domain.StafferSkillUpdate) {
	active, expiry := p.Active, p.Expiry
	u.CertificationActiveDate = &active
	u.CertificationExpiryDate = &expiry
}

// TimeOffPatch changes one group of time-off fields.
type TimeOffPatch interface {
	applyTimeOff(u *domain.TimeOffUpdate)
}

// SetTimeOffRange replaces start and end together.
type SetTimeOffRange struct {
	Start time.Time
	End   time.Time
}

// SetTimeOffHours replaces the cumulative hours.
type SetTimeOffHours struct{ Hours float64 }

func (p SetTimeOffRange) applyTimeOff(u *domain.TimeOffUpdate) {
	u.StartsAt = &p.Start
	u.EndsAt = &p.End
}

func (p SetTimeOffHours) applyTimeOff(u *domain.TimeOffUpdate) { u.CumulativeHours = &p.Hours }
