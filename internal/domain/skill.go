package domain

import "time"

// SkillStatus enumerates proficiency levels for a staffer skill.
type SkillStatus string

const (
	SkillStatusLearning  SkillStatus = "learning"
	SkillStatusCompetent SkillStatus = "competent"
	SkillStatusExpert    SkillStatus = "expert"
	SkillStatusCertified SkillStatus = "certified"
)

// Valid reports whether s is a known status.
func (s SkillStatus) Valid() bool {
	switch s {
	case SkillStatusLearning, SkillStatusCompetent, SkillStatusExpert, SkillStatusCertified:
		return true
	}
	return false
}

// Skill is a catalog entry staffers can be linked to.
type Skill struct {
	ID              string
	Name            string
	Description     string
	IsCertification bool
	CreatedAt       time.Time
	LastUpdatedAt   time.Time
}

// StafferSkill links a staffer to a skill.
type StafferSkill struct {
	ID                      string
	StafferID               string
	SkillID                 string
	Status                  SkillStatus
	CertificationActiveDate *time.Time
	CertificationExpiryDate *time.Time
	CreatedAt               time.Time
	LastUpdatedAt           time.Time

	// Skill is populated by reads that join the catalog.
	Skill *Skill
}

// CertificationExpired reports whether the certification lapsed before now.
func (s StafferSkill) CertificationExpired(now time.Time) bool {
	return s.CertificationExpiryDate != nil && s.CertificationExpiryDate.Before(now)
}

// StafferSkillUpdate patches a staffer skill; nil fields are left untouched.
type StafferSkillUpdate struct {
	Status                  *SkillStatus
	CertificationActiveDate **time.Time
	CertificationExpiryDate **time.Time
}

// IsEmpty reports whether the patch touches no column.
func (u StafferSkillUpdate) IsEmpty() bool {
	return u.Status == nil && u.CertificationActiveDate == nil && u.CertificationExpiryDate == nil
}

// Apply copies the patched fields onto s.
func (u StafferSkillUpdate) Apply(s *StafferSkill) {
	if u.Status != nil {
		s.Status = *u.Status
	}
	if u.CertificationActiveDate != nil {
		s.CertificationActiveDate = *u.CertificationActiveDate
	}
	if u.CertificationExpiryDate != nil {
		s.CertificationExpiryDate = *u.CertificationExpiryDate
	}
}

// SkillUpdate patches a catalog skill; nil fields are left untouched.
type SkillUpdate struct {
	Name            *string
	Description     *string
	IsCertification *bool
}
