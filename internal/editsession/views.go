package editsession

import (
	"strings"
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// MaxSkillMatches caps the skill picker.
const MaxSkillMatches = 20

// SkillView is a skill link as the form should render it.
type SkillView struct {
	Key      string
	Link     domain.StafferSkill
	Pending  bool
	Modified bool
	Expired  bool
}

// RateView is the staffer's rate as the form should render it.
type RateView struct {
	Key      string
	Rate     domain.StafferRate
	Pending  bool
	Modified bool
}

// TimeOffView is a time-off entry as the form should render it.
type TimeOffView struct {
	Key      string
	Entry    domain.TimeOffEntry
	Pending  bool
	Modified bool
}

// TimeOffGroups partitions visible time off by phase.
type TimeOffGroups struct {
	Past     []TimeOffView
	Upcoming []TimeOffView
	Active   []TimeOffView
}

// Profile returns the staffer's scalar fields with staged changes applied.
func (s *Session) Profile() domain.Staffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileLocked()
}

func (s *Session) profileLocked() domain.Staffer {
	profile := s.profile
	s.profileEdit.Apply(&profile)
	return profile
}

// VisibleSkills folds the snapshot minus deletions, with updates overlaid,
// followed by pending additions.
func (s *Session) VisibleSkills() []SkillView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleSkillsLocked()
}

func (s *Session) visibleSkillsLocked() []SkillView {
	now := s.now()
	views := make([]SkillView, 0, len(s.skills)+len(s.skillShadow.additions))
	for _, link := range s.skills {
		if s.skillShadow.isDeleted(link.ID) {
			continue
		}
		value, modified := s.skillShadow.overlay(link.ID, link)
		views = append(views, SkillView{Key: link.ID, Link: value, Modified: modified, Expired: value.CertificationExpired(now)})
	}
	for _, a := range s.skillShadow.additions {
		views = append(views, SkillView{Key: a.key, Link: a.value, Pending: true, Expired: a.value.CertificationExpired(now)})
	}
	return views
}

// VisibleRate returns the rate the staffer will hold after commit, or nil.
func (s *Session) VisibleRate() *RateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleRateLocked()
}

func (s *Session) visibleRateLocked() *RateView {
	if len(s.rateShadow.additions) > 0 {
		a := s.rateShadow.additions[0]
		return &RateView{Key: a.key, Rate: a.value, Pending: true}
	}
	if s.rate == nil || s.rateShadow.isDeleted(s.rate.ID) {
		return nil
	}
	value, modified := s.rateShadow.overlay(s.rate.ID, *s.rate)
	return &RateView{Key: s.rate.ID, Rate: value, Modified: modified}
}

// VisibleTimeOff folds the snapshot minus deletions, with updates overlaid,
// followed by pending additions.
func (s *Session) VisibleTimeOff() []TimeOffView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleTimeOffLocked()
}

func (s *Session) visibleTimeOffLocked() []TimeOffView {
	views := make([]TimeOffView, 0, len(s.timeOff)+len(s.timeOffShadow.additions))
	for _, entry := range s.timeOff {
		if s.timeOffShadow.isDeleted(entry.ID) {
			continue
		}
		value, modified := s.timeOffShadow.overlay(entry.ID, entry)
		views = append(views, TimeOffView{Key: entry.ID, Entry: value, Modified: modified})
	}
	for _, a := range s.timeOffShadow.additions {
		views = append(views, TimeOffView{Key: a.key, Entry: a.value, Pending: true})
	}
	return views
}

// PartitionTimeOff groups the visible time off into past, upcoming and active at now.
func (s *Session) PartitionTimeOff(now time.Time) TimeOffGroups {
	groups := TimeOffGroups{Past: []TimeOffView{}, Upcoming: []TimeOffView{}, Active: []TimeOffView{}}
	for _, v := range s.VisibleTimeOff() {
		switch v.Entry.Phase(now) {
		case domain.TimeOffPast:
			groups.Past = append(groups.Past, v)
		case domain.TimeOffUpcoming:
			groups.Upcoming = append(groups.Upcoming, v)
		default:
			groups.Active = append(groups.Active, v)
		}
	}
	return groups
}

// SearchSkills matches query case-insensitively against catalog names and
// descriptions, leaving out skills already visible on the staffer. At most
// MaxSkillMatches skills are returned, in catalog order.
func (s *Session) SearchSkills(query string) []domain.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := map[string]bool{}
	for _, v := range s.visibleSkillsLocked() {
		taken[v.Link.SkillID] = true
	}
	q := strings.ToLower(strings.TrimSpace(query))

	matches := []domain.Skill{}
	for _, skill := range s.catalog {
		if taken[skill.ID] {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(skill.Name), q) &&
			!strings.Contains(strings.ToLower(skill.Description), q) {
			continue
		}
		matches = append(matches, skill)
		if len(matches) == MaxSkillMatches {
			break
		}
	}
	return matches
}
