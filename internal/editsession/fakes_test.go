package editsession

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// fakeStore records every write and fails the keys listed in failOn.
type fakeStore struct {
	mu      sync.Mutex
	calls   []string
	nextID  int
	failOn  map[string]error
	stamped time.Time

	staffers map[string]domain.Staffer
	skills   map[string]domain.StafferSkill
	rates    map[string]domain.StafferRate
	timeOff  map[string]domain.TimeOffEntry
	catalog  []domain.Skill
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		failOn:   map[string]error{},
		stamped:  time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
		staffers: map[string]domain.Staffer{},
		skills:   map[string]domain.StafferSkill{},
		rates:    map[string]domain.StafferRate{},
		timeOff:  map[string]domain.TimeOffEntry{},
		catalog: []domain.Skill{
			{ID: "go", Name: "Go", Description: "Backend services"},
			{ID: "k8s", Name: "Kubernetes", Description: "Container orchestration"},
			{ID: "aws-sa", Name: "AWS Solutions Architect", Description: "Cloud certification", IsCertification: true},
			{ID: "X", Name: "Rust", Description: "Systems programming"},
		},
	}
}

func (f *fakeStore) stores() Stores {
	return Stores{
		Staffers: fakeStaffers{f},
		Skills:   fakeSkills{f},
		Rates:    fakeRates{f},
		TimeOff:  fakeTimeOff{f},
		Catalog:  fakeCatalog{f},
	}
}

// write logs the call and returns the injected failure, if any.
func (f *fakeStore) write(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.failOn[call]
}

func (f *fakeStore) id(prefix string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.calls...)
}

func (f *fakeStore) writes() int {
	return len(f.callLog())
}

func (f *fakeStore) seedStaffer() domain.Staffer {
	staffer := domain.Staffer{
		ID: "st-1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Title: "Engineer", TimeZone: "Europe/London", Capacity: 40,
	}
	f.staffers[staffer.ID] = staffer
	return staffer
}

type fakeStaffers struct{ f *fakeStore }

func (s fakeStaffers) GetByID(_ context.Context, id string) (*domain.Staffer, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	staffer, ok := s.f.staffers[id]
	if !ok {
		return nil, errorutil.NewNotFound("staffer", nil)
	}
	return &staffer, nil
}

func (s fakeStaffers) Create(_ context.Context, staffer *domain.Staffer) error {
	if err := s.f.write("create staffer"); err != nil {
		return err
	}
	staffer.ID = s.f.id("st")
	staffer.CreatedAt, staffer.LastUpdatedAt = s.f.stamped, s.f.stamped
	s.f.mu.Lock()
	s.f.staffers[staffer.ID] = *staffer
	s.f.mu.Unlock()
	return nil
}

func (s fakeStaffers) Update(_ context.Context, id string, patch domain.StafferUpdate) (*domain.Staffer, error) {
	if err := s.f.write("update staffer " + id); err != nil {
		return nil, err
	}
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	staffer, ok := s.f.staffers[id]
	if !ok {
		return nil, errorutil.NewNotFound("staffer", nil)
	}
	patch.Apply(&staffer)
	s.f.staffers[id] = staffer
	return &staffer, nil
}

type fakeSkills struct{ f *fakeStore }

func (s fakeSkills) ListByStaffer(_ context.Context, stafferID string) ([]domain.StafferSkill, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	out := []domain.StafferSkill{}
	for _, link := range s.f.skills {
		if link.StafferID == stafferID {
			for _, skill := range s.f.catalog {
				if skill.ID == link.SkillID {
					skill := skill
					link.Skill = &skill
				}
			}
			out = append(out, link)
		}
	}
	return out, nil
}

func (s fakeSkills) Create(_ context.Context, link *domain.StafferSkill) error {
	if err := s.f.write("create skill " + link.SkillID); err != nil {
		return err
	}
	link.ID = s.f.id("ss")
	s.f.mu.Lock()
	s.f.skills[link.ID] = *link
	s.f.mu.Unlock()
	return nil
}

func (s fakeSkills) Update(_ context.Context, id string, patch domain.StafferSkillUpdate) (*domain.StafferSkill, error) {
	if err := s.f.write("update skill " + id); err != nil {
		return nil, err
	}
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	link := s.f.skills[id]
	patch.Apply(&link)
	s.f.skills[id] = link
	return &link, nil
}

func (s fakeSkills) Delete(_ context.Context, id string) error {
	if err := s.f.write("delete skill " + id); err != nil {
		return err
	}
	s.f.mu.Lock()
	delete(s.f.skills, id)
	s.f.mu.Unlock()
	return nil
}

type fakeRates struct{ f *fakeStore }

func (s fakeRates) GetByStaffer(_ context.Context, stafferID string) (*domain.StafferRate, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, rate := range s.f.rates {
		if rate.StafferID == stafferID {
			return &rate, nil
		}
	}
	return nil, nil
}

func (s fakeRates) Create(_ context.Context, rate *domain.StafferRate) error {
	if err := s.f.write("create rate"); err != nil {
		return err
	}
	rate.ID = s.f.id("rate")
	s.f.mu.Lock()
	s.f.rates[rate.ID] = *rate
	s.f.mu.Unlock()
	return nil
}

func (s fakeRates) Update(_ context.Context, id string, patch domain.StafferRateUpdate) (*domain.StafferRate, error) {
	if err := s.f.write("update rate " + id); err != nil {
		return nil, err
	}
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	rate := s.f.rates[id]
	patch.Apply(&rate)
	s.f.rates[id] = rate
	return &rate, nil
}

func (s fakeRates) Delete(_ context.Context, id string) error {
	if err := s.f.write("delete rate " + id); err != nil {
		return err
	}
	s.f.mu.Lock()
	delete(s.f.rates, id)
	s.f.mu.Unlock()
	return nil
}

type fakeTimeOff struct{ f *fakeStore }

func (s fakeTimeOff) ListByStaffer(_ context.Context, stafferID string) ([]domain.TimeOffEntry, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	out := []domain.TimeOffEntry{}
	for _, entry := range s.f.timeOff {
		if entry.StafferID == stafferID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s fakeTimeOff) Create(_ context.Context, entry *domain.TimeOffEntry) error {
	if err := s.f.write("create time off"); err != nil {
		return err
	}
	entry.ID = s.f.id("to")
	entry.CreatedAt, entry.LastUpdatedAt = s.f.stamped, s.f.stamped
	s.f.mu.Lock()
	s.f.timeOff[entry.ID] = *entry
	s.f.mu.Unlock()
	return nil
}

func (s fakeTimeOff) Update(_ context.Context, id string, patch domain.TimeOffUpdate) (*domain.TimeOffEntry, error) {
	if err := s.f.write("update time off " + id); err != nil {
		return nil, err
	}
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	entry := s.f.timeOff[id]
	patch.Apply(&entry)
	s.f.timeOff[id] = entry
	return &entry, nil
}

func (s fakeTimeOff) Delete(_ context.Context, id string) error {
	if err := s.f.write("delete time off " + id); err != nil {
		return err
	}
	s.f.mu.Lock()
	delete(s.f.timeOff, id)
	s.f.mu.Unlock()
	return nil
}

type fakeCatalog struct{ f *fakeStore }

func (c fakeCatalog) Catalog(context.Context) ([]domain.Skill, error) {
	return append([]domain.Skill{}, c.f.catalog...), nil
}
