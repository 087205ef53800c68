package editsession

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const defaultConcurrency = 8

// Family names a group of records with its own pending deltas.
type Family string

const (
	FamilyProfile Family = "profile"
	FamilySkills  Family = "skills"
	FamilyRate    Family = "rate"
	FamilyTimeOff Family = "time_off"
)

// Families lists the sub-record families in commit order.
var Families = []Family{FamilySkills, FamilyRate, FamilyTimeOff}

// Kind is the write a pending operation performs.
type Kind string

const (
	KindAdd    Kind = "add"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// State is the commit state of one family.
type State string

const (
	StateClean      State = "clean"
	StateDirty      State = "dirty"
	StateCommitting State = "committing"
)

// Operation is one pending write. Key is the persisted id for updates and
// deletions and the session-local key for additions.
type Operation struct {
	Family Family `json:"family"`
	Kind   Kind   `json:"kind"`
	Key    string `json:"key"`
}

// Observer receives the outcome of every committed operation.
type Observer interface {
	RecordCommitOperation(family, kind string, ok bool)
}

// Options tunes a session.
type Options struct {
	// Concurrency bounds the writes in flight during a commit.
	Concurrency int
	Now         func() time.Time
	Observer    Observer
	Logger      *zap.Logger
}

// Session buffers edits to one staffer and its skills, rate and time off until Commit.
type Session struct {
	id       string
	stores   Stores
	limit    int
	now      func() time.Time
	observer Observer
	logger   *zap.Logger

	mu sync.Mutex
	// inFlight is held from the start of Commit until every fold is applied.
	inFlight    bool
	committing  map[Family]bool
	stafferID   string
	profile     domain.Staffer
	profileEdit domain.StafferUpdate
	skills      []domain.StafferSkill
	rate        *domain.StafferRate
	timeOff     []domain.TimeOffEntry
	catalog     []domain.Skill

	skillShadow   *shadow[domain.StafferSkill, domain.StafferSkillUpdate]
	rateShadow    *shadow[domain.StafferRate, domain.StafferRateUpdate]
	timeOffShadow *shadow[domain.TimeOffEntry, domain.TimeOffUpdate]
}

// Open loads the snapshot for stafferID. An empty stafferID opens a session
// that creates a new staffer on commit.
func Open(ctx context.Context, stores Stores, stafferID string, opts Options) (*Session, error) {
	s := &Session{
		id:            uuid.NewString(),
		stores:        stores,
		limit:         opts.Concurrency,
		now:           opts.Now,
		observer:      opts.Observer,
		logger:        opts.Logger,
		stafferID:     strings.TrimSpace(stafferID),
		skills:        []domain.StafferSkill{},
		timeOff:       []domain.TimeOffEntry{},
		catalog:       []domain.Skill{},
		skillShadow:   newShadow[domain.StafferSkill, domain.StafferSkillUpdate](),
		rateShadow:    newShadow[domain.StafferRate, domain.StafferRateUpdate](),
		timeOffShadow: newShadow[domain.TimeOffEntry, domain.TimeOffUpdate](),
	}
	if s.limit <= 0 {
		s.limit = defaultConcurrency
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	g, gctx := errgroup.WithContext(ctx)
	if stores.Catalog != nil {
		g.Go(func() error {
			catalog, err := stores.Catalog.Catalog(gctx)
			if err == nil {
				s.catalog = catalog
			}
			return err
		})
	}
	if s.stafferID != "" {
		id := s.stafferID
		g.Go(func() error {
			staffer, err := stores.Staffers.GetByID(gctx, id)
			if err == nil {
				s.profile = *staffer
			}
			return err
		})
		g.Go(func() error {
			skills, err := stores.Skills.ListByStaffer(gctx, id)
			if err == nil {
				s.skills = skills
			}
			return err
		})
		g.Go(func() error {
			rate, err := stores.Rates.GetByStaffer(gctx, id)
			s.rate = rate
			return err
		})
		g.Go(func() error {
			entries, err := stores.TimeOff.ListByStaffer(gctx, id)
			if err == nil {
				s.timeOff = entries
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// ID identifies the session.
func (s *Session) ID() string { return s.id }

// StafferID is the edited staffer, or "" until a new staffer is committed.
func (s *Session) StafferID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stafferID
}

// Creating reports whether commit will create the staffer.
func (s *Session) Creating() bool {
	return s.StafferID() == ""
}

func errCommitInProgress() error {
	return errorutil.NewConflict("commit in progress", nil)
}

func (s *Session) writable() error {
	if s.inFlight {
		return errCommitInProgress()
	}
	return nil
}

// SetProfile stages changes to the staffer's scalar fields.
func (s *Session) SetProfile(patches ...ProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	for _, p := range patches {
		p.applyProfile(&s.profileEdit)
	}
	return nil
}

func (s *Session) catalogSkill(id string) *domain.Skill {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			skill := s.catalog[i]
			return &skill
		}
	}
	return nil
}

func (s *Session) persistedSkill(key string) *domain.StafferSkill {
	for i := range s.skills {
		if s.skills[i].ID == key {
			return &s.skills[i]
		}
	}
	return nil
}

func (s *Session) persistedTimeOff(key string) *domain.TimeOffEntry {
	for i := range s.timeOff {
		if s.timeOff[i].ID == key {
			return &s.timeOff[i]
		}
	}
	return nil
}

// AddSkill stages a new skill link and returns its pending key. Re-adding a
// skill whose persisted link is pending deletion restores that link instead.
func (s *Session) AddSkill(link domain.StafferSkill) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return "", err
	}
	skill := s.catalogSkill(link.SkillID)
	if skill == nil {
		return "", errorutil.NewFieldValidationError(map[string]string{"skill_id": "unknown skill"})
	}
	if link.Status == "" {
		link.Status = domain.SkillStatusLearning
	}

	for _, v := range s.visibleSkillsLocked() {
		if v.Link.SkillID == link.SkillID {
			return "", errorutil.NewConflict("skill already assigned", map[string]any{"skill_id": link.SkillID})
		}
	}
	for _, persisted := range s.skills {
		if persisted.SkillID == link.SkillID && s.skillShadow.isDeleted(persisted.ID) {
			s.skillShadow.undelete(persisted.ID)
			restored := domain.StafferSkillUpdate{
				Status:                  &link.Status,
				CertificationActiveDate: &link.CertificationActiveDate,
				CertificationExpiryDate: &link.CertificationExpiryDate,
			}
			s.skillShadow.editUpdate(persisted.ID, func(u *domain.StafferSkillUpdate) { *u = restored })
			return persisted.ID, nil
		}
	}

	key := uuid.NewString()
	link.ID = ""
	link.StafferID = s.stafferID
	link.Skill = skill
	s.skillShadow.add(key, link)
	return key, nil
}

// RemoveSkill drops a pending skill or stages deletion of a persisted one.
func (s *Session) RemoveSkill(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	if s.skillShadow.dropAddition(key) {
		return nil
	}
	if s.persistedSkill(key) == nil || s.skillShadow.isDeleted(key) {
		return errorutil.NewNotFound("skill", map[string]any{"key": key})
	}
	s.skillShadow.markDeleted(key)
	return nil
}

// UpdateSkill stages field changes to a pending or persisted skill link.
func (s *Session) UpdateSkill(key string, patches ...SkillPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	var delta domain.StafferSkillUpdate
	for _, p := range patches {
		p.applySkill(&delta)
	}
	if s.skillShadow.editAddition(key, func(link *domain.StafferSkill) { delta.Apply(link) }) {
		return nil
	}
	if s.persistedSkill(key) == nil || s.skillShadow.isDeleted(key) {
		return errorutil.NewNotFound("skill", map[string]any{"key": key})
	}
	s.skillShadow.editUpdate(key, func(u *domain.StafferSkillUpdate) {
		for _, p := range patches {
			p.applySkill(u)
		}
	})
	return nil
}

// SetRate stages the staffer's cost and bill rate. A persisted rate is updated
// in place, so the staffer never holds more than one.
func (s *Session) SetRate(cost, bill decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	if s.rate != nil {
		s.rateShadow.undelete(s.rate.ID)
		s.rateShadow.editUpdate(s.rate.ID, func(u *domain.StafferRateUpdate) {
			u.CostRate = &cost
			u.BillRate = &bill
		})
		return nil
	}
	if len(s.rateShadow.additions) > 0 {
		s.rateShadow.editAddition(s.rateShadow.additions[0].key, func(r *domain.StafferRate) {
			r.CostRate = cost
			r.BillRate = bill
		})
		return nil
	}
	s.rateShadow.add(uuid.NewString(), domain.StafferRate{StafferID: s.stafferID, CostRate: cost, BillRate: bill})
	return nil
}

// RemoveRate drops a pending rate or stages deletion of the persisted one.
func (s *Session) RemoveRate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	if len(s.rateShadow.additions) > 0 {
		s.rateShadow.dropAddition(s.rateShadow.additions[0].key)
		return nil
	}
	if s.rate == nil || s.rateShadow.isDeleted(s.rate.ID) {
		return errorutil.NewNotFound("rate", nil)
	}
	s.rateShadow.markDeleted(s.rate.ID)
	return nil
}

// AddTimeOff stages a new time-off entry and returns its pending key.
// Range and hours are checked by Validate.
func (s *Session) AddTimeOff(entry domain.TimeOffEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return "", err
	}
	key := uuid.NewString()
	entry.ID = ""
	entry.StafferID = s.stafferID
	s.timeOffShadow.add(key, entry)
	return key, nil
}

// RemoveTimeOff drops a pending entry or stages deletion of a persisted one.
func (s *Session) RemoveTimeOff(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	if s.timeOffShadow.dropAddition(key) {
		return nil
	}
	if s.persistedTimeOff(key) == nil || s.timeOffShadow.isDeleted(key) {
		return errorutil.NewNotFound("time off", map[string]any{"key": key})
	}
	s.timeOffShadow.markDeleted(key)
	return nil
}

// UpdateTimeOff stages field changes to a pending or persisted entry.
func (s *Session) UpdateTimeOff(key string, patches ...TimeOffPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	var delta domain.TimeOffUpdate
	for _, p := range patches {
		p.applyTimeOff(&delta)
	}
	if s.timeOffShadow.editAddition(key, func(e *domain.TimeOffEntry) { delta.Apply(e) }) {
		return nil
	}
	if s.persistedTimeOff(key) == nil || s.timeOffShadow.isDeleted(key) {
		return errorutil.NewNotFound("time off", map[string]any{"key": key})
	}
	s.timeOffShadow.editUpdate(key, func(u *domain.TimeOffUpdate) {
		for _, p := range patches {
			p.applyTimeOff(u)
		}
	})
	return nil
}

// State reports the commit state of a family.
func (s *Session) State(f Family) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(f)
}

// States reports every family's commit state.
func (s *Session) States() map[Family]State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[Family]State{FamilyProfile: s.stateLocked(FamilyProfile)}
	for _, f := range Families {
		out[f] = s.stateLocked(f)
	}
	return out
}

func (s *Session) stateLocked(f Family) State {
	if s.committing[f] {
		return StateCommitting
	}
	if len(s.familyOpsLocked(f)) > 0 {
		return StateDirty
	}
	return StateClean
}

// PendingOperations lists every staged write: the profile first, then per
// family its deletions, updates and additions.
func (s *Session) PendingOperations() []Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := s.familyOpsLocked(FamilyProfile)
	for _, f := range Families {
		ops = append(ops, s.familyOpsLocked(f)...)
	}
	return ops
}

func (s *Session) familyOpsLocked(f Family) []Operation {
	switch f {
	case FamilyProfile:
		if s.stafferID == "" {
			return []Operation{{Family: FamilyProfile, Kind: KindAdd}}
		}
		if !s.profileEdit.IsEmpty() {
			return []Operation{{Family: FamilyProfile, Kind: KindUpdate, Key: s.stafferID}}
		}
		return nil
	case FamilySkills:
		return shadowOps(f, s.skillShadow)
	case FamilyRate:
		return shadowOps(f, s.rateShadow)
	case FamilyTimeOff:
		return shadowOps(f, s.timeOffShadow)
	}
	return nil
}

func shadowOps[T any, U patchFor[T]](f Family, sh *shadow[T, U]) []Operation {
	ops := make([]Operation, 0, len(sh.deletions)+len(sh.updated)+len(sh.additions))
	for _, key := range sh.deletions {
		ops = append(ops, Operation{Family: f, Kind: KindDelete, Key: key})
	}
	for _, key := range sh.updated {
		ops = append(ops, Operation{Family: f, Kind: KindUpdate, Key: key})
	}
	for _, a := range sh.additions {
		ops = append(ops, Operation{Family: f, Kind: KindAdd, Key: a.key})
	}
	return ops
}

// Discard drops every staged change and keeps the snapshot.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	s.profileEdit = domain.StafferUpdate{}
	s.skillShadow = newShadow[domain.StafferSkill, domain.StafferSkillUpdate]()
	s.rateShadow = newShadow[domain.StafferRate, domain.StafferRateUpdate]()
	s.timeOffShadow = newShadow[domain.TimeOffEntry, domain.TimeOffUpdate]()
	return nil
}
