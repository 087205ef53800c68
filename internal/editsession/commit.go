package editsession

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// OperationResult is the outcome of one committed operation.
type OperationResult struct {
	Operation
	// RecordID is the persisted id the operation wrote, set for successful additions.
	RecordID string
	Err      error
}

// OK reports whether the operation landed.
func (r OperationResult) OK() bool { return r.Err == nil }

// CommitReport lists every operation a commit attempted.
type CommitReport struct {
	StafferID string
	Created   bool
	Results   []OperationResult
}

// Failed returns the operations that did not land; they stay pending in the session.
func (r *CommitReport) Failed() []OperationResult {
	var failed []OperationResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err summarises failures per family, or returns nil when everything landed.
func (r *CommitReport) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	byFamily := map[Family][]string{}
	var order []Family
	for _, res := range failed {
		if _, seen := byFamily[res.Family]; !seen {
			order = append(order, res.Family)
		}
		byFamily[res.Family] = append(byFamily[res.Family], errorutil.ToDomainError(res.Err).Message)
	}
	parts := make([]string, 0, len(order))
	details := map[string]any{}
	for _, f := range order {
		parts = append(parts, fmt.Sprintf("failed to update %s: %s", familyLabel(f), strings.Join(byFamily[f], ", ")))
		details[string(f)] = byFamily[f]
	}
	return errorutil.NewDomainError(errorutil.CodeAccess, strings.Join(parts, "; "), http.StatusBadGateway, details)
}

func familyLabel(f Family) string {
	return strings.ReplaceAll(string(f), "_", " ")
}

// step is one pending operation bound to its write. run performs I/O without
// the session lock and returns the change to fold into the snapshot.
type step struct {
	op  Operation
	run func(ctx context.Context) (fold func(), recordID string, err error)
}

// Commit validates, persists the profile, then writes every staged operation
// concurrently. A profile failure aborts with the shadow untouched. Operations
// that land are folded into the snapshot; failed ones stay pending so a later
// Commit retries only them.
func (s *Session) Commit(ctx context.Context) (*CommitReport, error) {
	s.mu.Lock()
	if err := s.writable(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.validateLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.inFlight = true
	s.committing = map[Family]bool{}
	for _, f := range append([]Family{FamilyProfile}, Families...) {
		if len(s.familyOpsLocked(f)) > 0 {
			s.committing[f] = true
		}
	}
	creating := s.stafferID == ""
	profileOps := s.familyOpsLocked(FamilyProfile)
	profile := s.profileLocked()
	edit := s.profileEdit
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.committing = nil
		s.mu.Unlock()
	}()

	report := &CommitReport{Created: creating}
	if len(profileOps) > 0 {
		res := OperationResult{Operation: profileOps[0]}
		saved, err := s.persistProfile(ctx, creating, profile, edit)
		res.Err = err
		s.record(res)
		if err != nil {
			return nil, err
		}
		res.RecordID = saved.ID
		report.Results = append(report.Results, res)

		s.mu.Lock()
		s.profile = *saved
		s.stafferID = saved.ID
		s.profileEdit = domain.StafferUpdate{}
		delete(s.committing, FamilyProfile)
		s.mu.Unlock()
	}

	s.mu.Lock()
	report.StafferID = s.stafferID
	steps := s.planLocked(s.stafferID)
	s.mu.Unlock()

	results := make([]OperationResult, len(steps))
	folds := make([]func(), len(steps))
	g := new(errgroup.Group)
	g.SetLimit(s.limit)
	for i, st := range steps {
		g.Go(func() error {
			fold, recordID, err := st.run(ctx)
			results[i] = OperationResult{Operation: st.op, RecordID: recordID, Err: err}
			folds[i] = fold
			return nil
		})
	}
	_ = g.Wait()

	s.mu.Lock()
	for i, res := range results {
		if res.OK() && folds[i] != nil {
			folds[i]()
		}
	}
	s.mu.Unlock()

	for _, res := range results {
		s.record(res)
	}
	report.Results = append(report.Results, results...)
	return report, nil
}

func (s *Session) record(res OperationResult) {
	if s.observer != nil {
		s.observer.RecordCommitOperation(string(res.Family), string(res.Kind), res.OK())
	}
	if !res.OK() {
		s.logger.Warn("edit session operation failed",
			zap.String("session_id", s.id),
			zap.String("family", string(res.Family)),
			zap.String("kind", string(res.Kind)),
			zap.String("key", res.Key),
			zap.Error(res.Err))
	}
}

func (s *Session) persistProfile(ctx context.Context, creating bool, profile domain.Staffer, edit domain.StafferUpdate) (*domain.Staffer, error) {
	if creating {
		profile.ID = ""
		if err := s.stores.Staffers.Create(ctx, &profile); err != nil {
			return nil, err
		}
		return &profile, nil
	}
	return s.stores.Staffers.Update(ctx, s.stafferID, edit)
}

// planLocked binds every staged sub-record operation to its store call.
func (s *Session) planLocked(stafferID string) []step {
	var steps []step
	steps = append(steps, s.skillSteps(stafferID)...)
	steps = append(steps, s.rateSteps(stafferID)...)
	steps = append(steps, s.timeOffSteps(stafferID)...)
	return steps
}

func (s *Session) skillSteps(stafferID string) []step {
	sh := s.skillShadow
	var steps []step
	for _, key := range sh.deletions {
		steps = append(steps, step{
			op: Operation{Family: FamilySkills, Kind: KindDelete, Key: key},
			run: func(ctx context.Context) (func(), string, error) {
				if err := s.stores.Skills.Delete(ctx, key); err != nil {
					return nil, "", err
				}
				return func() {
					s.skills = removeByID(s.skills, key, func(l domain.StafferSkill) string { return l.ID })
					sh.undelete(key)
				}, key, nil
			},
		})
	}
	for _, key := range sh.updated {
		patch, _ := sh.update(key)
		steps = append(steps, step{
			op: Operation{Family: FamilySkills, Kind: KindUpdate, Key: key},
			run: func(ctx context.Context) (func(), string, error) {
				updated, err := s.stores.Skills.Update(ctx, key, patch)
				if err != nil {
					return nil, "", err
				}
				return func() {
					for i := range s.skills {
						if s.skills[i].ID == key {
							if updated.Skill == nil {
								updated.Skill = s.skills[i].Skill
							}
							s.skills[i] = *updated
						}
					}
					sh.dropUpdate(key)
				}, key, nil
			},
		})
	}
	for _, a := range sh.additions {
		key, link := a.key, a.value
		link.StafferID = stafferID
		steps = append(steps, step{
			op: Operation{Family: FamilySkills, Kind: KindAdd, Key: key},
			run: func(ctx context.Context) (func(), string, error) {
				created := link
				created.Skill = nil
				if err := s.stores.Skills.Create(ctx, &created); err != nil {
					return nil, "", err
				}
				created.Skill = link.Skill
				return func() {
					s.skills = append(s.skills, created)
					sh.dropAddition(key)
				}, created.ID, nil
			},
		})
	}
	return steps
}

func (s *Session) rateSteps(stafferID string) []step {
	sh := s.rateShadow
	var steps []step
	for _, key := range sh.deletions {
		steps = append(steps, step{
			op: Operation{Family: FamilyRate, Kind: KindDelete, Key: key},
			run: func(ctx context.Context) (func(), string, error) {
				if err := s.stores.Rates.Delete(ctx, key); err != nil {
					return nil, "", err
				}
				return func() {
					s.rate = nil
					sh.undelete(key)
				}, key, nil
			},
		})
	}
	for _, key := range sh.updated {
		patch, _ := sh.update(key)
		steps = append(steps, step{
			op: Operation{Family: FamilyRate, Kind: KindUpdate, Key: key},
			run: func(ctx context.Context) (func(), string, error) {
				updated, err := s.stores.Rates.Update(ctx, key, patch)
				if err != nil {
					return nil, "", err
				}
				return func() {
					s.rate = updated
					sh.dropUpdate(key)
				}, key, nil
			},
		})
	}
	for _, a := range sh.additions {
		key, rate := a.key, a.value
		rate.StafferID = stafferID
		steps = append(steps, step{
			op: Operation{Family: FamilyRate, Kind: KindAdd, Key: key},
			run: func(ctx context.Context) (func(), string, error) {
				created := rate
				if err := s.stores.Rates.Create(ctx, &created); err != nil {
					return nil, "", err
				}
				return func() {
					s.rate = &created
					sh.dropAddition(key)
				}, created.ID, nil
			},
		})
	}
	return steps
}

func (s *Session) timeOffSteps(stafferID string) []step {
	sh := s.timeOffShadow
	var steps []step
	for _, key := range sh.deletions {
		steps = append(steps, step{
			op: Operation{Family: FamilyTimeOff, Kind: KindDelete, Key: key},
			run: func(ctx context.Context) (func(), string, error) {
				if err := s.stores.TimeOff.Delete(ctx, key); err != nil {
					return nil, "", err
				}
				return func() {
					s.timeOff = removeByID(s.timeOff, key, func(e domain.TimeOffEntry) string { return e.ID })
					sh.undelete(key)
				}, key, nil
			},
		})
	}
	for _, key := range sh.updated {
		patch, _ := sh.update(key)
		steps = append(steps, step{
			op: Operation{Family: FamilyTimeOff, Kind: KindUpdate, Key: key},
			run: func(ctx context.Context) (func(), string, error) {
				updated, err := s.stores.TimeOff.Update(ctx, key, patch)
				if err != nil {
					return nil, "", err
				}
				return func() {
					for i := range s.timeOff {
						if s.timeOff[i].ID == key {
							s.timeOff[i] = *updated
						}
					}
					sh.dropUpdate(key)
				}, key, nil
			},
		})
	}
	for _, a := range sh.additions {
		key, entry := a.key, a.value
		entry.StafferID = stafferID
		steps = append(steps, step{
			op: Operation{Family: FamilyTimeOff, Kind: KindAdd, Key: key},
			run: func(ctx context.Context) (func(), string, error) {
				created := entry
				if err := s.stores.TimeOff.Create(ctx, &created); err != nil {
					return nil, "", err
				}
				return func() {
					s.timeOff = append(s.timeOff, created)
					sh.dropAddition(key)
				}, created.ID, nil
			},
		})
	}
	return steps
}

func removeByID[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0:0]
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
