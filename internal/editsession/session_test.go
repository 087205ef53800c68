package editsession

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

var fixedNow = time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

func openSession(t *testing.T, store *fakeStore, stafferID string) *Session {
	t.Helper()
	s, err := Open(context.Background(), store.stores(), stafferID, Options{Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	return s
}

func seededStore() *fakeStore {
	store := newFakeStore()
	store.seedStaffer()
	store.skills["A"] = domain.StafferSkill{ID: "A", StafferID: "st-1", SkillID: "go", Status: domain.SkillStatusExpert}
	store.skills["B"] = domain.StafferSkill{ID: "B", StafferID: "st-1", SkillID: "k8s", Status: domain.SkillStatusLearning}
	store.timeOff["T1"] = domain.TimeOffEntry{
		ID: "T1", StafferID: "st-1",
		StartsAt: fixedNow.Add(24 * time.Hour), EndsAt: fixedNow.Add(48 * time.Hour), CumulativeHours: 8,
	}
	return store
}

func keys[V any](views []V, key func(V) string) []string {
	out := []string{}
	for _, v := range views {
		out = append(out, key(v))
	}
	return out
}

func skillKeys(views []SkillView) []string {
	return keys(views, func(v SkillView) string { return v.Key })
}

func TestSession_OpenLoadsSnapshot(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")

	assert.Equal(t, "Ada", s.Profile().FirstName)
	assert.ElementsMatch(t, []string{"A", "B"}, skillKeys(s.VisibleSkills()))
	assert.Nil(t, s.VisibleRate())
	assert.Len(t, s.VisibleTimeOff(), 1)
	assert.Empty(t, s.PendingOperations())
	assert.False(t, s.Creating())
	for _, f := range Families {
		assert.Equal(t, StateClean, s.State(f))
	}
}

func TestSession_OpenUnknownStafferFails(t *testing.T) {
	_, err := Open(context.Background(), newFakeStore().stores(), "missing", Options{})
	assert.True(t, errorutil.IsNotFound(err))
}

func TestSession_VisibleSkillsFoldsDeltas(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")

	require.NoError(t, s.RemoveSkill("A"))
	require.NoError(t, s.UpdateSkill("B", SetSkillStatus{Status: domain.SkillStatusCompetent}))
	key, err := s.AddSkill(domain.StafferSkill{SkillID: "X", Status: domain.SkillStatusLearning})
	require.NoError(t, err)
	require.NoError(t, s.UpdateSkill(key, SetSkillStatus{Status: domain.SkillStatusExpert}))

	first := s.VisibleSkills()
	second := s.VisibleSkills()
	assert.Equal(t, first, second)

	require.Len(t, first, 2)
	var b SkillView
	for _, v := range first {
		if v.Key == "B" {
			b = v
		}
	}
	assert.Equal(t, domain.SkillStatusCompetent, b.Link.Status)
	assert.True(t, b.Modified)
	assert.False(t, b.Pending)

	last := first[1]
	assert.Equal(t, key, last.Key)
	assert.True(t, last.Pending)
	assert.Equal(t, "X", last.Link.SkillID)
	assert.Equal(t, domain.SkillStatusExpert, last.Link.Status)
	assert.Equal(t, "Rust", last.Link.Skill.Name)

	assert.Equal(t, StateDirty, s.State(FamilySkills))
	assert.Equal(t, StateClean, s.State(FamilyTimeOff))
	assert.Equal(t, []Operation{
		{Family: FamilySkills, Kind: KindDelete, Key: "A"},
		{Family: FamilySkills, Kind: KindUpdate, Key: "B"},
		{Family: FamilySkills, Kind: KindAdd, Key: key},
	}, s.PendingOperations())
}

func TestSession_RemovingPendingAdditionLeavesNoTrace(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")

	key, err := s.AddTimeOff(domain.TimeOffEntry{StartsAt: fixedNow, EndsAt: fixedNow.Add(time.Hour), CumulativeHours: 1})
	require.NoError(t, err)
	require.NoError(t, s.RemoveTimeOff(key))

	assert.Empty(t, s.PendingOperations())
	assert.Equal(t, StateClean, s.State(FamilyTimeOff))
	assert.True(t, errorutil.IsNotFound(s.RemoveTimeOff(key)))
}

func TestSession_DeletingDiscardsStagedUpdate(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")

	require.NoError(t, s.UpdateTimeOff("T1", SetTimeOffHours{Hours: 4}))
	require.NoError(t, s.RemoveTimeOff("T1"))

	assert.Empty(t, s.VisibleTimeOff())
	assert.Equal(t, []Operation{{Family: FamilyTimeOff, Kind: KindDelete, Key: "T1"}}, s.PendingOperations())
	assert.True(t, errorutil.IsNotFound(s.UpdateTimeOff("T1", SetTimeOffHours{Hours: 2})))
}

func TestSession_AddSkillRules(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")

	_, err := s.AddSkill(domain.StafferSkill{SkillID: "cobol"})
	assert.True(t, errorutil.IsValidation(err))

	_, err = s.AddSkill(domain.StafferSkill{SkillID: "go"})
	assert.Equal(t, errorutil.CodeConflict, errorutil.ToDomainError(err).Code)

	key, err := s.AddSkill(domain.StafferSkill{SkillID: "X"})
	require.NoError(t, err)
	assert.Equal(t, domain.SkillStatusLearning, s.VisibleSkills()[2].Link.Status)
	assert.NotEqual(t, "", key)
}

func TestSession_ReaddingDeletedSkillRestoresLink(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")

	require.NoError(t, s.RemoveSkill("A"))
	key, err := s.AddSkill(domain.StafferSkill{SkillID: "go", Status: domain.SkillStatusCompetent})
	require.NoError(t, err)

	assert.Equal(t, "A", key)
	assert.Equal(t, []Operation{{Family: FamilySkills, Kind: KindUpdate, Key: "A"}}, s.PendingOperations())
}

func TestSession_RateHoldsAtMostOne(t *testing.T) {
	store := seededStore()
	s := openSession(t, store, "st-1")

	require.NoError(t, s.SetRate(decimal.NewFromInt(50), decimal.NewFromInt(120)))
	require.NoError(t, s.SetRate(decimal.NewFromInt(55), decimal.NewFromInt(125)))
	ops := s.PendingOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, KindAdd, ops[0].Kind)
	assert.True(t, s.VisibleRate().Rate.BillRate.Equal(decimal.NewFromInt(125)))

	require.NoError(t, s.RemoveRate())
	assert.Nil(t, s.VisibleRate())
	assert.Empty(t, s.PendingOperations())
	assert.True(t, errorutil.IsNotFound(s.RemoveRate()))
}

func TestSession_SetRateOnPersistedRateIsUpdate(t *testing.T) {
	store := seededStore()
	store.rates["R"] = domain.StafferRate{ID: "R", StafferID: "st-1", CostRate: decimal.NewFromInt(40), BillRate: decimal.NewFromInt(90)}
	s := openSession(t, store, "st-1")

	require.NoError(t, s.RemoveRate())
	require.NoError(t, s.SetRate(decimal.NewFromInt(45), decimal.NewFromInt(100)))

	assert.Equal(t, []Operation{{Family: FamilyRate, Kind: KindUpdate, Key: "R"}}, s.PendingOperations())
	view := s.VisibleRate()
	require.NotNil(t, view)
	assert.True(t, view.Modified)
	assert.True(t, view.Rate.Margin().Equal(decimal.NewFromInt(55)))
}

func TestSession_ProfilePatches(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")
	seniority := "sen-2"

	require.NoError(t, s.SetProfile(SetTitle{Title: "Staff Engineer"}, SetCapacity{Hours: 32}, SetSeniority{SeniorityID: &seniority}))

	profile := s.Profile()
	assert.Equal(t, "Staff Engineer", profile.Title)
	assert.Equal(t, 32.0, profile.Capacity)
	assert.Equal(t, &seniority, profile.SeniorityID)
	assert.Equal(t, []Operation{{Family: FamilyProfile, Kind: KindUpdate, Key: "st-1"}}, s.PendingOperations())
	assert.Equal(t, StateDirty, s.State(FamilyProfile))
}

func TestSession_PartitionTimeOffIncludesPending(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")
	key, err := s.AddTimeOff(domain.TimeOffEntry{
		StartsAt: fixedNow.Add(-time.Hour), EndsAt: fixedNow.Add(time.Hour), CumulativeHours: 2,
	})
	require.NoError(t, err)

	groups := s.PartitionTimeOff(fixedNow)

	require.Len(t, groups.Active, 1)
	assert.Equal(t, key, groups.Active[0].Key)
	assert.True(t, groups.Active[0].Pending)
	require.Len(t, groups.Upcoming, 1)
	assert.Equal(t, "T1", groups.Upcoming[0].Key)
	assert.Empty(t, groups.Past)
}

func TestSession_SearchSkills(t *testing.T) {
	store := seededStore()
	s := openSession(t, store, "st-1")

	assert.Equal(t, []string{"aws-sa", "X"}, keys(s.SearchSkills(""), func(k domain.Skill) string { return k.ID }))
	assert.Equal(t, []string{"X"}, keys(s.SearchSkills("  SYSTEMS "), func(k domain.Skill) string { return k.ID }))

	_, err := s.AddSkill(domain.StafferSkill{SkillID: "X"})
	require.NoError(t, err)
	assert.Empty(t, s.SearchSkills("rust"))

	require.NoError(t, s.RemoveSkill("A"))
	assert.Equal(t, []string{"go"}, keys(s.SearchSkills("backend"), func(k domain.Skill) string { return k.ID }))
}

func TestSession_SearchSkillsCapsMatches(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 30; i++ {
		store.catalog = append(store.catalog, domain.Skill{ID: string(rune('a'+i%26)) + "-lang", Name: "Language"})
	}
	s := openSession(t, store, "")

	assert.Len(t, s.SearchSkills("language"), MaxSkillMatches)
}

func TestSession_Discard(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")
	require.NoError(t, s.RemoveSkill("A"))
	require.NoError(t, s.SetProfile(SetEmail{Email: "ada@lovelace.dev"}))

	require.NoError(t, s.Discard())

	assert.Empty(t, s.PendingOperations())
	assert.Equal(t, "ada@example.com", s.Profile().Email)
	assert.Len(t, s.VisibleSkills(), 2)
}
