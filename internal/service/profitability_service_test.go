package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

type memSnapshots struct {
	margin    map[string]decimal.Decimal
	snapshots []domain.ProfitabilitySnapshot
	clock     time.Time
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{
		margin: map[string]decimal.Decimal{},
		clock:  time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memSnapshots) Create(_ context.Context, snapshot *domain.ProfitabilitySnapshot) error {
	snapshot.ID = fmt.Sprintf("ps-%d", len(m.snapshots)+1)
	m.clock = m.clock.Add(time.Minute)
	snapshot.CreatedAt = m.clock
	m.snapshots = append(m.snapshots, *snapshot)
	return nil
}

func (m *memSnapshots) GetByID(_ context.Context, id string) (*domain.ProfitabilitySnapshot, error) {
	for _, s := range m.snapshots {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, errorutil.NewNotFound("profitability snapshot", nil)
}

func (m *memSnapshots) latest(projectID string, baselineOnly bool, resource string) (*domain.ProfitabilitySnapshot, error) {
	for i := len(m.snapshots) - 1; i >= 0; i-- {
		s := m.snapshots[i]
		if s.ProjectID == projectID && (!baselineOnly || s.IsBaseline()) {
			return &s, nil
		}
	}
	return nil, errorutil.NewNotFound(resource, nil)
}

func (m *memSnapshots) LatestBaseline(_ context.Context, projectID string) (*domain.ProfitabilitySnapshot, error) {
	return m.latest(projectID, true, "profitability baseline")
}

func (m *memSnapshots) Latest(_ context.Context, projectID string) (*domain.ProfitabilitySnapshot, error) {
	return m.latest(projectID, false, "profitability snapshot")
}

func (m *memSnapshots) List(_ context.Context, projectID string, _ repository.Page) ([]domain.ProfitabilitySnapshot, error) {
	out := []domain.ProfitabilitySnapshot{}
	for i := len(m.snapshots) - 1; i >= 0; i-- {
		if m.snapshots[i].ProjectID == projectID {
			out = append(out, m.snapshots[i])
		}
	}
	return out, nil
}

func (m *memSnapshots) ProjectMargin(_ context.Context, projectID string) (decimal.Decimal, error) {
	return m.margin[projectID], nil
}

func newProfitabilityService(t *testing.T) (*ProfitabilityService, *memSnapshots) {
	t.Helper()
	snapshots := newMemSnapshots()
	projects := newRecordingProjects(domain.Project{ID: "pr-1"}, domain.Project{ID: "pr-2"})
	return NewProfitabilityService(snapshots, projects, nil), snapshots
}

func TestProfitability_BaselineThenSnapshotDelta(t *testing.T) {
	svc, store := newProfitabilityService(t)
	ctx := context.Background()
	agent, action := "staffing-agent", "reassign"

	store.margin["pr-1"] = decimal.NewFromInt(1200)
	baseline := &domain.ProfitabilitySnapshot{ProjectID: "pr-1"}
	require.NoError(t, svc.CreateSnapshot(ctx, baseline))
	assert.True(t, baseline.IsBaseline())
	assert.True(t, decimal.NewFromInt(1200).Equal(baseline.TotalProfitability))

	store.margin["pr-1"] = decimal.NewFromInt(1500)
	snapshot := &domain.ProfitabilitySnapshot{
		ProjectID: "pr-1", BaselineID: &baseline.ID, TriggeredByAgent: &agent, TriggeredByAction: &action,
	}
	require.NoError(t, svc.CreateSnapshot(ctx, snapshot))

	latest, err := svc.LatestSnapshot(ctx, "pr-1")
	require.NoError(t, err)
	assert.Equal(t, snapshot.ID, latest.ID)
	gotBaseline, err := svc.LatestBaseline(ctx, "pr-1")
	require.NoError(t, err)
	assert.Equal(t, baseline.ID, gotBaseline.ID)

	delta, err := svc.ChangeSinceBaseline(ctx, snapshot.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(delta.Change))
	require.NotNil(t, delta.ChangePercent)
	assert.True(t, decimal.NewFromInt(25).Equal(*delta.ChangePercent))
	assert.True(t, delta.IsImprovement)
}

func TestProfitability_ChangeWithoutBaselineIsNotFound(t *testing.T) {
	svc, store := newProfitabilityService(t)
	baseline := "ps-missing"
	store.snapshots = append(store.snapshots, domain.ProfitabilitySnapshot{ID: "ps-9", ProjectID: "pr-1", BaselineID: &baseline})

	_, err := svc.ChangeSinceBaseline(context.Background(), "ps-9")

	assert.True(t, errorutil.IsNotFound(err))
	assert.Equal(t, "profitability baseline not found", errorutil.ToDomainError(err).Message)
}

func TestProfitability_BaselineMustBelongToProject(t *testing.T) {
	svc, store := newProfitabilityService(t)
	ctx := context.Background()
	other := &domain.ProfitabilitySnapshot{ProjectID: "pr-2"}
	require.NoError(t, svc.CreateSnapshot(ctx, other))

	err := svc.CreateSnapshot(ctx, &domain.ProfitabilitySnapshot{ProjectID: "pr-1", BaselineID: &other.ID})
	assert.Equal(t, errorutil.CodeConflict, errorutil.ToDomainError(err).Code)

	derived := &domain.ProfitabilitySnapshot{ProjectID: "pr-2", BaselineID: &other.ID}
	require.NoError(t, svc.CreateSnapshot(ctx, derived))
	err = svc.CreateSnapshot(ctx, &domain.ProfitabilitySnapshot{ProjectID: "pr-2", BaselineID: &derived.ID})
	assert.Equal(t, "baseline_id does not name a baseline", errorutil.ToDomainError(err).Message)
	assert.Len(t, store.snapshots, 2)
}

func TestProfitability_UnknownProject(t *testing.T) {
	svc, store := newProfitabilityService(t)

	err := svc.CreateSnapshot(context.Background(), &domain.ProfitabilitySnapshot{ProjectID: "pr-404"})
	assert.True(t, errorutil.IsNotFound(err))

	err = svc.CreateSnapshot(context.Background(), &domain.ProfitabilitySnapshot{ProjectID: "  "})
	assert.True(t, errorutil.IsValidation(err))
	assert.Empty(t, store.snapshots)
}
