package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// ProfitabilityService records project profitability snapshots and compares them with baselines.
type ProfitabilityService struct {
	snapshots repository.ProfitabilityRepository
	projects  repository.ProjectRepository
	logger    *zap.Logger
}

// NewProfitabilityService constructs the service.
func NewProfitabilityService(snapshots repository.ProfitabilityRepository, projects repository.ProjectRepository, logger *zap.Logger) *ProfitabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfitabilityService{snapshots: snapshots, projects: projects, logger: logger}
}

// GetSnapshot fetches one snapshot.
func (s *ProfitabilityService) GetSnapshot(ctx context.Context, id string) (*domain.ProfitabilitySnapshot, error) {
	return s.snapshots.GetByID(ctx, id)
}

// CreateSnapshot computes the project's current profitability and stores it.
// Without a BaselineID the snapshot becomes the project's newest baseline; a
// given BaselineID must name a baseline of the same project.
func (s *ProfitabilityService) CreateSnapshot(ctx context.Context, snapshot *domain.ProfitabilitySnapshot) error {
	snapshot.ProjectID = strings.TrimSpace(snapshot.ProjectID)
	if snapshot.ProjectID == "" {
		return errorutil.NewFieldValidationError(map[string]string{"project_id": "is required"})
	}
	if _, err := s.projects.GetByID(ctx, snapshot.ProjectID); err != nil {
		return err
	}
	if snapshot.BaselineID != nil {
		baseline, err := s.snapshots.GetByID(ctx, *snapshot.BaselineID)
		if err != nil {
			return err
		}
		if baseline.ProjectID != snapshot.ProjectID {
			return errorutil.NewConflict("baseline belongs to another project", map[string]any{"baseline_id": baseline.ID})
		}
		if !baseline.IsBaseline() {
			return errorutil.NewConflict("baseline_id does not name a baseline", map[string]any{"baseline_id": baseline.ID})
		}
	}

	total, err := s.snapshots.ProjectMargin(ctx, snapshot.ProjectID)
	if err != nil {
		return err
	}
	snapshot.TotalProfitability = total
	if err := s.snapshots.Create(ctx, snapshot); err != nil {
		return err
	}
	s.logger.Info("profitability snapshot recorded",
		zap.String("snapshot_id", snapshot.ID),
		zap.String("project_id", snapshot.ProjectID),
		zap.Bool("baseline", snapshot.IsBaseline()),
		zap.String("total", total.StringFixed(2)))
	return nil
}

// LatestBaseline returns the project's newest baseline.
func (s *ProfitabilityService) LatestBaseline(ctx context.Context, projectID string) (*domain.ProfitabilitySnapshot, error) {
	return s.snapshots.LatestBaseline(ctx, projectID)
}

// LatestSnapshot returns the project's newest snapshot of either kind.
func (s *ProfitabilityService) LatestSnapshot(ctx context.Context, projectID string) (*domain.ProfitabilitySnapshot, error) {
	return s.snapshots.Latest(ctx, projectID)
}

// ListSnapshots lists a project's snapshots, newest first.
func (s *ProfitabilityService) ListSnapshots(ctx context.Context, projectID string, page repository.Page) ([]domain.ProfitabilitySnapshot, error) {
	return s.snapshots.List(ctx, projectID, page)
}

// ChangeSinceBaseline compares a snapshot with its project's newest baseline.
func (s *ProfitabilityService) ChangeSinceBaseline(ctx context.Context, snapshotID string) (*domain.ProfitabilityDelta, error) {
	current, err := s.snapshots.GetByID(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	baseline, err := s.snapshots.LatestBaseline(ctx, current.ProjectID)
	if err != nil {
		return nil, err
	}
	delta := domain.NewProfitabilityDelta(current.TotalProfitability, baseline.TotalProfitability)
	return &delta, nil
}
