package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const skillCatalogKey = "skills:catalog"

// Cache is a read-through store for JSON-encodable values.
type Cache interface {
	Load(ctx context.Context, key string, dst any) (bool, error)
	Store(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// StafferService manages staffers, seniorities and the skill catalog.
type StafferService struct {
	staffers    repository.StafferRepository
	seniorities repository.SeniorityRepository
	skills      repository.SkillRepository
	cache       Cache
	logger      *zap.Logger
}

// StafferDependencies encapsulates repositories required for staffer management.
type StafferDependencies struct {
	StafferRepo   repository.StafferRepository
	SeniorityRepo repository.SeniorityRepository
	SkillRepo     repository.SkillRepository
	// Cache is optional; a nil cache reads the catalog straight from the store.
	Cache  Cache
	Logger *zap.Logger
}

// NewStafferService constructs the service.
func NewStafferService(deps StafferDependencies) *StafferService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StafferService{
		staffers:    deps.StafferRepo,
		seniorities: deps.SeniorityRepo,
		skills:      deps.SkillRepo,
		cache:       deps.Cache,
		logger:      logger,
	}
}

// ListStaffers lists staffers, optionally matching a name fragment.
func (s *StafferService) ListStaffers(ctx context.Context, filter repository.StafferFilter) ([]domain.Staffer, error) {
	return s.staffers.List(ctx, filter)
}

// GetStaffer fetches a staffer.
func (s *StafferService) GetStaffer(ctx context.Context, id string) (*domain.Staffer, error) {
	return s.staffers.GetByID(ctx, id)
}

// DeleteStaffer removes a staffer.
func (s *StafferService) DeleteStaffer(ctx context.Context, id string) error {
	return s.staffers.Delete(ctx, id)
}

// ListSeniorities returns the seniority ladder.
func (s *StafferService) ListSeniorities(ctx context.Context) ([]domain.Seniority, error) {
	return s.seniorities.List(ctx)
}

// ListSkills searches the catalog. An unfiltered read is served from the cache.
func (s *StafferService) ListSkills(ctx context.Context, filter repository.SkillFilter) ([]domain.Skill, error) {
	if strings.TrimSpace(filter.Search) == "" && !filter.CertificationOnly && filter.Page == (repository.Page{}) {
		return s.Catalog(ctx)
	}
	return s.skills.List(ctx, filter)
}

// Catalog returns every skill, unpaged, read through the cache.
func (s *StafferService) Catalog(ctx context.Context) ([]domain.Skill, error) {
	if cached, ok := s.cachedCatalog(ctx); ok {
		return cached, nil
	}
	skills, err := s.skills.All(ctx)
	if err != nil {
		return nil, err
	}
	s.storeCatalog(ctx, skills)
	return skills, nil
}

// CreateSkill adds a catalog entry.
func (s *StafferService) CreateSkill(ctx context.Context, skill *domain.Skill) error {
	skill.Name = strings.TrimSpace(skill.Name)
	if skill.Name == "" {
		return errorutil.NewFieldValidationError(map[string]string{"skill_name": "is required"})
	}
	if err := s.skills.Create(ctx, skill); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// UpdateSkill patches a catalog entry.
func (s *StafferService) UpdateSkill(ctx context.Context, id string, patch domain.SkillUpdate) (*domain.Skill, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, errorutil.NewFieldValidationError(map[string]string{"skill_name": "is required"})
	}
	skill, err := s.skills.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return skill, nil
}

// DeleteSkill removes a catalog entry.
func (s *StafferService) DeleteSkill(ctx context.Context, id string) error {
	if err := s.skills.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *StafferService) cachedCatalog(ctx context.Context) ([]domain.Skill, bool) {
	if s.cache == nil {
		return nil, false
	}
	var skills []domain.Skill
	hit, err := s.cache.Load(ctx, skillCatalogKey, &skills)
	if err != nil {
		s.logger.Warn("skill cache read failed", zap.Error(err))
		return nil, false
	}
	return skills, hit
}

func (s *StafferService) storeCatalog(ctx context.Context, skills []domain.Skill) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Store(ctx, skillCatalogKey, skills); err != nil {
		s.logger.Warn("skill cache write failed", zap.Error(err))
	}
}

func (s *StafferService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, skillCatalogKey); err != nil {
		s.logger.Warn("skill cache invalidation failed", zap.Error(err))
	}
}
