package editsession

import (
	"context"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// StafferStore persists staffer profiles.
type StafferStore interface {
	GetByID(ctx context.Context, id string) (*domain.Staffer, error)
	Create(ctx context.Context, staffer *domain.Staffer) error
	Update(ctx context.Context, id string, patch domain.StafferUpdate) (*domain.Staffer, error)
}

// SkillStore persists a staffer's skill links.
type SkillStore interface {
	ListByStaffer(ctx context.Context, stafferID string) ([]domain.StafferSkill, error)
	Create(ctx context.Context, link *domain.StafferSkill) error
	Update(ctx context.Context, id string, patch domain.StafferSkillUpdate) (*domain.StafferSkill, error)
	Delete(ctx context.Context, id string) error
}

// RateStore persists the single rate of a staffer.
type RateStore interface {
	GetByStaffer(ctx context.Context, stafferID string) (*domain.StafferRate, error)
	Create(ctx context.Context, rate *domain.StafferRate) error
	Update(ctx context.Context, id string, patch domain.StafferRateUpdate) (*domain.StafferRate, error)
	Delete(ctx context.Context, id string) error
}

// TimeOffStore persists a staffer's leave.
type TimeOffStore interface {
	ListByStaffer(ctx context.Context, stafferID string) ([]domain.TimeOffEntry, error)
	Create(ctx context.Context, entry *domain.TimeOffEntry) error
	Update(ctx context.Context, id string, patch domain.TimeOffUpdate) (*domain.TimeOffEntry, error)
	Delete(ctx context.Context, id string) error
}

// SkillCatalog lists every skill a staffer can be linked to.
type SkillCatalog interface {
	Catalog(ctx context.Context) ([]domain.Skill, error)
}

// Stores bundles the collaborators a session reads from and commits to.
type Stores struct {
	Staffers StafferStore
	Skills   SkillStore
	Rates    RateStore
	TimeOff  TimeOffStore
	Catalog  SkillCatalog
}
