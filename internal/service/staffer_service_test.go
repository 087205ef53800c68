package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

type countingSkillRepo struct {
	skills  []domain.Skill
	lists   int
	unpaged int
	filters []repository.SkillFilter
}

func (r *countingSkillRepo) Create(_ context.Context, skill *domain.Skill) error {
	skill.ID = "sk-new"
	r.skills = append(r.skills, *skill)
	return nil
}

func (r *countingSkillRepo) Update(_ context.Context, id string, patch domain.SkillUpdate) (*domain.Skill, error) {
	for i := range r.skills {
		if r.skills[i].ID == id {
			if patch.Name != nil {
				r.skills[i].Name = *patch.Name
			}
			return &r.skills[i], nil
		}
	}
	return nil, errorutil.NewNotFound("skill", nil)
}

func (r *countingSkillRepo) GetByID(context.Context, string) (*domain.Skill, error) {
	return nil, errorutil.NewNotFound("skill", nil)
}

func (r *countingSkillRepo) List(_ context.Context, filter repository.SkillFilter) ([]domain.Skill, error) {
	r.lists++
	r.filters = append(r.filters, filter)
	return append([]domain.Skill{}, r.skills...), nil
}

func (r *countingSkillRepo) All(context.Context) ([]domain.Skill, error) {
	r.lists++
	r.unpaged++
	return append([]domain.Skill{}, r.skills...), nil
}

func (r *countingSkillRepo) Delete(context.Context, string) error { return nil }

type memCache struct {
	entries map[string][]byte
	loadErr error
}

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (c *memCache) Load(_ context.Context, key string, dst any) (bool, error) {
	if c.loadErr != nil {
		return false, c.loadErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) Store(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memCache) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func newCatalogService(cache Cache) (*StafferService, *countingSkillRepo) {
	repo := &countingSkillRepo{skills: []domain.Skill{{ID: "sk-go", Name: "Go"}}}
	return NewStafferService(StafferDependencies{SkillRepo: repo, Cache: cache}), repo
}

func TestCatalog_ServedFromCacheUntilWrite(t *testing.T) {
	cache := newMemCache()
	svc, repo := newCatalogService(cache)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		skills, err := svc.ListSkills(ctx, repository.SkillFilter{})
		require.NoError(t, err)
		assert.Equal(t, "Go", skills[0].Name)
	}
	assert.Equal(t, 1, repo.lists)

	require.NoError(t, svc.CreateSkill(ctx, &domain.Skill{Name: "  Kubernetes "}))
	assert.Empty(t, cache.entries)

	skills, err := svc.Catalog(ctx)
	require.NoError(t, err)
	assert.Len(t, skills, 2)
	assert.Equal(t, "Kubernetes", skills[1].Name)
	assert.Equal(t, 2, repo.lists)
}

func TestCatalog_CacheFailureFallsBackToStore(t *testing.T) {
	cache := newMemCache()
	cache.loadErr = errors.New("redis: connection refused")
	svc, repo := newCatalogService(cache)

	skills, err := svc.Catalog(context.Background())

	require.NoError(t, err)
	assert.Len(t, skills, 1)
	assert.Equal(t, 1, repo.lists)
}

func TestListSkills_FilteredReadsBypassCache(t *testing.T) {
	svc, repo := newCatalogService(newMemCache())

	_, err := svc.ListSkills(context.Background(), repository.SkillFilter{Search: "go"})
	require.NoError(t, err)
	_, err = svc.ListSkills(context.Background(), repository.SkillFilter{Search: "go"})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.lists)
	assert.Equal(t, "go", repo.filters[1].Search)
}

func TestCatalog_NilCache(t *testing.T) {
	svc, repo := newCatalogService(nil)

	_, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	_, err = svc.Catalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.lists)
}

func TestSkillWrites_RequireName(t *testing.T) {
	svc, repo := newCatalogService(newMemCache())
	blank := "   "

	err := svc.CreateSkill(context.Background(), &domain.Skill{Name: blank})
	assert.True(t, errorutil.IsValidation(err))

	_, err = svc.UpdateSkill(context.Background(), "sk-go", domain.SkillUpdate{Name: &blank})
	assert.True(t, errorutil.IsValidation(err))
	assert.Len(t, repo.skills, 1)
}

func TestCatalog_ReadsWholeCatalogUnpaged(t *testing.T) {
	svc, repo := newCatalogService(nil)
	for i := 0; i < 620; i++ {
		repo.skills = append(repo.skills, domain.Skill{ID: fmt.Sprintf("sk-%d", i), Name: fmt.Sprintf("Skill %d", i)})
	}

	skills, err := svc.Catalog(context.Background())

	require.NoError(t, err)
	assert.Len(t, skills, 621)
	assert.Equal(t, 1, repo.unpaged)
	assert.Empty(t, repo.filters)
}
