package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const skillColumns = `skill_id, skill_name, skill_description, is_certification, created_at, last_updated_at`

var (
	skillOrderColumns = map[string]bool{"skill_name": true, "created_at": true}
	defaultSkillOrder = Order{Column: "skill_name"}
)

// SkillRepository manages the skill catalog.
type SkillRepository interface {
	Create(ctx context.Context, skill *domain.Skill) error
	Update(ctx context.Context, id string, patch domain.SkillUpdate) (*domain.Skill, error)
	GetByID(ctx context.Context, id string) (*domain.Skill, error)
	List(ctx context.Context, filter SkillFilter) ([]domain.Skill, error)
	// All returns the whole catalog without paging.
	All(ctx context.Context) ([]domain.Skill, error)
	Delete(ctx context.Context, id string) error
}

// SkillFilter defines query params for the catalog.
type SkillFilter struct {
	Search            string
	CertificationOnly bool
	Order             Order
	Page              Page
}

type skillRepository struct {
	db DB
}

// NewSkillRepository builds the repository.
func NewSkillRepository(db DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, skill *domain.Skill) error {
	const query = `
        INSERT INTO skills (skill_name, skill_description, is_certification)
        VALUES ($1,$2,$3)
        RETURNING skill_id, created_at, last_updated_at`
	err := r.db.QueryRow(ctx, query,
		skill.Name,
		skill.Description,
		skill.IsCertification,
	).Scan(&skill.ID, &skill.CreatedAt, &skill.LastUpdatedAt)
	return errorutil.MapError(err, "skill")
}

func (r *skillRepository) Update(ctx context.Context, id string, patch domain.SkillUpdate) (*domain.Skill, error) {
	u := newUpdate("skills", "skill_id")
	if patch.Name != nil {
		u.set("skill_name", *patch.Name)
	}
	if patch.Description != nil {
		u.set("skill_description", *patch.Description)
	}
	if patch.IsCertification != nil {
		u.set("is_certification", *patch.IsCertification)
	}
	query, args := u.build(id, skillColumns)
	skill, err := scanSkill(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, errorutil.MapError(err, "skill")
	}
	return skill, nil
}

func (r *skillRepository) GetByID(ctx context.Context, id string) (*domain.Skill, error) {
	skill, err := scanSkill(r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE skill_id=$1`, id))
	if err != nil {
		return nil, errorutil.MapError(err, "skill")
	}
	return skill, nil
}

func (r *skillRepository) List(ctx context.Context, filter SkillFilter) ([]domain.Skill, error) {
	q := newSelect(`SELECT ` + skillColumns + ` FROM skills`)
	if filter.CertificationOnly {
		q.eq("is_certification", true)
	}
	q.search(filter.Search, "skill_name", "skill_description")

	page := filter.Page
	if page.Limit <= 0 {
		page.Limit = maxLimit
	}
	query, args := q.build(filter.Order.clause(skillOrderColumns, defaultSkillOrder), page.clause())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errorutil.MapError(err, "skill")
	}
	return collect(rows, "skill", scanSkill)
}

func (r *skillRepository) All(ctx context.Context) ([]domain.Skill, error) {
	query, args := newSelect(`SELECT `+skillColumns+` FROM skills`).build(defaultSkillOrder.clause(skillOrderColumns, defaultSkillOrder), "")
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errorutil.MapError(err, "skill")
	}
	return collect(rows, "skill", scanSkill)
}

func (r *skillRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, "skills", "skill_id", id, "skill")
}

func scanSkill(row pgx.Row) (*domain.Skill, error) {
	var skill domain.Skill
	if err := row.Scan(
		&skill.ID,
		&skill.Name,
		&skill.Description,
		&skill.IsCertification,
		&skill.CreatedAt,
		&skill.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	return &skill, nil
}
