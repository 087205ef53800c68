package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const stafferSkillColumns = `staffer_skill_id, staffer_id, skill_id, status, certification_active_date, certification_expiry_date, created_at, last_updated_at`

// StafferSkillRepository links staffers to catalog skills.
type StafferSkillRepository interface {
	Create(ctx context.Context, link *domain.StafferSkill) error
	Update(ctx context.Context, id string, patch domain.StafferSkillUpdate) (*domain.StafferSkill, error)
	ListByStaffer(ctx context.Context, stafferID string) ([]domain.StafferSkill, error)
	Delete(ctx context.Context, id string) error
}

type stafferSkillRepository struct {
	db DB
}

// NewStafferSkillRepository builds the repository.
func NewStafferSkillRepository(db DB) StafferSkillRepository {
	return &stafferSkillRepository{db: db}
}

func (r *stafferSkillRepository) Create(ctx context.Context, link *domain.StafferSkill) error {
	const query = `
        INSERT INTO staffer_skills (staffer_id, skill_id, status, certification_active_date, certification_expiry_date)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING staffer_skill_id, created_at, last_updated_at`
	err := r.db.QueryRow(ctx, query,
		link.StafferID,
		link.SkillID,
		link.Status,
		link.CertificationActiveDate,
		link.CertificationExpiryDate,
	).Scan(&link.ID, &link.CreatedAt, &link.LastUpdatedAt)
	return errorutil.MapError(err, "staffer skill")
}

func (r *stafferSkillRepository) Update(ctx context.Context, id string, patch domain.StafferSkillUpdate) (*domain.StafferSkill, error) {
	u := newUpdate("staffer_skills", "staffer_skill_id")
	if patch.Status != nil {
		u.set("status", *patch.Status)
	}
	if patch.CertificationActiveDate != nil {
		u.set("certification_active_date", *patch.CertificationActiveDate)
	}
	if patch.CertificationExpiryDate != nil {
		u.set("certification_expiry_date", *patch.CertificationExpiryDate)
	}
	query, args := u.build(id, stafferSkillColumns)
	link, err := scanStafferSkill(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, errorutil.MapError(err, "staffer skill")
	}
	return link, nil
}

func (r *stafferSkillRepository) ListByStaffer(ctx context.Context, stafferID string) ([]domain.StafferSkill, error) {
	const query = `
        SELECT ss.staffer_skill_id, ss.staffer_id, ss.skill_id, ss.status,
               ss.certification_active_date, ss.certification_expiry_date, ss.created_at, ss.last_updated_at,
               s.skill_name, s.skill_description, s.is_certification
        FROM staffer_skills ss
        JOIN skills s ON s.skill_id = ss.skill_id
        WHERE ss.staffer_id=$1
        ORDER BY s.skill_name ASC`
	rows, err := r.db.Query(ctx, query, stafferID)
	if err != nil {
		return nil, errorutil.MapError(err, "staffer skill")
	}
	return collect(rows, "staffer skill", func(row pgx.Row) (*domain.StafferSkill, error) {
		var link domain.StafferSkill
		var skill domain.Skill
		if err := row.Scan(
			&link.ID,
			&link.StafferID,
			&link.SkillID,
			&link.Status,
			&link.CertificationActiveDate,
			&link.CertificationExpiryDate,
			&link.CreatedAt,
			&link.LastUpdatedAt,
			&skill.Name,
			&skill.Description,
			&skill.IsCertification,
		); err != nil {
			return nil, err
		}
		skill.ID = link.SkillID
		link.Skill = &skill
		return &link, nil
	})
}

func (r *stafferSkillRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, "staffer_skills", "staffer_skill_id", id, "staffer skill")
}

func scanStafferSkill(row pgx.Row) (*domain.StafferSkill, error) {
	var link domain.StafferSkill
	if err := row.Scan(
		&link.ID,
		&link.StafferID,
		&link.SkillID,
		&link.Status,
		&link.CertificationActiveDate,
		&link.CertificationExpiryDate,
		&link.CreatedAt,
		&link.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	return &link, nil
}
