package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const teamColumns = `project_team_id, project_team_name, project_id, project_phase_id, created_at, last_updated_at`

// TeamRepository manages persistence for project teams and their members.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	Update(ctx context.Context, id string, patch domain.TeamUpdate) (*domain.Team, error)
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Team, error)
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, membership *domain.TeamMembership) error
	ListMembers(ctx context.Context, teamID string) ([]domain.TeamMembership, error)
	RemoveMember(ctx context.Context, membershipID string) error
}

type teamRepository struct {
	db DB
}

// NewTeamRepository constructs repository.
func NewTeamRepository(db DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	const query = `
        INSERT INTO project_teams (project_team_name, project_id, project_phase_id)
        VALUES ($1,$2,$3)
        RETURNING project_team_id, created_at, last_updated_at`
	err := r.db.QueryRow(ctx, query,
		team.Name,
		team.ProjectID,
		team.PhaseID,
	).Scan(&team.ID, &team.CreatedAt, &team.LastUpdatedAt)
	return errorutil.MapError(err, "team")
}

func (r *teamRepository) Update(ctx context.Context, id string, patch domain.TeamUpdate) (*domain.Team, error) {
	u := newUpdate("project_teams", "project_team_id")
	if patch.Name != nil {
		u.set("project_team_name", *patch.Name)
	}
	if patch.PhaseID != nil {
		u.set("project_phase_id", *patch.PhaseID)
	}
	query, args := u.build(id, teamColumns)
	team, err := scanTeam(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, errorutil.MapError(err, "team")
	}
	return team, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	team, err := scanTeam(r.db.QueryRow(ctx, `SELECT `+teamColumns+` FROM project_teams WHERE project_team_id=$1`, id))
	if err != nil {
		return nil, errorutil.MapError(err, "team")
	}
	return team, nil
}

func (r *teamRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Team, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+teamColumns+` FROM project_teams WHERE project_id=$1 ORDER BY project_team_name ASC`, projectID)
	if err != nil {
		return nil, errorutil.MapError(err, "team")
	}
	return collect(rows, "team", scanTeam)
}

func (r *teamRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, "project_teams", "project_team_id", id, "team")
}

func (r *teamRepository) AddMember(ctx context.Context, membership *domain.TeamMembership) error {
	const query = `
        INSERT INTO project_team_memberships (project_team_id, staffer_id)
        VALUES ($1,$2)
        RETURNING project_team_membership_id, created_at, last_updated_at`
	err := r.db.QueryRow(ctx, query, membership.TeamID, membership.StafferID).
		Scan(&membership.ID, &membership.CreatedAt, &membership.LastUpdatedAt)
	return errorutil.MapError(err, "team membership")
}

func (r *teamRepository) ListMembers(ctx context.Context, teamID string) ([]domain.TeamMembership, error) {
	const query = `
        SELECT project_team_membership_id, project_team_id, staffer_id, created_at, last_updated_at
        FROM project_team_memberships WHERE project_team_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, errorutil.MapError(err, "team membership")
	}
	return collect(rows, "team membership", func(row pgx.Row) (*domain.TeamMembership, error) {
		var m domain.TeamMembership
		if err := row.Scan(&m.ID, &m.TeamID, &m.StafferID, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, err
		}
		return &m, nil
	})
}

func (r *teamRepository) RemoveMember(ctx context.Context, membershipID string) error {
	return deleteRow(ctx, r.db, "project_team_memberships", "project_team_membership_id", membershipID, "team membership")
}

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var team domain.Team
	if err := row.Scan(
		&team.ID,
		&team.Name,
		&team.ProjectID,
		&team.PhaseID,
		&team.CreatedAt,
		&team.LastUpdatedAt,
	); err != nil {
		return nil, err
	}
	return &team, nil
}
