package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch ptr := d.(type) {
		case *string:
			*ptr = r.values[i].(string)
		case *time.Time:
			*ptr = r.values[i].(time.Time)
		}
	}
	return nil
}

type fakeDB struct {
	execTag  pgconn.CommandTag
	execErr  error
	row      fakeRow
	queryErr error

	lastSQL  string
	lastArgs []any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return f.execTag, f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	return nil, f.queryErr
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}

func TestDelete_NothingRemovedIsNotFound(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 0")}

	err := NewStafferSkillRepository(db).Delete(context.Background(), "ss-1")

	require.Error(t, err)
	assert.True(t, errorutil.IsNotFound(err))
	assert.Equal(t, "DELETE FROM staffer_skills WHERE staffer_skill_id=$1", db.lastSQL)
}

func TestDelete_RemovedRow(t *testing.T) {
	db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 1")}

	assert.NoError(t, NewTimeOffRepository(db).Delete(context.Background(), "to-1"))
}

func TestGetByID_NoRowsIsNotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}

	staffer, err := NewStafferRepository(db).GetByID(context.Background(), "missing")

	assert.Nil(t, staffer)
	assert.True(t, errorutil.IsNotFound(err))
	assert.Equal(t, "staffer not found", errorutil.ToDomainError(err).Message)
}

func TestRateGetByStaffer_NoRowsIsNil(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}

	rate, err := NewRateRepository(db).GetByStaffer(context.Background(), "st-1")

	assert.NoError(t, err)
	assert.Nil(t, rate)
}

func TestList_QueryFailureIsAccessError(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("permission denied for table skills")}

	skills, err := NewSkillRepository(db).List(context.Background(), SkillFilter{Search: "go"})

	assert.Nil(t, skills)
	de := errorutil.ToDomainError(err)
	assert.Equal(t, errorutil.CodeAccess, de.Code)
	assert.Equal(t, "permission denied for table skills", de.Message)
	assert.Equal(t, []any{"%go%"}, db.lastArgs)
}

func TestCreate_ScansServerAssignedFields(t *testing.T) {
	stamp := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	db := &fakeDB{row: fakeRow{values: []any{"to-42", stamp, stamp}}}
	entry := &domain.TimeOffEntry{
		StafferID:       "st-1",
		StartsAt:        stamp,
		EndsAt:          stamp.Add(8 * time.Hour),
		CumulativeHours: 8,
	}

	require.NoError(t, NewTimeOffRepository(db).Create(context.Background(), entry))

	assert.Equal(t, "to-42", entry.ID)
	assert.Equal(t, stamp, entry.CreatedAt)
	assert.Equal(t, stamp, entry.LastUpdatedAt)
}

func TestStafferUpdate_OnlyPatchedColumns(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	capacity := 32.0

	_, err := NewStafferRepository(db).Update(context.Background(), "st-1", domain.StafferUpdate{Capacity: &capacity})

	assert.True(t, errorutil.IsNotFound(err))
	assert.Contains(t, db.lastSQL, "SET capacity=$1, last_updated_at=NOW() WHERE id=$2")
	assert.Equal(t, []any{32.0, "st-1"}, db.lastArgs)
}

func TestSkillAll_HasNoLimit(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("connection reset")}

	_, err := NewSkillRepository(db).All(context.Background())

	require.Error(t, err)
	assert.Equal(t, "SELECT "+skillColumns+" FROM skills ORDER BY skill_name ASC", db.lastSQL)
	assert.NotContains(t, db.lastSQL, "LIMIT")
	assert.Empty(t, db.lastArgs)
}

func TestProjectList_OverdueExcludesClosedStatuses(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("boom")}
	cutoff := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewProjectRepository(db).List(context.Background(), ProjectFilter{
		ExcludeStatuses: []domain.ProjectStatus{domain.ProjectStatusCompleted, domain.ProjectStatusCancelled},
		DueBefore:       &cutoff,
		Order:           Order{Column: "project_due_date"},
	})

	require.Error(t, err)
	assert.Contains(t, db.lastSQL, "WHERE project_status NOT IN ($1,$2) AND project_due_date < $3 ORDER BY project_due_date ASC")
	assert.Equal(t, []any{domain.ProjectStatusCompleted, domain.ProjectStatusCancelled, cutoff}, db.lastArgs)
}

func TestProjectList_DateRange(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	db := &fakeDB{queryErr: errors.New("boom")}
	_, _ = NewProjectRepository(db).List(context.Background(), ProjectFilter{
		Range: &DateRange{Column: "project_start_date", From: &from, To: &to},
	})
	assert.Contains(t, db.lastSQL, "WHERE project_start_date >= $1 AND project_start_date <= $2")
	assert.Equal(t, []any{from, to}, db.lastArgs)

	db = &fakeDB{queryErr: errors.New("boom")}
	_, _ = NewProjectRepository(db).List(context.Background(), ProjectFilter{
		Range: &DateRange{Column: "client_id", From: &from},
	})
	assert.NotContains(t, db.lastSQL, "WHERE")
	assert.Empty(t, db.lastArgs)
}

func TestTaskList_OverdueForProject(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("boom")}
	projectID := "pr-1"
	cutoff := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, _ = NewTaskRepository(db).List(context.Background(), TaskFilter{
		ProjectID:       &projectID,
		ExcludeStatuses: []domain.TaskStatus{domain.TaskStatusCompleted},
		DueBefore:       &cutoff,
	})

	assert.Contains(t, db.lastSQL, "WHERE project_id=$1 AND project_task_status NOT IN ($2) AND project_task_due_date < $3")
	assert.Equal(t, []any{"pr-1", domain.TaskStatusCompleted, cutoff}, db.lastArgs)
}

func TestProfitability_MissingBaselineIsNotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}

	snapshot, err := NewProfitabilityRepository(db).LatestBaseline(context.Background(), "pr-1")

	assert.Nil(t, snapshot)
	assert.True(t, errorutil.IsNotFound(err))
	assert.Equal(t, "profitability baseline not found", errorutil.ToDomainError(err).Message)
	assert.Contains(t, db.lastSQL, "baseline_id IS NULL ORDER BY created_at DESC LIMIT 1")
	assert.Equal(t, []any{"pr-1"}, db.lastArgs)
}

func TestProfitability_CreateScansAssignedID(t *testing.T) {
	stamp := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	db := &fakeDB{row: fakeRow{values: []any{"ps-7", stamp}}}
	snapshot := &domain.ProfitabilitySnapshot{ProjectID: "pr-1"}

	require.NoError(t, NewProfitabilityRepository(db).Create(context.Background(), snapshot))

	assert.Equal(t, "ps-7", snapshot.ID)
	assert.Equal(t, stamp, snapshot.CreatedAt)
	assert.Contains(t, db.lastSQL, "INSERT INTO project_profitability_snapshots")
}

func TestProfitability_MarginQueryFailureIsAccessError(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: errors.New("connection reset by peer")}}

	total, err := NewProfitabilityRepository(db).ProjectMargin(context.Background(), "pr-1")

	assert.True(t, total.IsZero())
	assert.Equal(t, errorutil.CodeAccess, errorutil.ToDomainError(err).Code)
	assert.Contains(t, db.lastSQL, "COALESCE(t.actual_hours, t.estimated_hours, 0)")
}
