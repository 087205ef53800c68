package editsession

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

func TestValidate_TimeOffBoundaries(t *testing.T) {
	start := fixedNow.Add(48 * time.Hour)
	tests := []struct {
		name    string
		entry   domain.TimeOffEntry
		field   string
		message string
	}{
		{"end equals start", domain.TimeOffEntry{StartsAt: start, EndsAt: start, CumulativeHours: 8}, "time_off_end_datetime", "end must be after start"},
		{"end before start", domain.TimeOffEntry{StartsAt: start, EndsAt: start.Add(-time.Hour), CumulativeHours: 8}, "time_off_end_datetime", "end must be after start"},
		{"zero hours", domain.TimeOffEntry{StartsAt: start, EndsAt: start.Add(time.Hour), CumulativeHours: 0}, "time_off_cumulative_hours", "must be greater than 0"},
		{"half an hour", domain.TimeOffEntry{StartsAt: start, EndsAt: start.Add(time.Hour), CumulativeHours: 0.5}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openSession(t, seededStore(), "st-1")
			key, err := s.AddTimeOff(tt.entry)
			require.NoError(t, err)

			err = s.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.True(t, errorutil.IsValidation(err))
			assert.Equal(t, tt.message, errorutil.ToDomainError(err).Details["time_off["+key+"]."+tt.field])
		})
	}
}

func TestValidate_StagedTimeOffUpdateIsChecked(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")
	start := fixedNow.Add(24 * time.Hour)
	require.NoError(t, s.UpdateTimeOff("T1", SetTimeOffRange{Start: start, End: start}))

	err := s.Validate()

	require.True(t, errorutil.IsValidation(err))
	assert.Contains(t, errorutil.ToDomainError(err).Details, "time_off[T1].time_off_end_datetime")
}

func TestValidate_CapacityBoundaries(t *testing.T) {
	tests := []struct {
		hours float64
		ok    bool
	}{
		{0, false},
		{-5, false},
		{168.01, false},
		{168, true},
		{0.01, true},
	}

	for _, tt := range tests {
		s := openSession(t, seededStore(), "st-1")
		require.NoError(t, s.SetProfile(SetCapacity{Hours: tt.hours}))

		err := s.Validate()
		if tt.ok {
			assert.NoError(t, err, "capacity %v", tt.hours)
			continue
		}
		require.True(t, errorutil.IsValidation(err), "capacity %v", tt.hours)
		assert.Contains(t, errorutil.ToDomainError(err).Details, "capacity")
	}
}

func TestValidate_EmailShape(t *testing.T) {
	tests := map[string]bool{
		"ada@example.com":       true,
		"a.b+tag@sub.domain.io": true,
		"not-an-email":          false,
		"ada@example":           false,
		"ada @example.com":      false,
		"@example.com":          false,
	}

	for email, ok := range tests {
		s := openSession(t, seededStore(), "st-1")
		require.NoError(t, s.SetProfile(SetEmail{Email: email}))

		err := s.Validate()
		if ok {
			assert.NoError(t, err, email)
		} else {
			assert.True(t, errorutil.IsValidation(err), email)
		}
	}
}

func TestValidate_CreateModeRequiresProfile(t *testing.T) {
	s := openSession(t, newFakeStore(), "")

	err := s.Validate()

	require.True(t, errorutil.IsValidation(err))
	details := errorutil.ToDomainError(err).Details
	for _, field := range []string{"first_name", "last_name", "email", "title"} {
		assert.Equal(t, "is required", details[field], field)
	}
	assert.Equal(t, "must be greater than 0", details["capacity"])
	assert.NotContains(t, details, "time_zone")
}

func TestValidate_RateMustNotBeNegative(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")
	require.NoError(t, s.SetRate(decimal.RequireFromString("-0.01"), decimal.Zero))

	err := s.Validate()

	require.True(t, errorutil.IsValidation(err))
	details := errorutil.ToDomainError(err).Details
	assert.Equal(t, "must be at least 0", details["rate.cost_rate"])
	assert.NotContains(t, details, "rate.bill_rate")
}

func TestValidate_CertificationDates(t *testing.T) {
	active := fixedNow.AddDate(-1, 0, 0)
	expiry := fixedNow.AddDate(1, 0, 0)

	s := openSession(t, seededStore(), "st-1")
	require.NoError(t, s.UpdateSkill("A", SetCertificationDates{Active: &active, Expiry: &expiry}))
	err := s.Validate()
	require.True(t, errorutil.IsValidation(err))
	assert.Equal(t, "certification dates require a certification skill",
		errorutil.ToDomainError(err).Details["skills[A].certification_active_date"])

	s = openSession(t, seededStore(), "st-1")
	key, err := s.AddSkill(domain.StafferSkill{SkillID: "aws-sa", Status: domain.SkillStatusCertified})
	require.NoError(t, err)
	require.NoError(t, s.UpdateSkill(key, SetCertificationDates{Active: &expiry, Expiry: &active}))
	err = s.Validate()
	require.True(t, errorutil.IsValidation(err))
	assert.Equal(t, "expiry must be after active date",
		errorutil.ToDomainError(err).Details["skills["+key+"].certification_expiry_date"])

	require.NoError(t, s.UpdateSkill(key, SetCertificationDates{Active: &active, Expiry: &expiry}))
	assert.NoError(t, s.Validate())
}

func TestValidate_UnknownSkillStatus(t *testing.T) {
	s := openSession(t, seededStore(), "st-1")
	require.NoError(t, s.UpdateSkill("B", SetSkillStatus{Status: "guru"}))

	err := s.Validate()

	require.True(t, errorutil.IsValidation(err))
	assert.Equal(t, "must be one of learning competent expert certified",
		errorutil.ToDomainError(err).Details["skills[B].status"])
}
