package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfitabilityDelta(t *testing.T) {
	d := func(v string) decimal.Decimal { return decimal.RequireFromString(v) }

	tests := []struct {
		name     string
		current  decimal.Decimal
		baseline decimal.Decimal
		change   string
		percent  string
		improved bool
	}{
		{"growth", d("1500"), d("1200"), "300", "25", true},
		{"decline", d("900"), d("1200"), "-300", "-25", false},
		{"flat", d("1200"), d("1200"), "0", "0", false},
		{"recovering from a loss", d("-50"), d("-200"), "150", "75", true},
		{"thirds round to cents", d("400"), d("300"), "100", "33.33", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := NewProfitabilityDelta(tt.current, tt.baseline)

			assert.True(t, d(tt.change).Equal(delta.Change), delta.Change.String())
			require.NotNil(t, delta.ChangePercent)
			assert.True(t, d(tt.percent).Equal(*delta.ChangePercent), delta.ChangePercent.String())
			assert.Equal(t, tt.improved, delta.IsImprovement)
		})
	}
}

func TestNewProfitabilityDelta_ZeroBaselineHasNoPercent(t *testing.T) {
	delta := NewProfitabilityDelta(decimal.NewFromInt(250), decimal.Zero)

	assert.Nil(t, delta.ChangePercent)
	assert.True(t, delta.IsImprovement)
	assert.True(t, decimal.NewFromInt(250).Equal(delta.Change))
}

func TestProfitabilitySnapshot_IsBaseline(t *testing.T) {
	baseline := "ps-1"

	assert.True(t, ProfitabilitySnapshot{ID: baseline}.IsBaseline())
	assert.False(t, ProfitabilitySnapshot{ID: "ps-2", BaselineID: &baseline}.IsBaseline())
}
