package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitabilitySnapshot records a project's total profitability at one moment.
// A snapshot without a BaselineID is itself a baseline.
type ProfitabilitySnapshot struct {
	ID                 string
	ProjectID          string
	BaselineID         *string
	TotalProfitability decimal.Decimal
	TriggeredByAgent   *string
	TriggeredByAction  *string
	CreatedAt          time.Time
}

// IsBaseline reports whether later snapshots are compared against s.
func (s ProfitabilitySnapshot) IsBaseline() bool {
	return s.BaselineID == nil
}

// ProfitabilityDelta compares a snapshot with its project's baseline.
type ProfitabilityDelta struct {
	Current  decimal.Decimal
	Baseline decimal.Decimal
	Change   decimal.Decimal
	// ChangePercent is relative to the baseline's magnitude; nil when the baseline is zero.
	ChangePercent *decimal.Decimal
	IsImprovement bool
}

var hundred = decimal.NewFromInt(100)

// NewProfitabilityDelta computes the change from baseline to current.
func NewProfitabilityDelta(current, baseline decimal.Decimal) ProfitabilityDelta {
	change := current.Sub(baseline)
	delta := ProfitabilityDelta{
		Current:       current,
		Baseline:      baseline,
		Change:        change,
		IsImprovement: change.IsPositive(),
	}
	if !baseline.IsZero() {
		pct := change.Div(baseline.Abs()).Mul(hundred).Round(2)
		delta.ChangePercent = &pct
	}
	return delta
}
