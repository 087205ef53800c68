package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StafferRate holds the hourly cost and bill rate of a staffer. A staffer has at most one.
type StafferRate struct {
	ID            string
	StafferID     string
	CostRate      decimal.Decimal
	BillRate      decimal.Decimal
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

// Margin is the bill rate minus the cost rate.
func (r StafferRate) Margin() decimal.Decimal {
	return r.BillRate.Sub(r.CostRate)
}

// StafferRateUpdate patches a rate; nil fields are left untouched.
type StafferRateUpdate struct {
	CostRate *decimal.Decimal
	BillRate *decimal.Decimal
}

// IsEmpty reports whether the patch touches no column.
func (u StafferRateUpdate) IsEmpty() bool {
	return u.CostRate == nil && u.BillRate == nil
}

// Apply copies the patched fields onto r.
func (u StafferRateUpdate) Apply(r *StafferRate) {
	if u.CostRate != nil {
		r.CostRate = *u.CostRate
	}
	if u.BillRate != nil {
		r.BillRate = *u.BillRate
	}
}
