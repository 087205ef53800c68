package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotRequest payload; without baseline_id the snapshot is recorded as a baseline.
type SnapshotRequest struct {
	BaselineID        *string `json:"baseline_id" validate:"omitempty,min=1"`
	TriggeredByAgent  *string `json:"triggered_by_agent"`
	TriggeredByAction *string `json:"triggered_by_action"`
}

// SnapshotResponse represents a profitability snapshot.
type SnapshotResponse struct {
	ID                 string          `json:"id"`
	ProjectID          string          `json:"project_id"`
	BaselineID         *string         `json:"baseline_id"`
	TotalProfitability decimal.Decimal `json:"total_profitability"`
	TriggeredByAgent   *string         `json:"triggered_by_agent"`
	TriggeredByAction  *string         `json:"triggered_by_action"`
	CreatedAt          time.Time       `json:"created_at"`
}

// DeltaResponse compares a snapshot with its project's baseline.
type DeltaResponse struct {
	CurrentProfitability  decimal.Decimal  `json:"current_profitability"`
	BaselineProfitability decimal.Decimal  `json:"baseline_profitability"`
	ChangeAmount          decimal.Decimal  `json:"change_amount"`
	ChangePercentage      *decimal.Decimal `json:"change_percentage"`
	IsImprovement         bool             `json:"is_improvement"`
}
