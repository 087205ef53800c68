package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/service"
)

// ProfitabilityHandler exposes project profitability snapshots.
type ProfitabilityHandler struct {
	profitability *service.ProfitabilityService
}

// NewProfitabilityHandler constructs handler.
func NewProfitabilityHandler(profitability *service.ProfitabilityService) *ProfitabilityHandler {
	return &ProfitabilityHandler{profitability: profitability}
}

// CreateSnapshot handles POST /projects/:projectID/profitability.
func (h *ProfitabilityHandler) CreateSnapshot(c *fiber.Ctx) error {
	var req dto.SnapshotRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}
	snapshot := &domain.ProfitabilitySnapshot{
		ProjectID:         c.Params("projectID"),
		BaselineID:        req.BaselineID,
		TriggeredByAgent:  req.TriggeredByAgent,
		TriggeredByAction: req.TriggeredByAction,
	}
	if err := h.profitability.CreateSnapshot(c.UserContext(), snapshot); err != nil {
		return err
	}
	return data(c, http.StatusCreated, snapshotResponse(*snapshot))
}

// ListSnapshots handles GET /projects/:projectID/profitability.
func (h *ProfitabilityHandler) ListSnapshots(c *fiber.Ctx) error {
	_, page := listOptions(c)
	snapshots, err := h.profitability.ListSnapshots(c.UserContext(), c.Params("projectID"), page)
	if err != nil {
		return err
	}
	out := make([]dto.SnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, snapshotResponse(s))
	}
	return data(c, http.StatusOK, out)
}

// LatestBaseline handles GET /projects/:projectID/profitability/baseline.
func (h *ProfitabilityHandler) LatestBaseline(c *fiber.Ctx) error {
	snapshot, err := h.profitability.LatestBaseline(c.UserContext(), c.Params("projectID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, snapshotResponse(*snapshot))
}

// LatestSnapshot handles GET /projects/:projectID/profitability/latest.
func (h *ProfitabilityHandler) LatestSnapshot(c *fiber.Ctx) error {
	snapshot, err := h.profitability.LatestSnapshot(c.UserContext(), c.Params("projectID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, snapshotResponse(*snapshot))
}

// GetSnapshot handles GET /profitability-snapshots/:snapshotID.
func (h *ProfitabilityHandler) GetSnapshot(c *fiber.Ctx) error {
	snapshot, err := h.profitability.GetSnapshot(c.UserContext(), c.Params("snapshotID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, snapshotResponse(*snapshot))
}

// ChangeSinceBaseline handles GET /profitability-snapshots/:snapshotID/change.
func (h *ProfitabilityHandler) ChangeSinceBaseline(c *fiber.Ctx) error {
	delta, err := h.profitability.ChangeSinceBaseline(c.UserContext(), c.Params("snapshotID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.DeltaResponse{
		CurrentProfitability:  delta.Current,
		BaselineProfitability: delta.Baseline,
		ChangeAmount:          delta.Change,
		ChangePercentage:      delta.ChangePercent,
		IsImprovement:         delta.IsImprovement,
	})
}

func snapshotResponse(s domain.ProfitabilitySnapshot) dto.SnapshotResponse {
	return dto.SnapshotResponse{
		ID:                 s.ID,
		ProjectID:          s.ProjectID,
		BaselineID:         s.BaselineID,
		TotalProfitability: s.TotalProfitability,
		TriggeredByAgent:   s.TriggeredByAgent,
		TriggeredByAction:  s.TriggeredByAction,
		CreatedAt:          s.CreatedAt,
	}
}
