package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/service"
)

// StafferHandler exposes staffer reads, the skill catalog and time off.
type StafferHandler struct {
	staffers *service.StafferService
	timeOff  *service.TimeOffService
}

// NewStafferHandler constructs handler.
func NewStafferHandler(staffers *service.StafferService, timeOff *service.TimeOffService) *StafferHandler {
	return &StafferHandler{staffers: staffers, timeOff: timeOff}
}

// ListStaffers handles GET /staffers?q=&seniority_id=.
func (h *StafferHandler) ListStaffers(c *fiber.Ctx) error {
	order, page := listOptions(c)
	staffers, err := h.staffers.ListStaffers(c.UserContext(), repository.StafferFilter{
		Name:        c.Query("q"),
		SeniorityID: optionalQuery(c, "seniority_id"),
		Order:       order,
		Page:        page,
	})
	if err != nil {
		return err
	}
	out := make([]dto.StafferResponse, 0, len(staffers))
	for _, s := range staffers {
		out = append(out, stafferResponse(s))
	}
	return data(c, http.StatusOK, out)
}

// GetStaffer handles GET /staffers/:stafferID.
func (h *StafferHandler) GetStaffer(c *fiber.Ctx) error {
	staffer, err := h.staffers.GetStaffer(c.UserContext(), c.Params("stafferID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, stafferResponse(*staffer))
}

// DeleteStaffer handles DELETE /staffers/:stafferID.
func (h *StafferHandler) DeleteStaffer(c *fiber.Ctx) error {
	if err := h.staffers.DeleteStaffer(c.UserContext(), c.Params("stafferID")); err != nil {
		return err
	}
	return noContent(c)
}

// ListTimeOff handles GET /staffers/:stafferID/time-off, grouped by phase.
func (h *StafferHandler) ListTimeOff(c *fiber.Ctx) error {
	partition, err := h.timeOff.Partition(c.UserContext(), c.Params("stafferID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.TimeOffPartitionResponse{
		Past:     timeOffGroup(partition.Past, domain.TimeOffPast),
		Upcoming: timeOffGroup(partition.Upcoming, domain.TimeOffUpcoming),
		Active:   timeOffGroup(partition.Active, domain.TimeOffActive),
	})
}

// ListSeniorities handles GET /seniorities.
func (h *StafferHandler) ListSeniorities(c *fiber.Ctx) error {
	levels, err := h.staffers.ListSeniorities(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.SeniorityResponse, 0, len(levels))
	for _, s := range levels {
		out = append(out, dto.SeniorityResponse{ID: s.ID, Level: s.Level, Name: s.Name})
	}
	return data(c, http.StatusOK, out)
}

// ListSkills handles GET /skills?q=&certification=true.
func (h *StafferHandler) ListSkills(c *fiber.Ctx) error {
	order, page := listOptions(c)
	skills, err := h.staffers.ListSkills(c.UserContext(), repository.SkillFilter{
		Search:            c.Query("q"),
		CertificationOnly: c.QueryBool("certification", false),
		Order:             order,
		Page:              page,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, skillsResponse(skills))
}

// CreateSkill handles POST /skills.
func (h *StafferHandler) CreateSkill(c *fiber.Ctx) error {
	var req dto.SkillRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	skill := &domain.Skill{Name: req.Name, Description: req.Description, IsCertification: req.IsCertification}
	if err := h.staffers.CreateSkill(c.UserContext(), skill); err != nil {
		return err
	}
	return data(c, http.StatusCreated, skillResponse(*skill))
}

// UpdateSkill handles PATCH /skills/:skillID.
func (h *StafferHandler) UpdateSkill(c *fiber.Ctx) error {
	var req dto.SkillUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	skill, err := h.staffers.UpdateSkill(c.UserContext(), c.Params("skillID"), domain.SkillUpdate{
		Name:            req.Name,
		Description:     req.Description,
		IsCertification: req.IsCertification,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, skillResponse(*skill))
}

// DeleteSkill handles DELETE /skills/:skillID.
func (h *StafferHandler) DeleteSkill(c *fiber.Ctx) error {
	if err := h.staffers.DeleteSkill(c.UserContext(), c.Params("skillID")); err != nil {
		return err
	}
	return noContent(c)
}

func timeOffGroup(entries []domain.TimeOffEntry, phase domain.TimeOffPhase) []dto.TimeOffResponse {
	out := make([]dto.TimeOffResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, timeOffResponse(e, phase))
	}
	return out
}
