package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/editsession"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

var validate = editsession.NewValidator()

// bind decodes the JSON body into req and runs its validate tags.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return errorutil.NewValidationError("invalid payload", map[string]any{"body": err.Error()})
	}
	fields := map[string]string{}
	editsession.FieldMessages(validate, req, "", fields)
	if len(fields) > 0 {
		return errorutil.NewFieldValidationError(fields)
	}
	return nil
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}

func noContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// listOptions reads ?limit, ?offset, ?sort and ?order.
func listOptions(c *fiber.Ctx) (repository.Order, repository.Page) {
	order := repository.Order{
		Column: c.Query("sort"),
		Desc:   strings.EqualFold(c.Query("order"), "desc"),
	}
	page := repository.Page{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	return order, page
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		return &v
	}
	return nil
}

// optionalDate parses ?key as YYYY-MM-DD (UTC midnight) or RFC 3339.
func optionalDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := optionalQuery(c, key)
	if raw == nil {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t, nil
		}
	}
	return nil, errorutil.NewFieldValidationError(map[string]string{key: "must be YYYY-MM-DD or RFC 3339"})
}

func stafferResponse(s domain.Staffer) dto.StafferResponse {
	return dto.StafferResponse{
		ID:            s.ID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		FullName:      s.FullName(),
		Email:         s.Email,
		Title:         s.Title,
		TimeZone:      s.TimeZone,
		Capacity:      s.Capacity,
		SeniorityID:   s.SeniorityID,
		CreatedAt:     s.CreatedAt,
		LastUpdatedAt: s.LastUpdatedAt,
	}
}

func skillResponse(s domain.Skill) dto.SkillResponse {
	return dto.SkillResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		IsCertification: s.IsCertification,
	}
}

func skillsResponse(skills []domain.Skill) []dto.SkillResponse {
	out := make([]dto.SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, skillResponse(s))
	}
	return out
}

func stafferSkillResponse(link domain.StafferSkill) dto.StafferSkillResponse {
	resp := dto.StafferSkillResponse{
		ID:                      link.ID,
		SkillID:                 link.SkillID,
		Status:                  link.Status,
		CertificationActiveDate: link.CertificationActiveDate,
		CertificationExpiryDate: link.CertificationExpiryDate,
	}
	if link.Skill != nil {
		resp.SkillName = link.Skill.Name
	}
	return resp
}

func rateResponse(r domain.StafferRate) dto.RateResponse {
	return dto.RateResponse{
		ID:       r.ID,
		CostRate: r.CostRate,
		BillRate: r.BillRate,
		Margin:   r.Margin(),
	}
}

func timeOffResponse(e domain.TimeOffEntry, phase domain.TimeOffPhase) dto.TimeOffResponse {
	return dto.TimeOffResponse{
		ID:              e.ID,
		StafferID:       e.StafferID,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt,
		CumulativeHours: e.CumulativeHours,
		Phase:           phase,
	}
}
