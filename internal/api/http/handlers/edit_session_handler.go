package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/editsession"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// EditSessionHandler exposes staffer edit sessions: stage changes, then commit them together.
type EditSessionHandler struct {
	sessions *editsession.Manager
	now      func() time.Time
}

// NewEditSessionHandler constructs handler.
func NewEditSessionHandler(sessions *editsession.Manager) *EditSessionHandler {
	return &EditSessionHandler{sessions: sessions, now: time.Now}
}

// Open handles POST /edit-sessions.
func (h *EditSessionHandler) Open(c *fiber.Ctx) error {
	var req dto.OpenSessionRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}
	session, err := h.sessions.Open(c.UserContext(), owner(c), req.StafferID)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, h.sessionResponse(session))
}

// Get handles GET /edit-sessions/:sessionID.
func (h *EditSessionHandler) Get(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, h.sessionResponse(session))
}

// Close handles DELETE /edit-sessions/:sessionID, discarding staged changes.
func (h *EditSessionHandler) Close(c *fiber.Ctx) error {
	id := c.Params("sessionID")
	session, err := h.sessions.Get(owner(c), id)
	if err != nil {
		return err
	}
	if err := session.Discard(); err != nil {
		return err
	}
	h.sessions.Close(owner(c), id)
	return noContent(c)
}

// PatchProfile handles PATCH /edit-sessions/:sessionID/profile.
func (h *EditSessionHandler) PatchProfile(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.ProfilePatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := session.SetProfile(profilePatches(session.Profile(), req)...); err != nil {
		return err
	}
	return data(c, http.StatusOK, h.sessionResponse(session))
}

// AddSkill handles POST /edit-sessions/:sessionID/skills.
func (h *EditSessionHandler) AddSkill(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.SkillAddRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	key, err := session.AddSkill(domain.StafferSkill{
		SkillID:                 req.SkillID,
		Status:                  req.Status,
		CertificationActiveDate: req.CertificationActiveDate,
		CertificationExpiryDate: req.CertificationExpiryDate,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.AddedResponse{Key: key})
}

// UpdateSkill handles PATCH /edit-sessions/:sessionID/skills/:key.
func (h *EditSessionHandler) UpdateSkill(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.SkillPatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	var patches []editsession.SkillPatch
	if req.Status != nil {
		patches = append(patches, editsession.SetSkillStatus{Status: *req.Status})
	}
	if req.Certification != nil {
		patches = append(patches, editsession.SetCertificationDates{
			Active: req.Certification.ActiveDate,
			Expiry: req.Certification.ExpiryDate,
		})
	}
	if err := session.UpdateSkill(c.Params("key"), patches...); err != nil {
		return err
	}
	return noContent(c)
}

// RemoveSkill handles DELETE /edit-sessions/:sessionID/skills/:key.
func (h *EditSessionHandler) RemoveSkill(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	if err := session.RemoveSkill(c.Params("key")); err != nil {
		return err
	}
	return noContent(c)
}

// SearchSkills handles GET /edit-sessions/:sessionID/skill-search?q=.
func (h *EditSessionHandler) SearchSkills(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, skillsResponse(session.SearchSkills(c.Query("q"))))
}

// SetRate handles PUT /edit-sessions/:sessionID/rate.
func (h *EditSessionHandler) SetRate(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.RateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := session.SetRate(req.CostRate, req.BillRate); err != nil {
		return err
	}
	return noContent(c)
}

// RemoveRate handles DELETE /edit-sessions/:sessionID/rate.
func (h *EditSessionHandler) RemoveRate(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	if err := session.RemoveRate(); err != nil {
		return err
	}
	return noContent(c)
}

// AddTimeOff handles POST /edit-sessions/:sessionID/time-off.
func (h *EditSessionHandler) AddTimeOff(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.TimeOffAddRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	key, err := session.AddTimeOff(domain.TimeOffEntry{
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		CumulativeHours: req.CumulativeHours,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.AddedResponse{Key: key})
}

// UpdateTimeOff handles PATCH /edit-sessions/:sessionID/time-off/:key.
func (h *EditSessionHandler) UpdateTimeOff(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	var req dto.TimeOffPatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	var patches []editsession.TimeOffPatch
	if req.StartsAt != nil && req.EndsAt != nil {
		patches = append(patches, editsession.SetTimeOffRange{Start: *req.StartsAt, End: *req.EndsAt})
	}
	if req.CumulativeHours != nil {
		patches = append(patches, editsession.SetTimeOffHours{Hours: *req.CumulativeHours})
	}
	if err := session.UpdateTimeOff(c.Params("key"), patches...); err != nil {
		return err
	}
	return noContent(c)
}

// RemoveTimeOff handles DELETE /edit-sessions/:sessionID/time-off/:key.
func (h *EditSessionHandler) RemoveTimeOff(c *fiber.Ctx) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	if err := session.RemoveTimeOff(c.Params("key")); err != nil {
		return err
	}
	return noContent(c)
}

// Commit handles POST /edit-sessions/:sessionID/commit. A partial failure
// answers 502 with every operation's outcome; the failed ones stay staged.
func (h *EditSessionHandler) Commit(c *fiber.Ctx) error {
	report, err := h.sessions.Commit(c.UserContext(), owner(c), c.Params("sessionID"))
	if err != nil {
		return err
	}
	resp := dto.CommitResponse{
		StafferID: report.StafferID,
		Created:   report.Created,
		Committed: len(report.Failed()) == 0,
		Results:   make([]dto.OperationResultResponse, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		item := dto.OperationResultResponse{Operation: res.Operation, OK: res.OK(), RecordID: res.RecordID}
		if !res.OK() {
			item.Error = errorutil.ToDomainError(res.Err).Message
		}
		resp.Results = append(resp.Results, item)
	}

	if failure := report.Err(); failure != nil {
		de := errorutil.ToDomainError(failure)
		return c.Status(de.HTTPStatus).JSON(fiber.Map{
			"data": resp,
			"error": fiber.Map{
				"code":    de.Code,
				"message": de.Message,
				"details": de.Details,
			},
		})
	}
	return data(c, http.StatusOK, resp)
}

func (h *EditSessionHandler) session(c *fiber.Ctx) (*editsession.Session, error) {
	return h.sessions.Get(owner(c), c.Params("sessionID"))
}

// owner is the authenticated subject; sessions are only reachable by the subject that opened them.
func owner(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Subject
	}
	return ""
}

// profilePatches turns a partial profile request into patches against the visible profile.
func profilePatches(current domain.Staffer, req dto.ProfilePatchRequest) []editsession.ProfilePatch {
	var patches []editsession.ProfilePatch
	if req.FirstName != nil || req.LastName != nil {
		name := editsession.SetName{First: current.FirstName, Last: current.LastName}
		if req.FirstName != nil {
			name.First = *req.FirstName
		}
		if req.LastName != nil {
			name.Last = *req.LastName
		}
		patches = append(patches, name)
	}
	if req.Email != nil {
		patches = append(patches, editsession.SetEmail{Email: *req.Email})
	}
	if req.Title != nil {
		patches = append(patches, editsession.SetTitle{Title: *req.Title})
	}
	if req.TimeZone != nil {
		patches = append(patches, editsession.SetTimeZone{TimeZone: *req.TimeZone})
	}
	if req.Capacity != nil {
		patches = append(patches, editsession.SetCapacity{Hours: *req.Capacity})
	}
	switch {
	case req.ClearSeniority:
		patches = append(patches, editsession.SetSeniority{SeniorityID: nil})
	case req.SeniorityID != nil:
		patches = append(patches, editsession.SetSeniority{SeniorityID: req.SeniorityID})
	}
	return patches
}

func (h *EditSessionHandler) sessionResponse(s *editsession.Session) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:        s.ID(),
		StafferID: s.StafferID(),
		Creating:  s.Creating(),
		Profile:   stafferResponse(s.Profile()),
		Skills:    []dto.SessionSkillResponse{},
		States:    s.States(),
		Pending:   s.PendingOperations(),
	}
	if resp.Pending == nil {
		resp.Pending = []editsession.Operation{}
	}
	for _, v := range s.VisibleSkills() {
		resp.Skills = append(resp.Skills, dto.SessionSkillResponse{
			Key:                  v.Key,
			StafferSkillResponse: stafferSkillResponse(v.Link),
			Pending:              v.Pending,
			Modified:             v.Modified,
			Expired:              v.Expired,
		})
	}
	if v := s.VisibleRate(); v != nil {
		resp.Rate = &dto.SessionRateResponse{
			Key:          v.Key,
			RateResponse: rateResponse(v.Rate),
			Pending:      v.Pending,
			Modified:     v.Modified,
		}
	}
	groups := s.PartitionTimeOff(h.now())
	resp.TimeOff = dto.SessionTimeOffGroups{
		Past:     sessionTimeOff(groups.Past, domain.TimeOffPast),
		Upcoming: sessionTimeOff(groups.Upcoming, domain.TimeOffUpcoming),
		Active:   sessionTimeOff(groups.Active, domain.TimeOffActive),
	}
	return resp
}

func sessionTimeOff(views []editsession.TimeOffView, phase domain.TimeOffPhase) []dto.SessionTimeOffResponse {
	out := make([]dto.SessionTimeOffResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.SessionTimeOffResponse{
			Key:             v.Key,
			TimeOffResponse: timeOffResponse(v.Entry, phase),
			Pending:         v.Pending,
			Modified:        v.Modified,
		})
	}
	return out
}
