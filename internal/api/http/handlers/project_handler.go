package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/api/dto"
	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/service"
)

// ProjectHandler exposes projects and the phases, tasks, teams and assignments under them.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler constructs handler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// ListProjects handles GET /projects. ?from or ?to switch to a date-range read
// over ?date_field, which defaults to created_at.
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	order, page := listOptions(c)
	from, err := optionalDate(c, "from")
	if err != nil {
		return err
	}
	to, err := optionalDate(c, "to")
	if err != nil {
		return err
	}
	if from != nil || to != nil {
		projects, err := h.projects.ProjectsInRange(c.UserContext(), c.Query("date_field"), from, to, page)
		if err != nil {
			return err
		}
		return data(c, http.StatusOK, projectsResponse(projects))
	}

	filter := repository.ProjectFilter{
		ClientID: optionalQuery(c, "client_id"),
		Search:   c.Query("q"),
		Order:    order,
		Page:     page,
	}
	if status := optionalQuery(c, "status"); status != nil {
		s := domain.ProjectStatus(*status)
		filter.Status = &s
	}

	projects, err := h.projects.ListProjects(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, projectsResponse(projects))
}

// OverdueProjects handles GET /projects/overdue.
func (h *ProjectHandler) OverdueProjects(c *fiber.Ctx) error {
	projects, err := h.projects.OverdueProjects(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, projectsResponse(projects))
}

// CreateProject handles POST /projects.
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	project := &domain.Project{
		ClientID:  req.ClientID,
		Name:      req.Name,
		Status:    req.Status,
		StartDate: req.StartDate,
		DueDate:   req.DueDate,
	}
	if err := h.projects.CreateProject(c.UserContext(), project); err != nil {
		return err
	}
	return data(c, http.StatusCreated, projectResponse(*project))
}

// GetProject handles GET /projects/:projectID.
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	project, err := h.projects.GetProject(c.UserContext(), c.Params("projectID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, projectResponse(*project))
}

// UpdateProject handles PATCH /projects/:projectID.
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	var req dto.ProjectUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch := domain.ProjectUpdate{
		ClientID: req.ClientID,
		Name:     req.Name,
		Status:   req.Status,
	}
	if req.StartDate != nil {
		patch.StartDate = &req.StartDate
	}
	if req.DueDate != nil {
		patch.DueDate = &req.DueDate
	}
	project, err := h.projects.UpdateProject(c.UserContext(), c.Params("projectID"), patch)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, projectResponse(*project))
}

// DeleteProject handles DELETE /projects/:projectID.
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	if err := h.projects.DeleteProject(c.UserContext(), c.Params("projectID")); err != nil {
		return err
	}
	return noContent(c)
}

// ListPhases handles GET /projects/:projectID/phases.
func (h *ProjectHandler) ListPhases(c *fiber.Ctx) error {
	phases, err := h.projects.ListPhases(c.UserContext(), c.Params("projectID"))
	if err != nil {
		return err
	}
	out := make([]dto.PhaseResponse, 0, len(phases))
	for _, p := range phases {
		out = append(out, phaseResponse(p))
	}
	return data(c, http.StatusOK, out)
}

// CreatePhase handles POST /projects/:projectID/phases.
func (h *ProjectHandler) CreatePhase(c *fiber.Ctx) error {
	var req dto.PhaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	phase := &domain.Phase{
		ProjectID:   c.Params("projectID"),
		Number:      req.Number,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
	}
	if err := h.projects.CreatePhase(c.UserContext(), phase); err != nil {
		return err
	}
	return data(c, http.StatusCreated, phaseResponse(*phase))
}

// GetPhase handles GET /phases/:phaseID.
func (h *ProjectHandler) GetPhase(c *fiber.Ctx) error {
	phase, err := h.projects.GetPhase(c.UserContext(), c.Params("phaseID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, phaseResponse(*phase))
}

// UpdatePhase handles PATCH /phases/:phaseID.
func (h *ProjectHandler) UpdatePhase(c *fiber.Ctx) error {
	var req dto.PhaseUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch := domain.PhaseUpdate{
		Number:      req.Number,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.StartDate != nil {
		patch.StartDate = &req.StartDate
	}
	if req.DueDate != nil {
		patch.DueDate = &req.DueDate
	}
	phase, err := h.projects.UpdatePhase(c.UserContext(), c.Params("phaseID"), patch)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, phaseResponse(*phase))
}

// DeletePhase handles DELETE /phases/:phaseID.
func (h *ProjectHandler) DeletePhase(c *fiber.Ctx) error {
	if err := h.projects.DeletePhase(c.UserContext(), c.Params("phaseID")); err != nil {
		return err
	}
	return noContent(c)
}

// ListTasks handles GET /projects/:projectID/tasks.
func (h *ProjectHandler) ListTasks(c *fiber.Ctx) error {
	projectID := c.Params("projectID")
	order, page := listOptions(c)
	filter := repository.TaskFilter{
		ProjectID: &projectID,
		PhaseID:   optionalQuery(c, "phase_id"),
		Search:    c.Query("q"),
		Order:     order,
		Page:      page,
	}
	if status := optionalQuery(c, "status"); status != nil {
		s := domain.TaskStatus(*status)
		filter.Status = &s
	}

	tasks, err := h.projects.ListTasks(c.UserContext(), filter)
	if err != nil {
		return err
	}
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskResponse(t))
	}
	return data(c, http.StatusOK, out)
}

// CreateTask handles POST /projects/:projectID/tasks.
func (h *ProjectHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	task := &domain.Task{
		ProjectID:      c.Params("projectID"),
		PhaseID:        req.PhaseID,
		Name:           req.Name,
		Description:    req.Description,
		Status:         req.Status,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	}
	if err := h.projects.CreateTask(c.UserContext(), task); err != nil {
		return err
	}
	return data(c, http.StatusCreated, taskResponse(*task))
}

// GetTask handles GET /tasks/:taskID.
func (h *ProjectHandler) GetTask(c *fiber.Ctx) error {
	task, err := h.projects.GetTask(c.UserContext(), c.Params("taskID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, taskResponse(*task))
}

// UpdateTask handles PATCH /tasks/:taskID.
func (h *ProjectHandler) UpdateTask(c *fiber.Ctx) error {
	var req dto.TaskUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch := domain.TaskUpdate{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.PhaseID != nil {
		patch.PhaseID = &req.PhaseID
	}
	if req.StartDate != nil {
		patch.StartDate = &req.StartDate
	}
	if req.DueDate != nil {
		patch.DueDate = &req.DueDate
	}
	if req.EstimatedHours != nil {
		patch.EstimatedHours = &req.EstimatedHours
	}
	if req.ActualHours != nil {
		patch.ActualHours = &req.ActualHours
	}
	task, err := h.projects.UpdateTask(c.UserContext(), c.Params("taskID"), patch)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, taskResponse(*task))
}

// UpdateTaskHours handles PATCH /tasks/:taskID/hours.
func (h *ProjectHandler) UpdateTaskHours(c *fiber.Ctx) error {
	var req dto.TaskHoursRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	task, err := h.projects.UpdateTaskHours(c.UserContext(), c.Params("taskID"), req.EstimatedHours, req.ActualHours)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, taskResponse(*task))
}

// OverdueTasks handles GET /tasks/overdue, optionally narrowed by ?project_id.
func (h *ProjectHandler) OverdueTasks(c *fiber.Ctx) error {
	tasks, err := h.projects.OverdueTasks(c.UserContext(), optionalQuery(c, "project_id"))
	if err != nil {
		return err
	}
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskResponse(t))
	}
	return data(c, http.StatusOK, out)
}

// DeleteTask handles DELETE /tasks/:taskID.
func (h *ProjectHandler) DeleteTask(c *fiber.Ctx) error {
	if err := h.projects.DeleteTask(c.UserContext(), c.Params("taskID")); err != nil {
		return err
	}
	return noContent(c)
}

// ListTeams handles GET /projects/:projectID/teams.
func (h *ProjectHandler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.projects.ListTeams(c.UserContext(), c.Params("projectID"))
	if err != nil {
		return err
	}
	out := make([]dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamResponse(t))
	}
	return data(c, http.StatusOK, out)
}

// CreateTeam handles POST /projects/:projectID/teams.
func (h *ProjectHandler) CreateTeam(c *fiber.Ctx) error {
	var req dto.TeamRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	team := &domain.Team{ProjectID: c.Params("projectID"), Name: req.Name, PhaseID: req.PhaseID}
	if err := h.projects.CreateTeam(c.UserContext(), team); err != nil {
		return err
	}
	return data(c, http.StatusCreated, teamResponse(*team))
}

// GetTeam handles GET /teams/:teamID.
func (h *ProjectHandler) GetTeam(c *fiber.Ctx) error {
	team, err := h.projects.GetTeam(c.UserContext(), c.Params("teamID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, teamResponse(*team))
}

// UpdateTeam handles PATCH /teams/:teamID.
func (h *ProjectHandler) UpdateTeam(c *fiber.Ctx) error {
	var req dto.TeamRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch := domain.TeamUpdate{Name: &req.Name}
	if req.PhaseID != nil {
		patch.PhaseID = &req.PhaseID
	}
	team, err := h.projects.UpdateTeam(c.UserContext(), c.Params("teamID"), patch)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, teamResponse(*team))
}

// DeleteTeam handles DELETE /teams/:teamID.
func (h *ProjectHandler) DeleteTeam(c *fiber.Ctx) error {
	if err := h.projects.DeleteTeam(c.UserContext(), c.Params("teamID")); err != nil {
		return err
	}
	return noContent(c)
}

// ListTeamMembers handles GET /teams/:teamID/members.
func (h *ProjectHandler) ListTeamMembers(c *fiber.Ctx) error {
	members, err := h.projects.ListTeamMembers(c.UserContext(), c.Params("teamID"))
	if err != nil {
		return err
	}
	out := make([]dto.TeamMembershipResponse, 0, len(members))
	for _, m := range members {
		out = append(out, membershipResponse(m))
	}
	return data(c, http.StatusOK, out)
}

// AddTeamMember handles POST /teams/:teamID/members.
func (h *ProjectHandler) AddTeamMember(c *fiber.Ctx) error {
	var req dto.TeamMemberRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	membership, err := h.projects.AddTeamMember(c.UserContext(), c.Params("teamID"), req.StafferID)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, membershipResponse(*membership))
}

// RemoveTeamMember handles DELETE /teams/:teamID/members/:membershipID.
func (h *ProjectHandler) RemoveTeamMember(c *fiber.Ctx) error {
	if err := h.projects.RemoveTeamMember(c.UserContext(), c.Params("membershipID")); err != nil {
		return err
	}
	return noContent(c)
}

// ListAssignments handles GET /assignments?staffer_id=&project_task_id=.
func (h *ProjectHandler) ListAssignments(c *fiber.Ctx) error {
	_, page := listOptions(c)
	assignments, err := h.projects.ListAssignments(c.UserContext(), repository.AssignmentFilter{
		StafferID: optionalQuery(c, "staffer_id"),
		TaskID:    optionalQuery(c, "project_task_id"),
		Page:      page,
	})
	if err != nil {
		return err
	}
	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, assignmentResponse(a))
	}
	return data(c, http.StatusOK, out)
}

// CreateAssignment handles POST /assignments.
func (h *ProjectHandler) CreateAssignment(c *fiber.Ctx) error {
	var req dto.AssignmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	assignment := &domain.Assignment{StafferID: req.StafferID, TaskID: req.TaskID}
	if err := h.projects.Assign(c.UserContext(), assignment); err != nil {
		return err
	}
	return data(c, http.StatusCreated, assignmentResponse(*assignment))
}

// GetAssignment handles GET /assignments/:assignmentID.
func (h *ProjectHandler) GetAssignment(c *fiber.Ctx) error {
	assignment, err := h.projects.GetAssignment(c.UserContext(), c.Params("assignmentID"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, assignmentResponse(*assignment))
}

// DeleteAssignment handles DELETE /assignments/:assignmentID.
func (h *ProjectHandler) DeleteAssignment(c *fiber.Ctx) error {
	if err := h.projects.Unassign(c.UserContext(), c.Params("assignmentID")); err != nil {
		return err
	}
	return noContent(c)
}

func projectsResponse(projects []domain.Project) []dto.ProjectResponse {
	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectResponse(p))
	}
	return out
}

func projectResponse(p domain.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:            p.ID,
		ClientID:      p.ClientID,
		Name:          p.Name,
		Status:        p.Status,
		StartDate:     p.StartDate,
		DueDate:       p.DueDate,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

func phaseResponse(p domain.Phase) dto.PhaseResponse {
	return dto.PhaseResponse{
		ID:            p.ID,
		ProjectID:     p.ProjectID,
		Number:        p.Number,
		Name:          p.Name,
		Description:   p.Description,
		Status:        p.Status,
		StartDate:     p.StartDate,
		DueDate:       p.DueDate,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

func taskResponse(t domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:             t.ID,
		ProjectID:      t.ProjectID,
		PhaseID:        t.PhaseID,
		Name:           t.Name,
		Description:    t.Description,
		Status:         t.Status,
		StartDate:      t.StartDate,
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		CreatedAt:      t.CreatedAt,
		LastUpdatedAt:  t.LastUpdatedAt,
	}
}

func teamResponse(t domain.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:            t.ID,
		Name:          t.Name,
		ProjectID:     t.ProjectID,
		PhaseID:       t.PhaseID,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

func membershipResponse(m domain.TeamMembership) dto.TeamMembershipResponse {
	return dto.TeamMembershipResponse{
		ID:        m.ID,
		TeamID:    m.TeamID,
		StafferID: m.StafferID,
		CreatedAt: m.CreatedAt,
	}
}

func assignmentResponse(a domain.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:        a.ID,
		StafferID: a.StafferID,
		TaskID:    a.TaskID,
		CreatedAt: a.CreatedAt,
	}
}
