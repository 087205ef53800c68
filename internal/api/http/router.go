package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/staffing-service/internal/api/http/handlers"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Projects       *handlers.ProjectHandler
	Profitability  *handlers.ProfitabilityHandler
	Staffers       *handlers.StafferHandler
	EditSessions   *handlers.EditSessionHandler
	AuthMiddleware *auth.AuthMiddleware
	// Registry, when set, is served on /metrics.
	Registry *prometheus.Registry
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle, auth.RequireWrite())
	adminOnly := auth.RequireRole(domain.RoleAdmin)

	api.Get("/projects", cfg.Projects.ListProjects)
	api.Post("/projects", cfg.Projects.CreateProject)
	api.Get("/projects/overdue", cfg.Projects.OverdueProjects)
	api.Get("/projects/:projectID", cfg.Projects.GetProject)
	api.Patch("/projects/:projectID", cfg.Projects.UpdateProject)
	api.Delete("/projects/:projectID", cfg.Projects.DeleteProject)
	api.Get("/projects/:projectID/phases", cfg.Projects.ListPhases)
	api.Post("/projects/:projectID/phases", cfg.Projects.CreatePhase)
	api.Get("/projects/:projectID/tasks", cfg.Projects.ListTasks)
	api.Post("/projects/:projectID/tasks", cfg.Projects.CreateTask)
	api.Get("/projects/:projectID/teams", cfg.Projects.ListTeams)
	api.Post("/projects/:projectID/teams", cfg.Projects.CreateTeam)
	api.Get("/projects/:projectID/profitability", cfg.Profitability.ListSnapshots)
	api.Post("/projects/:projectID/profitability", cfg.Profitability.CreateSnapshot)
	api.Get("/projects/:projectID/profitability/baseline", cfg.Profitability.LatestBaseline)
	api.Get("/projects/:projectID/profitability/latest", cfg.Profitability.LatestSnapshot)
	api.Get("/profitability-snapshots/:snapshotID", cfg.Profitability.GetSnapshot)
	api.Get("/profitability-snapshots/:snapshotID/change", cfg.Profitability.ChangeSinceBaseline)

	api.Get("/phases/:phaseID", cfg.Projects.GetPhase)
	api.Patch("/phases/:phaseID", cfg.Projects.UpdatePhase)
	api.Delete("/phases/:phaseID", cfg.Projects.DeletePhase)

	api.Get("/tasks/overdue", cfg.Projects.OverdueTasks)
	api.Get("/tasks/:taskID", cfg.Projects.GetTask)
	api.Patch("/tasks/:taskID", cfg.Projects.UpdateTask)
	api.Patch("/tasks/:taskID/hours", cfg.Projects.UpdateTaskHours)
	api.Delete("/tasks/:taskID", cfg.Projects.DeleteTask)

	api.Get("/teams/:teamID", cfg.Projects.GetTeam)
	api.Patch("/teams/:teamID", cfg.Projects.UpdateTeam)
	api.Delete("/teams/:teamID", cfg.Projects.DeleteTeam)
	api.Get("/teams/:teamID/members", cfg.Projects.ListTeamMembers)
	api.Post("/teams/:teamID/members", cfg.Projects.AddTeamMember)
	api.Delete("/teams/:teamID/members/:membershipID", cfg.Projects.RemoveTeamMember)

	api.Get("/assignments", cfg.Projects.ListAssignments)
	api.Post("/assignments", cfg.Projects.CreateAssignment)
	api.Get("/assignments/:assignmentID", cfg.Projects.GetAssignment)
	api.Delete("/assignments/:assignmentID", cfg.Projects.DeleteAssignment)

	api.Get("/staffers", cfg.Staffers.ListStaffers)
	api.Get("/staffers/:stafferID", cfg.Staffers.GetStaffer)
	api.Delete("/staffers/:stafferID", adminOnly, cfg.Staffers.DeleteStaffer)
	api.Get("/staffers/:stafferID/time-off", cfg.Staffers.ListTimeOff)
	api.Get("/seniorities", cfg.Staffers.ListSeniorities)

	api.Get("/skills", cfg.Staffers.ListSkills)
	api.Post("/skills", adminOnly, cfg.Staffers.CreateSkill)
	api.Patch("/skills/:skillID", adminOnly, cfg.Staffers.UpdateSkill)
	api.Delete("/skills/:skillID", adminOnly, cfg.Staffers.DeleteSkill)

	sessions := api.Group("/edit-sessions")
	sessions.Post("", cfg.EditSessions.Open)
	sessions.Get("/:sessionID", cfg.EditSessions.Get)
	sessions.Delete("/:sessionID", cfg.EditSessions.Close)
	sessions.Patch("/:sessionID/profile", cfg.EditSessions.PatchProfile)
	sessions.Post("/:sessionID/skills", cfg.EditSessions.AddSkill)
	sessions.Patch("/:sessionID/skills/:key", cfg.EditSessions.UpdateSkill)
	sessions.Delete("/:sessionID/skills/:key", cfg.EditSessions.RemoveSkill)
	sessions.Get("/:sessionID/skill-search", cfg.EditSessions.SearchSkills)
	sessions.Put("/:sessionID/rate", cfg.EditSessions.SetRate)
	sessions.Delete("/:sessionID/rate", cfg.EditSessions.RemoveRate)
	sessions.Post("/:sessionID/time-off", cfg.EditSessions.AddTimeOff)
	sessions.Patch("/:sessionID/time-off/:key", cfg.EditSessions.UpdateTimeOff)
	sessions.Delete("/:sessionID/time-off/:key", cfg.EditSessions.RemoveTimeOff)
	sessions.Post("/:sessionID/commit", cfg.EditSessions.Commit)
}
