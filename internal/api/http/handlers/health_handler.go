package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is one backing service checked by the readiness endpoint. An
// optional dependency that is down degrades readiness without failing it.
type Dependency struct {
	Name     string
	Check    Pinger
	Optional bool
}

// HealthHandler answers liveness and readiness checks.
type HealthHandler struct {
	serviceName  string
	version      string
	dependencies []Dependency
}

func NewHealthHandler(serviceName, version string, dependencies ...Dependency) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, dependencies: dependencies}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready handles GET /health/ready, pinging every dependency in parallel.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	results := make([]error, len(h.dependencies))
	var g errgroup.Group
	for i, dep := range h.dependencies {
		g.Go(func() error {
			results[i] = dep.Check.Ping(ctx)
			return nil
		})
	}
	_ = g.Wait()

	status, failed := "ready", false
	checks := fiber.Map{}
	for i, dep := range h.dependencies {
		if err := results[i]; err != nil {
			checks[dep.Name] = err.Error()
			if dep.Optional {
				status = "degraded"
			} else {
				failed = true
			}
			continue
		}
		checks[dep.Name] = "ok"
	}

	if failed {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "a required dependency is unavailable",
				"details": checks,
			},
		})
	}
	return c.JSON(fiber.Map{"status": status, "dependencies": checks})
}
