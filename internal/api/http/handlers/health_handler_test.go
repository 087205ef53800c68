package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("dial tcp: connection refused") })
)

func checkReady(t *testing.T, h *HealthHandler) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		deps       []Dependency
		wantStatus int
		wantState  string
	}{
		{"all up", []Dependency{{Name: "postgres", Check: up}, {Name: "redis", Check: up, Optional: true}}, http.StatusOK, "ready"},
		{"optional down", []Dependency{{Name: "postgres", Check: up}, {Name: "redis", Check: down, Optional: true}}, http.StatusOK, "degraded"},
		{"required down", []Dependency{{Name: "postgres", Check: down}, {Name: "redis", Check: up, Optional: true}}, http.StatusServiceUnavailable, ""},
		{"no dependencies", nil, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := checkReady(t, NewHealthHandler("staffing-service", "test", tt.deps...))

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantState != "" {
				assert.Equal(t, tt.wantState, body["status"])
				return
			}
			e := body["error"].(map[string]any)
			assert.Equal(t, "DEPENDENCY_UNAVAILABLE", e["code"])
			assert.Equal(t, "dial tcp: connection refused", e["details"].(map[string]any)["postgres"])
			assert.Equal(t, "ok", e["details"].(map[string]any)["redis"])
		})
	}
}
