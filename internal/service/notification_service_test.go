package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/events"
)

func TestNotificationService_PostsTimeOffPayload(t *testing.T) {
	received := make(chan map[string]any, 1)
	eventIDs := make(chan string, 1)
	orchestrator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/events/time-off", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		eventIDs <- r.Header.Get("X-Event-Id")
		received <- body
		w.WriteHeader(http.StatusAccepted)
	}))
	defer orchestrator.Close()

	svc := NewNotificationService(zap.NewNop(), config.OrchestratorConfig{
		BaseURL:        orchestrator.URL,
		TimeOffPath:    "/api/v1/events/time-off",
		TimeoutSeconds: 2,
	})

	start := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	event := events.NewEvent(events.EventTimeOffCreated, "st-1", events.TimeOffCreatedPayload{
		TimeOffID:              "to-1",
		StafferID:              "st-1",
		TimeOffStartDatetime:   start,
		TimeOffEndDatetime:     start.Add(48 * time.Hour),
		TimeOffCumulativeHours: 16,
	})
	require.NoError(t, svc.Handle(context.Background(), event))

	assert.Equal(t, event.ID, <-eventIDs)
	body := <-received
	assert.Equal(t, "to-1", body["time_off_id"])
	assert.Equal(t, "st-1", body["staffer_id"])
	assert.Equal(t, 16.0, body["time_off_cumulative_hours"])
	assert.Equal(t, "2026-07-01T09:00:00Z", body["time_off_start_datetime"])
	assert.Contains(t, body, "created_at")
	assert.Contains(t, body, "last_updated_at")
}

func TestNotificationService_ReportsOrchestratorFailure(t *testing.T) {
	orchestrator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer orchestrator.Close()

	svc := NewNotificationService(zap.NewNop(), config.OrchestratorConfig{BaseURL: orchestrator.URL, TimeOffPath: "/hook"})

	err := svc.Handle(context.Background(),
		events.NewEvent(events.EventTimeOffCreated, "st-1", events.TimeOffCreatedPayload{TimeOffID: "to-1"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestNotificationService_SkipsWithoutOrchestrator(t *testing.T) {
	svc := NewNotificationService(nil, config.OrchestratorConfig{})

	err := svc.Handle(context.Background(),
		events.NewEvent(events.EventTimeOffCreated, "st-1", events.TimeOffCreatedPayload{TimeOffID: "to-1"}))

	assert.NoError(t, err)
}

func TestNotificationService_RejectsUnknownEventsAndPayloads(t *testing.T) {
	svc := NewNotificationService(nil, config.OrchestratorConfig{BaseURL: "http://orchestrator"})

	err := svc.Handle(context.Background(), events.NewEvent("project_archived", "st-1", nil))
	assert.ErrorContains(t, err, "no notification for event project_archived")

	err = svc.Handle(context.Background(), events.NewEvent(events.EventTimeOffCreated, "st-1", "oops"))
	assert.ErrorContains(t, err, "unexpected payload string")

	assert.NoError(t, svc.Handle(context.Background(), events.NewEvent(events.EventStafferSaved, "st-1", nil)))
	assert.ElementsMatch(t, []events.EventType{events.EventTimeOffCreated, events.EventStafferSaved}, svc.EventTypes())
}

func TestNotificationService_ExpiredContextSkipsCall(t *testing.T) {
	svc := NewNotificationService(nil, config.OrchestratorConfig{BaseURL: "http://orchestrator.invalid"})
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	err := svc.Handle(ctx, events.NewEvent(events.EventTimeOffCreated, "st-1", events.TimeOffCreatedPayload{TimeOffID: "to-1"}))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
