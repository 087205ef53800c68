package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/events"
)

// NotificationService forwards domain events to the agent orchestrator.
type NotificationService struct {
	logger  *zap.Logger
	url     string
	timeout time.Duration
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.OrchestratorConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		logger:  logger,
		url:     cfg.TimeOffURL(),
		timeout: cfg.Timeout(),
	}
}

// EventTypes lists the events Handle understands.
func (n *NotificationService) EventTypes() []events.EventType {
	return []events.EventType{events.EventTimeOffCreated, events.EventStafferSaved}
}

// Handle delivers one event.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventTimeOffCreated:
		return n.notifyTimeOff(ctx, event)
	case events.EventStafferSaved:
		n.logger.Info("staffer saved",
			zap.String("event_id", event.ID),
			zap.String("staffer_id", event.StafferID),
			zap.Any("payload", event.Payload))
		return nil
	default:
		return fmt.Errorf("no notification for event %s", event.Type)
	}
}

func (n *NotificationService) notifyTimeOff(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TimeOffCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	if n.url == "" {
		n.logger.Debug("orchestrator not configured, skipping time off notification",
			zap.String("time_off_id", payload.TimeOffID))
		return nil
	}

	timeout := n.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if timeout <= 0 {
		return fmt.Errorf("notify orchestrator: %w", context.DeadlineExceeded)
	}

	agent := fiber.Post(n.url).
		Timeout(timeout).
		Set("X-Event-Id", event.ID).
		JSON(payload)
	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("notify orchestrator: %w", errors.Join(errs...))
	}
	if status >= fiber.StatusBadRequest {
		return fmt.Errorf("notify orchestrator: status %d", status)
	}
	n.logger.Info("orchestrator notified",
		zap.String("time_off_id", payload.TimeOffID),
		zap.Int("status", status),
		zap.ByteString("response", body))
	return nil
}
