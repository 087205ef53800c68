package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/events"
)

const (
	defaultQueueSize = 256
	drainTimeout     = 5 * time.Second
)

// Notifier delivers events to an external system.
type Notifier interface {
	EventTypes() []events.EventType
	Handle(ctx context.Context, event events.Event) error
}

// DeliveryRecorder counts notification outcomes.
type DeliveryRecorder interface {
	RecordNotification(eventType, outcome string)
}

// NotificationWorker moves notifier calls off the request path. Publishing
// only enqueues; a single goroutine delivers in publish order.
type NotificationWorker struct {
	notifier Notifier
	queue    chan events.Event
	recorder DeliveryRecorder
	logger   *zap.Logger
	done     chan struct{}
}

// StartNotificationWorker subscribes notifier's event types on dispatcher and
// delivers them until ctx is done, then drains what is still queued.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, notifier Notifier, queueSize int, recorder DeliveryRecorder, logger *zap.Logger) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &NotificationWorker{
		notifier: notifier,
		queue:    make(chan events.Event, queueSize),
		recorder: recorder,
		logger:   logger,
		done:     make(chan struct{}),
	}
	for _, t := range notifier.EventTypes() {
		dispatcher.Subscribe(t, w.enqueue)
	}
	go w.run(ctx)
	return w
}

// Done closes once the worker has stopped and drained its queue.
func (w *NotificationWorker) Done() <-chan struct{} {
	return w.done
}

func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case <-w.done:
		w.record(event.Type, "dropped")
		return fmt.Errorf("notification worker stopped, dropping %s", event.Type)
	default:
	}
	select {
	case w.queue <- event:
		return nil
	default:
		w.record(event.Type, "dropped")
		return fmt.Errorf("notification queue full, dropping %s %s", event.Type, event.ID)
	}
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case event := <-w.queue:
			w.deliver(ctx, event)
		}
	}
}

// drain delivers whatever was queued before shutdown under a fresh deadline,
// since the worker context is already cancelled.
func (w *NotificationWorker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-w.queue:
			w.deliver(ctx, event)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, event events.Event) {
	if err := w.notifier.Handle(ctx, event); err != nil {
		w.record(event.Type, "failed")
		w.logger.Warn("notification failed",
			zap.String("event", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.String("staffer_id", event.StafferID),
			zap.Error(err))
		return
	}
	w.record(event.Type, "delivered")
}

func (w *NotificationWorker) record(eventType events.EventType, outcome string) {
	if w.recorder != nil {
		w.recorder.RecordNotification(string(eventType), outcome)
	}
}
