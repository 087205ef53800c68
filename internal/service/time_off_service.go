package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// TimeOffService manages staffer leave and announces new entries.
type TimeOffService struct {
	repo       repository.TimeOffRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewTimeOffService constructs the service.
func NewTimeOffService(repo repository.TimeOffRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TimeOffService {
	return &TimeOffService{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// ValidateTimeOff checks the range and hours of an entry.
func ValidateTimeOff(entry domain.TimeOffEntry) map[string]string {
	fields := map[string]string{}
	if !entry.EndsAt.After(entry.StartsAt) {
		fields["time_off_end_datetime"] = "end must be after start"
	}
	if entry.CumulativeHours <= 0 {
		fields["time_off_cumulative_hours"] = "hours must be greater than 0"
	}
	return fields
}

// Create persists the entry, then notifies subscribers. Notification failures never fail the create.
func (s *TimeOffService) Create(ctx context.Context, entry *domain.TimeOffEntry) error {
	if entry.StafferID == "" {
		return errorutil.NewValidationError("staffer_id is required", nil)
	}
	if fields := ValidateTimeOff(*entry); len(fields) > 0 {
		return errorutil.NewFieldValidationError(fields)
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return err
	}
	s.publishCreated(ctx, *entry)
	return nil
}

// Update patches an entry and re-checks the resulting range.
func (s *TimeOffService) Update(ctx context.Context, id string, patch domain.TimeOffUpdate) (*domain.TimeOffEntry, error) {
	if patch.StartsAt != nil || patch.EndsAt != nil || patch.CumulativeHours != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		patch.Apply(current)
		if fields := ValidateTimeOff(*current); len(fields) > 0 {
			return nil, errorutil.NewFieldValidationError(fields)
		}
	}
	return s.repo.Update(ctx, id, patch)
}

// Get fetches one entry.
func (s *TimeOffService) Get(ctx context.Context, id string) (*domain.TimeOffEntry, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes an entry.
func (s *TimeOffService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListByStaffer returns a staffer's leave ordered by start.
func (s *TimeOffService) ListByStaffer(ctx context.Context, stafferID string) ([]domain.TimeOffEntry, error) {
	return s.repo.ListByStaffer(ctx, stafferID, repository.Order{Column: "time_off_start_datetime"})
}

// Partition splits a staffer's leave into past, upcoming and active.
func (s *TimeOffService) Partition(ctx context.Context, stafferID string) (domain.TimeOffPartition, error) {
	entries, err := s.ListByStaffer(ctx, stafferID)
	if err != nil {
		return domain.TimeOffPartition{}, err
	}
	return domain.PartitionTimeOff(entries, s.now()), nil
}

func (s *TimeOffService) publishCreated(ctx context.Context, entry domain.TimeOffEntry) {
	if s.dispatcher == nil {
		return
	}
	event := events.NewEvent(events.EventTimeOffCreated, entry.StafferID, events.TimeOffCreatedPayload{
		TimeOffID:              entry.ID,
		StafferID:              entry.StafferID,
		TimeOffStartDatetime:   entry.StartsAt,
		TimeOffEndDatetime:     entry.EndsAt,
		TimeOffCumulativeHours: entry.CumulativeHours,
		CreatedAt:              entry.CreatedAt,
		LastUpdatedAt:          entry.LastUpdatedAt,
	})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("time off notification failed",
			zap.String("time_off_id", entry.ID),
			zap.String("staffer_id", entry.StafferID),
			zap.Error(err))
	}
}
