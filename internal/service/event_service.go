package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/dto"
	"github.com/AsrarMemon/event-management-frontend/internal/repository"
	"github.com/AsrarMemon/event-management-frontend/pkg/logger"
	"github.com/AsrarMemon/event-management-frontend/pkg/telemetry"
	"go.uber.org/zap"
)

// Common errors
var (
	ErrEventNotFound = errors.New("event not found")
)

// ValidationError carries per-field form messages
type ValidationError struct {
	Fields dto.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// eventService implements EventService
type eventService struct {
	repo repository.EventRepository
	log  *logger.Logger
}

// NewEventService creates a new EventService
func NewEventService(repo repository.EventRepository, log *logger.Logger) EventService {
	if log == nil {
		log = logger.NewNop()
	}
	return &eventService{
		repo: repo,
		log:  log,
	}
}

// ListEvents lists events with filters and pagination
func (s *eventService) ListEvents(ctx context.Context, filter *dto.EventListFilter) (*domain.EventPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.list")
	defer span.End()

	page, err := s.repo.ListEvents(ctx, filter)
	if err != nil {
		telemetry.SetSpanError(ctx, err)
		return nil, err
	}
	return page, nil
}

// FilterOptions collects distinct venue and organizer names from the
// reference lists and distinct tags from the events on page. Reference
// list failures leave the matching options empty.
func (s *eventService) FilterOptions(ctx context.Context, page *domain.EventPage) *FilterOptions {
	opts := &FilterOptions{}

	venues, err := s.repo.ListVenues(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to load venues for filter", zap.Error(err))
	}
	for _, v := range venues {
		opts.Venues = appendUnique(opts.Venues, v.Name)
	}

	organizers, err := s.repo.ListOrganizers(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to load organizers for filter", zap.Error(err))
	}
	for _, o := range organizers {
		opts.Organizers = appendUnique(opts.Organizers, o.Name)
	}

	if page != nil {
		for _, e := range page.Events {
			for _, tag := range e.Tags {
				opts.Tags = appendUnique(opts.Tags, tag)
			}
		}
	}

	return opts
}

// GetEvent retrieves an event by ID
func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.get")
	defer span.End()

	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		telemetry.SetSpanError(ctx, err)
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// ReferenceData loads venues and organizers
func (s *eventService) ReferenceData(ctx context.Context) (*ReferenceData, error) {
	venues, err := s.repo.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load venues: %w", err)
	}
	organizers, err := s.repo.ListOrganizers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load organizers: %w", err)
	}
	return &ReferenceData{Venues: venues, Organizers: organizers}, nil
}

// CreateEvent creates a new event
func (s *eventService) CreateEvent(ctx context.Context, form *dto.EventForm) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.create")
	defer span.End()

	if err := s.validate(ctx, form); err != nil {
		return nil, err
	}

	req, err := dto.NewCreateEventRequest(form)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.CreateEvent(ctx, req)
	if err != nil {
		telemetry.SetSpanError(ctx, err)
		return nil, err
	}

	s.log.InfoContext(ctx, "Event created", zap.String("event_id", event.ID.String()))
	return event, nil
}

// UpdateEvent updates an event
func (s *eventService) UpdateEvent(ctx context.Context, id string, form *dto.EventForm) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.update")
	defer span.End()

	if err := s.validate(ctx, form); err != nil {
		return nil, err
	}

	req, err := dto.NewUpdateEventRequest(form)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.UpdateEvent(ctx, id, req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		telemetry.SetSpanError(ctx, err)
		return nil, err
	}

	s.log.InfoContext(ctx, "Event updated", zap.String("event_id", id))
	return event, nil
}

// validate checks the form against the current reference lists
func (s *eventService) validate(ctx context.Context, form *dto.EventForm) error {
	ref, err := s.ReferenceData(ctx)
	if err != nil {
		return err
	}
	if fields := form.Validate(ref.Venues, ref.Organizers); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func appendUnique(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
