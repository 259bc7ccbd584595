package repository

import (
	"context"

	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/dto"
)

// EventRepository defines access to events and their reference data.
// *apiclient.Client is the upstream implementation.
type EventRepository interface {
	// ListEvents lists one page of events matching filter
	ListEvents(ctx context.Context, filter *dto.EventListFilter) (*domain.EventPage, error)
	// GetEvent retrieves an event by ID
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	// CreateEvent creates a new event
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error)
	// UpdateEvent updates an event
	UpdateEvent(ctx context.Context, id string, req *dto.UpdateEventRequest) (*domain.Event, error)
	// ListVenues lists every venue
	ListVenues(ctx context.Context) ([]*domain.Venue, error)
	// ListOrganizers lists every organizer
	ListOrganizers(ctx context.Context) ([]*domain.Organizer, error)
}

// CacheInvalidator drops cached event data after a mutation that did not
// go through EventRepository
type CacheInvalidator interface {
	// InvalidateEvents drops every list cache and, when id is set, that
	// event's detail cache
	InvalidateEvents(ctx context.Context, id string) error
}
