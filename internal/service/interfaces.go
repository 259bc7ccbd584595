package service

import (
	"context"

	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/dto"
)

// EventService defines the page-level operations behind the event pages
type EventService interface {
	// ListEvents lists one page of events
	ListEvents(ctx context.Context, filter *dto.EventListFilter) (*domain.EventPage, error)
	// FilterOptions returns the choices offered by the filter bar
	FilterOptions(ctx context.Context, page *domain.EventPage) *FilterOptions
	// GetEvent retrieves an event by ID
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	// ReferenceData returns the venues and organizers for the event form
	ReferenceData(ctx context.Context) (*ReferenceData, error)
	// CreateEvent validates form and creates the event
	CreateEvent(ctx context.Context, form *dto.EventForm) (*domain.Event, error)
	// UpdateEvent validates form and updates the event
	UpdateEvent(ctx context.Context, id string, form *dto.EventForm) (*domain.Event, error)
}

// FilterOptions are the distinct values offered by the filter bar
type FilterOptions struct {
	Venues     []string
	Organizers []string
	Tags       []string
}

// ReferenceData backs the venue and organizer selects
type ReferenceData struct {
	Venues     []*domain.Venue
	Organizers []*domain.Organizer
}
