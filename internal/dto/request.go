package dto

import (
	"errors"
	"strconv"
)

// ErrInvalidReference is returned when a venue or organizer id is not numeric
var ErrInvalidReference = errors.New("Invalid venue or organizer ID")

// CreateEventRequest is the body of POST /events
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	VenueID     int      `json:"venue_id"`
	OrganizerID int      `json:"organizer_id"`
	Tags        []string `json:"tags"`
}

// NewCreateEventRequest converts a validated form into the wire body.
// The API expects numeric venue and organizer ids.
func NewCreateEventRequest(f *EventForm) (*CreateEventRequest, error) {
	venueID, err := strconv.Atoi(f.VenueID)
	if err != nil {
		return nil, ErrInvalidReference
	}
	organizerID, err := strconv.Atoi(f.OrganizerID)
	if err != nil {
		return nil, ErrInvalidReference
	}

	return &CreateEventRequest{
		Title:       f.Title,
		Description: f.Description,
		Date:        f.Date,
		VenueID:     venueID,
		OrganizerID: organizerID,
		Tags:        tagsOrEmpty(f.Tags),
	}, nil
}

// UpdateEventRequest is the body of PUT /events/:id. Venue and organizer
// are only sent when set.
type UpdateEventRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Date        string   `json:"date,omitempty"`
	VenueID     *int     `json:"venue_id,omitempty"`
	OrganizerID *int     `json:"organizer_id,omitempty"`
	Tags        []string `json:"tags"`
}

// NewUpdateEventRequest converts a validated form into the wire body
func NewUpdateEventRequest(f *EventForm) (*UpdateEventRequest, error) {
	req := &UpdateEventRequest{
		Title:       f.Title,
		Description: f.Description,
		Date:        f.Date,
		Tags:        tagsOrEmpty(f.Tags),
	}

	if f.VenueID != "" {
		id, err := strconv.Atoi(f.VenueID)
		if err != nil {
			return nil, ErrInvalidReference
		}
		req.VenueID = &id
	}
	if f.OrganizerID != "" {
		id, err := strconv.Atoi(f.OrganizerID)
		if err != nil {
			return nil, ErrInvalidReference
		}
		req.OrganizerID = &id
	}

	return req, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
