package domain

import (
	"encoding/json"
	"time"
)

// Event is a schedulable item held by the upstream API
type Event struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	VenueID     ID         `json:"venue_id"`
	OrganizerID ID         `json:"organizer_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Venue       *Venue     `json:"venue,omitempty"`
	Organizer   *Organizer `json:"organizer,omitempty"`
	Tags        []string   `json:"tags"`
}

// UnmarshalJSON decodes an event, reading its dates leniently
func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	aux := struct {
		*plain
		Date      Timestamp `json:"date"`
		CreatedAt Timestamp `json:"created_at"`
	}{plain: (*plain)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Date = aux.Date.Time
	e.CreatedAt = aux.CreatedAt.Time
	return nil
}

// VenueName returns the embedded venue's name or an empty string
func (e *Event) VenueName() string {
	if e.Venue == nil {
		return ""
	}
	return e.Venue.Name
}

// OrganizerName returns the embedded organizer's name or an empty string
func (e *Event) OrganizerName() string {
	if e.Organizer == nil {
		return ""
	}
	return e.Organizer.Name
}

// Venue is where an event takes place
type Venue struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Organizer runs an event
type Organizer struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Pagination describes one page of a server-side paginated listing
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// DefaultPagination is assumed when the API omits pagination metadata
func DefaultPagination() Pagination {
	return Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 0}
}

// EventPage is one page of events plus its pagination metadata
type EventPage struct {
	Events     []*Event   `json:"events"`
	Pagination Pagination `json:"pagination"`
}

// SortField is a column the API can sort events by
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByDate      SortField = "date"
	SortByVenue     SortField = "venue"
	SortByOrganizer SortField = "organizer"
)

// SortFields lists the sortable columns in table order
var SortFields = []SortField{SortByTitle, SortByDate, SortByVenue, SortByOrganizer}

// Valid reports whether f is a known sort field
func (f SortField) Valid() bool {
	switch f {
	case SortByTitle, SortByDate, SortByVenue, SortByOrganizer:
		return true
	}
	return false
}

// SortOrder is the sort direction
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether o is a known sort order
func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}
