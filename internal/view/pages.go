package view

import (
	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/dto"
)

// Template names
const (
	ListTemplate   = "list.html"
	DetailTemplate = "detail.html"
	FormTemplate   = "form.html"
	ErrorTemplate  = "error.html"
)

// ListPage is the data behind the event list
type ListPage struct {
	Title      string
	Filter     *dto.EventListFilter
	Events     []*domain.Event
	Headers    []SortHeader
	Pager      *Pager
	Venues     []string
	Organizers []string
	Tags       []string
	ClearURL   string
}

// NewListPage assembles the list page for filter and the fetched page
func NewListPage(filter *dto.EventListFilter, page *domain.EventPage, venues, organizers, tags []string) *ListPage {
	return &ListPage{
		Title:      "Event Management",
		Filter:     filter,
		Events:     page.Events,
		Headers:    SortHeaders(filter),
		Pager:      NewPager(filter, page.Pagination),
		Venues:     venues,
		Organizers: organizers,
		Tags:       tags,
		ClearURL:   filter.Cleared().URL(),
	}
}

// DetailPage is the data behind a single event view
type DetailPage struct {
	Title string
	Event *domain.Event
}

// FormPage is the data behind the create and edit forms
type FormPage struct {
	Title       string
	Subtitle    string
	Action      string
	BackURL     string
	BackLabel   string
	SubmitLabel string
	Form        *dto.EventForm
	Errors      dto.FieldErrors
	Venues      []*domain.Venue
	Organizers  []*domain.Organizer
}

// NewCreateFormPage prepares the create form
func NewCreateFormPage(form *dto.EventForm, venues []*domain.Venue, organizers []*domain.Organizer) *FormPage {
	return &FormPage{
		Title:       "Create Event",
		Subtitle:    "Fill in the details to create a new event",
		Action:      "/events",
		BackURL:     "/",
		BackLabel:   "Back to Events",
		SubmitLabel: "Create Event",
		Form:        form,
		Venues:      venues,
		Organizers:  organizers,
	}
}

// NewEditFormPage prepares the edit form for event id
func NewEditFormPage(id string, form *dto.EventForm, venues []*domain.Venue, organizers []*domain.Organizer) *FormPage {
	return &FormPage{
		Title:       "Edit Event",
		Subtitle:    "Update the event details below",
		Action:      "/events/" + id,
		BackURL:     "/events/" + id,
		BackLabel:   "Back to Event",
		SubmitLabel: "Update Event",
		Form:        form,
		Venues:      venues,
		Organizers:  organizers,
	}
}

// ErrorPage is a full-page error message
type ErrorPage struct {
	Title   string
	Heading string
	Message string
	BackURL string
}
