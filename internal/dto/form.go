package dto

import (
	"strings"

	"github.com/AsrarMemon/event-management-frontend/internal/domain"
)

// DateInputLayout matches the browser's datetime-local input value
const DateInputLayout = "2006-01-02T15:04"

// EventForm is the create/edit form as posted by the browser
type EventForm struct {
	Title       string   `form:"title"`
	Description string   `form:"description"`
	Date        string   `form:"date"`
	VenueID     string   `form:"venue_id"`
	OrganizerID string   `form:"organizer_id"`
	Tags        []string `form:"tags"`
	NewTag      string   `form:"new_tag"`

	// SubmissionID identifies one rendering of the form so a repeated
	// submit of the same form can be recognised
	SubmissionID string `form:"submission_id"`
}

// SubmissionIDField is the form field carrying EventForm.SubmissionID
const SubmissionIDField = "submission_id"

// FieldErrors maps a form field name to its message. The "submit" key
// carries errors that are not tied to a field.
type FieldErrors map[string]string

// SubmitField is the FieldErrors key for form-level errors
const SubmitField = "submit"

// FormFromEvent pre-fills the edit form from an existing event
func FormFromEvent(e *domain.Event) *EventForm {
	form := &EventForm{
		Title:       e.Title,
		Description: e.Description,
		VenueID:     e.VenueID.String(),
		OrganizerID: e.OrganizerID.String(),
		Tags:        append([]string{}, e.Tags...),
	}
	if !e.Date.IsZero() {
		form.Date = e.Date.UTC().Format(DateInputLayout)
	}
	return form
}

// Validate checks required fields and that the selected venue and
// organizer exist in the reference lists fetched from the API
func (f *EventForm) Validate(venues []*domain.Venue, organizers []*domain.Organizer) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Description is required"
	}
	if f.Date == "" {
		errs["date"] = "Date is required"
	}

	if f.VenueID == "" {
		errs["venue_id"] = "Venue is required"
	} else if !hasVenue(venues, f.VenueID) {
		errs["venue_id"] = "Please select a valid venue"
	}

	if f.OrganizerID == "" {
		errs["organizer_id"] = "Organizer is required"
	} else if !hasOrganizer(organizers, f.OrganizerID) {
		errs["organizer_id"] = "Please select a valid organizer"
	}

	return errs
}

func hasVenue(venues []*domain.Venue, id string) bool {
	for _, v := range venues {
		if v.ID.String() == id {
			return true
		}
	}
	return false
}

func hasOrganizer(organizers []*domain.Organizer, id string) bool {
	for _, o := range organizers {
		if o.ID.String() == id {
			return true
		}
	}
	return false
}

// AddTag moves the pending tag input into the tag list. Blank and
// duplicate tags are ignored; the input is cleared only when a tag is added.
func (f *EventForm) AddTag() bool {
	tag := strings.TrimSpace(f.NewTag)
	if tag == "" || f.HasTag(tag) {
		return false
	}
	f.Tags = append(f.Tags, tag)
	f.NewTag = ""
	return true
}

// RemoveTag drops tag from the tag list
func (f *EventForm) RemoveTag(tag string) {
	kept := f.Tags[:0]
	for _, t := range f.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	f.Tags = kept
}

// HasTag reports whether tag is already on the form
func (f *EventForm) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Normalize drops blank tag entries posted by empty hidden inputs
func (f *EventForm) Normalize() {
	kept := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		if t = strings.TrimSpace(t); t != "" && !contains(kept, t) {
			kept = append(kept, t)
		}
	}
	f.Tags = kept
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
