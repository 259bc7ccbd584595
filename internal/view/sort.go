package view

import (
	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/dto"
)

var sortLabels = map[domain.SortField]string{
	domain.SortByTitle:     "Title",
	domain.SortByDate:      "Date",
	domain.SortByVenue:     "Venue",
	domain.SortByOrganizer: "Organizer",
}

// SortHeader is one sortable column heading
type SortHeader struct {
	Label string
	Field domain.SortField
	// URL applies the sort toggle for this column
	URL    string
	Active bool
	Order  domain.SortOrder
}

// Indicator renders the column's sort state
func (h SortHeader) Indicator() string {
	switch {
	case !h.Active:
		return "↕"
	case h.Order == domain.SortAsc:
		return "▲"
	default:
		return "▼"
	}
}

// SortHeaders builds the headings for every sortable column
func SortHeaders(filter *dto.EventListFilter) []SortHeader {
	headers := make([]SortHeader, 0, len(domain.SortFields))
	for _, field := range domain.SortFields {
		headers = append(headers, SortHeader{
			Label:  sortLabels[field],
			Field:  field,
			URL:    filter.ToggleSort(field).URL(),
			Active: filter.SortBy == field,
			Order:  filter.SortOrder,
		})
	}
	return headers
}
