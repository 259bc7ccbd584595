package dto

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/AsrarMemon/event-management-frontend/internal/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// EventListFilter is the list page's filter, sort and pagination state.
// It round-trips through the page URL and is forwarded to the API as is.
type EventListFilter struct {
	Search    string           `form:"search"`
	Organizer string           `form:"organizer"`
	Venue     string           `form:"venue"`
	Tags      []string         `form:"tags" collection_format:"csv"`
	DateFrom  string           `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo    string           `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	SortBy    domain.SortField `form:"sortBy"`
	SortOrder domain.SortOrder `form:"sortOrder"`
	Page      int              `form:"page"`
	Limit     int              `form:"limit"`
}

// DefaultEventListFilter is the state of a fresh list page: newest first
func DefaultEventListFilter() *EventListFilter {
	return &EventListFilter{
		Page:      1,
		Limit:     DefaultPageSize,
		SortBy:    domain.SortByDate,
		SortOrder: domain.SortDesc,
	}
}

// SetDefaults normalizes a bound filter: pagination bounds, unknown sort
// values dropped, tags trimmed and de-duplicated
func (f *EventListFilter) SetDefaults() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if !f.SortBy.Valid() {
		f.SortBy = ""
	}
	if !f.SortOrder.Valid() {
		f.SortOrder = ""
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Tags = normalizeTags(f.Tags)
}

func normalizeTags(in []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// Query builds the query string sent to GET /events. Only non-empty
// values are included.
func (f *EventListFilter) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Organizer != "" {
		q.Set("organizer", f.Organizer)
	}
	if f.Venue != "" {
		q.Set("venue", f.Venue)
	}
	if len(f.Tags) > 0 {
		q.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.DateFrom != "" {
		q.Set("dateFrom", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("dateTo", f.DateTo)
	}
	if f.SortBy != "" {
		q.Set("sortBy", string(f.SortBy))
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", string(f.SortOrder))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// URL returns the list page link for this state
func (f *EventListFilter) URL() string {
	q := f.Query()
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// Clone returns a deep copy
func (f *EventListFilter) Clone() *EventListFilter {
	c := *f
	if f.Tags != nil {
		c.Tags = append([]string(nil), f.Tags...)
	}
	return &c
}

// ToggleSort selects field for sorting. Clicking the active ascending
// column flips it to descending; anything else sorts ascending.
func (f *EventListFilter) ToggleSort(field domain.SortField) *EventListFilter {
	c := f.Clone()
	order := domain.SortAsc
	if f.SortBy == field && f.SortOrder == domain.SortAsc {
		order = domain.SortDesc
	}
	c.SortBy = field
	c.SortOrder = order
	return c
}

// WithPage moves to page n
func (f *EventListFilter) WithPage(n int) *EventListFilter {
	c := f.Clone()
	c.Page = n
	return c
}

// ToggleTag adds or removes tag from the tag filter and returns to page 1
func (f *EventListFilter) ToggleTag(tag string) *EventListFilter {
	c := f.Clone()
	c.Page = 1
	if f.HasTag(tag) {
		c.Tags = c.Tags[:0]
		for _, t := range f.Tags {
			if t != tag {
				c.Tags = append(c.Tags, t)
			}
		}
	} else {
		c.Tags = append(c.Tags, tag)
	}
	if len(c.Tags) == 0 {
		c.Tags = nil
	}
	return c
}

// HasTag reports whether tag is part of the tag filter
func (f *EventListFilter) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Cleared drops every filter and the sort, keeping the page size default
func (f *EventListFilter) Cleared() *EventListFilter {
	return &EventListFilter{Page: 1, Limit: DefaultPageSize}
}

// HasActiveFilters reports whether any narrowing filter is set
func (f *EventListFilter) HasActiveFilters() bool {
	return f.Search != "" ||
		f.Organizer != "" ||
		f.Venue != "" ||
		len(f.Tags) > 0 ||
		f.DateFrom != "" ||
		f.DateTo != ""
}

// CacheKey is a stable identifier for this filter's API query
func (f *EventListFilter) CacheKey() string {
	return f.Query().Encode()
}
