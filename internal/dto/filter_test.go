package dto

import (
	"reflect"
	"testing"

	"github.com/AsrarMemon/event-management-frontend/internal/domain"
)

func TestDefaultEventListFilter_Query(t *testing.T) {
	got := DefaultEventListFilter().Query().Encode()
	want := "limit=10&page=1&sortBy=date&sortOrder=desc"
	if got != want {
		t.Errorf("Query() = %q, want %q", got, want)
	}
}

func TestEventListFilter_Query_OmitsEmpty(t *testing.T) {
	f := &EventListFilter{
		Search:   "jazz",
		Tags:     []string{"music", "outdoor"},
		DateFrom: "2025-01-01",
		Page:     2,
		Limit:    10,
	}

	q := f.Query()
	if q.Get("tags") != "music,outdoor" {
		t.Errorf("tags = %q, want music,outdoor", q.Get("tags"))
	}
	for _, key := range []string{"organizer", "venue", "dateTo", "sortBy", "sortOrder"} {
		if _, ok := q[key]; ok {
			t.Errorf("Query() should omit empty %q", key)
		}
	}
	if f.URL() != "/?dateFrom=2025-01-01&limit=10&page=2&search=jazz&tags=music%2Coutdoor" {
		t.Errorf("URL() = %q", f.URL())
	}
}

func TestEventListFilter_SetDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   EventListFilter
		want EventListFilter
	}{
		{
			name: "zero values",
			in:   EventListFilter{},
			want: EventListFilter{Page: 1, Limit: DefaultPageSize},
		},
		{
			name: "limit capped",
			in:   EventListFilter{Page: 3, Limit: 500},
			want: EventListFilter{Page: 3, Limit: MaxPageSize},
		},
		{
			name: "unknown sort dropped",
			in:   EventListFilter{Page: 1, Limit: 10, SortBy: "price", SortOrder: "sideways"},
			want: EventListFilter{Page: 1, Limit: 10},
		},
		{
			name: "tags split and deduplicated",
			in:   EventListFilter{Page: 1, Limit: 10, Tags: []string{"music, art", "music", " "}},
			want: EventListFilter{Page: 1, Limit: 10, Tags: []string{"music", "art"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.SetDefaults()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SetDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEventListFilter_ToggleSort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    domain.SortField
		sortOrder domain.SortOrder
		click     domain.SortField
		wantOrder domain.SortOrder
	}{
		{"new column sorts ascending", domain.SortByDate, domain.SortDesc, domain.SortByTitle, domain.SortAsc},
		{"active ascending flips", domain.SortByTitle, domain.SortAsc, domain.SortByTitle, domain.SortDesc},
		{"active descending goes ascending", domain.SortByTitle, domain.SortDesc, domain.SortByTitle, domain.SortAsc},
		{"unsorted sorts ascending", "", "", domain.SortByVenue, domain.SortAsc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &EventListFilter{Search: "x", SortBy: tt.sortBy, SortOrder: tt.sortOrder, Page: 4, Limit: 10}
			got := f.ToggleSort(tt.click)

			if got.SortBy != tt.click || got.SortOrder != tt.wantOrder {
				t.Errorf("ToggleSort() = %s %s, want %s %s", got.SortBy, got.SortOrder, tt.click, tt.wantOrder)
			}
			if got.Search != "x" || got.Page != 4 {
				t.Error("ToggleSort() should keep the rest of the filter")
			}
			if f.SortBy != tt.sortBy {
				t.Error("ToggleSort() must not modify the receiver")
			}
		})
	}
}

func TestEventListFilter_ToggleTag(t *testing.T) {
	f := &EventListFilter{Tags: []string{"music"}, Page: 3, Limit: 10}

	added := f.ToggleTag("art")
	if !reflect.DeepEqual(added.Tags, []string{"music", "art"}) {
		t.Errorf("Tags = %v, want [music art]", added.Tags)
	}
	if added.Page != 1 {
		t.Errorf("Page = %d, want 1", added.Page)
	}

	removed := added.ToggleTag("music")
	if !reflect.DeepEqual(removed.Tags, []string{"art"}) {
		t.Errorf("Tags = %v, want [art]", removed.Tags)
	}
	if !reflect.DeepEqual(f.Tags, []string{"music"}) {
		t.Errorf("receiver Tags = %v, want [music]", f.Tags)
	}

	if empty := removed.ToggleTag("art"); empty.Tags != nil {
		t.Errorf("Tags = %v, want nil", empty.Tags)
	}
}

func TestEventListFilter_Cleared(t *testing.T) {
	f := &EventListFilter{Search: "x", Venue: "Hall", SortBy: domain.SortByTitle, SortOrder: domain.SortAsc, Page: 5, Limit: 50}
	if !f.HasActiveFilters() {
		t.Fatal("HasActiveFilters() = false, want true")
	}

	cleared := f.Cleared()
	if cleared.HasActiveFilters() {
		t.Error("Cleared() should have no active filters")
	}
	if got := cleared.Query().Encode(); got != "limit=10&page=1" {
		t.Errorf("Cleared().Query() = %q, want limit=10&page=1", got)
	}
}

func TestEventListFilter_HasActiveFilters_IgnoresSortAndPage(t *testing.T) {
	f := &EventListFilter{SortBy: domain.SortByTitle, SortOrder: domain.SortAsc, Page: 3, Limit: 20}
	if f.HasActiveFilters() {
		t.Error("sort and pagination are not filters")
	}
}

func TestEventListFilter_CacheKey_Stable(t *testing.T) {
	a := &EventListFilter{Search: "a", Venue: "b", Page: 1, Limit: 10}
	b := &EventListFilter{Venue: "b", Search: "a", Page: 1, Limit: 10}
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("CacheKey() differs: %q vs %q", a.CacheKey(), b.CacheKey())
	}
}
