package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/AsrarMemon/event-management-frontend/internal/apiclient"
	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/dto"
	"github.com/AsrarMemon/event-management-frontend/internal/service"
	"github.com/AsrarMemon/event-management-frontend/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventService is a mock implementation of EventService
type MockEventService struct {
	events     map[string]*domain.Event
	listErr    error
	submitErr  error
	lastFilter *dto.EventListFilter
	submitted  *dto.EventForm

	// createdBlank simulates an API that answers a create with no body
	createdBlank bool
}

func NewMockEventService() *MockEventService {
	return &MockEventService{
		events: map[string]*domain.Event{
			"1": {
				ID:          "1",
				Title:       "Jazz Night",
				Description: "Live music",
				Date:        time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC),
				VenueID:     "1",
				OrganizerID: "7",
				Venue:       &domain.Venue{ID: "1", Name: "Main Hall"},
				Organizer:   &domain.Organizer{ID: "7", Name: "City Arts"},
				Tags:        []string{"music", "outdoor"},
			},
		},
	}
}

func (m *MockEventService) ListEvents(ctx context.Context, filter *dto.EventListFilter) (*domain.EventPage, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	return &domain.EventPage{
		Events:     []*domain.Event{m.events["1"]},
		Pagination: domain.Pagination{Page: filter.Page, Limit: filter.Limit, Total: 1, TotalPages: 1},
	}, nil
}

func (m *MockEventService) FilterOptions(ctx context.Context, page *domain.EventPage) *service.FilterOptions {
	return &service.FilterOptions{Venues: []string{"Main Hall"}, Organizers: []string{"City Arts"}, Tags: []string{"music"}}
}

func (m *MockEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, service.ErrEventNotFound
	}
	return event, nil
}

func (m *MockEventService) ReferenceData(ctx context.Context) (*service.ReferenceData, error) {
	return &service.ReferenceData{
		Venues:     []*domain.Venue{{ID: "1", Name: "Main Hall"}},
		Organizers: []*domain.Organizer{{ID: "7", Name: "City Arts"}},
	}, nil
}

func (m *MockEventService) CreateEvent(ctx context.Context, form *dto.EventForm) (*domain.Event, error) {
	m.submitted = form
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	if m.createdBlank {
		return &domain.Event{}, nil
	}
	return &domain.Event{ID: "10", Title: form.Title}, nil
}

func (m *MockEventService) UpdateEvent(ctx context.Context, id string, form *dto.EventForm) (*domain.Event, error) {
	m.submitted = form
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	if _, ok := m.events[id]; !ok {
		return nil, service.ErrEventNotFound
	}
	return &domain.Event{ID: domain.ID(id), Title: form.Title}, nil
}

func setupRouter(h *EventHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(view.MustTemplates())

	router.GET("/", h.List)
	events := router.Group("/events")
	{
		events.GET("/new", h.New)
		events.POST("", h.Create)
		events.GET("/:id", h.Get)
		events.GET("/:id/edit", h.Edit)
		events.POST("/:id", h.Update)
	}

	return router
}

func postForm(router *gin.Engine, target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func validValues() url.Values {
	return url.Values{
		"title":        {"Jazz Night"},
		"description":  {"Live music"},
		"date":         {"2025-03-01T18:30"},
		"venue_id":     {"1"},
		"organizer_id": {"7"},
		"tags":         {"music"},
	}
}

func TestEventHandler_List_Defaults(t *testing.T) {
	mockService := NewMockEventService()
	router := setupRouter(NewEventHandler(mockService, nil))

	w := get(router, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jazz Night")
	assert.Equal(t, dto.DefaultEventListFilter(), mockService.lastFilter)
}

func TestEventHandler_List_BindsQuery(t *testing.T) {
	mockService := NewMockEventService()
	router := setupRouter(NewEventHandler(mockService, nil))

	w := get(router, "/?search=jazz&tags=music,outdoor&sortBy=title&sortOrder=asc&page=2&limit=500&venue=Main+Hall")

	require.Equal(t, http.StatusOK, w.Code)
	f := mockService.lastFilter
	assert.Equal(t, "jazz", f.Search)
	assert.Equal(t, []string{"music", "outdoor"}, f.Tags)
	assert.Equal(t, domain.SortByTitle, f.SortBy)
	assert.Equal(t, domain.SortAsc, f.SortOrder)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, dto.MaxPageSize, f.Limit)
	assert.Equal(t, "Main Hall", f.Venue)
}

func TestEventHandler_List_ClearedQueryKeepsNoSort(t *testing.T) {
	mockService := NewMockEventService()
	router := setupRouter(NewEventHandler(mockService, nil))

	w := get(router, "/?limit=10&page=1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mockService.lastFilter.SortBy)
	assert.False(t, mockService.lastFilter.HasActiveFilters())
}

func TestEventHandler_List_InvalidDate(t *testing.T) {
	router := setupRouter(NewEventHandler(NewMockEventService(), nil))

	w := get(router, "/?dateFrom=yesterday")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandler_List_UpstreamError(t *testing.T) {
	mockService := NewMockEventService()
	mockService.listErr = errors.New("connection refused")
	router := setupRouter(NewEventHandler(mockService, nil))

	w := get(router, "/")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
}

func TestEventHandler_Get(t *testing.T) {
	router := setupRouter(NewEventHandler(NewMockEventService(), nil))

	w := get(router, "/events/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Main Hall")

	w = get(router, "/events/404")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Event not found")
}

func TestEventHandler_New(t *testing.T) {
	router := setupRouter(NewEventHandler(NewMockEventService(), nil))

	w := get(router, "/events/new")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Create Event")
	assert.Contains(t, w.Body.String(), `<option value="1">Main Hall`)
	assert.Regexp(t, `name="submission_id" value="[0-9a-f-]{36}"`, w.Body.String())
}

func TestEventHandler_Create_KeepsSubmissionID(t *testing.T) {
	mockService := NewMockEventService()
	mockService.submitErr = &service.ValidationError{Fields: dto.FieldErrors{"title": "Title is required"}}
	router := setupRouter(NewEventHandler(mockService, nil))

	values := validValues()
	values.Set("submission_id", "form-123")
	w := postForm(router, "/events", values)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `name="submission_id" value="form-123"`)
}

func TestEventHandler_SubmissionInProgress(t *testing.T) {
	h := NewEventHandler(NewMockEventService(), nil)
	router := setupRouter(h)
	router.POST("/busy", h.SubmissionInProgress)

	w := postForm(router, "/busy", url.Values{})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already being submitted")
}

func TestIsTagAction(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   bool
	}{
		{"submit", url.Values{"action": {"submit"}}, false},
		{"no action", url.Values{}, false},
		{"add tag", url.Values{"action": {"add_tag"}}, true},
		{"remove tag", url.Values{"remove_tag": {"music"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.values.Encode()))
			c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			assert.Equal(t, tt.want, IsTagAction(c))
		})
	}
}

func TestEventHandler_Create_Success(t *testing.T) {
	mockService := NewMockEventService()
	router := setupRouter(NewEventHandler(mockService, nil))

	w := postForm(router, "/events", validValues())

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/events/10", w.Header().Get("Location"))
	assert.Equal(t, []string{"music"}, mockService.submitted.Tags)
}

func TestEventHandler_Create_BlankResponseRedirectsToList(t *testing.T) {
	mockService := NewMockEventService()
	mockService.createdBlank = true
	router := setupRouter(NewEventHandler(mockService, nil))

	w := postForm(router, "/events", validValues())

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestEventHandler_Create_ValidationError(t *testing.T) {
	mockService := NewMockEventService()
	mockService.submitErr = &service.ValidationError{Fields: dto.FieldErrors{"title": "Title is required"}}
	router := setupRouter(NewEventHandler(mockService, nil))

	w := postForm(router, "/events", validValues())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Title is required")
	assert.Contains(t, w.Body.String(), "Live music", "submitted values are kept")
}

func TestEventHandler_Create_UpstreamMessage(t *testing.T) {
	mockService := NewMockEventService()
	mockService.submitErr = &apiclient.APIError{StatusCode: http.StatusBadRequest, Message: "Event date must be in the future"}
	router := setupRouter(NewEventHandler(mockService, nil))

	w := postForm(router, "/events", validValues())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Event date must be in the future")
}

func TestEventHandler_Create_GenericFailure(t *testing.T) {
	mockService := NewMockEventService()
	mockService.submitErr = errors.New("dial tcp: connection refused")
	router := setupRouter(NewEventHandler(mockService, nil))

	w := postForm(router, "/events", validValues())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to create event. Please try again.")
	assert.NotContains(t, w.Body.String(), "dial tcp")
}

func TestEventHandler_Create_UpstreamErrorWithoutMessage(t *testing.T) {
	mockService := NewMockEventService()
	mockService.submitErr = &apiclient.APIError{StatusCode: http.StatusBadGateway}
	router := setupRouter(NewEventHandler(mockService, nil))

	w := postForm(router, "/events", validValues())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to create event. Please try again.")
	assert.NotContains(t, w.Body.String(), "Bad Gateway")
}

func TestEventHandler_Create_AddTag(t *testing.T) {
	mockService := NewMockEventService()
	router := setupRouter(NewEventHandler(mockService, nil))

	values := validValues()
	values.Set("new_tag", "  outdoor ")
	values.Set("action", "add_tag")
	w := postForm(router, "/events", values)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockService.submitted, "adding a tag does not submit")
	assert.Contains(t, w.Body.String(), `name="tags" value="outdoor"`)
	assert.Contains(t, w.Body.String(), `name="new_tag" value=""`)
}

func TestEventHandler_Update_RemoveTag(t *testing.T) {
	mockService := NewMockEventService()
	router := setupRouter(NewEventHandler(mockService, nil))

	values := validValues()
	values.Set("remove_tag", "music")
	w := postForm(router, "/events/1", values)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockService.submitted)
	assert.NotContains(t, w.Body.String(), `name="tags" value="music"`)
}

func TestEventHandler_Update_Success(t *testing.T) {
	mockService := NewMockEventService()
	router := setupRouter(NewEventHandler(mockService, nil))

	w := postForm(router, "/events/1", validValues())

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/events/1", w.Header().Get("Location"))
}

func TestEventHandler_Update_NotFound(t *testing.T) {
	router := setupRouter(NewEventHandler(NewMockEventService(), nil))

	w := postForm(router, "/events/99", validValues())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventHandler_Edit_Prefills(t *testing.T) {
	router := setupRouter(NewEventHandler(NewMockEventService(), nil))

	w := get(router, "/events/1/edit")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="2025-03-01T18:30"`)
	assert.Contains(t, body, `<option value="1" selected>Main Hall`)
	assert.Contains(t, body, `<option value="7" selected>City Arts`)
	assert.Contains(t, body, `action="/events/1"`)
}

func TestSubmitMessage(t *testing.T) {
	assert.Equal(t, "from api", submitMessage(&apiclient.APIError{StatusCode: 400, Message: "from api"}, "fallback"))
	assert.Equal(t, "Invalid venue or organizer ID", submitMessage(dto.ErrInvalidReference, "fallback"))
	assert.Equal(t, "fallback", submitMessage(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", submitMessage(&apiclient.APIError{StatusCode: 500}, "fallback"))
}
