package handler

import (
	"errors"
	"net/http"

	"github.com/AsrarMemon/event-management-frontend/internal/apiclient"
	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/dto"
	"github.com/AsrarMemon/event-management-frontend/internal/service"
	"github.com/AsrarMemon/event-management-frontend/internal/view"
	"github.com/AsrarMemon/event-management-frontend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Form post actions that edit the tag list without submitting
const (
	actionField    = "action"
	actionAddTag   = "add_tag"
	removeTagField = "remove_tag"
)

// EventHandler renders the event pages
type EventHandler struct {
	eventService service.EventService
	log          *logger.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService, log *logger.Logger) *EventHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &EventHandler{
		eventService: eventService,
		log:          log,
	}
}

// List handles GET / - the filterable, sortable, paginated event list
func (h *EventHandler) List(c *gin.Context) {
	filter := dto.DefaultEventListFilter()
	if c.Request.URL.RawQuery != "" {
		filter = &dto.EventListFilter{}
		if err := c.ShouldBindQuery(filter); err != nil {
			h.renderError(c, http.StatusBadRequest, "Invalid filters", "The filter values in the address are not valid.")
			return
		}
		filter.SetDefaults()
	}

	ctx := c.Request.Context()
	page, err := h.eventService.ListEvents(ctx, filter)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to list events", zap.Error(err))
		h.renderError(c, http.StatusBadGateway, "Something went wrong", "Failed to load events. Please try again later.")
		return
	}

	opts := h.eventService.FilterOptions(ctx, page)
	c.HTML(http.StatusOK, view.ListTemplate, view.NewListPage(filter, page, opts.Venues, opts.Organizers, opts.Tags))
}

// Get handles GET /events/:id - a single event
func (h *EventHandler) Get(c *gin.Context) {
	event, ok := h.loadEvent(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, view.DetailTemplate, &view.DetailPage{Title: event.Title, Event: event})
}

// New handles GET /events/new - the empty create form
func (h *EventHandler) New(c *gin.Context) {
	page := h.createPage(c, &dto.EventForm{SubmissionID: uuid.NewString()})
	c.HTML(http.StatusOK, view.FormTemplate, page)
}

// Create handles POST /events - tag edits or create submission
func (h *EventHandler) Create(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	if applyTagAction(c, form) {
		c.HTML(http.StatusOK, view.FormTemplate, h.createPage(c, form))
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), form)
	if err != nil {
		h.renderFormError(c, h.createPage(c, form), err, "Failed to create event. Please try again.")
		return
	}

	// The API may answer a create without echoing the event
	if event.ID == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.Redirect(http.StatusSeeOther, "/events/"+event.ID.String())
}

// Edit handles GET /events/:id/edit - the pre-filled edit form
func (h *EventHandler) Edit(c *gin.Context) {
	event, ok := h.loadEvent(c)
	if !ok {
		return
	}
	form := dto.FormFromEvent(event)
	form.SubmissionID = uuid.NewString()
	page := h.editPage(c, event.ID.String(), form)
	c.HTML(http.StatusOK, view.FormTemplate, page)
}

// Update handles POST /events/:id - tag edits or update submission
func (h *EventHandler) Update(c *gin.Context) {
	id := c.Param("id")

	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	if applyTagAction(c, form) {
		c.HTML(http.StatusOK, view.FormTemplate, h.editPage(c, id, form))
		return
	}

	if _, err := h.eventService.UpdateEvent(c.Request.Context(), id, form); err != nil {
		h.renderFormError(c, h.editPage(c, id, form), err, "Failed to update event. Please try again.")
		return
	}

	c.Redirect(http.StatusSeeOther, "/events/"+id)
}

// SubmissionInProgress answers a repeat of a form submit that is still
// being processed
func (h *EventHandler) SubmissionInProgress(c *gin.Context) {
	h.renderError(c, http.StatusConflict, "Already submitting",
		"This form is already being submitted. Please wait a moment and check the events list.")
}

// IsTagAction reports whether a form post only edits the tag list
func IsTagAction(c *gin.Context) bool {
	return c.PostForm(removeTagField) != "" || c.PostForm(actionField) == actionAddTag
}

// SubmissionKey returns the form's submission id
func SubmissionKey(c *gin.Context) string {
	return c.PostForm(dto.SubmissionIDField)
}

// --- Helper functions ---

func (h *EventHandler) loadEvent(c *gin.Context) (*domain.Event, bool) {
	ctx := c.Request.Context()
	event, err := h.eventService.GetEvent(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			h.renderError(c, http.StatusNotFound, "Event not found", "The event you're looking for doesn't exist.")
			return nil, false
		}
		h.log.ErrorContext(ctx, "Failed to get event", zap.String("event_id", c.Param("id")), zap.Error(err))
		h.renderError(c, http.StatusBadGateway, "Something went wrong", "Failed to load the event. Please try again later.")
		return nil, false
	}
	return event, true
}

func (h *EventHandler) bindForm(c *gin.Context) (*dto.EventForm, bool) {
	var form dto.EventForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid request", "The submitted form could not be read.")
		return nil, false
	}
	form.Normalize()
	return &form, true
}

// applyTagAction applies an add/remove tag post and reports whether the
// request was one
func applyTagAction(c *gin.Context, form *dto.EventForm) bool {
	if tag := c.PostForm(removeTagField); tag != "" {
		form.RemoveTag(tag)
		return true
	}
	if c.PostForm(actionField) == actionAddTag {
		form.AddTag()
		return true
	}
	return false
}

func (h *EventHandler) createPage(c *gin.Context, form *dto.EventForm) *view.FormPage {
	ref, errs := h.referenceData(c)
	page := view.NewCreateFormPage(form, ref.Venues, ref.Organizers)
	page.Errors = errs
	return page
}

func (h *EventHandler) editPage(c *gin.Context, id string, form *dto.EventForm) *view.FormPage {
	ref, errs := h.referenceData(c)
	page := view.NewEditFormPage(id, form, ref.Venues, ref.Organizers)
	page.Errors = errs
	return page
}

// referenceData loads the select options. A failure still renders the
// form, with a form-level message.
func (h *EventHandler) referenceData(c *gin.Context) (*service.ReferenceData, dto.FieldErrors) {
	ctx := c.Request.Context()
	ref, err := h.eventService.ReferenceData(ctx)
	if err != nil {
		h.log.WarnContext(ctx, "Failed to load reference data", zap.Error(err))
		return &service.ReferenceData{}, dto.FieldErrors{dto.SubmitField: "Failed to load venues and organizers. Please try again."}
	}
	return ref, dto.FieldErrors{}
}

func (h *EventHandler) renderFormError(c *gin.Context, page *view.FormPage, err error, fallback string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		page.Errors = vErr.Fields
	case errors.Is(err, service.ErrEventNotFound):
		h.renderError(c, http.StatusNotFound, "Event not found", "The event you're trying to edit doesn't exist.")
		return
	default:
		h.log.WarnContext(c.Request.Context(), "Event submission failed", zap.Error(err))
		page.Errors = dto.FieldErrors{dto.SubmitField: submitMessage(err, fallback)}
	}
	c.HTML(http.StatusUnprocessableEntity, view.FormTemplate, page)
}

// submitMessage prefers the API's own message
func submitMessage(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, dto.ErrInvalidReference) {
		return err.Error()
	}
	return fallback
}

func (h *EventHandler) renderError(c *gin.Context, status int, heading, message string) {
	c.HTML(status, view.ErrorTemplate, &view.ErrorPage{
		Title:   heading,
		Heading: heading,
		Message: message,
		BackURL: "/",
	})
}
