package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/dto"
)

// ListEvents fetches one page of events matching filter
func (c *Client) ListEvents(ctx context.Context, filter *dto.EventListFilter) (*domain.EventPage, error) {
	body, err := c.get(ctx, "/events", filter.Query())
	if err != nil {
		return nil, err
	}
	return decodeEventPage(body)
}

// GetEvent fetches a single event
func (c *Client) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	body, err := c.get(ctx, "/events/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeEvent(body)
}

// CreateEvent creates an event and returns it as stored
func (c *Client) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	body, err := c.send(ctx, http.MethodPost, "/events", req)
	if err != nil {
		return nil, err
	}
	return decodeEvent(body)
}

// UpdateEvent replaces the editable fields of an event
func (c *Client) UpdateEvent(ctx context.Context, id string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	body, err := c.send(ctx, http.MethodPut, "/events/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}
	return decodeEvent(body)
}

// ListVenues fetches every venue
func (c *Client) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	body, err := c.get(ctx, "/venues", nil)
	if err != nil {
		return nil, err
	}
	var venues []*domain.Venue
	if err := decodeList(body, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// ListOrganizers fetches every organizer
func (c *Client) ListOrganizers(ctx context.Context) ([]*domain.Organizer, error) {
	body, err := c.get(ctx, "/organizers", nil)
	if err != nil {
		return nil, err
	}
	var organizers []*domain.Organizer
	if err := decodeList(body, &organizers); err != nil {
		return nil, err
	}
	return organizers, nil
}

// decodeEventPage reads events from "events", falling back to "data", and
// assumes the default pagination when the API sends none
func decodeEventPage(body []byte) (*domain.EventPage, error) {
	var envelope struct {
		Events     []*domain.Event    `json:"events"`
		Data       json.RawMessage    `json:"data"`
		Pagination *domain.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode event list: %w", err)
	}

	page := &domain.EventPage{
		Events:     envelope.Events,
		Pagination: domain.DefaultPagination(),
	}
	if page.Events == nil && isArray(envelope.Data) {
		if err := json.Unmarshal(envelope.Data, &page.Events); err != nil {
			return nil, fmt.Errorf("failed to decode event list: %w", err)
		}
	}
	if page.Events == nil {
		page.Events = []*domain.Event{}
	}
	if envelope.Pagination != nil {
		page.Pagination = *envelope.Pagination
	}
	return page, nil
}

// decodeEvent reads an event from "data", or from the body itself. An
// empty body (204 or a blank 200) is a success with nothing to report.
func decodeEvent(body []byte) (*domain.Event, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return &domain.Event{}, nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	raw := body
	if isObject(envelope.Data) {
		raw = envelope.Data
	}

	var event domain.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return &event, nil
}

// decodeList reads an array from "data", or the body when it is an array
func decodeList(body []byte, out interface{}) error {
	raw := bytes.TrimSpace(body)
	if !isArray(raw) {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return fmt.Errorf("failed to decode list: %w", err)
		}
		if !isArray(envelope.Data) {
			return nil
		}
		raw = envelope.Data
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode list: %w", err)
	}
	return nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
