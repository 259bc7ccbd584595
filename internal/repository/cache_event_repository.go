package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/AsrarMemon/event-management-frontend/internal/domain"
	"github.com/AsrarMemon/event-management-frontend/internal/dto"
	"github.com/AsrarMemon/event-management-frontend/internal/metrics"
	"github.com/AsrarMemon/event-management-frontend/pkg/logger"
	"github.com/AsrarMemon/event-management-frontend/pkg/redis"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// Cache key prefixes
	eventListKeyPrefix   = "events:list:"
	eventDetailKeyPrefix = "events:detail:"
	venuesKey            = "events:ref:venues"
	organizersKey        = "events:ref:organizers"

	// DefaultCacheTTL is used when no TTL is configured
	DefaultCacheTTL = 30 * time.Second

	// DefaultFetchTimeout bounds a shared upstream fetch once it no longer
	// follows any single caller's context
	DefaultFetchTimeout = time.Minute
)

// CachedEventRepository wraps EventRepository with Redis caching.
// Concurrent misses for the same key share one upstream call. That call is
// detached from the caller that started it, so one cancelled request does
// not fail the others waiting on the same key.
type CachedEventRepository struct {
	repo  EventRepository
	cache *redis.Client
	ttl   time.Duration
	log   *logger.Logger
	group singleflight.Group

	fetchTimeout time.Duration
}

// NewCachedEventRepository creates a new CachedEventRepository
func NewCachedEventRepository(repo EventRepository, cache *redis.Client, ttl time.Duration, log *logger.Logger) *CachedEventRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &CachedEventRepository{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,

		fetchTimeout: DefaultFetchTimeout,
	}
}

// ListEvents lists events with caching keyed by the API query
func (r *CachedEventRepository) ListEvents(ctx context.Context, filter *dto.EventListFilter) (*domain.EventPage, error) {
	key := eventListKeyPrefix + filter.CacheKey()

	var page domain.EventPage
	if r.load(ctx, key, &page) {
		return &page, nil
	}

	v, err := r.fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return r.repo.ListEvents(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.EventPage), nil
}

// GetEvent retrieves an event by ID with caching
func (r *CachedEventRepository) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	key := eventDetailKeyPrefix + id

	var event domain.Event
	if r.load(ctx, key, &event) {
		return &event, nil
	}

	v, err := r.fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return r.repo.GetEvent(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Event), nil
}

// ListVenues lists venues with caching
func (r *CachedEventRepository) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	var venues []*domain.Venue
	if r.load(ctx, venuesKey, &venues) {
		return venues, nil
	}

	v, err := r.fetch(ctx, venuesKey, func(ctx context.Context) (interface{}, error) {
		return r.repo.ListVenues(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Venue), nil
}

// ListOrganizers lists organizers with caching
func (r *CachedEventRepository) ListOrganizers(ctx context.Context) ([]*domain.Organizer, error) {
	var organizers []*domain.Organizer
	if r.load(ctx, organizersKey, &organizers) {
		return organizers, nil
	}

	v, err := r.fetch(ctx, organizersKey, func(ctx context.Context) (interface{}, error) {
		return r.repo.ListOrganizers(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Organizer), nil
}

// CreateEvent creates a new event and invalidates list caches
func (r *CachedEventRepository) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	event, err := r.repo.CreateEvent(ctx, req)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, "")
	return event, nil
}

// UpdateEvent updates an event and invalidates its detail and list caches
func (r *CachedEventRepository) UpdateEvent(ctx context.Context, id string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	event, err := r.repo.UpdateEvent(ctx, id, req)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return event, nil
}

// InvalidateEvents drops list caches and, when id is set, the detail cache
func (r *CachedEventRepository) InvalidateEvents(ctx context.Context, id string) error {
	if id != "" {
		if err := r.cache.Del(ctx, eventDetailKeyPrefix+id).Err(); err != nil {
			return err
		}
	}
	_, err := r.cache.DeletePattern(ctx, eventListKeyPrefix+"*")
	return err
}

// --- Helper functions ---

func (r *CachedEventRepository) invalidate(ctx context.Context, id string) {
	metrics.CacheInvalidated()
	if err := r.InvalidateEvents(ctx, id); err != nil {
		r.log.WarnContext(ctx, "Failed to invalidate event cache", zap.String("event_id", id), zap.Error(err))
	}
}

// fetch loads key from upstream once for all concurrent callers and caches
// the result. Each caller stops waiting when its own ctx ends.
func (r *CachedEventRepository) fetch(ctx context.Context, key string, load func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ch := r.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
		defer cancel()

		result, err := load(fetchCtx)
		if err != nil {
			return nil, err
		}
		r.store(fetchCtx, key, result)
		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// load reports whether key was found and decoded into out
func (r *CachedEventRepository) load(ctx context.Context, key string, out interface{}) bool {
	kind := cacheKind(key)
	cached, err := r.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			r.log.WarnContext(ctx, "Cache read failed", zap.String("key", key), zap.Error(err))
			metrics.CacheLookup(kind, metrics.CacheError)
			return false
		}
		metrics.CacheLookup(kind, metrics.CacheMiss)
		return false
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		r.log.WarnContext(ctx, "Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		metrics.CacheLookup(kind, metrics.CacheError)
		return false
	}
	metrics.CacheLookup(kind, metrics.CacheHit)
	return true
}

func cacheKind(key string) string {
	switch {
	case strings.HasPrefix(key, eventListKeyPrefix):
		return "list"
	case strings.HasPrefix(key, eventDetailKeyPrefix):
		return "detail"
	case key == venuesKey:
		return "venues"
	case key == organizersKey:
		return "organizers"
	}
	return "other"
}

func (r *CachedEventRepository) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
		r.log.WarnContext(ctx, "Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
