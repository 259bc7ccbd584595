package di

import (
	"fmt"

	"github.com/AsrarMemon/event-management-frontend/internal/apiclient"
	"github.com/AsrarMemon/event-management-frontend/internal/handler"
	"github.com/AsrarMemon/event-management-frontend/internal/proxy"
	"github.com/AsrarMemon/event-management-frontend/internal/repository"
	"github.com/AsrarMemon/event-management-frontend/internal/service"
	"github.com/AsrarMemon/event-management-frontend/pkg/config"
	"github.com/AsrarMemon/event-management-frontend/pkg/logger"
	"github.com/AsrarMemon/event-management-frontend/pkg/redis"
)

// Container holds all dependencies for the event console
type Container struct {
	// Infrastructure
	Config    *config.Config
	Logger    *logger.Logger
	Redis     *redis.Client
	APIClient *apiclient.Client

	// Repositories
	EventRepo repository.EventRepository

	// Services
	EventService service.EventService

	// Handlers
	HealthHandler *handler.HealthHandler
	EventHandler  *handler.EventHandler
	APIProxy      *proxy.ReverseProxy
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	Logger *logger.Logger
	// Redis is nil when caching is disabled or unavailable
	Redis *redis.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) (*Container, error) {
	c := &Container{
		Config: cfg.Config,
		Logger: cfg.Logger,
		Redis:  cfg.Redis,
	}
	if c.Logger == nil {
		c.Logger = logger.NewNop()
	}

	// Initialize upstream client
	c.APIClient = apiclient.New(&apiclient.Config{
		BaseURL:       c.Config.API.BaseURL,
		Timeout:       c.Config.API.Timeout,
		MaxRetries:    c.Config.API.MaxRetries,
		RetryInterval: c.Config.API.RetryInterval,
		Logger:        c.Logger,
	})

	// Wrap with cache if Redis is available
	var invalidator repository.CacheInvalidator
	if c.Redis != nil && c.Config.Cache.Enabled {
		cached := repository.NewCachedEventRepository(c.APIClient, c.Redis, c.Config.Cache.TTL, c.Logger)
		c.EventRepo = cached
		invalidator = cached
	} else {
		c.EventRepo = c.APIClient
	}

	// Initialize services
	c.EventService = service.NewEventService(c.EventRepo, c.Logger)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.APIClient, c.Redis, c.Config.App.Name)
	c.EventHandler = handler.NewEventHandler(c.EventService, c.Logger)

	apiProxy, err := proxy.NewReverseProxy(proxy.Config{
		BaseURL:     c.Config.API.BaseURL,
		StripPrefix: "/api",
		Timeout:     c.Config.API.Timeout,
		Invalidator: invalidator,
		Logger:      c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API proxy: %w", err)
	}
	c.APIProxy = apiProxy

	return c, nil
}
