package di

import (
	"time"

	"github.com/AsrarMemon/event-management-frontend/internal/apiclient"
	"github.com/AsrarMemon/event-management-frontend/internal/handler"
	"github.com/AsrarMemon/event-management-frontend/internal/metrics"
	"github.com/AsrarMemon/event-management-frontend/internal/middleware"
	"github.com/AsrarMemon/event-management-frontend/internal/view"
	"github.com/AsrarMemon/event-management-frontend/pkg/config"
	"github.com/AsrarMemon/event-management-frontend/pkg/telemetry"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route of the console
func NewRouter(c *Container) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(c.Logger, "/health", "/ready", "/metrics"))
	router.Use(metrics.Middleware())

	if c.Config.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(c.Config.App.Name, "/health", "/ready", "/metrics"))
	}

	router.SetHTMLTemplate(view.MustTemplates())

	// Health check endpoints
	router.GET("/health", c.HealthHandler.Health)
	router.GET("/ready", c.HealthHandler.Ready)
	router.GET("/metrics", metrics.Handler())

	// Pages
	router.GET("/", c.EventHandler.List)
	events := router.Group("/events")
	{
		events.GET("/new", c.EventHandler.New) // Must be before /:id
		events.GET("/:id", c.EventHandler.Get)
		events.GET("/:id/edit", c.EventHandler.Edit)

		submits := events.Group("")
		if c.Redis != nil {
			submits.Use(middleware.Idempotency(&middleware.IdempotencyConfig{
				Redis:         c.Redis,
				ProcessingTTL: submissionProcessingTTL(c.Config.API),
				KeyExtractor:  handler.SubmissionKey,
				Skip:          handler.IsTagAction,
				InProgress:    c.EventHandler.SubmissionInProgress,
				Logger:        c.Logger,
			}))
		}
		submits.POST("", c.EventHandler.Create)
		submits.POST("/:id", c.EventHandler.Update)
	}

	// Raw JSON pass-through for browser scripts
	api := router.Group("/api")
	api.Use(middleware.CORS())
	{
		api.Any("/*path", c.APIProxy.Handler())
	}

	return router
}

// submissionProcessingTTL is the longest a submit can take against the
// API: validation loads venues and organizers, the mutation runs once,
// and a rejected form loads both lists again to re-render. Reads retry.
func submissionProcessingTTL(api config.APIConfig) time.Duration {
	const (
		readsPerSubmit = 4
		margin         = 10 * time.Second
	)
	timeout := api.Timeout
	if timeout <= 0 {
		timeout = apiclient.DefaultTimeout
	}
	retries := api.MaxRetries
	if retries < 0 {
		retries = 0
	}
	read := time.Duration(retries+1)*timeout + time.Duration(retries)*api.RetryInterval
	ttl := readsPerSubmit*read + timeout + margin
	if ttl < middleware.DefaultProcessingTTL {
		return middleware.DefaultProcessingTTL
	}
	return ttl
}
