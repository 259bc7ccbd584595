package handler

import (
	"context"
	"net/http"

	"github.com/AsrarMemon/event-management-frontend/pkg/redis"
	"github.com/AsrarMemon/event-management-frontend/pkg/response"
	"github.com/gin-gonic/gin"
)

// Pinger is anything that can report upstream reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	api         Pinger
	cache       *redis.Client
	serviceName string
}

// NewHealthHandler creates a new HealthHandler. cache may be nil when
// caching is disabled.
func NewHealthHandler(api Pinger, cache *redis.Client, serviceName string) *HealthHandler {
	return &HealthHandler{
		api:         api,
		cache:       cache,
		serviceName: serviceName,
	}
}

// Health returns basic health status
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "ok",
		"service": h.serviceName,
	})
}

// Ready checks the events API and, when configured, Redis
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	ready := true
	data := gin.H{
		"service": h.serviceName,
		"api":     "connected",
		"cache":   "disabled",
	}

	if err := h.api.Ping(ctx); err != nil {
		ready = false
		data["api"] = "disconnected"
		data["api_error"] = err.Error()
	}

	if h.cache != nil {
		data["cache"] = "connected"
		if err := h.cache.HealthCheck(ctx); err != nil {
			ready = false
			data["cache"] = "disconnected"
			data["cache_error"] = err.Error()
		}
	}

	if !ready {
		data["status"] = "not_ready"
		response.Write(c, http.StatusServiceUnavailable, false, data)
		return
	}

	data["status"] = "ready"
	response.Success(c, data)
}
