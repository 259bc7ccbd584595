package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/AsrarMemon/event-management-frontend/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(ctx context.Context) error {
	return p.err
}

func setupHealthRouter(h *HealthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	return router
}

func decodeData(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Data
}

func TestHealthHandler_Health(t *testing.T) {
	router := setupHealthRouter(NewHealthHandler(&fakePinger{}, nil, "event-console"))

	w := get(router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "event-console", decodeData(t, w.Body.Bytes())["service"])
}

func TestHealthHandler_Ready_WithoutCache(t *testing.T) {
	router := setupHealthRouter(NewHealthHandler(&fakePinger{}, nil, "event-console"))

	w := get(router, "/ready")

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w.Body.Bytes())
	assert.Equal(t, "ready", data["status"])
	assert.Equal(t, "disabled", data["cache"])
}

func TestHealthHandler_Ready_APIDown(t *testing.T) {
	router := setupHealthRouter(NewHealthHandler(&fakePinger{err: errors.New("connection refused")}, nil, "event-console"))

	w := get(router, "/ready")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	data := decodeData(t, w.Body.Bytes())
	assert.Equal(t, "not_ready", data["status"])
	assert.Equal(t, "disconnected", data["api"])
}

func TestHealthHandler_Ready_WithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	client, err := redis.NewClient(context.Background(), &redis.Config{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	router := setupHealthRouter(NewHealthHandler(&fakePinger{}, client, "event-console"))

	w := get(router, "/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "connected", decodeData(t, w.Body.Bytes())["cache"])

	mr.Close()
	w = get(router, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "disconnected", decodeData(t, w.Body.Bytes())["cache"])
}
