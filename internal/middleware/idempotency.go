package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AsrarMemon/event-management-frontend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DefaultIdempotencyTTL keeps a completed submission replayable
	DefaultIdempotencyTTL = 10 * time.Minute
	// DefaultProcessingTTL bounds how long an in-flight submission blocks repeats
	DefaultProcessingTTL = 2 * time.Minute
	// IdempotencyKeyPrefix namespaces the records in Redis
	IdempotencyKeyPrefix = "idempotency:form:"
)

// IdempotencyStatus represents the status of an idempotency record
type IdempotencyStatus string

const (
	StatusProcessing IdempotencyStatus = "processing"
	StatusCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord stores the outcome of one form submission
type IdempotencyRecord struct {
	Key       string            `json:"key"`
	Status    IdempotencyStatus `json:"status"`
	Target    string            `json:"target"`
	Location  string            `json:"location,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// RedisClient interface for Redis operations
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// IdempotencyConfig holds configuration for the form submission guard
type IdempotencyConfig struct {
	Redis RedisClient
	// TTL for completed records
	TTL time.Duration
	// ProcessingTTL for in-flight records
	ProcessingTTL time.Duration
	// KeyExtractor returns the submission key; empty disables the guard
	KeyExtractor func(*gin.Context) string
	// Skip reports requests that are not submissions (tag edits)
	Skip func(*gin.Context) bool
	// InProgress renders the response for a repeat of an in-flight submission
	InProgress gin.HandlerFunc
	Logger     *logger.Logger
}

// Idempotency guards form submissions against repeats. The first submit of
// a key runs the handler; a successful outcome (a redirect) is recorded and
// repeats are sent to the same place. Failed submissions are forgotten so
// the corrected form can be sent again. Redis errors fail open.
func Idempotency(config *IdempotencyConfig) gin.HandlerFunc {
	if config.TTL <= 0 {
		config.TTL = DefaultIdempotencyTTL
	}
	if config.ProcessingTTL <= 0 {
		config.ProcessingTTL = DefaultProcessingTTL
	}
	if config.InProgress == nil {
		config.InProgress = func(c *gin.Context) { c.AbortWithStatus(http.StatusConflict) }
	}
	if config.Logger == nil {
		config.Logger = logger.NewNop()
	}

	return func(c *gin.Context) {
		if config.Skip != nil && config.Skip(c) {
			c.Next()
			return
		}

		key := config.KeyExtractor(c)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		redisKey := IdempotencyKeyPrefix + key
		target := c.Request.Method + " " + c.Request.URL.Path

		record := &IdempotencyRecord{
			Key:       key,
			Status:    StatusProcessing,
			Target:    target,
			CreatedAt: time.Now(),
		}

		acquired, err := trySetIdempotencyRecord(ctx, config.Redis, redisKey, record, config.ProcessingTTL)
		if err != nil {
			config.Logger.WarnContext(ctx, "Idempotency check failed, continuing without it", zap.Error(err))
			c.Next()
			return
		}

		if !acquired {
			existing, err := getIdempotencyRecord(ctx, config.Redis, redisKey)
			switch {
			case err != nil:
				// Expired between SetNX and Get, or unreadable
				c.Next()
			case existing.Target != target:
				config.Logger.WarnContext(ctx, "Submission key reused for a different target",
					zap.String("key", key),
					zap.String("target", target),
				)
				c.Next()
			case existing.Status == StatusProcessing:
				config.InProgress(c)
				c.Abort()
			default:
				c.Redirect(http.StatusSeeOther, existing.Location)
				c.Abort()
			}
			return
		}

		c.Next()

		status := c.Writer.Status()
		location := c.Writer.Header().Get("Location")
		if status < 300 || status >= 400 || location == "" {
			_ = config.Redis.Del(ctx, redisKey).Err()
			return
		}

		record.Status = StatusCompleted
		record.Location = location
		if err := saveIdempotencyRecord(ctx, config.Redis, redisKey, record, config.TTL); err != nil {
			config.Logger.WarnContext(ctx, "Failed to record completed submission", zap.Error(err))
		}
	}
}

func getIdempotencyRecord(ctx context.Context, client RedisClient, key string) (*IdempotencyRecord, error) {
	result, err := client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var record IdempotencyRecord
	if err := json.Unmarshal([]byte(result), &record); err != nil {
		return nil, err
	}
	if record.Status == StatusCompleted && record.Location == "" {
		return nil, errors.New("completed record without location")
	}
	return &record, nil
}

func trySetIdempotencyRecord(ctx context.Context, client RedisClient, key string, record *IdempotencyRecord, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return false, err
	}
	return client.SetNX(ctx, key, string(data), ttl).Result()
}

func saveIdempotencyRecord(ctx context.Context, client RedisClient, key string, record *IdempotencyRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, string(data), ttl).Err()
}
