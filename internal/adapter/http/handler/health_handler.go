package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	componentOK            = "ok"
	componentNotConfigured = "not configured"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a new health handler. Either dependency may be nil.
func NewHealthHandler(db *gorm.DB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := map[string]string{
		"database": h.checkDatabase(ctx),
		"redis":    h.checkRedis(ctx),
	}

	status, httpStatus := "healthy", http.StatusOK
	for _, state := range components {
		if state != componentOK && state != componentNotConfigured {
			status, httpStatus = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(httpStatus, HealthStatus{Status: status, Components: components})
}

// Ready handles GET /ready. Only the database gates readiness; the stats
// cache is optional.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if state := h.checkDatabase(ctx); state != componentOK && state != componentNotConfigured {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": state})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) string {
	if h.db == nil {
		return componentNotConfigured
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "error: " + err.Error()
	}
	return componentOK
}

func (h *HealthHandler) checkRedis(ctx context.Context) string {
	if h.redis == nil {
		return componentNotConfigured
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return "error: " + err.Error()
	}
	return componentOK
}
