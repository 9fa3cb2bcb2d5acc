package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pinger is any dependency the health check can probe
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	redis Pinger // nil when Redis is disabled
	now   func() time.Time
}

type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMs int64  `json:"latencyMs"`
}

func NewHealthHandler(db Pinger, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, now: time.Now}
}

// HealthCheck probes the database and Redis concurrently. Redis is optional:
// a failing cache degrades the report but does not fail it.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var dbCheck, redisCheck HealthCheck
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dbCheck = probe(gctx, "database", h.db)
		return nil
	})
	g.Go(func() error {
		redisCheck = probe(gctx, "redis", h.redis)
		return nil
	})
	_ = g.Wait()

	response := HealthCheckResponse{
		Status:    "healthy",
		Version:   constants.AppVersion,
		Timestamp: h.now().UTC(),
		Checks: map[string]HealthCheck{
			"database": dbCheck,
			"redis":    redisCheck,
		},
	}
	statusCode := http.StatusOK
	switch {
	case dbCheck.Status != "healthy":
		response.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	case redisCheck.Status == "unhealthy":
		response.Status = "degraded"
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)
	c.JSON(statusCode, response)
}

func probe(ctx context.Context, name string, p Pinger) HealthCheck {
	if p == nil {
		return HealthCheck{Status: "disabled", Message: name + " is disabled"}
	}

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		logger.GetLogger().Warn("Health probe failed", zap.String("dependency", name), zap.Error(err))
		return HealthCheck{Status: "unhealthy", Message: fmt.Sprintf("%s ping failed", name), LatencyMs: latency}
	}
	return HealthCheck{Status: "healthy", LatencyMs: latency}
}
