package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mvaldes/digital-toolkit/internal/database"
	"github.com/mvaldes/digital-toolkit/internal/notify"
)

// HealthChecker handles health check requests
type HealthChecker struct {
	db    *database.DB
	redis *redis.Client
	sink  *notify.RabbitMQSink
}

// NewHealthChecker creates a health checker over the service's dependencies
func NewHealthChecker(db *database.DB, redisClient *redis.Client, sink *notify.RabbitMQSink) *HealthChecker {
	return &HealthChecker{db: db, redis: redisClient, sink: sink}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint. Extended mode pings every
// dependency; basic mode only reports that the server is up.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if r.URL.Query().Get("mode") == "extended" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := make(map[string]string)
		check := func(name string, err error) {
			if err != nil {
				response.Status = "unhealthy"
				checks[name] = "unhealthy: " + err.Error()
				return
			}
			checks[name] = "healthy"
		}

		check("database", h.db.PingContext(ctx))
		if h.redis != nil {
			check("redis", h.redis.Ping(ctx).Err())
		}
		if h.sink != nil {
			check("rabbitmq", h.sink.HealthCheck(ctx))
		}
		response.Checks = checks
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		_ = err
	}
}
