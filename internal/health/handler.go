// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const checkTimeout = 5 * time.Second

// Component statuses.
const (
	StatusOK        = "ok"
	StatusUnhealthy = "unhealthy"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is a named dependency pinged by the health endpoint.
type Check struct {
	Name   string
	Pinger Pinger
}

// Handler handles health check requests.
type Handler struct {
	checks []Check
	logger *zap.SugaredLogger
}

// New creates a health handler that pings every check on each request.
func New(logger *zap.SugaredLogger, checks ...Check) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Response represents health check response.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Check handles GET /health. Dependencies are pinged in parallel and any
// failure turns the whole response into 503.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	results := make([]string, len(h.checks))
	var wg sync.WaitGroup
	for i, check := range h.checks {
		wg.Go(func() {
			if err := check.Pinger.Ping(ctx); err != nil {
				h.logger.Warnw("health check failed", "component", check.Name, "error", err)
				results[i] = StatusUnhealthy
				return
			}
			results[i] = StatusOK
		})
	}
	wg.Wait()

	resp := Response{Status: StatusOK, Checks: make(map[string]string, len(h.checks))}
	for i, check := range h.checks {
		resp.Checks[check.Name] = results[i]
		if results[i] != StatusOK {
			resp.Status = StatusUnhealthy
		}
	}

	code := http.StatusOK
	if resp.Status != StatusOK {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}
