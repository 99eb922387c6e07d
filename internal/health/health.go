package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Handler serves liveness and readiness probes.
type Handler struct {
	service string
	checks  map[string]Check
	started time.Time
}

// NewHandler creates a new Handler. checks run on every readiness probe.
func NewHandler(service string, checks map[string]Check) *Handler {
	return &Handler{service: service, checks: checks, started: time.Now()}
}

// RegisterRoutes registers /health and /health/ready.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Live)
	router.GET("/health/ready", h.Ready)
}

// Live always answers ok while the process is serving.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready runs every check and answers 503 if any fails.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	c.JSON(status, gin.H{
		"status":  overall,
		"service": h.service,
		"checks":  results,
	})
}
