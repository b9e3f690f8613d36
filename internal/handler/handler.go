package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Checker reports whether a dependency is usable.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error { return f(ctx) }

// Handler serves the health endpoints.
type Handler struct {
	checks map[string]Checker
	now    func() time.Time
}

// NewHandler builds a health handler that pings every named check on
// readiness.
func NewHandler(checks map[string]Checker) *Handler {
	if checks == nil {
		checks = map[string]Checker{}
	}
	return &Handler{checks: checks, now: time.Now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"status": "alive",
		"time":   h.now().UTC(),
	}))
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	failed := map[string]string{}
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			failed[name] = err.Error()
		}
	}

	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, &Response{
			Status:  "error",
			Message: "not ready",
			Data:    gin.H{"checks": failed},
		})
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"status": "ready",
		"time":   h.now().UTC(),
	}))
}
