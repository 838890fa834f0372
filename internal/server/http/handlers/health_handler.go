package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/posdocs/internal/server/http/dto"
)

// HealthChecker reports storage readiness.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler answers readiness probes.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler constructs HealthHandler. A nil checker always reports ok.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *gin.Context) {
	if h.checker != nil {
		if err := h.checker.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
