package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wonny/papertrade/internal/api/response"
	"github.com/wonny/papertrade/internal/infra/database/postgres"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	pool *postgres.Pool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(pool *postgres.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.pool.Health(c.Request.Context())

	if status.Status == "unhealthy" {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Ready handles GET /health/ready. It fails when the database is unreachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.pool.Ping(c.Request.Context()); err != nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeInternalError, "database not ready")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
