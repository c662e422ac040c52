package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/campusly/college-management/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HealthHandler reports whether the server can reach its backing stores.
type HealthHandler struct {
	pinger database.Pinger
	log    zerolog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pinger database.Pinger, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		pinger: pinger,
		log:    log.With().Str("component", "health_handler").Logger(),
	}
}

// Check godoc
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
