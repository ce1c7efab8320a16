package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// Pinger is a dependency the health check probes
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /healthz
type HealthHandler struct {
	checks map[string]Pinger
	logger coreport.Logger
}

// NewHealthHandler creates a health handler probing the named checks
func NewHealthHandler(checks map[string]Pinger, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger}
}

// Health reports ok when every check answers, 503 otherwise
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(c.Request.Context()); err != nil {
			h.logger.Warn("Health check failed", map[string]any{"check": name, "error": err.Error()})
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": results})
}
