package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"portfolio_app_echo/internal/services"
)

// HealthHandler reports whether the optional backing stores are reachable
type HealthHandler struct {
	db    *gorm.DB
	cache *services.RedisCache
}

func NewHealthHandler(db *gorm.DB, cache *services.RedisCache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health answers 200 when every configured dependency responds, 503 otherwise.
// Unconfigured stores are reported as disabled and do not fail the check.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{"database": "disabled", "redis": "disabled"}

	if h.db != nil {
		checks["database"] = "ok"
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	if h.cache != nil {
		checks["redis"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	result := "ok"
	if status != http.StatusOK {
		result = "degraded"
	}
	return c.JSON(status, map[string]interface{}{
		"status": result,
		"checks": checks,
	})
}
