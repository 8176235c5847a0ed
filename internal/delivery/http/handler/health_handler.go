package handler

import (
	"context"
	"time"

	"github.com/eKidenge/QuickConnect-sub000/internal/database"
	"github.com/eKidenge/QuickConnect-sub000/internal/infrastructure/cache"
	"github.com/eKidenge/QuickConnect-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, c *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports the process plus its backing stores. Redis being down is
// degraded, not unhealthy, because the cache layer bypasses itself.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "down"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	cacheStatus := "ok"
	if err := h.cache.Ping(ctx); err != nil {
		cacheStatus = "bypassed"
	}

	data := map[string]any{
		"database": dbStatus,
		"cache":    cacheStatus,
	}

	if dbStatus != "ok" {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
