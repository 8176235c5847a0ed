package routes

import (
	"log"

	"github.com/eKidenge/QuickConnect-sub000/internal/config"
	"github.com/eKidenge/QuickConnect-sub000/internal/database"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/handler"
	"github.com/eKidenge/QuickConnect-sub000/internal/infrastructure/cache"
	"github.com/eKidenge/QuickConnect-sub000/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries everything route registration needs to build the handler
// graph. Constructed once at bootstrap.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

type Registry struct {
	deps   Deps
	health *handler.HealthHandler
	wsh    *ws.Handler
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:   deps,
		health: handler.NewHealthHandler(deps.DB, deps.Cache),
		wsh:    ws.NewHandler(deps.Hub, deps.Logger),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	app.Get("/ws/sessions", r.wsh.HandleSessionsWS)

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
