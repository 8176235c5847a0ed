package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/eKidenge/QuickConnect-sub000/internal/config"
	"github.com/eKidenge/QuickConnect-sub000/internal/database/migration"
	"github.com/eKidenge/QuickConnect-sub000/internal/database/seeder"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/middleware"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/routes"
	"github.com/eKidenge/QuickConnect-sub000/internal/poller"
	"github.com/eKidenge/QuickConnect-sub000/internal/repository"
	"github.com/eKidenge/QuickConnect-sub000/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Hub       *ws.Hub
	Poller    *poller.PendingPoller
	Container *Container
}

// Bootstrap wires the whole process: connects the stores, applies
// migrations, optionally seeds, and builds the HTTP surface. The
// returned cleanup closes the container.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := prepareSchema(cfg, c); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	ws.SetDefaultHub(c.Hub)

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, logger)

	registry := routes.NewRegistry(routes.Deps{
		Config: cfg,
		DB:     c.DB,
		Cache:  c.Cache,
		Hub:    c.Hub,
		Logger: logger,
	})
	registry.Register(f)

	sessionRepo := repository.NewPostgresSessionRepository(c.DB)
	pendingPoller := poller.NewPendingPoller(
		sessionRepo,
		cfg.Matchmaking.PollInterval,
		cfg.Matchmaking.PoolLimit,
		logger,
	)

	app := &App{Fiber: f, Hub: c.Hub, Poller: pendingPoller, Container: c}
	return app, c.Close, nil
}

func prepareSchema(cfg config.Config, c *Container) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, c.DB); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	if cfg.Database.RunSeeders {
		sr := seeder.Runner{Seeders: seeder.Defaults()}
		if err := sr.Run(ctx, c.DB); err != nil {
			return fmt.Errorf("seeders: %w", err)
		}
	}

	return nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger)
	errMw := middleware.NewErrorMiddleware(logger)

	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
