package app

import (
	"context"
	"log"
	"time"

	"github.com/eKidenge/QuickConnect-sub000/internal/config"
	"github.com/eKidenge/QuickConnect-sub000/internal/database"
	dbpostgres "github.com/eKidenge/QuickConnect-sub000/internal/database/postgres"
	"github.com/eKidenge/QuickConnect-sub000/internal/infrastructure/cache"
	"github.com/eKidenge/QuickConnect-sub000/internal/ws"
)

// Container holds the shared infrastructure: one DB pool, one cache
// client, one websocket hub, built once at startup.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Hub:    ws.NewHub(logger),
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
