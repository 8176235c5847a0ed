package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Matchmaking MatchmakingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration

	MigrationsDir string
	RunSeeders    bool
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host       string
	Port       string
	Password   string
	DefaultTTL time.Duration
}

type MatchmakingConfig struct {
	// PollInterval drives the pending-session refresher; clamped to the
	// 3-30s band the client screens historically polled at.
	PollInterval time.Duration
	LockTTL      time.Duration
	PoolLimit    int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:              opt("DB_HOST"),
		DBPort:              opt("DB_PORT"),
		DBName:              opt("DB_NAME"),
		DBUser:              opt("DB_USER"),
		DBPassword:          opt("DB_PASSWORD"),
		DBSSLMode:           opt("DB_SSL_MODE"),
		ConnectTimeout:      secondsEnv("DB_CONNECT_TIMEOUT", 10),
		PoolMaxConns:        int32(intEnv("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:        int32(intEnv("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime: secondsEnv("DB_POOL_MAX_CONN_LIFETIME", 1800),
		PoolMaxConnIdleTime: secondsEnv("DB_POOL_MAX_CONN_IDLE_TIME", 300),
		MigrationsDir:       opt("DB_MIGRATIONS_DIR"),
		RunSeeders:          boolEnv("DB_RUN_SEEDERS", false),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  secondsEnv("JWT_ACCESS_EXPIRES_IN", 900),
		RefreshExpiresIn: secondsEnv("JWT_REFRESH_EXPIRES_IN", 604800),
	}

	cfg.Redis = RedisConfig{
		Host:       opt("REDIS_HOST"),
		Port:       opt("REDIS_PORT"),
		Password:   opt("REDIS_PASSWORD"),
		DefaultTTL: secondsEnv("REDIS_TTL", 600),
	}

	cfg.Matchmaking = MatchmakingConfig{
		PollInterval: clampDuration(secondsEnv("MATCH_POLL_INTERVAL", 10), 3*time.Second, 30*time.Second),
		LockTTL:      secondsEnv("MATCH_LOCK_TTL", 30),
		PoolLimit:    intEnv("MATCH_POOL_LIMIT", 200),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func intEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func secondsEnv(key string, fallbackSeconds int) time.Duration {
	v := intEnv(key, fallbackSeconds)
	if v <= 0 {
		v = fallbackSeconds
	}
	return time.Duration(v) * time.Second
}

func boolEnv(key string, fallback bool) bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch raw {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}

func clampDuration(v, minV, maxV time.Duration) time.Duration {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
