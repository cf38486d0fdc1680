// Package sessionstore selects where fiber sessions are persisted.
package sessionstore

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/redis/go-redis/v9"
	"github.com/ueldo/ueldo-backend/internal/config"
)

// New returns the configured fiber.Storage, or nil for in-memory sessions.
func New(cfg *config.Config) (fiber.Storage, error) {
	switch cfg.SessionStore {
	case "memory", "":
		return nil, nil
	case "postgres":
		port, err := strconv.Atoi(cfg.DBPort)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT %q: %w", cfg.DBPort, err)
		}
		return postgres.New(postgres.Config{
			Host:     cfg.DBHost,
			Port:     port,
			Database: cfg.DBName,
			Username: cfg.DBUser,
			Password: cfg.DBPassword,
			SSLMode:  cfg.DBSSLMode,
			Table:    cfg.SessionTable,
			Reset:    false,
		}), nil
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return NewRedisStorage(redis.NewClient(opts), "session:"), nil
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.SessionStore)
	}
}
