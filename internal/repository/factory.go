// Package repository selects the preferences storage backend.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"readease/internal/config"
	"readease/internal/domain/repositories"
	"readease/internal/repository/memory"
	"readease/internal/repository/postgres"
	"readease/internal/repository/redis"
	"readease/internal/repository/sqlite"
)

// Store is an opened preferences backend.
type Store struct {
	Preferences repositories.UserPreferencesRepository
	Backend     string
	close       func() error
}

// Close releases connections held by the backend.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open builds the repository named by cfg.PreferencesBackend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.PreferencesBackend {
	case "", "memory":
		return &Store{Preferences: memory.NewUserPreferencesRepository(), Backend: "memory"}, nil

	case "postgres":
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		tables := postgres.NewTableNames(cfg.TablePrefix)
		repo := postgres.NewUserPreferencesRepository(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		})
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("preferences stored in postgres", "table", tables.UserPreferences)
		return &Store{
			Preferences: repo,
			Backend:     "postgres",
			close:       func() error { pool.Close(); return nil },
		}, nil

	case "redis":
		rdb, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("preferences stored in redis")
		return &Store{
			Preferences: redis.NewUserPreferencesRepository(rdb, logger),
			Backend:     "redis",
			close:       rdb.Close,
		}, nil

	case "sqlite":
		repo, err := sqlite.Open(ctx, cfg.SQLitePath, cfg.TablePrefix)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Info("preferences stored in sqlite", "path", cfg.SQLitePath, "table", repo.Table())
		return &Store{Preferences: repo, Backend: "sqlite", close: repo.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported PREFERENCES_BACKEND %q", cfg.PreferencesBackend)
	}
}
