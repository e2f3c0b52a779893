// Package store opens the backend selected by STORE and hands back its
// repositories behind the repository interfaces.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/todo-api/config"
	"github.com/ErlanBelekov/todo-api/internal/health"
	"github.com/ErlanBelekov/todo-api/internal/infrastructure/mongo"
	"github.com/ErlanBelekov/todo-api/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/todo-api/internal/repository"
)

type Store struct {
	Name   string
	Users  repository.UserRepository
	Todos  repository.TodoRepository
	Pinger health.Pinger
	close  func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		return openPostgres(ctx, cfg, logger)
	case config.StoreMongo:
		return openMongo(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.BootstrapSchema {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("postgres schema ensured")
	}
	return &Store{
		Name:   config.StorePostgres,
		Users:  postgres.NewUserRepository(pool),
		Todos:  postgres.NewTodoRepository(pool),
		Pinger: pool,
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	if cfg.BootstrapSchema {
		if err := client.EnsureIndexes(ctx); err != nil {
			_ = client.Close(context.Background())
			return nil, err
		}
		logger.Info("mongo indexes ensured", "database", cfg.MongoDatabase)
	}
	return &Store{
		Name:   config.StoreMongo,
		Users:  mongo.NewUserRepository(client),
		Todos:  mongo.NewTodoRepository(client),
		Pinger: client,
		close:  client.Close,
	}, nil
}
