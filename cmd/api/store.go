package main

import (
	"context"
	"fmt"

	"catalog-api/internal/config"
	"catalog-api/internal/database"
	"catalog-api/internal/handler"
	"catalog-api/internal/repository"
	"catalog-api/internal/repository/memory"
	"catalog-api/internal/repository/mongodb"
	"catalog-api/internal/repository/postgres"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// store bundles the repositories of the configured driver with its
// readiness probe and shutdown hook.
type store struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	pinger   handler.Pinger
	close    func()
}

// openStore connects to the store selected by cfg.Driver and prepares its
// schema or indexes.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := database.NewMongoClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabaseName())
		if err := mongodb.EnsureIndexes(ctx, db, logger); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			products: mongodb.NewProductRepository(db, logger),
			reviews:  mongodb.NewReviewRepository(db, logger),
			pinger: handler.PingFunc(func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			}),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
				}
			},
		}, nil

	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
		return &store{
			products: postgres.NewProductRepository(pool, logger),
			reviews:  postgres.NewReviewRepository(pool, logger),
			pinger:   pool,
			close:    pool.Close,
		}, nil

	case config.DriverMemory:
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		mem := memory.NewStore()
		return &store{
			products: mem.Products(),
			reviews:  mem.Reviews(),
			pinger:   mem,
			close:    func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
