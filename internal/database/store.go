package database

import (
	"context"
	"fmt"

	"tokobaju/internal/config"
	"tokobaju/internal/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store bundles the user and catalog repositories of the configured driver.
type Store struct {
	Users   repositories.UserRepository
	Clothes repositories.ClothingRepository

	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// Open connects to the store selected by cfg.DBDriver.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		return &Store{
			Users:   repositories.NewInMemoryUserRepository(),
			Clothes: repositories.NewInMemoryClothingRepository(),
			migrate: func(context.Context) error { return nil },
			close:   func(context.Context) error { return nil },
		}, nil

	case config.DriverMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		users := repositories.NewMongoUserRepository(db)
		logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))
		return &Store{
			Users:   users,
			Clothes: repositories.NewMongoClothingRepository(db),
			migrate: users.EnsureIndexes,
			close:   client.Disconnect,
		}, nil

	default:
		db, err := OpenGORM(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to database", zap.String("driver", cfg.DBDriver))
		return NewGORMStore(db), nil
	}
}

// NewGORMStore wraps an open GORM connection.
func NewGORMStore(db *gorm.DB) *Store {
	return &Store{
		Users:   repositories.NewGORMUserRepository(db),
		Clothes: repositories.NewGORMClothingRepository(db),
		migrate: func(context.Context) error { return AutoMigrate(db) },
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("failed to get sql.DB: %w", err)
			}
			return sqlDB.Close()
		},
	}
}

// Migrate creates tables or indexes required by the store.
func (s *Store) Migrate(ctx context.Context) error {
	return s.migrate(ctx)
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}
