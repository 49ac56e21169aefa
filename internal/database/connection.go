package database

import (
	"context"
	"fmt"
	"puredrop/internal/migrations"
	"puredrop/internal/repository"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store bundles the repositories of whichever backend DATABASE_URL selects.
type Store struct {
	Owners  repository.OwnerRepository
	Orders  repository.OrderRepository
	Backend string

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Initialize connects to the store named by databaseURL. The scheme picks
// the backend: mongodb:// and mongodb+srv:// for MongoDB, postgres:// and
// postgresql:// for PostgreSQL through GORM, memory:// for an in-process store.
func Initialize(ctx context.Context, databaseURL, databaseName string, log *logrus.Logger) (*Store, error) {
	switch {
	case strings.HasPrefix(databaseURL, "mongodb://"), strings.HasPrefix(databaseURL, "mongodb+srv://"):
		return initializeMongo(ctx, databaseURL, databaseName, log)
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return initializePostgres(databaseURL, log)
	case strings.HasPrefix(databaseURL, "memory://"):
		mem := repository.NewMemoryStore()
		log.Warn("Using in-memory store, data is lost on restart")
		return &Store{Owners: mem.Owners(), Orders: mem.Orders(), Backend: "memory"}, nil
	default:
		return nil, fmt.Errorf("unsupported database URL scheme: %q", databaseURL)
	}
}

func initializeMongo(ctx context.Context, databaseURL, databaseName string, log *logrus.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		disconnectMongo(client, log)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := client.Database(databaseName)
	if err := migrations.EnsureIndexes(ctx, db, log); err != nil {
		disconnectMongo(client, log)
		return nil, err
	}

	log.WithField("database", databaseName).Info("MongoDB connected")
	return &Store{
		Owners:  repository.NewMongoOwnerRepository(db),
		Orders:  repository.NewMongoOrderRepository(db),
		Backend: "mongodb",
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: client.Disconnect,
	}, nil
}

// disconnectMongo releases a client whose setup failed. The caller's ctx may
// already be expired, so it gets its own deadline.
func disconnectMongo(client *mongo.Client, log *logrus.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Warn("Failed to disconnect MongoDB client")
	}
}

func initializePostgres(databaseURL string, log *logrus.Logger) (*Store, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrations.RunMigrations(db, log); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}

	log.Info("PostgreSQL connected and migrated successfully")
	return &Store{
		Owners:  repository.NewOwnerRepository(db),
		Orders:  repository.NewOrderRepository(db),
		Backend: "postgres",
		ping:    sqlDB.PingContext,
		close: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}
