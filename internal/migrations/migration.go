package migrations

import (
	"context"
	"fmt"
	"puredrop/internal/models"
	"puredrop/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// RunMigrations creates the owners and orders tables with their indexes.
func RunMigrations(db *gorm.DB, logger *logrus.Logger) error {
	logger.Info("Running database migrations...")

	if err := db.AutoMigrate(&models.ShopOwner{}, &models.Order{}); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// EnsureIndexes creates the Mongo indexes the repositories rely on: a unique
// phone per owner and a per-shop listing index for orders.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *logrus.Logger) error {
	logger.Info("Ensuring collection indexes...")

	_, err := db.Collection(repository.OwnersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("phone_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create owners index: %w", err)
	}

	_, err = db.Collection(repository.OrdersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "shopPhone", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("shop_created"),
	})
	if err != nil {
		return fmt.Errorf("failed to create orders index: %w", err)
	}

	logger.Info("Collection indexes ready")
	return nil
}
