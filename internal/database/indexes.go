package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"backend/internal/logging"
)

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	nameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("name_index"),
	}
	activeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "category", Value: 1}},
		Options: options.Index().SetName("active_category_index"),
	}

	_, err := db.Collection("products").Indexes().CreateMany(ctx, []mongo.IndexModel{nameIndex, activeIndex})
	if err != nil {
		logging.GetLogger().Warn("product index creation failed", zap.Error(err))
		return err
	}
	return nil
}

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	_, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		logging.GetLogger().Warn("user index creation failed", zap.Error(err))
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("userId_index"),
	}
	statusIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("status_createdAt_index"),
	}

	_, err := db.Collection("orders").Indexes().CreateMany(ctx, []mongo.IndexModel{userIDIndex, statusIndex})
	if err != nil {
		logging.GetLogger().Warn("order index creation failed", zap.Error(err))
		return err
	}
	return nil
}

func EnsurePaymentIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	orderIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetName("orderId_index"),
	}
	statusIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "submittedAt", Value: -1}},
		Options: options.Index().SetName("status_submittedAt_index"),
	}

	_, err := db.Collection("payments").Indexes().CreateMany(ctx, []mongo.IndexModel{orderIDIndex, statusIndex})
	if err != nil {
		logging.GetLogger().Warn("payment index creation failed", zap.Error(err))
		return err
	}
	return nil
}
