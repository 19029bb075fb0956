package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

// GetPaymentMethods returns the active mobile-wallet channels shown to the
// customer at checkout.
func GetPaymentMethods(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /payment-methods"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := loadSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		active := make([]models.PaymentMethod, 0, len(settings.PaymentMethods))
		for _, method := range settings.PaymentMethods {
			if method.IsActive {
				active = append(active, method)
			}
		}

		c.JSON(http.StatusOK, active)
	}
}

// loadSettings returns the singleton settings document, or an empty one when
// the site has never been configured.
func loadSettings(ctx context.Context, db *mongo.Database) (models.Settings, error) {
	var settings models.Settings
	err := db.Collection("settings").FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return models.Settings{PaymentMethods: []models.PaymentMethod{}}, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	if settings.PaymentMethods == nil {
		settings.PaymentMethods = []models.PaymentMethod{}
	}
	return settings, nil
}
