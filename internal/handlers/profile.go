package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/middleware"
	"backend/internal/models"
)

// GetProfile returns the caller's profile, creating an empty one on first
// access.
func GetProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/profile"
		defer handlePanic(c, route)

		principal, ok := middleware.PrincipalFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var profile models.Profile
		err := db.Collection("profiles").FindOne(ctx, bson.M{"userId": principal.ID}).Decode(&profile)
		if err == mongo.ErrNoDocuments {
			profile = models.Profile{
				UserID:      principal.ID,
				Preferences: models.ProfilePreferences{EmailNotifications: true},
				UpdatedAt:   time.Now(),
			}
			c.JSON(http.StatusOK, profile)
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

type profileUpdateRequest struct {
	Address      *string                     `json:"address"`
	Preferences  *models.ProfilePreferences  `json:"preferences"`
	Subscription *models.ProfileSubscription `json:"subscription"`
}

func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/profile"
		defer handlePanic(c, route)

		principal, ok := middleware.PrincipalFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req profileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if req.Address != nil {
			set["address"] = strings.TrimSpace(*req.Address)
		}
		if req.Preferences != nil {
			set["preferences"] = *req.Preferences
		}
		if req.Subscription != nil {
			set["subscription"] = *req.Subscription
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := db.Collection("profiles").UpdateOne(
			ctx,
			bson.M{"userId": principal.ID},
			bson.M{"$set": set, "$setOnInsert": bson.M{"userId": principal.ID}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var profile models.Profile
		if err := db.Collection("profiles").FindOne(ctx, bson.M{"userId": principal.ID}).Decode(&profile); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}
