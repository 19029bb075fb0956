package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

/* =======================
   SETTINGS SINGLETON
======================= */

type settingsUpdateRequest struct {
	SiteName        *string `json:"siteName"`
	MaintenanceMode *bool   `json:"maintenanceMode"`
	PromoBanner     *string `json:"promoBanner"`
	SupportEmail    *string `json:"supportEmail"`
	SupportPhone    *string `json:"supportPhone"`
}

func GetSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/settings"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		settings, err := loadSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

func UpdateSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/settings"
		defer handlePanic(c, route)

		var req settingsUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if req.SiteName != nil {
			set["siteName"] = strings.TrimSpace(*req.SiteName)
		}
		if req.MaintenanceMode != nil {
			set["maintenanceMode"] = *req.MaintenanceMode
		}
		if req.PromoBanner != nil {
			set["promoBanner"] = strings.TrimSpace(*req.PromoBanner)
		}
		if req.SupportEmail != nil {
			set["supportEmail"] = strings.TrimSpace(*req.SupportEmail)
		}
		if req.SupportPhone != nil {
			set["supportPhone"] = strings.TrimSpace(*req.SupportPhone)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := db.Collection("settings").UpdateOne(
			ctx,
			bson.M{},
			bson.M{"$set": set},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		settings, err := loadSettings(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

/* =======================
   PAYMENT METHODS
   The array is replaced as a whole on every mutation.
======================= */

type paymentMethodRequest struct {
	Name          string `json:"name" binding:"required"`
	Logo          string `json:"logo"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	AccountName   string `json:"accountName" binding:"required"`
	Phone         string `json:"phone"`
	IsActive      *bool  `json:"isActive"`
}

func AddPaymentMethod(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/settings/payment-methods"
		defer handlePanic(c, route)

		var req paymentMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		method := models.PaymentMethod{
			ID:            uuid.New().String(),
			Name:          strings.TrimSpace(req.Name),
			Logo:          strings.TrimSpace(req.Logo),
			AccountNumber: strings.TrimSpace(req.AccountNumber),
			AccountName:   strings.TrimSpace(req.AccountName),
			Phone:         strings.TrimSpace(req.Phone),
			IsActive:      isActive,
		}

		mutatePaymentMethods(c, db, route, func(methods []models.PaymentMethod) ([]models.PaymentMethod, bool) {
			return append(methods, method), true
		}, gin.H{"id": method.ID, "message": "payment method added"})
	}
}

func UpdatePaymentMethod(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/settings/payment-methods/:id"
		defer handlePanic(c, route)

		methodID := c.Param("id")

		var req paymentMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		mutatePaymentMethods(c, db, route, func(methods []models.PaymentMethod) ([]models.PaymentMethod, bool) {
			for i := range methods {
				if methods[i].ID != methodID {
					continue
				}
				methods[i].Name = strings.TrimSpace(req.Name)
				methods[i].Logo = strings.TrimSpace(req.Logo)
				methods[i].AccountNumber = strings.TrimSpace(req.AccountNumber)
				methods[i].AccountName = strings.TrimSpace(req.AccountName)
				methods[i].Phone = strings.TrimSpace(req.Phone)
				if req.IsActive != nil {
					methods[i].IsActive = *req.IsActive
				}
				return methods, true
			}
			return methods, false
		}, gin.H{"message": "payment method updated"})
	}
}

func TogglePaymentMethod(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/settings/payment-methods/:id/toggle"
		defer handlePanic(c, route)

		methodID := c.Param("id")

		mutatePaymentMethods(c, db, route, func(methods []models.PaymentMethod) ([]models.PaymentMethod, bool) {
			for i := range methods {
				if methods[i].ID == methodID {
					methods[i].IsActive = !methods[i].IsActive
					return methods, true
				}
			}
			return methods, false
		}, gin.H{"message": "payment method toggled"})
	}
}

func DeletePaymentMethod(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/settings/payment-methods/:id"
		defer handlePanic(c, route)

		methodID := c.Param("id")

		mutatePaymentMethods(c, db, route, func(methods []models.PaymentMethod) ([]models.PaymentMethod, bool) {
			for i := range methods {
				if methods[i].ID == methodID {
					return append(methods[:i], methods[i+1:]...), true
				}
			}
			return methods, false
		}, gin.H{"message": "payment method deleted"})
	}
}

func mutatePaymentMethods(c *gin.Context, db *mongo.Database, route string, apply func([]models.PaymentMethod) ([]models.PaymentMethod, bool), success gin.H) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	settings, err := loadSettings(ctx, db)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return
	}

	updated, found := apply(settings.PaymentMethods)
	if !found {
		respondWithError(c, http.StatusNotFound, route, "payment method not found")
		return
	}

	_, err = db.Collection("settings").UpdateOne(
		ctx,
		bson.M{},
		bson.M{"$set": bson.M{
			"paymentMethods": updated,
			"updatedAt":      time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return
	}

	c.JSON(http.StatusOK, success)
}
