package handlers

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/middleware"
	"backend/internal/models"
	"backend/internal/workflow"
)

/* =========================
   LISTING
========================= */

// GetAllOrders lists orders for the admin dashboard with pagination, an
// optional status filter and a substring search over the customer snapshot.
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			if !workflow.ValidStatus(models.OrderStatus(status)) {
				respondWithError(c, http.StatusBadRequest, route, "invalid status filter")
				return
			}
			filter["status"] = status
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			pattern := bson.M{"$regex": search, "$options": "i"}
			filter["$or"] = []bson.M{
				{"customer.name": pattern},
				{"customer.email": pattern},
				{"customer.phone": pattern},
				{"items.name": pattern},
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("orders").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("orders").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":     orders,
			"total":      total,
			"page":       page,
			"totalPages": int64(math.Ceil(float64(total) / float64(limit))),
		})
	}
}

func GetAdminOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

/* =========================
   VERIFICATION
========================= */

type verifyPaymentRequest struct {
	Notes string `json:"notes"`
}

// AcceptPayment approves the payment linked to an order; RejectPayment
// mirrors it. Both resolve the order's payment record and hand the single-use
// decision to the workflow.
func AcceptPayment(svc *workflow.Service, db *mongo.Database) gin.HandlerFunc {
	return decidePayment(svc, db, true, "PUT /admin/api/orders/:id/accept-payment")
}

func RejectPayment(svc *workflow.Service, db *mongo.Database) gin.HandlerFunc {
	return decidePayment(svc, db, false, "PUT /admin/api/orders/:id/reject-payment")
}

func decidePayment(svc *workflow.Service, db *mongo.Database, approve bool, route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		principal, ok := middleware.PrincipalFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req verifyPaymentRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid request body")
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if order.PaymentID == nil {
			respondWithError(c, http.StatusConflict, route, "order has no payment submission")
			return
		}

		payment, err := svc.VerifyPayment(ctx, order.PaymentID.Hex(), approve, principal.ID.Hex(), req.Notes)
		if err != nil {
			respondWorkflowError(c, route, err)
			return
		}

		orderStatus := models.OrderStatusVerified
		if !approve {
			orderStatus = models.OrderStatusCancelled
		}

		c.JSON(http.StatusOK, gin.H{
			"paymentId":     payment.ID.Hex(),
			"paymentStatus": payment.Status,
			"orderStatus":   orderStatus,
		})
	}
}

/* =========================
   CREDENTIAL DELIVERY
========================= */

type deliverVPNRequest struct {
	OrderID     string                `json:"orderId" binding:"required"`
	Credentials models.VPNCredentials `json:"vpnCredentials" binding:"required"`
	Redeliver   bool                  `json:"redeliver"`
}

func DeliverVPN(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/deliver-vpn"
		defer handlePanic(c, route)

		var req deliverVPNRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		order, err := svc.DeliverCredentials(ctx, workflow.DeliverCredentialsInput{
			OrderID:     req.OrderID,
			Credentials: req.Credentials,
			Redeliver:   req.Redeliver,
		})
		if err != nil {
			respondWorkflowError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId": order.ID.Hex(),
			"status":  order.Status,
			"message": "credentials delivered",
		})
	}
}

/* =========================
   OVERRIDE / EDIT / DELETE
========================= */

type overrideStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OverrideOrderStatus is the unguarded admin escape hatch; it is a separate
// operation from the verification flow and every use is logged with the
// acting admin.
func OverrideOrderStatus(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		principal, ok := middleware.PrincipalFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req overrideStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		order, err := svc.OverrideStatus(ctx, c.Param("id"), models.OrderStatus(req.Status), principal.ID.Hex())
		if err != nil {
			respondWorkflowError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId": order.ID.Hex(),
			"status":  order.Status,
		})
	}
}

type updateOrderRequest struct {
	Customer *createOrderCustomerRequest `json:"customerInfo"`
}

// UpdateOrder edits the customer contact snapshot. Status changes go through
// OverrideOrderStatus so they stay auditable.
func UpdateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Customer == nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").UpdateOne(
			ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{
				"customer": models.OrderCustomer{
					Name:  strings.TrimSpace(req.Customer.Name),
					Email: strings.TrimSpace(req.Customer.Email),
					Phone: strings.TrimSpace(req.Customer.Phone),
				},
				"updatedAt": time.Now(),
			}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order updated"})
	}
}

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
