package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/middleware"
	"backend/internal/models"
	"backend/internal/workflow"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

type createOrderRequest struct {
	Customer createOrderCustomerRequest `json:"customerInfo" binding:"required"`
	Items    []workflow.CreateOrderItem `json:"items" binding:"required"`
}

type submitPaymentRequest struct {
	OrderID       string `json:"orderId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
	SenderName    string `json:"senderName" binding:"required"`
	SenderPhone   string `json:"senderPhone" binding:"required"`
	Amount        int64  `json:"amount"`
	ProofImage    string `json:"proofImage"`
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(svc *workflow.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		// Guests may order; a valid token just links the order to the account.
		userID, err := userIDFromHeader(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		order, err := svc.CreateOrder(ctx, workflow.CreateOrderInput{
			UserID: userID,
			Customer: models.OrderCustomer{
				Name:  strings.TrimSpace(req.Customer.Name),
				Email: strings.TrimSpace(req.Customer.Email),
				Phone: strings.TrimSpace(req.Customer.Phone),
			},
			Items: req.Items,
		})
		if err != nil {
			respondWorkflowError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId": order.ID.Hex(),
			"total":   order.TotalAmount,
			"status":  order.Status,
		})
	}
}

/* =========================
   SUBMIT PAYMENT
========================= */

func SubmitPayment(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /payment/submit"
		defer handlePanic(c, route)

		var req submitPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		payment, err := svc.SubmitPayment(ctx, workflow.SubmitPaymentInput{
			OrderID:       req.OrderID,
			Method:        req.PaymentMethod,
			TransactionID: req.TransactionID,
			SenderName:    req.SenderName,
			SenderPhone:   req.SenderPhone,
			Amount:        req.Amount,
			ProofImage:    req.ProofImage,
		})
		if err != nil {
			respondWorkflowError(c, route, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"paymentId": payment.ID.Hex(),
			"status":    payment.Status,
			"message":   "payment submitted, awaiting verification",
		})
	}
}

/* =========================
   LIST / FETCH ORDERS
========================= */

// GetMyOrders lists the authenticated user's orders, newest first.
func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		principal, ok := middleware.PrincipalFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(
			ctx,
			bson.M{"userId": principal.ID},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
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

		c.JSON(http.StatusOK, orders)
	}
}

// GetOrder returns a single order by its opaque id, so guests can track an
// order from the confirmation link.
func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
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

// userIDFromHeader extracts the user id from an optional bearer token. An
// absent header is not an error; a malformed token is.
func userIDFromHeader(header, secret string) (*primitive.ObjectID, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || strings.TrimSpace(sub) == "" {
		return nil, errors.New("sub claim missing")
	}

	userID, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	return &userID, nil
}
