package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus tracks an order through the payment lifecycle.
type OrderStatus string

const (
	OrderStatusPendingPayment   OrderStatus = "pending_payment"
	OrderStatusPaymentSubmitted OrderStatus = "payment_submitted"
	OrderStatusVerified         OrderStatus = "verified"
	OrderStatusCompleted        OrderStatus = "completed"
	OrderStatusCancelled        OrderStatus = "cancelled"
)

// OrderItem represents a single product entry within an order.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     int64              `bson:"price" json:"price"`
	Duration  string             `bson:"duration" json:"duration"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// OrderCustomer captures the customer contact snapshot taken at checkout.
type OrderCustomer struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// VPNCredentials is the account payload delivered to the customer once the
// order is completed.
type VPNCredentials struct {
	Username   string `bson:"username" json:"username"`
	Password   string `bson:"password" json:"password"`
	ServerInfo string `bson:"serverInfo" json:"serverInfo"`
	ExpiryDate string `bson:"expiryDate" json:"expiryDate"`
}

// Order defines the persisted order document.
type Order struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      *primitive.ObjectID `bson:"userId" json:"userId"`
	Customer    OrderCustomer       `bson:"customer" json:"customer"`
	Items       []OrderItem         `bson:"items" json:"items"`
	TotalAmount int64               `bson:"totalAmount" json:"totalAmount"`
	Status      OrderStatus         `bson:"status" json:"status"`
	PaymentID   *primitive.ObjectID `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Credentials *VPNCredentials     `bson:"vpnCredentials,omitempty" json:"vpnCredentials,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
