package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus is decided exactly once by an admin.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// PaymentSubmission holds the customer-supplied evidence that a mobile-wallet
// transfer was made for an order.
type PaymentSubmission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       primitive.ObjectID `bson:"orderId" json:"orderId"`
	Method        string             `bson:"method" json:"method"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	SenderName    string             `bson:"senderName" json:"senderName"`
	SenderPhone   string             `bson:"senderPhone" json:"senderPhone"`
	Amount        int64              `bson:"amount" json:"amount"`
	ProofImage    string             `bson:"proofImage,omitempty" json:"proofImage,omitempty"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	SubmittedAt   time.Time          `bson:"submittedAt" json:"submittedAt"`
	VerifiedAt    *time.Time         `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	VerifiedBy    string             `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
}
