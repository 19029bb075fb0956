package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
	"backend/internal/workflow"
)

// Mongo persists the order/payment workflow. Guarded transitions are written
// with filters on the expected current status, so a concurrent call that lost
// the race matches zero documents and surfaces as a ConflictError.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) ActiveProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := m.db.Collection("products").FindOne(ctx, bson.M{
		"_id":       id,
		"isActive":  true,
		"isDeleted": bson.M{"$ne": true},
	}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, workflow.NotFoundError{Resource: "product", ID: id.Hex()}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (m *Mongo) InsertOrder(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	res, err := m.db.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (m *Mongo) Order(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := m.db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, workflow.NotFoundError{Resource: "order", ID: id.Hex()}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (m *Mongo) Payment(ctx context.Context, id primitive.ObjectID) (*models.PaymentSubmission, error) {
	var payment models.PaymentSubmission
	err := m.db.Collection("payments").FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, workflow.NotFoundError{Resource: "payment", ID: id.Hex()}
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (m *Mongo) SubmitPayment(ctx context.Context, payment *models.PaymentSubmission) (primitive.ObjectID, error) {
	session, err := m.db.Client().StartSession()
	if err != nil {
		return primitive.NilObjectID, err
	}
	defer session.EndSession(ctx)

	var paymentID primitive.ObjectID
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		res, err := m.db.Collection("orders").UpdateOne(
			sessCtx,
			bson.M{"_id": payment.OrderID, "status": models.OrderStatusPendingPayment},
			bson.M{"$set": bson.M{
				"status":    models.OrderStatusPaymentSubmitted,
				"updatedAt": time.Now(),
			}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, workflow.ConflictError{
				Resource: "order",
				ID:       payment.OrderID.Hex(),
				Reason:   "not awaiting payment",
			}
		}

		inserted, err := m.db.Collection("payments").InsertOne(sessCtx, payment)
		if err != nil {
			return nil, err
		}
		id, _ := inserted.InsertedID.(primitive.ObjectID)
		paymentID = id

		_, err = m.db.Collection("orders").UpdateOne(
			sessCtx,
			bson.M{"_id": payment.OrderID},
			bson.M{"$set": bson.M{"paymentId": id}},
		)
		return nil, err
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return paymentID, nil
}

func (m *Mongo) DecidePayment(ctx context.Context, d workflow.Decision) error {
	session, err := m.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		res, err := m.db.Collection("payments").UpdateOne(
			sessCtx,
			bson.M{"_id": d.PaymentID, "status": models.PaymentStatusPending},
			bson.M{"$set": bson.M{
				"status":     d.Status,
				"verifiedAt": d.VerifiedAt,
				"verifiedBy": d.VerifiedBy,
				"notes":      d.Notes,
			}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, workflow.ConflictError{
				Resource: "payment",
				ID:       d.PaymentID.Hex(),
				Reason:   "already decided",
			}
		}

		// Cascade: payment.status and order.status must never diverge.
		_, err = m.db.Collection("orders").UpdateOne(
			sessCtx,
			bson.M{"_id": d.OrderID},
			bson.M{"$set": bson.M{
				"status":    d.OrderStatus,
				"updatedAt": time.Now(),
			}},
		)
		return nil, err
	})
	return err
}

func (m *Mongo) AttachCredentials(ctx context.Context, orderID primitive.ObjectID, creds models.VPNCredentials, expect []models.OrderStatus) error {
	res, err := m.db.Collection("orders").UpdateOne(
		ctx,
		bson.M{"_id": orderID, "status": bson.M{"$in": expect}},
		bson.M{"$set": bson.M{
			"vpnCredentials": creds,
			"status":         models.OrderStatusCompleted,
			"updatedAt":      time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return workflow.ConflictError{
			Resource: "order",
			ID:       orderID.Hex(),
			Reason:   "order state changed, re-fetch before delivering",
		}
	}
	return nil
}

func (m *Mongo) SetOrderStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) error {
	res, err := m.db.Collection("orders").UpdateOne(
		ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return workflow.NotFoundError{Resource: "order", ID: orderID.Hex()}
	}
	return nil
}
