package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"backend/internal/logging"
	"backend/internal/metrics"
	"backend/internal/models"
)

// Store is the persistence surface the workflow needs. The guarded
// transitions rely on the implementation applying status changes
// conditionally on the expected current status and returning ConflictError
// when the document has already moved on.
type Store interface {
	ActiveProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	InsertOrder(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	Order(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Payment(ctx context.Context, id primitive.ObjectID) (*models.PaymentSubmission, error)

	// SubmitPayment inserts the payment record and flips its order from
	// pending_payment to payment_submitted as one unit.
	SubmitPayment(ctx context.Context, payment *models.PaymentSubmission) (primitive.ObjectID, error)

	// DecidePayment applies a verification decision to a still-pending
	// payment and cascades the linked order's status as one unit.
	DecidePayment(ctx context.Context, d Decision) error

	// AttachCredentials sets the credentials and marks the order completed,
	// conditionally on the order still being in one of expect.
	AttachCredentials(ctx context.Context, orderID primitive.ObjectID, creds models.VPNCredentials, expect []models.OrderStatus) error

	// SetOrderStatus writes the status unconditionally (admin override).
	SetOrderStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) error
}

// Mailer dispatches transactional email. Failures are logged and never roll
// back the database write they follow.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
	SendCredentials(ctx context.Context, order *models.Order) error
}

// Decision is a single-use verification applied to a pending payment.
type Decision struct {
	PaymentID   primitive.ObjectID
	OrderID     primitive.ObjectID
	Status      models.PaymentStatus
	OrderStatus models.OrderStatus
	VerifiedBy  string
	Notes       string
	VerifiedAt  time.Time
}

// Service implements the order/payment lifecycle. Every surface (public
// checkout, payment submission, admin verification and delivery) goes through
// it rather than re-deriving the transitions per handler.
type Service struct {
	store  Store
	mailer Mailer
	logger *zap.Logger
}

func NewService(store Store, mailer Mailer) *Service {
	return &Service{
		store:  store,
		mailer: mailer,
		logger: logging.GetLogger(),
	}
}

// CreateOrderItem is one product selection at checkout.
type CreateOrderItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderInput is the checkout payload. Prices and the total are always
// recomputed from the catalog; client-supplied amounts are ignored.
type CreateOrderInput struct {
	UserID   *primitive.ObjectID
	Customer models.OrderCustomer
	Items    []CreateOrderItem
}

func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if strings.TrimSpace(in.Customer.Name) == "" {
		return nil, ValidationError{Field: "customer.name", Reason: "is required"}
	}
	if strings.TrimSpace(in.Customer.Email) == "" {
		return nil, ValidationError{Field: "customer.email", Reason: "is required"}
	}
	if strings.TrimSpace(in.Customer.Phone) == "" {
		return nil, ValidationError{Field: "customer.phone", Reason: "is required"}
	}
	if len(in.Items) == 0 {
		return nil, ValidationError{Field: "items", Reason: "at least one item is required"}
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	var total int64

	for _, item := range in.Items {
		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.ProductID))
		if err != nil {
			return nil, ValidationError{Field: "items.productId", Reason: "invalid product id"}
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			return nil, ValidationError{Field: "items.quantity", Reason: "must be greater than zero"}
		}

		product, err := s.store.ActiveProduct(ctx, productID)
		if err != nil {
			return nil, s.wrap("load product", err)
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Duration:  product.Duration,
			Quantity:  quantity,
		})
		total += product.Price * int64(quantity)
	}

	now := time.Now()
	order := &models.Order{
		UserID:      in.UserID,
		Customer:    in.Customer,
		Items:       items,
		TotalAmount: total,
		Status:      models.OrderStatusPendingPayment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.store.InsertOrder(ctx, order)
	if err != nil {
		return nil, s.wrap("insert order", err)
	}
	order.ID = id

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info("order created",
		zap.String("orderId", id.Hex()),
		zap.Int64("total", total))

	// Best effort; the order is already committed.
	if err := s.mailer.SendOrderConfirmation(ctx, order); err != nil {
		metrics.EmailFailuresTotal.WithLabelValues("confirmation").Inc()
		s.logger.Warn("order confirmation email failed",
			zap.String("orderId", id.Hex()), zap.Error(err))
	}

	return order, nil
}

// SubmitPaymentInput is the customer's payment evidence for an order.
type SubmitPaymentInput struct {
	OrderID       string
	Method        string
	TransactionID string
	SenderName    string
	SenderPhone   string
	Amount        int64
	ProofImage    string
}

func (s *Service) SubmitPayment(ctx context.Context, in SubmitPaymentInput) (*models.PaymentSubmission, error) {
	orderID, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.OrderID))
	if err != nil {
		return nil, ValidationError{Field: "orderId", Reason: "invalid order id"}
	}
	if strings.TrimSpace(in.Method) == "" {
		return nil, ValidationError{Field: "paymentMethod", Reason: "is required"}
	}
	if len(strings.TrimSpace(in.TransactionID)) < 5 {
		return nil, ValidationError{Field: "transactionId", Reason: "must be at least 5 characters"}
	}
	if len(strings.TrimSpace(in.SenderName)) < 2 {
		return nil, ValidationError{Field: "senderName", Reason: "must be at least 2 characters"}
	}
	if !ValidMyanmarPhone(in.SenderPhone) {
		return nil, ValidationError{Field: "senderPhone", Reason: "must be a valid Myanmar mobile number"}
	}

	order, err := s.store.Order(ctx, orderID)
	if err != nil {
		return nil, s.wrap("load order", err)
	}
	if order.Status != models.OrderStatusPendingPayment {
		return nil, ConflictError{
			Resource: "order",
			ID:       orderID.Hex(),
			Reason:   "payment already submitted or order closed",
		}
	}
	if in.Amount != order.TotalAmount {
		return nil, ValidationError{Field: "amount", Reason: "does not match the order total"}
	}

	payment := &models.PaymentSubmission{
		OrderID:       orderID,
		Method:        strings.TrimSpace(in.Method),
		TransactionID: strings.TrimSpace(in.TransactionID),
		SenderName:    strings.TrimSpace(in.SenderName),
		SenderPhone:   strings.Join(strings.Fields(in.SenderPhone), ""),
		Amount:        in.Amount,
		ProofImage:    strings.TrimSpace(in.ProofImage),
		Status:        models.PaymentStatusPending,
		SubmittedAt:   time.Now(),
	}

	id, err := s.store.SubmitPayment(ctx, payment)
	if err != nil {
		return nil, s.wrap("submit payment", err)
	}
	payment.ID = id

	metrics.PaymentsSubmittedTotal.Inc()
	s.logger.Info("payment submitted",
		zap.String("orderId", orderID.Hex()),
		zap.String("paymentId", id.Hex()))

	// No email here: the confirmation went out at checkout and verification
	// notifies later.
	return payment, nil
}

// VerifyPayment applies an admin approve/reject decision exactly once and
// cascades the order status (approved -> verified, rejected -> cancelled).
func (s *Service) VerifyPayment(ctx context.Context, paymentID string, approve bool, verifier, notes string) (*models.PaymentSubmission, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(paymentID))
	if err != nil {
		return nil, ValidationError{Field: "paymentId", Reason: "invalid payment id"}
	}
	if strings.TrimSpace(verifier) == "" {
		return nil, ValidationError{Field: "verifier", Reason: "is required"}
	}

	payment, err := s.store.Payment(ctx, id)
	if err != nil {
		return nil, s.wrap("load payment", err)
	}
	if payment.Status != models.PaymentStatusPending {
		return nil, ConflictError{
			Resource: "payment",
			ID:       id.Hex(),
			Reason:   "already " + string(payment.Status),
		}
	}

	decision := Decision{
		PaymentID:   id,
		OrderID:     payment.OrderID,
		Status:      models.PaymentStatusApproved,
		OrderStatus: models.OrderStatusVerified,
		VerifiedBy:  verifier,
		Notes:       strings.TrimSpace(notes),
		VerifiedAt:  time.Now(),
	}
	if !approve {
		decision.Status = models.PaymentStatusRejected
		decision.OrderStatus = models.OrderStatusCancelled
	}

	if err := s.store.DecidePayment(ctx, decision); err != nil {
		return nil, s.wrap("decide payment", err)
	}

	payment.Status = decision.Status
	payment.VerifiedBy = decision.VerifiedBy
	payment.Notes = decision.Notes
	payment.VerifiedAt = &decision.VerifiedAt

	metrics.PaymentsDecidedTotal.WithLabelValues(string(decision.Status)).Inc()
	s.logger.Info("payment decided",
		zap.String("paymentId", id.Hex()),
		zap.String("orderId", payment.OrderID.Hex()),
		zap.String("decision", string(decision.Status)),
		zap.String("verifier", verifier))

	return payment, nil
}

// DeliverCredentialsInput attaches a VPN account to a verified order.
// Redeliver must be set explicitly to overwrite credentials that were already
// sent out.
type DeliverCredentialsInput struct {
	OrderID     string
	Credentials models.VPNCredentials
	Redeliver   bool
}

func (s *Service) DeliverCredentials(ctx context.Context, in DeliverCredentialsInput) (*models.Order, error) {
	orderID, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.OrderID))
	if err != nil {
		return nil, ValidationError{Field: "orderId", Reason: "invalid order id"}
	}
	if err := validateCredentials(in.Credentials); err != nil {
		return nil, err
	}

	order, err := s.store.Order(ctx, orderID)
	if err != nil {
		return nil, s.wrap("load order", err)
	}

	expect := []models.OrderStatus{models.OrderStatusVerified}
	switch {
	case order.Credentials != nil && !in.Redeliver:
		return nil, ConflictError{
			Resource: "order",
			ID:       orderID.Hex(),
			Reason:   "credentials already delivered; pass redeliver to overwrite",
		}
	case in.Redeliver:
		expect = append(expect, models.OrderStatusCompleted)
	}
	if order.Status != models.OrderStatusVerified &&
		!(in.Redeliver && order.Status == models.OrderStatusCompleted) {
		return nil, ConflictError{
			Resource: "order",
			ID:       orderID.Hex(),
			Reason:   "order is not verified",
		}
	}

	if err := s.store.AttachCredentials(ctx, orderID, in.Credentials, expect); err != nil {
		return nil, s.wrap("attach credentials", err)
	}

	order.Credentials = &in.Credentials
	order.Status = models.OrderStatusCompleted

	metrics.CredentialsDeliveredTotal.Inc()
	s.logger.Info("credentials delivered",
		zap.String("orderId", orderID.Hex()),
		zap.Bool("redeliver", in.Redeliver))

	if err := s.mailer.SendCredentials(ctx, order); err != nil {
		metrics.EmailFailuresTotal.WithLabelValues("credentials").Inc()
		s.logger.Warn("credentials email failed",
			zap.String("orderId", orderID.Hex()), zap.Error(err))
	}

	return order, nil
}

// OverrideStatus is the audited admin escape hatch around the guarded
// transition table.
func (s *Service) OverrideStatus(ctx context.Context, orderID string, status models.OrderStatus, adminID string) (*models.Order, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(orderID))
	if err != nil {
		return nil, ValidationError{Field: "orderId", Reason: "invalid order id"}
	}
	if !ValidStatus(status) {
		return nil, ValidationError{Field: "status", Reason: "unknown status"}
	}

	order, err := s.store.Order(ctx, id)
	if err != nil {
		return nil, s.wrap("load order", err)
	}

	if err := s.store.SetOrderStatus(ctx, id, status); err != nil {
		return nil, s.wrap("set order status", err)
	}

	s.logger.Warn("order status overridden",
		zap.String("orderId", id.Hex()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(status)),
		zap.String("admin", adminID))

	order.Status = status
	return order, nil
}

func validateCredentials(creds models.VPNCredentials) error {
	switch {
	case strings.TrimSpace(creds.Username) == "":
		return ValidationError{Field: "vpnCredentials.username", Reason: "is required"}
	case strings.TrimSpace(creds.Password) == "":
		return ValidationError{Field: "vpnCredentials.password", Reason: "is required"}
	case strings.TrimSpace(creds.ServerInfo) == "":
		return ValidationError{Field: "vpnCredentials.serverInfo", Reason: "is required"}
	case strings.TrimSpace(creds.ExpiryDate) == "":
		return ValidationError{Field: "vpnCredentials.expiryDate", Reason: "is required"}
	}
	return nil
}

// wrap passes workflow errors through untouched and tags anything else as a
// dependency failure.
func (s *Service) wrap(op string, err error) error {
	var ve ValidationError
	var nf NotFoundError
	var ce ConflictError
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &ce) {
		return err
	}
	return DependencyError{Op: op, Err: err}
}
