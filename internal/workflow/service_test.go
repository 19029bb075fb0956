package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

// memStore mirrors the conditional-update semantics of the Mongo store so the
// lifecycle guards can be exercised without a database.
type memStore struct {
	products map[primitive.ObjectID]models.Product
	orders   map[primitive.ObjectID]models.Order
	payments map[primitive.ObjectID]models.PaymentSubmission
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[primitive.ObjectID]models.Product),
		orders:   make(map[primitive.ObjectID]models.Order),
		payments: make(map[primitive.ObjectID]models.PaymentSubmission),
	}
}

func (m *memStore) ActiveProduct(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok || !product.IsActive || product.IsDeleted {
		return nil, NotFoundError{Resource: "product", ID: id.Hex()}
	}
	copied := product
	return &copied, nil
}

func (m *memStore) InsertOrder(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *order
	stored.ID = id
	m.orders[id] = stored
	return id, nil
}

func (m *memStore) Order(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, NotFoundError{Resource: "order", ID: id.Hex()}
	}
	copied := order
	return &copied, nil
}

func (m *memStore) Payment(_ context.Context, id primitive.ObjectID) (*models.PaymentSubmission, error) {
	payment, ok := m.payments[id]
	if !ok {
		return nil, NotFoundError{Resource: "payment", ID: id.Hex()}
	}
	copied := payment
	return &copied, nil
}

func (m *memStore) SubmitPayment(_ context.Context, payment *models.PaymentSubmission) (primitive.ObjectID, error) {
	order, ok := m.orders[payment.OrderID]
	if !ok || order.Status != models.OrderStatusPendingPayment {
		return primitive.NilObjectID, ConflictError{
			Resource: "order",
			ID:       payment.OrderID.Hex(),
			Reason:   "not awaiting payment",
		}
	}

	id := primitive.NewObjectID()
	stored := *payment
	stored.ID = id
	m.payments[id] = stored

	order.Status = models.OrderStatusPaymentSubmitted
	order.PaymentID = &id
	m.orders[payment.OrderID] = order
	return id, nil
}

func (m *memStore) DecidePayment(_ context.Context, d Decision) error {
	payment, ok := m.payments[d.PaymentID]
	if !ok || payment.Status != models.PaymentStatusPending {
		return ConflictError{Resource: "payment", ID: d.PaymentID.Hex(), Reason: "already decided"}
	}

	payment.Status = d.Status
	payment.VerifiedBy = d.VerifiedBy
	payment.Notes = d.Notes
	verifiedAt := d.VerifiedAt
	payment.VerifiedAt = &verifiedAt
	m.payments[d.PaymentID] = payment

	order := m.orders[d.OrderID]
	order.Status = d.OrderStatus
	m.orders[d.OrderID] = order
	return nil
}

func (m *memStore) AttachCredentials(_ context.Context, orderID primitive.ObjectID, creds models.VPNCredentials, expect []models.OrderStatus) error {
	order, ok := m.orders[orderID]
	if !ok {
		return ConflictError{Resource: "order", ID: orderID.Hex(), Reason: "order state changed"}
	}
	matched := false
	for _, status := range expect {
		if order.Status == status {
			matched = true
			break
		}
	}
	if !matched {
		return ConflictError{Resource: "order", ID: orderID.Hex(), Reason: "order state changed"}
	}

	order.Credentials = &creds
	order.Status = models.OrderStatusCompleted
	m.orders[orderID] = order
	return nil
}

func (m *memStore) SetOrderStatus(_ context.Context, orderID primitive.ObjectID, status models.OrderStatus) error {
	order, ok := m.orders[orderID]
	if !ok {
		return NotFoundError{Resource: "order", ID: orderID.Hex()}
	}
	order.Status = status
	m.orders[orderID] = order
	return nil
}

// fakeMailer records dispatch attempts and can be told to fail.
type fakeMailer struct {
	confirmations int
	credentials   int
	fail          bool
}

func (f *fakeMailer) SendOrderConfirmation(context.Context, *models.Order) error {
	f.confirmations++
	if f.fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (f *fakeMailer) SendCredentials(context.Context, *models.Order) error {
	f.credentials++
	if f.fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func newTestService() (*Service, *memStore, *fakeMailer) {
	st := newMemStore()
	ml := &fakeMailer{}
	return NewService(st, ml), st, ml
}

func seedProduct(st *memStore, price int64, duration string) primitive.ObjectID {
	id := primitive.NewObjectID()
	st.products[id] = models.Product{
		ID:       id,
		Name:     "Nord Premium",
		Provider: "NordVPN",
		Duration: duration,
		Price:    price,
		Category: models.CategoryPremium,
		IsActive: true,
	}
	return id
}

func checkoutCustomer() models.OrderCustomer {
	return models.OrderCustomer{
		Name:  "Aung Kyaw",
		Email: "aung@example.com",
		Phone: "09123456789",
	}
}

func createTestOrder(t *testing.T, svc *Service, st *memStore, price int64) *models.Order {
	t.Helper()
	productID := seedProduct(st, price, "1 Month")
	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Customer: checkoutCustomer(),
		Items:    []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 1}},
	})
	require.NoError(t, err)
	return order
}

func submitTestPayment(t *testing.T, svc *Service, orderID primitive.ObjectID, amount int64) *models.PaymentSubmission {
	t.Helper()
	payment, err := svc.SubmitPayment(context.Background(), SubmitPaymentInput{
		OrderID:       orderID.Hex(),
		Method:        "kpay",
		TransactionID: "TXN12345",
		SenderName:    "Aung Kyaw",
		SenderPhone:   "09123456789",
		Amount:        amount,
	})
	require.NoError(t, err)
	return payment
}

func TestCreateOrderComputesTotal(t *testing.T) {
	svc, st, ml := newTestService()
	productID := seedProduct(st, 15000, "1 Month")

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Customer: checkoutCustomer(),
		Items:    []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(30000), order.TotalAmount)
	assert.Equal(t, models.OrderStatusPendingPayment, order.Status)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, int64(15000), order.Items[0].Price)
	assert.Equal(t, 1, ml.confirmations)
}

func TestCreateOrderDefaultsQuantityToOne(t *testing.T) {
	svc, st, _ := newTestService()
	productID := seedProduct(st, 15000, "1 Month")

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Customer: checkoutCustomer(),
		Items:    []CreateOrderItem{{ProductID: productID.Hex()}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), order.TotalAmount)
	assert.Equal(t, 1, order.Items[0].Quantity)
}

func TestCreateOrderValidatesContact(t *testing.T) {
	svc, st, ml := newTestService()
	productID := seedProduct(st, 15000, "1 Month")
	items := []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 1}}

	cases := []models.OrderCustomer{
		{Email: "a@b.c", Phone: "09123456789"},
		{Name: "Aung", Phone: "09123456789"},
		{Name: "Aung", Email: "a@b.c"},
	}
	for _, customer := range cases {
		_, err := svc.CreateOrder(context.Background(), CreateOrderInput{Customer: customer, Items: items})
		var ve ValidationError
		assert.ErrorAs(t, err, &ve)
	}

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{Customer: checkoutCustomer()})
	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Zero(t, ml.confirmations)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Customer: checkoutCustomer(),
		Items:    []CreateOrderItem{{ProductID: primitive.NewObjectID().Hex(), Quantity: 1}},
	})
	var nf NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, "product", nf.Resource)
}

func TestCreateOrderInactiveProductNotSellable(t *testing.T) {
	svc, st, _ := newTestService()
	id := primitive.NewObjectID()
	st.products[id] = models.Product{ID: id, Name: "Old Plan", Price: 9000, IsActive: false}

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Customer: checkoutCustomer(),
		Items:    []CreateOrderItem{{ProductID: id.Hex(), Quantity: 1}},
	})
	var nf NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCreateOrderSurvivesEmailFailure(t *testing.T) {
	svc, st, ml := newTestService()
	ml.fail = true
	productID := seedProduct(st, 15000, "1 Month")

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Customer: checkoutCustomer(),
		Items:    []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ml.confirmations)

	stored, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPendingPayment, stored.Status)
}

func TestSubmitPaymentHappyPath(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)

	payment := submitTestPayment(t, svc, order.ID, 15000)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)

	stored, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaymentSubmitted, stored.Status)
	require.NotNil(t, stored.PaymentID)
	assert.Equal(t, payment.ID, *stored.PaymentID)
}

func TestSubmitPaymentShortTransactionID(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)

	_, err := svc.SubmitPayment(context.Background(), SubmitPaymentInput{
		OrderID:       order.ID.Hex(),
		Method:        "kpay",
		TransactionID: "TX12",
		SenderName:    "Aung Kyaw",
		SenderPhone:   "09123456789",
		Amount:        15000,
	})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "transactionId", ve.Field)

	stored, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPendingPayment, stored.Status)
}

func TestSubmitPaymentInvalidPhone(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)

	for _, phone := range []string{"08123456789", "+1 555 123 4567", "09", ""} {
		_, err := svc.SubmitPayment(context.Background(), SubmitPaymentInput{
			OrderID:       order.ID.Hex(),
			Method:        "kpay",
			TransactionID: "TXN12345",
			SenderName:    "Aung Kyaw",
			SenderPhone:   phone,
			Amount:        15000,
		})
		var ve ValidationError
		require.ErrorAs(t, err, &ve, "phone %q", phone)
		assert.Equal(t, "senderPhone", ve.Field)
	}
}

func TestSubmitPaymentShortSenderName(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)

	_, err := svc.SubmitPayment(context.Background(), SubmitPaymentInput{
		OrderID:       order.ID.Hex(),
		Method:        "kpay",
		TransactionID: "TXN12345",
		SenderName:    "A",
		SenderPhone:   "09123456789",
		Amount:        15000,
	})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "senderName", ve.Field)
}

func TestSubmitPaymentAmountMismatch(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)

	_, err := svc.SubmitPayment(context.Background(), SubmitPaymentInput{
		OrderID:       order.ID.Hex(),
		Method:        "kpay",
		TransactionID: "TXN12345",
		SenderName:    "Aung Kyaw",
		SenderPhone:   "09123456789",
		Amount:        9000,
	})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "amount", ve.Field)
}

func TestSubmitPaymentUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SubmitPayment(context.Background(), SubmitPaymentInput{
		OrderID:       primitive.NewObjectID().Hex(),
		Method:        "kpay",
		TransactionID: "TXN12345",
		SenderName:    "Aung Kyaw",
		SenderPhone:   "09123456789",
		Amount:        15000,
	})
	var nf NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSubmitPaymentTwiceConflicts(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)
	submitTestPayment(t, svc, order.ID, 15000)

	_, err := svc.SubmitPayment(context.Background(), SubmitPaymentInput{
		OrderID:       order.ID.Hex(),
		Method:        "wave",
		TransactionID: "TXN99999",
		SenderName:    "Aung Kyaw",
		SenderPhone:   "09123456789",
		Amount:        15000,
	})
	var ce ConflictError
	assert.ErrorAs(t, err, &ce)
}

func TestVerifyApproveCascadesToOrder(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)
	payment := submitTestPayment(t, svc, order.ID, 15000)

	decided, err := svc.VerifyPayment(context.Background(), payment.ID.Hex(), true, "admin-1", "checked wallet")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, decided.Status)
	assert.Equal(t, "admin-1", decided.VerifiedBy)
	require.NotNil(t, decided.VerifiedAt)

	storedPayment, err := st.Payment(context.Background(), payment.ID)
	require.NoError(t, err)
	storedOrder, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, storedPayment.Status)
	assert.Equal(t, models.OrderStatusVerified, storedOrder.Status)
}

func TestVerifyRejectCascadesToCancelled(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)
	payment := submitTestPayment(t, svc, order.ID, 15000)

	decided, err := svc.VerifyPayment(context.Background(), payment.ID.Hex(), false, "admin-1", "no matching transfer")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRejected, decided.Status)

	storedOrder, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, storedOrder.Status)
}

func TestVerifyTwiceFailsAndLeavesStateUnchanged(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)
	payment := submitTestPayment(t, svc, order.ID, 15000)

	_, err := svc.VerifyPayment(context.Background(), payment.ID.Hex(), true, "admin-1", "")
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), payment.ID.Hex(), false, "admin-2", "")
	var ce ConflictError
	require.ErrorAs(t, err, &ce)

	storedPayment, err := st.Payment(context.Background(), payment.ID)
	require.NoError(t, err)
	storedOrder, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, storedPayment.Status)
	assert.Equal(t, models.OrderStatusVerified, storedOrder.Status)
	assert.Equal(t, "admin-1", storedPayment.VerifiedBy)
}

func TestVerifyUnknownPayment(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.VerifyPayment(context.Background(), primitive.NewObjectID().Hex(), true, "admin-1", "")
	var nf NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func testCredentials() models.VPNCredentials {
	return models.VPNCredentials{
		Username:   "vpn_user1",
		Password:   "p@ss1234",
		ServerInfo: "sg1.example.com",
		ExpiryDate: "2025-02-01",
	}
}

func verifiedOrder(t *testing.T, svc *Service, st *memStore) *models.Order {
	t.Helper()
	order := createTestOrder(t, svc, st, 15000)
	payment := submitTestPayment(t, svc, order.ID, 15000)
	_, err := svc.VerifyPayment(context.Background(), payment.ID.Hex(), true, "admin-1", "")
	require.NoError(t, err)
	return order
}

func TestDeliverCredentials(t *testing.T) {
	svc, st, ml := newTestService()
	order := verifiedOrder(t, svc, st)

	delivered, err := svc.DeliverCredentials(context.Background(), DeliverCredentialsInput{
		OrderID:     order.ID.Hex(),
		Credentials: testCredentials(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, delivered.Status)
	require.NotNil(t, delivered.Credentials)
	assert.Equal(t, testCredentials(), *delivered.Credentials)
	assert.Equal(t, 1, ml.credentials)

	stored, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, stored.Status)
	assert.Equal(t, testCredentials(), *stored.Credentials)
}

func TestDeliverCredentialsMissingFieldIsAtomic(t *testing.T) {
	svc, st, ml := newTestService()
	order := verifiedOrder(t, svc, st)

	incomplete := []models.VPNCredentials{
		{Password: "p", ServerInfo: "s", ExpiryDate: "e"},
		{Username: "u", ServerInfo: "s", ExpiryDate: "e"},
		{Username: "u", Password: "p", ExpiryDate: "e"},
		{Username: "u", Password: "p", ServerInfo: "s"},
	}
	for _, creds := range incomplete {
		_, err := svc.DeliverCredentials(context.Background(), DeliverCredentialsInput{
			OrderID:     order.ID.Hex(),
			Credentials: creds,
		})
		var ve ValidationError
		require.ErrorAs(t, err, &ve)
	}

	stored, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusVerified, stored.Status)
	assert.Nil(t, stored.Credentials)
	assert.Zero(t, ml.credentials)
}

func TestDeliverCredentialsRequiresVerifiedOrder(t *testing.T) {
	svc, st, _ := newTestService()

	pending := createTestOrder(t, svc, st, 15000)
	_, err := svc.DeliverCredentials(context.Background(), DeliverCredentialsInput{
		OrderID:     pending.ID.Hex(),
		Credentials: testCredentials(),
	})
	var ce ConflictError
	assert.ErrorAs(t, err, &ce)
}

func TestDeliverCredentialsTwiceNeedsRedeliverFlag(t *testing.T) {
	svc, st, ml := newTestService()
	order := verifiedOrder(t, svc, st)

	_, err := svc.DeliverCredentials(context.Background(), DeliverCredentialsInput{
		OrderID:     order.ID.Hex(),
		Credentials: testCredentials(),
	})
	require.NoError(t, err)

	// Without the flag a second delivery is refused.
	_, err = svc.DeliverCredentials(context.Background(), DeliverCredentialsInput{
		OrderID:     order.ID.Hex(),
		Credentials: testCredentials(),
	})
	var ce ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ml.credentials)

	// With the flag the credentials are replaced and the mail resent.
	replacement := testCredentials()
	replacement.Password = "rotated"
	delivered, err := svc.DeliverCredentials(context.Background(), DeliverCredentialsInput{
		OrderID:     order.ID.Hex(),
		Credentials: replacement,
		Redeliver:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "rotated", delivered.Credentials.Password)
	assert.Equal(t, 2, ml.credentials)
}

func TestDeliverCredentialsUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.DeliverCredentials(context.Background(), DeliverCredentialsInput{
		OrderID:     primitive.NewObjectID().Hex(),
		Credentials: testCredentials(),
	})
	var nf NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestOverrideStatusBypassesGuards(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)

	// pending_payment -> completed is not a guarded transition, the override
	// applies it anyway.
	overridden, err := svc.OverrideStatus(context.Background(), order.ID.Hex(), models.OrderStatusCompleted, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, overridden.Status)

	stored, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, stored.Status)
}

func TestOverrideStatusRejectsUnknownStatus(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)

	_, err := svc.OverrideStatus(context.Background(), order.ID.Hex(), models.OrderStatus("shipped"), "admin-1")
	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestFullApprovalFlow(t *testing.T) {
	svc, st, ml := newTestService()
	productID := seedProduct(st, 15000, "1 Month")

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Customer: checkoutCustomer(),
		Items:    []CreateOrderItem{{ProductID: productID.Hex(), Quantity: 1}},
	})
	require.NoError(t, err)

	payment, err := svc.SubmitPayment(context.Background(), SubmitPaymentInput{
		OrderID:       order.ID.Hex(),
		Method:        "kpay",
		TransactionID: "TXN12345",
		SenderName:    "Aung Kyaw",
		SenderPhone:   "09123456789",
		Amount:        15000,
	})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), payment.ID.Hex(), true, "admin-1", "")
	require.NoError(t, err)

	_, err = svc.DeliverCredentials(context.Background(), DeliverCredentialsInput{
		OrderID:     order.ID.Hex(),
		Credentials: testCredentials(),
	})
	require.NoError(t, err)

	final, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, final.Status)
	assert.Equal(t, int64(15000), final.TotalAmount)
	require.NotNil(t, final.Credentials)
	assert.Equal(t, "vpn_user1", final.Credentials.Username)
	assert.Equal(t, 1, ml.confirmations)
	assert.Equal(t, 1, ml.credentials)
}

func TestFullRejectionFlowBlocksDelivery(t *testing.T) {
	svc, st, ml := newTestService()
	order := createTestOrder(t, svc, st, 15000)
	payment := submitTestPayment(t, svc, order.ID, 15000)

	_, err := svc.VerifyPayment(context.Background(), payment.ID.Hex(), false, "admin-1", "amount never arrived")
	require.NoError(t, err)

	stored, err := st.Order(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, stored.Status)

	_, err = svc.DeliverCredentials(context.Background(), DeliverCredentialsInput{
		OrderID:     order.ID.Hex(),
		Credentials: testCredentials(),
	})
	var ce ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Zero(t, ml.credentials)
}

func TestDecisionTimestampsAreSet(t *testing.T) {
	svc, st, _ := newTestService()
	order := createTestOrder(t, svc, st, 15000)
	payment := submitTestPayment(t, svc, order.ID, 15000)

	before := time.Now()
	decided, err := svc.VerifyPayment(context.Background(), payment.ID.Hex(), true, "admin-1", "")
	require.NoError(t, err)
	require.NotNil(t, decided.VerifiedAt)
	assert.False(t, decided.VerifiedAt.Before(before.Add(-time.Second)))
}
