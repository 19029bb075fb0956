package workflow

import "backend/internal/models"

// transitions holds the guarded order lifecycle. The admin status override is
// deliberately not represented here; it bypasses the table through
// Service.OverrideStatus.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPendingPayment:   {models.OrderStatusPaymentSubmitted},
	models.OrderStatusPaymentSubmitted: {models.OrderStatusVerified, models.OrderStatusCancelled},
	models.OrderStatusVerified:         {models.OrderStatusCompleted},
	models.OrderStatusCompleted:        {},
	models.OrderStatusCancelled:        {},
}

// ValidStatus reports whether s is one of the defined order statuses.
func ValidStatus(s models.OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no guarded transition leaves s.
func IsTerminal(s models.OrderStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether from -> to is a guarded lifecycle transition.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
