package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"backend/internal/models"
)

func TestCanTransitionGuardedPaths(t *testing.T) {
	assert.True(t, CanTransition(models.OrderStatusPendingPayment, models.OrderStatusPaymentSubmitted))
	assert.True(t, CanTransition(models.OrderStatusPaymentSubmitted, models.OrderStatusVerified))
	assert.True(t, CanTransition(models.OrderStatusPaymentSubmitted, models.OrderStatusCancelled))
	assert.True(t, CanTransition(models.OrderStatusVerified, models.OrderStatusCompleted))
}

func TestCanTransitionRejectsSkipsAndBackwards(t *testing.T) {
	assert.False(t, CanTransition(models.OrderStatusPendingPayment, models.OrderStatusVerified))
	assert.False(t, CanTransition(models.OrderStatusPendingPayment, models.OrderStatusCompleted))
	assert.False(t, CanTransition(models.OrderStatusVerified, models.OrderStatusPendingPayment))
	assert.False(t, CanTransition(models.OrderStatusPaymentSubmitted, models.OrderStatusPendingPayment))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []models.OrderStatus{models.OrderStatusCompleted, models.OrderStatusCancelled} {
		assert.True(t, IsTerminal(terminal))
		for _, next := range []models.OrderStatus{
			models.OrderStatusPendingPayment,
			models.OrderStatusPaymentSubmitted,
			models.OrderStatusVerified,
			models.OrderStatusCompleted,
			models.OrderStatusCancelled,
		} {
			assert.False(t, CanTransition(terminal, next),
				"terminal state %s must not transition to %s", terminal, next)
		}
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(models.OrderStatusPendingPayment))
	assert.True(t, ValidStatus(models.OrderStatusCancelled))
	assert.False(t, ValidStatus(models.OrderStatus("shipped")))
	assert.False(t, ValidStatus(models.OrderStatus("")))
}
