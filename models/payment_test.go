package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionPayment(t *testing.T) {
	// Allowed moves
	assert.True(t, CanTransitionPayment(PaymentPending, PaymentPaid))
	assert.True(t, CanTransitionPayment(PaymentPending, PaymentFailed))
	assert.True(t, CanTransitionPayment(PaymentPending, PaymentCancelled))
	assert.True(t, CanTransitionPayment(PaymentFailed, PaymentPending))
	assert.True(t, CanTransitionPayment(PaymentFailed, PaymentPaid))
	assert.True(t, CanTransitionPayment(PaymentFailed, PaymentCancelled))
	assert.True(t, CanTransitionPayment(PaymentPaid, PaymentRefunded))

	// Refunds are only reachable from paid
	assert.False(t, CanTransitionPayment(PaymentPending, PaymentRefunded))
	assert.False(t, CanTransitionPayment(PaymentFailed, PaymentRefunded))

	// Terminal states have no exits
	for _, to := range []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentCancelled} {
		assert.False(t, CanTransitionPayment(PaymentRefunded, to))
		assert.False(t, CanTransitionPayment(PaymentCancelled, to))
	}

	// No self loops
	assert.False(t, CanTransitionPayment(PaymentPaid, PaymentPaid))
	assert.False(t, CanTransitionPayment(PaymentPending, PaymentPending))

	// Unknown statuses go nowhere
	assert.False(t, CanTransitionPayment("bogus", PaymentPaid))
}

func TestIsValidPaymentStatus(t *testing.T) {
	for _, s := range []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded, PaymentCancelled} {
		assert.True(t, IsValidPaymentStatus(s))
	}
	assert.False(t, IsValidPaymentStatus(""))
	assert.False(t, IsValidPaymentStatus("Paid"))
}
