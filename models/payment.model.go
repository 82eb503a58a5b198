package models

// Payment status enum values, shared by CoursePayment and SubscriptionPayment
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
	PaymentCancelled = "cancelled"
)

// paymentTransitions whitelists the allowed status changes. Refunds are only
// reachable from paid, so the enrollment/subscription reversal side effect
// always has something to reverse. Refunded and cancelled are terminal.
var paymentTransitions = map[string][]string{
	PaymentPending:   {PaymentPaid, PaymentFailed, PaymentCancelled},
	PaymentFailed:    {PaymentPending, PaymentPaid, PaymentCancelled},
	PaymentPaid:      {PaymentRefunded},
	PaymentRefunded:  {},
	PaymentCancelled: {},
}

// IsValidPaymentStatus reports whether s is a known payment status
func IsValidPaymentStatus(s string) bool {
	_, ok := paymentTransitions[s]
	return ok
}

// CanTransitionPayment reports whether a payment may move from one status to another
func CanTransitionPayment(from, to string) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
