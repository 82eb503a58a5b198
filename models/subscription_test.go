package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBillingMonths(t *testing.T) {
	monthly := Subscription{BillingPeriod: PeriodMonthly}
	yearly := Subscription{BillingPeriod: PeriodYearly}

	assert.Equal(t, 1, monthly.BillingMonths())
	assert.Equal(t, 12, yearly.BillingMonths())
}

func TestExtendExpiryFromLapsed(t *testing.T) {
	past := time.Now().AddDate(0, -2, 0)
	sub := Subscription{
		Status:    SubscriptionExpired,
		ExpiresAt: &past,
	}

	sub.ExtendExpiry(1)

	// A lapsed subscription extends from now, not from the old expiry
	expected := time.Now().AddDate(0, 1, 0)
	assert.WithinDuration(t, expected, *sub.ExpiresAt, time.Minute)
	assert.Equal(t, SubscriptionActive, sub.Status)
	assert.NotNil(t, sub.StartsAt)
}

func TestExtendExpiryFromFutureExpiry(t *testing.T) {
	future := time.Now().AddDate(0, 0, 10)
	start := time.Now().AddDate(0, -1, 0)
	sub := Subscription{
		Status:    SubscriptionActive,
		StartsAt:  &start,
		ExpiresAt: &future,
	}

	sub.ExtendExpiry(12)

	// Renewing early stacks on top of the remaining time
	expected := future.AddDate(0, 12, 0)
	assert.WithinDuration(t, expected, *sub.ExpiresAt, time.Second)
	assert.Equal(t, SubscriptionActive, sub.Status)
	assert.Equal(t, start, *sub.StartsAt)
}

func TestExtendExpiryWithoutExpiry(t *testing.T) {
	sub := Subscription{Status: SubscriptionCancelled}

	sub.ExtendExpiry(3)

	expected := time.Now().AddDate(0, 3, 0)
	assert.WithinDuration(t, expected, *sub.ExpiresAt, time.Minute)
	assert.Equal(t, SubscriptionActive, sub.Status)
	assert.NotNil(t, sub.StartsAt)
}
