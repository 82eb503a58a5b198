package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription status enum values
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// Plan enum values
const (
	PlanBasic   = "basic"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

// Billing period enum values
const (
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

type Subscription struct {
	gorm.Model
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	PlanName      string     `json:"plan_name" gorm:"type:varchar(20);not null"` // basic, pro, premium
	Price         float64    `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	BillingPeriod string     `json:"billing_period" gorm:"type:varchar(20);default:'monthly'"` // monthly or yearly
	Status        string     `json:"status" gorm:"type:varchar(20);default:'active'"`
	StartsAt      *time.Time `json:"starts_at"`
	ExpiresAt     *time.Time `json:"expires_at"`

	// Relations
	User     User                  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Payments []SubscriptionPayment `json:"payments,omitempty" gorm:"foreignKey:SubscriptionID"`
}

// BillingMonths returns how many months one billing period covers
func (s *Subscription) BillingMonths() int {
	if s.BillingPeriod == PeriodYearly {
		return 12
	}
	return 1
}

// ExtendExpiry pushes ExpiresAt forward by the given number of months,
// counting from the current expiry when it is still in the future, otherwise
// from now. Also activates the subscription and backfills StartsAt.
func (s *Subscription) ExtendExpiry(months int) {
	now := time.Now()

	base := now
	if s.ExpiresAt != nil && s.ExpiresAt.After(now) {
		base = *s.ExpiresAt
	}
	newExpiry := base.AddDate(0, months, 0)

	s.ExpiresAt = &newExpiry
	s.Status = SubscriptionActive
	if s.StartsAt == nil {
		s.StartsAt = &now
	}
}
