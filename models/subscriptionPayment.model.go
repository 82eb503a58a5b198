package models

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionPayment struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"index;not null"`
	SubscriptionID uint       `json:"subscription_id" gorm:"index;not null"`
	Amount         float64    `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency       string     `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	PaymentMethod  string     `json:"payment_method" gorm:"type:varchar(30);default:'manual'"`
	TransactionID  *string    `json:"transaction_id" gorm:"unique"`
	Status         string     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PaidAt         *time.Time `json:"paid_at"`

	// Relations
	User         User         `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Subscription Subscription `json:"subscription,omitempty" gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE"`
}
