package utils

import (
	"lms/database"
	"lms/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeSubscriptionScheduler sets up the subscription expiry scheduler
func InitializeSubscriptionScheduler() {
	log.Println("[SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	// Run daily at midnight to expire lapsed subscriptions
	c.AddFunc("0 0 * * *", func() {
		log.Println("[SCHEDULER] Running daily subscription sweep...")
		ExpireSubscriptions()
	})

	c.Start()
	log.Println("[SCHEDULER] Subscription scheduler started - runs daily at midnight")
}

// ExpireSubscriptions marks active subscriptions past their expiry as expired.
// Each row update is independent, so re-running the sweep has no additional
// effect once all qualifying rows are updated.
func ExpireSubscriptions() {
	db := database.Database.Db
	now := time.Now()

	result := db.Model(&models.Subscription{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.SubscriptionActive, now).
		Updates(map[string]interface{}{"status": models.SubscriptionExpired})

	if result.Error != nil {
		log.Printf("[SCHEDULER] Error expiring subscriptions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[SCHEDULER] Expired %d subscriptions", result.RowsAffected)
	}
}
