package utils

import (
	"lms/database"
	"lms/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSchedulerDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Subscription{}))

	database.Database = database.DbInstance{Db: db}
	return db
}

func TestExpireSubscriptionsSweepsOnlyLapsedActive(t *testing.T) {
	db := setupSchedulerDb(t)

	past := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(0, 1, 0)

	lapsed := models.Subscription{UserID: 1, PlanName: models.PlanBasic, Status: models.SubscriptionActive, ExpiresAt: &past}
	live := models.Subscription{UserID: 2, PlanName: models.PlanBasic, Status: models.SubscriptionActive, ExpiresAt: &future}
	cancelled := models.Subscription{UserID: 3, PlanName: models.PlanBasic, Status: models.SubscriptionCancelled, ExpiresAt: &past}
	noExpiry := models.Subscription{UserID: 4, PlanName: models.PlanBasic, Status: models.SubscriptionActive}
	require.NoError(t, db.Create(&lapsed).Error)
	require.NoError(t, db.Create(&live).Error)
	require.NoError(t, db.Create(&cancelled).Error)
	require.NoError(t, db.Create(&noExpiry).Error)

	ExpireSubscriptions()

	// Fresh destination per lookup; a reused struct would leak the previous
	// primary key into the next query's conditions
	assert.Equal(t, models.SubscriptionExpired, subscriptionStatus(t, db, lapsed.ID))
	assert.Equal(t, models.SubscriptionActive, subscriptionStatus(t, db, live.ID))
	assert.Equal(t, models.SubscriptionCancelled, subscriptionStatus(t, db, cancelled.ID))
	assert.Equal(t, models.SubscriptionActive, subscriptionStatus(t, db, noExpiry.ID))
}

func subscriptionStatus(t *testing.T, db *gorm.DB, id uint) string {
	var got models.Subscription
	require.NoError(t, db.First(&got, id).Error)
	return got.Status
}

func TestExpireSubscriptionsIsIdempotent(t *testing.T) {
	db := setupSchedulerDb(t)

	past := time.Now().AddDate(0, 0, -1)
	sub := models.Subscription{UserID: 1, PlanName: models.PlanPro, Status: models.SubscriptionActive, ExpiresAt: &past}
	require.NoError(t, db.Create(&sub).Error)

	ExpireSubscriptions()
	ExpireSubscriptions()

	var got models.Subscription
	require.NoError(t, db.First(&got, sub.ID).Error)
	assert.Equal(t, models.SubscriptionExpired, got.Status)
	assert.WithinDuration(t, past, *got.ExpiresAt, time.Second)
}
