package paymentController

import (
	"lms/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPaymentDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.CoursePayment{},
		&models.Subscription{},
		&models.SubscriptionPayment{},
	))
	return db
}

func TestEnrollAfterPaymentCreatesEnrollment(t *testing.T) {
	db := setupPaymentDb(t)

	payment := models.CoursePayment{UserID: 1, CourseID: 2, Amount: 49.99, Status: models.PaymentPaid}
	require.NoError(t, db.Create(&payment).Error)

	require.NoError(t, enrollAfterPayment(db, &payment))

	var enrollment models.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, 2).First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	assert.Equal(t, 0.00, enrollment.ProgressPercentage)
	assert.False(t, enrollment.EnrolledAt.IsZero())
}

func TestEnrollAfterPaymentLeavesActiveEnrollmentAlone(t *testing.T) {
	db := setupPaymentDb(t)

	existing := models.Enrollment{
		UserID:             1,
		CourseID:           2,
		ProgressPercentage: 40.00,
		Status:             models.EnrollmentActive,
		EnrolledAt:         time.Now().AddDate(0, -1, 0),
	}
	require.NoError(t, db.Create(&existing).Error)

	payment := models.CoursePayment{UserID: 1, CourseID: 2, Amount: 49.99, Status: models.PaymentPaid}
	require.NoError(t, db.Create(&payment).Error)

	require.NoError(t, enrollAfterPayment(db, &payment))

	var enrollments []models.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, 2).Find(&enrollments).Error)
	require.Len(t, enrollments, 1)
	// Progress made before the duplicate payment is untouched
	assert.Equal(t, 40.00, enrollments[0].ProgressPercentage)
}

func TestEnrollAfterPaymentReactivatesCancelledEnrollment(t *testing.T) {
	db := setupPaymentDb(t)

	cancelled := models.Enrollment{
		UserID:             1,
		CourseID:           2,
		ProgressPercentage: 75.00,
		Status:             models.EnrollmentCancelled,
		EnrolledAt:         time.Now().AddDate(0, -2, 0),
	}
	require.NoError(t, db.Create(&cancelled).Error)

	payment := models.CoursePayment{UserID: 1, CourseID: 2, Amount: 49.99, Status: models.PaymentPaid}
	require.NoError(t, db.Create(&payment).Error)

	require.NoError(t, enrollAfterPayment(db, &payment))

	var enrollments []models.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, 2).Find(&enrollments).Error)
	require.Len(t, enrollments, 1)
	assert.Equal(t, models.EnrollmentActive, enrollments[0].Status)
	// Buying the course back keeps the earlier progress
	assert.Equal(t, 75.00, enrollments[0].ProgressPercentage)
}

func TestRefundCancelsEnrollment(t *testing.T) {
	db := setupPaymentDb(t)

	payment := models.CoursePayment{UserID: 1, CourseID: 2, Amount: 49.99, Status: models.PaymentPaid}
	require.NoError(t, db.Create(&payment).Error)
	require.NoError(t, enrollAfterPayment(db, &payment))

	// The refund side effect mirrors UpdateCoursePaymentStatus
	require.True(t, models.CanTransitionPayment(payment.Status, models.PaymentRefunded))
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		payment.Status = models.PaymentRefunded
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id = ?", payment.UserID, payment.CourseID).
			Update("status", models.EnrollmentCancelled).Error
	}))

	var enrollment models.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, 2).First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentCancelled, enrollment.Status)
}
