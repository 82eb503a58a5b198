package paymentController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetSubscriptionPayments lists subscription payments. Students see their own,
// admins see everything plus stats. Instructors have no stake in subscription
// revenue so they see their own like students.
func GetSubscriptionPayments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	page, limit, offset := paginationParams(c)

	query := db.Model(&models.SubscriptionPayment{})
	if !user.IsAdmin() {
		query = query.Where("user_id = ?", user.ID)
	}

	var total int64
	query.Count(&total)

	var payments []models.SubscriptionPayment
	if err := query.Preload("User").Preload("Subscription").
		Order("paid_at desc, created_at desc").Offset(offset).Limit(limit).
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}
	for i := range payments {
		payments[i].User.Password = ""
	}

	response := fiber.Map{
		"payments": payments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}
	if user.IsAdmin() {
		response["stats"] = subscriptionPaymentStats(db)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", response)
}

// GetSubscriptionPayment shows one payment's details
func GetSubscriptionPayment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	paymentID := c.Locals("paymentID").(int)

	var payment models.SubscriptionPayment
	if err := db.Preload("User").Preload("Subscription").
		Where("id = ?", paymentID).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionViewPayment, &payment); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	payment.User.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment fetched successfully!", payment)
}

// MarkSubscriptionPaymentPaid records a manual/offline payment. Admin only.
// The paid side effect extends the subscription by one billing period,
// counting from the current expiry when it is still in the future.
func MarkSubscriptionPaymentPaid(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionMarkPaymentPaid, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	db := database.Database.Db
	paymentID := c.Locals("paymentID").(int)

	var payment models.SubscriptionPayment
	if err := db.Preload("Subscription").Where("id = ?", paymentID).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	reqData, ok := c.Locals("validatedMarkPaid").(*struct {
		TransactionID string     `json:"transaction_id"`
		PaidAt        *time.Time `json:"paid_at"`
		Amount        *float64   `json:"amount"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !models.CanTransitionPayment(payment.Status, models.PaymentPaid) {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false,
			"A "+payment.Status+" payment cannot be marked as paid!", nil)
	}

	if err := db.Where("transaction_id = ? AND id != ?", reqData.TransactionID, payment.ID).
		First(&models.SubscriptionPayment{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction ID is already used!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		payment.TransactionID = &reqData.TransactionID
		payment.Status = models.PaymentPaid
		payment.PaidAt = reqData.PaidAt
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		// Extend by one billing period of the subscription the payment belongs to
		subscription := payment.Subscription
		subscription.ExtendExpiry(subscription.BillingMonths())
		return tx.Save(&subscription).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark payment as paid!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment marked as paid successfully. Subscription extended.", payment)
}

// UpdateSubscriptionPaymentStatus changes a payment's status along the
// whitelisted transition graph. Admin only. Refunding a paid payment cancels
// the subscription immediately.
func UpdateSubscriptionPaymentStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageSubscription, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	db := database.Database.Db
	paymentID := c.Locals("paymentID").(int)

	var payment models.SubscriptionPayment
	if err := db.Where("id = ?", paymentID).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	reqData, ok := c.Locals("validatedStatus").(*struct {
		Status string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Status == models.PaymentPaid {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Use the mark-as-paid endpoint to record a payment!", nil)
	}

	oldStatus := payment.Status
	if !models.CanTransitionPayment(oldStatus, reqData.Status) {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false,
			"Cannot change a "+oldStatus+" payment to "+reqData.Status+"!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		payment.Status = reqData.Status
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		// Refunding a paid payment pulls the subscription's access
		if reqData.Status == models.PaymentRefunded && oldStatus == models.PaymentPaid {
			now := time.Now()
			return tx.Model(&models.Subscription{}).
				Where("id = ?", payment.SubscriptionID).
				Updates(map[string]interface{}{
					"status":     models.SubscriptionCancelled,
					"expires_at": now,
				}).Error
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment status updated to "+reqData.Status+".", payment)
}

// subscriptionPaymentStats aggregates ledger figures for the dashboard
func subscriptionPaymentStats(db *gorm.DB) fiber.Map {
	var totalPayments, pendingCount int64
	var totalRevenue, thisMonth float64

	db.Model(&models.SubscriptionPayment{}).Count(&totalPayments)
	db.Model(&models.SubscriptionPayment{}).Where("status = ?", models.PaymentPending).Count(&pendingCount)
	db.Model(&models.SubscriptionPayment{}).Where("status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)
	db.Model(&models.SubscriptionPayment{}).Where("status = ? AND paid_at >= ?", models.PaymentPaid, startOfMonth()).
		Select("COALESCE(SUM(amount), 0)").Scan(&thisMonth)

	return fiber.Map{
		"total_payments": totalPayments,
		"total_revenue":  totalRevenue,
		"pending_count":  pendingCount,
		"this_month":     thisMonth,
	}
}
