package paymentController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCoursePayment opens a pending payment for a paid course (checkout).
// The enrollment itself is only created when an administrator marks the
// payment as paid.
func CreateCoursePayment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	slug := c.Params("slug")

	var course models.Course
	if err := db.Where("slug = ? AND is_published = ?", slug, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.IsFree() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is free. Enroll directly instead.", nil)
	}

	if err := db.Where("user_id = ? AND course_id = ? AND status = ?",
		user.ID, course.ID, models.EnrollmentActive).First(&models.Enrollment{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	// Reuse an open pending payment instead of stacking duplicates
	var existing models.CoursePayment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ?",
		user.ID, course.ID, models.PaymentPending).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "A pending payment already exists for this course.", existing)
	}

	payment := models.CoursePayment{
		UserID:   user.ID,
		CourseID: course.ID,
		Amount:   course.Price,
		Status:   models.PaymentPending,
	}

	if err := db.Create(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment created. An administrator will confirm it shortly.", payment)
}

// GetCoursePayments lists course payments. Students see their own, instructors
// see payments for their courses, admins see everything plus stats.
func GetCoursePayments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	page, limit, offset := paginationParams(c)

	query := db.Model(&models.CoursePayment{})
	switch user.Role {
	case models.RoleStudent:
		query = query.Where("user_id = ?", user.ID)
	case models.RoleInstructor:
		query = query.Joins("JOIN courses ON courses.id = course_payments.course_id").
			Where("courses.instructor_id = ?", user.ID)
	}

	var total int64
	query.Count(&total)

	var payments []models.CoursePayment
	if err := query.Preload("User").Preload("Course").
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
	if !user.IsStudent() {
		response["stats"] = coursePaymentStats(db)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", response)
}

// GetCoursePayment shows one payment's details
func GetCoursePayment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	paymentID := c.Locals("paymentID").(int)

	var payment models.CoursePayment
	if err := db.Preload("User").Preload("Course").Preload("Course.Instructor").
		Where("id = ?", paymentID).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionViewPayment, &payment); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	payment.User.Password = ""
	payment.Course.Instructor.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment fetched successfully!", payment)
}

// MarkCoursePaymentPaid records a manual/offline payment. Admin only. The
// paid side effect enrolls the student unless an active enrollment exists.
func MarkCoursePaymentPaid(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionMarkPaymentPaid, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	db := database.Database.Db
	paymentID := c.Locals("paymentID").(int)

	var payment models.CoursePayment
	if err := db.Where("id = ?", paymentID).First(&payment).Error; err != nil {
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

	// Transaction ids are unique across the ledger
	if err := db.Where("transaction_id = ? AND id != ?", reqData.TransactionID, payment.ID).
		First(&models.CoursePayment{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Transaction ID is already used!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		payment.TransactionID = &reqData.TransactionID
		payment.Status = models.PaymentPaid
		payment.PaidAt = reqData.PaidAt
		if reqData.Amount != nil {
			payment.Amount = *reqData.Amount
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return enrollAfterPayment(tx, &payment)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark payment as paid!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment marked as paid successfully. Student enrolled automatically.", payment)
}

// UpdateCoursePaymentStatus changes a payment's status along the whitelisted
// transition graph. Refunding a paid payment cancels the enrollment.
func UpdateCoursePaymentStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	paymentID := c.Locals("paymentID").(int)

	var payment models.CoursePayment
	if err := db.Preload("Course").Where("id = ?", paymentID).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionChangePaymentState, &payment); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	reqData, ok := c.Locals("validatedStatus").(*struct {
		Status string `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Marking as paid requires a transaction id; that path has its own endpoint
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

		// Refunding a paid payment cancels the enrollment
		if reqData.Status == models.PaymentRefunded && oldStatus == models.PaymentPaid {
			return tx.Model(&models.Enrollment{}).
				Where("user_id = ? AND course_id = ?", payment.UserID, payment.CourseID).
				Update("status", models.EnrollmentCancelled).Error
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment status updated to "+reqData.Status+".", payment)
}

// enrollAfterPayment grants the enrollment a successful payment entitles the
// student to. A cancelled enrollment (from an earlier refund) is reactivated
// instead of duplicated; an active one is left alone.
func enrollAfterPayment(tx *gorm.DB, payment *models.CoursePayment) error {
	var enrollment models.Enrollment
	err := tx.Where("user_id = ? AND course_id = ?", payment.UserID, payment.CourseID).First(&enrollment).Error
	if err == nil {
		if enrollment.Status == models.EnrollmentActive {
			return nil
		}
		enrollment.Status = models.EnrollmentActive
		return tx.Save(&enrollment).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	enrollment = models.Enrollment{
		UserID:             payment.UserID,
		CourseID:           payment.CourseID,
		ProgressPercentage: 0.00,
		Status:             models.EnrollmentActive,
		EnrolledAt:         time.Now(),
	}
	return tx.Create(&enrollment).Error
}

// coursePaymentStats aggregates ledger figures for the dashboard
func coursePaymentStats(db *gorm.DB) fiber.Map {
	var totalPayments, pendingCount int64
	var totalRevenue, thisMonth float64

	db.Model(&models.CoursePayment{}).Count(&totalPayments)
	db.Model(&models.CoursePayment{}).Where("status = ?", models.PaymentPending).Count(&pendingCount)
	db.Model(&models.CoursePayment{}).Where("status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)
	db.Model(&models.CoursePayment{}).Where("status = ? AND paid_at >= ?", models.PaymentPaid, startOfMonth()).
		Select("COALESCE(SUM(amount), 0)").Scan(&thisMonth)

	return fiber.Map{
		"total_payments": totalPayments,
		"total_revenue":  totalRevenue,
		"pending_count":  pendingCount,
		"this_month":     thisMonth,
	}
}
