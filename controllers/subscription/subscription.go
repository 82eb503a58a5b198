package subscriptionController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// plan catalog: price per billing period
var planCatalog = []fiber.Map{
	{"name": models.PlanBasic, "monthly_price": 9.99, "yearly_price": 99.99},
	{"name": models.PlanPro, "monthly_price": 19.99, "yearly_price": 199.99},
	{"name": models.PlanPremium, "monthly_price": 29.99, "yearly_price": 299.99},
}

func planPrice(plan, period string) (float64, bool) {
	for _, p := range planCatalog {
		if p["name"] == plan {
			if period == models.PeriodYearly {
				return p["yearly_price"].(float64), true
			}
			return p["monthly_price"].(float64), true
		}
	}
	return 0, false
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// GetPlans returns the static plan catalog. Public.
func GetPlans(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plans fetched successfully!", planCatalog)
}

// Subscribe opens a subscription for the caller and a pending payment for the
// first billing period. The subscription starts lapsed (expires now) and only
// gains time when the payment is marked as paid.
func Subscribe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSubscribe").(*struct {
		PlanName      string `json:"plan_name"`
		BillingPeriod string `json:"billing_period"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	price, found := planPrice(reqData.PlanName, reqData.BillingPeriod)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Unknown plan!", nil)
	}

	db := database.Database.Db

	// One live subscription per user
	var existing models.Subscription
	if err := db.Where("user_id = ? AND status = ? AND expires_at > ?",
		user.ID, models.SubscriptionActive, time.Now()).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have an active subscription!", nil)
	}

	var subscription models.Subscription
	var payment models.SubscriptionPayment
	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		subscription = models.Subscription{
			UserID:        user.ID,
			PlanName:      reqData.PlanName,
			Price:         price,
			BillingPeriod: reqData.BillingPeriod,
			Status:        models.SubscriptionActive,
			StartsAt:      &now,
			ExpiresAt:     &now, // no access until the first payment lands
		}
		if err := tx.Create(&subscription).Error; err != nil {
			return err
		}

		payment = models.SubscriptionPayment{
			UserID:         user.ID,
			SubscriptionID: subscription.ID,
			Amount:         price,
			Status:         models.PaymentPending,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscription created. Complete the payment to activate it.", fiber.Map{
		"subscription": subscription,
		"payment":      payment,
	})
}

// GetMySubscription returns the caller's most recent subscription with its
// payment history
func GetMySubscription(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var subscription models.Subscription
	if err := db.Preload("Payments").Where("user_id = ?", user.ID).
		Order("created_at desc").First(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You do not have a subscription yet.", nil)
	}

	now := time.Now()
	isLive := subscription.Status == models.SubscriptionActive &&
		subscription.ExpiresAt != nil && subscription.ExpiresAt.After(now)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription fetched successfully!", fiber.Map{
		"subscription": subscription,
		"is_live":      isLive,
	})
}

// GetSubscriptions lists all subscriptions. Admin only.
func GetSubscriptions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageSubscription, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	db := database.Database.Db
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 15)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}

	query := db.Model(&models.Subscription{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var subscriptions []models.Subscription
	if err := query.Preload("User").Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).Find(&subscriptions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subscriptions!", nil)
	}
	for i := range subscriptions {
		subscriptions[i].User.Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscriptions fetched successfully!", fiber.Map{
		"subscriptions": subscriptions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ActivateSubscription manually grants months of access. Admin only. Used for
// comped accounts and support cases; normal extension happens through paid
// payments.
func ActivateSubscription(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageSubscription, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	db := database.Database.Db
	subscriptionID := c.Locals("subscriptionID").(int)

	var subscription models.Subscription
	if err := db.Where("id = ?", subscriptionID).First(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription not found!", nil)
	}

	reqData, ok := c.Locals("validatedActivate").(*struct {
		Months int `json:"months"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	subscription.ExtendExpiry(reqData.Months)
	if err := db.Save(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription activated successfully!", subscription)
}

// CancelSubscription cancels the caller's live subscription, ending access
// immediately
func CancelSubscription(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var subscription models.Subscription
	if err := db.Where("user_id = ? AND status = ?", user.ID, models.SubscriptionActive).
		Order("created_at desc").First(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "You do not have an active subscription to cancel.", nil)
	}

	now := time.Now()
	subscription.Status = models.SubscriptionCancelled
	subscription.ExpiresAt = &now

	if err := db.Save(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Your subscription has been cancelled.", subscription)
}

// ChangePlan switches a subscription to a different plan. Admin only; no
// proration, the new price applies from the next billing period.
func ChangePlan(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageSubscription, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	reqData, ok := c.Locals("validatedSubscribe").(*struct {
		PlanName      string `json:"plan_name"`
		BillingPeriod string `json:"billing_period"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	price, found := planPrice(reqData.PlanName, reqData.BillingPeriod)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Unknown plan!", nil)
	}

	db := database.Database.Db
	subscriptionID := c.Locals("subscriptionID").(int)

	var subscription models.Subscription
	if err := db.Where("id = ?", subscriptionID).First(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription not found!", nil)
	}

	if subscription.PlanName == reqData.PlanName && subscription.BillingPeriod == reqData.BillingPeriod {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "The subscription is already on this plan!", nil)
	}

	subscription.PlanName = reqData.PlanName
	subscription.BillingPeriod = reqData.BillingPeriod
	subscription.Price = price

	if err := db.Save(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan changed successfully!", subscription)
}
