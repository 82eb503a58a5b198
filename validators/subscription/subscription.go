package subscriptionValidator

import (
	"lms/middleware"
	"lms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SubscriptionID parses the subscription route parameter
func SubscriptionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("subscriptionId")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subscriptionId parameter!", nil)
		}
		c.Locals("subscriptionID", id)
		return c.Next()
	}
}

// Subscribe validator middleware, shared by subscribe and change-plan
func Subscribe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PlanName      string `json:"plan_name"`
			BillingPeriod string `json:"billing_period"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		switch reqData.PlanName {
		case models.PlanBasic, models.PlanPro, models.PlanPremium:
		default:
			errors["plan_name"] = "Plan must be basic, pro or premium!"
		}

		if reqData.BillingPeriod == "" {
			reqData.BillingPeriod = models.PeriodMonthly
		}
		if reqData.BillingPeriod != models.PeriodMonthly && reqData.BillingPeriod != models.PeriodYearly {
			errors["billing_period"] = "Billing period must be monthly or yearly!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubscribe", reqData)
		return c.Next()
	}
}

// Activate validator middleware for manual extension
func Activate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Months int `json:"months"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.Months, "required,min=1,max=36"); err != nil {
			errors["months"] = "Months must be between 1 and 36!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedActivate", reqData)
		return c.Next()
	}
}
