package paymentValidator

import (
	"lms/middleware"
	"lms/models"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// PaymentID parses the payment route parameter
func PaymentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("paymentId")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid paymentId parameter!", nil)
		}
		c.Locals("paymentID", id)
		return c.Next()
	}
}

// MarkPaid validator middleware. Recording a payment always needs the
// gateway's transaction reference and the time it settled.
func MarkPaid() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TransactionID string     `json:"transaction_id"`
			PaidAt        *time.Time `json:"paid_at"`
			Amount        *float64   `json:"amount"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.TransactionID, "required,min=3,max=100"); err != nil {
			errors["transaction_id"] = "Transaction ID is required!"
		}
		if reqData.PaidAt == nil {
			errors["paid_at"] = "Paid at timestamp is required!"
		}
		if reqData.Amount != nil && *reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than zero!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMarkPaid", reqData)
		return c.Next()
	}
}

// UpdateStatus validator middleware
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !models.IsValidPaymentStatus(reqData.Status) {
			errors["status"] = "Status must be one of pending, paid, failed, refunded or cancelled!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}
