package userValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// UpdateProfile validator middleware
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name  string `json:"name" form:"name"`
			Email string `json:"email" form:"email"`
			Phone string `json:"phone" form:"phone"`
			Bio   string `json:"bio" form:"bio"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.Name, "required,min=2,max=100"); err != nil {
			errors["name"] = "Name must be between 2 and 100 characters long!"
		}
		if err := validate.Var(reqData.Email, "required,email"); err != nil {
			errors["email"] = "A valid email address is required!"
		}
		if reqData.Phone != "" {
			if err := validate.Var(reqData.Phone, "min=7,max=20"); err != nil {
				errors["phone"] = "Invalid phone number!"
			}
		}
		if err := validate.Var(reqData.Bio, "max=2000"); err != nil {
			errors["bio"] = "Bio must be at most 2000 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
