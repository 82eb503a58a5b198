package authValidator

import (
	"lms/middleware"
	"lms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
			Phone    string `json:"phone"`
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
		if err := validate.Var(reqData.Password, "required,min=8"); err != nil {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		// Admin accounts are never self-registered
		if reqData.Role != "" && reqData.Role != models.RoleStudent && reqData.Role != models.RoleInstructor {
			errors["role"] = "Role must be either student or instructor!"
		}
		if reqData.Phone != "" {
			if err := validate.Var(reqData.Phone, "min=7,max=20"); err != nil {
				errors["phone"] = "Invalid phone number!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.Email, "required,email"); err != nil {
			errors["email"] = "A valid email address is required!"
		}
		if err := validate.Var(reqData.Password, "required"); err != nil {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
