package categoryValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CategoryID parses the category route parameter
func CategoryID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("categoryId")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid categoryId parameter!", nil)
		}
		c.Locals("categoryID", id)
		return c.Next()
	}
}

// Category validator middleware for create/update
func Category() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name" form:"name"`
			Description string `json:"description" form:"description"`
			Order       int    `json:"order" form:"order"`
			IsActive    *bool  `json:"is_active" form:"is_active"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.Name, "required,min=2,max=100"); err != nil {
			errors["name"] = "Name must be between 2 and 100 characters long!"
		}
		if err := validate.Var(reqData.Description, "max=2000"); err != nil {
			errors["description"] = "Description must be at most 2000 characters long!"
		}
		if reqData.Order < 0 {
			errors["order"] = "Order cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}
