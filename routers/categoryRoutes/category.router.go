package categoryRoutes

import (
	categoryControllers "lms/controllers/category"
	"lms/middleware"
	categoryValidators "lms/validators/category"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App) {
	// Public listing
	app.Get("/categories", categoryControllers.GetCategories)

	// Admin management
	adminGroup := app.Group("/admin/categories", middleware.JWTMiddleware)
	adminGroup.Get("/", categoryControllers.GetAllCategories)
	adminGroup.Post("/", categoryValidators.Category(), categoryControllers.CreateCategory)
	adminGroup.Put("/:categoryId", categoryValidators.CategoryID(), categoryValidators.Category(), categoryControllers.UpdateCategory)
	adminGroup.Delete("/:categoryId", categoryValidators.CategoryID(), categoryControllers.DeleteCategory)
}
