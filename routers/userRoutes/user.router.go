package userRoutes

import (
	userControllers "lms/controllers/user"
	"lms/middleware"
	userValidators "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, userValidators.UpdateProfile(), userControllers.UpdateProfile)
	userGroup.Delete("/account", middleware.JWTMiddleware, userControllers.DeleteAccount)
}
