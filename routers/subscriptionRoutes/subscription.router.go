package subscriptionRoutes

import (
	subscriptionControllers "lms/controllers/subscription"
	"lms/middleware"
	subscriptionValidators "lms/validators/subscription"

	"github.com/gofiber/fiber/v2"
)

func SetupSubscriptionRoutes(app *fiber.App) {
	subGroup := app.Group("/subscriptions")

	subGroup.Get("/plans", subscriptionControllers.GetPlans)
	subGroup.Post("/", middleware.JWTMiddleware, subscriptionValidators.Subscribe(), subscriptionControllers.Subscribe)
	subGroup.Get("/my", middleware.JWTMiddleware, subscriptionControllers.GetMySubscription)
	subGroup.Post("/cancel", middleware.JWTMiddleware, subscriptionControllers.CancelSubscription)

	// Admin
	subGroup.Get("/", middleware.JWTMiddleware, subscriptionControllers.GetSubscriptions)
	subGroup.Post("/:subscriptionId/activate", middleware.JWTMiddleware,
		subscriptionValidators.SubscriptionID(), subscriptionValidators.Activate(),
		subscriptionControllers.ActivateSubscription)
	subGroup.Put("/:subscriptionId/plan", middleware.JWTMiddleware,
		subscriptionValidators.SubscriptionID(), subscriptionValidators.Subscribe(),
		subscriptionControllers.ChangePlan)
}
