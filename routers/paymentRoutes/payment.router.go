package paymentRoutes

import (
	paymentControllers "lms/controllers/payment"
	"lms/middleware"
	paymentValidators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	// Course payments
	courseGroup := app.Group("/payments/course", middleware.JWTMiddleware)
	courseGroup.Get("/", paymentControllers.GetCoursePayments)
	courseGroup.Post("/checkout/:slug", paymentControllers.CreateCoursePayment)

	coursePaymentGroup := app.Group("/payments/course/:paymentId",
		middleware.JWTMiddleware, paymentValidators.PaymentID())
	coursePaymentGroup.Get("/", paymentControllers.GetCoursePayment)
	coursePaymentGroup.Post("/mark-paid", paymentValidators.MarkPaid(), paymentControllers.MarkCoursePaymentPaid)
	coursePaymentGroup.Patch("/status", paymentValidators.UpdateStatus(), paymentControllers.UpdateCoursePaymentStatus)

	// Subscription payments
	subGroup := app.Group("/payments/subscription", middleware.JWTMiddleware)
	subGroup.Get("/", paymentControllers.GetSubscriptionPayments)

	subPaymentGroup := app.Group("/payments/subscription/:paymentId",
		middleware.JWTMiddleware, paymentValidators.PaymentID())
	subPaymentGroup.Get("/", paymentControllers.GetSubscriptionPayment)
	subPaymentGroup.Post("/mark-paid", paymentValidators.MarkPaid(), paymentControllers.MarkSubscriptionPaymentPaid)
	subPaymentGroup.Patch("/status", paymentValidators.UpdateStatus(), paymentControllers.UpdateSubscriptionPaymentStatus)
}
