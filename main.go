package main

import (
	"lms/config"
	"lms/database"
	authRoutes "lms/routers/authRoutes"
	categoryRoutes "lms/routers/categoryRoutes"
	courseRoutes "lms/routers/courseRoutes"
	paymentRoutes "lms/routers/paymentRoutes"
	subscriptionRoutes "lms/routers/subscriptionRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded files (thumbnails, avatars, lesson attachments)
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	subscriptionRoutes.SetupSubscriptionRoutes(app)

	// Daily sweep that expires lapsed subscriptions
	utils.InitializeSubscriptionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
