package main

import (
	"log"

	"event_ticketing/config"
	"event_ticketing/database"
	"event_ticketing/gateway"
	"event_ticketing/handler"
	"event_ticketing/helper"
	"event_ticketing/middleware"
	"event_ticketing/realtime"
	"event_ticketing/repository"
	"event_ticketing/router"
	"event_ticketing/service"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigDefault("CORS_ORIGIN", "http://localhost:3000"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, Stripe-Signature",
		AllowCredentials: true,
	}))

	database.ConnectDB()
	database.ConnectRedis()
	helper.InitCloudinary()

	mailer := utils.NewMailer()
	stripeGateway := gateway.NewStripeGateway(
		config.Config("STRIPE_SECRET_KEY"),
		config.Config("STRIPE_WEBHOOK_SECRET"),
	)

	authService := service.NewAuthService(
		repository.UserRepository{},
		repository.ResetTokenRepository{},
		mailer,
		config.Config("ADMIN_REGISTRATION_KEY"),
		config.ConfigDefault("APP_URL", "http://localhost:3000"),
	)
	bookingService := service.NewBookingService(
		repository.EventRepository{},
		repository.BookingRepository{},
		stripeGateway,
		mailer,
		realtime.PublishAvailability,
	)
	handler.Init(authService, bookingService, stripeGateway)

	helper.StartEventStatusScheduler()
	helper.StartReminderScheduler(bookingService)

	router.SetupRoutes(app)

	port := config.ConfigDefault("PORT", "5000")
	if err := app.Listen(":" + port); err != nil {
		helper.StopEventStatusScheduler()
		helper.StopReminderScheduler()
		log.Fatal(err)
	}
}
