package router

import (
	"event_ticketing/constants"
	"event_ticketing/handler"
	"event_ticketing/middleware"
	"event_ticketing/realtime"
	"event_ticketing/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	auth := api.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	events := api.Group("/events")
	events.Get("/", handler.GetEvents)
	events.Get("/:id", handler.GetEvent)
	events.Post("/",
		middleware.Protected(), middleware.RequireRole(constants.ROLE_ADMIN),
		validate.CreateEvent(), handler.CreateEvent)
	events.Put("/:id",
		middleware.Protected(), middleware.RequireRole(constants.ROLE_ADMIN),
		validate.GetById("id"), validate.EditEvent(), handler.EditEvent)
	events.Delete("/:id",
		middleware.Protected(), middleware.RequireRole(constants.ROLE_ADMIN),
		validate.GetById("id"), handler.DeleteEvent)
	events.Post("/:id/image",
		middleware.Protected(), middleware.RequireRole(constants.ROLE_ADMIN),
		validate.GetById("id"), handler.UploadEventImage)

	// Live availability feed. Plain HTTP requests on this path are rejected
	// before the upgrade handler runs.
	events.Use("/:id/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	events.Get("/:id/live", websocket.New(realtime.EventFeed))

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Post("/", validate.CreateBooking(), handler.CreateBooking)
	bookings.Get("/", handler.GetMyBookings)
	bookings.Get("/all", middleware.RequireRole(constants.ROLE_ADMIN), handler.GetAllBookings)
	bookings.Get("/:id", validate.GetById("id"), handler.GetBooking)
	bookings.Put("/:id/payment",
		validate.GetById("id"), validate.UpdatePayment(), handler.UpdatePaymentStatus)
	bookings.Post("/:id/reminder", validate.GetById("id"), handler.SendReminder)
	bookings.Get("/:id/ticket", validate.GetById("id"), handler.DownloadTicket)

	payments := api.Group("/payments")
	payments.Post("/create-intent",
		middleware.Protected(), validate.CreateIntent(), handler.CreatePaymentIntent)
	payments.Post("/confirm",
		middleware.Protected(), validate.ConfirmPayment(), handler.ConfirmPayment)
	payments.Post("/webhook", handler.Webhook)
}
