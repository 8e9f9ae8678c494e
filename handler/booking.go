package handler

import (
	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/middleware"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateBooking(c *fiber.Ctx) error {
	input, ok := c.Locals("createBookingInput").(model.CreateBookingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}
	user := middleware.UserFromContext(c)

	booking, err := bookingService.Create(c.Context(), user.ID, input)
	if err != nil {
		return utils.FromServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	var bookings []model.Booking
	err := database.DB.WithContext(c.Context()).
		Preload("Event").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return err
	}

	return utils.ListResponse(c, len(bookings), bookings)
}

func GetAllBookings(c *fiber.Ctx) error {
	var bookings []model.Booking
	err := database.DB.WithContext(c.Context()).
		Preload("Event").
		Preload("User").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return err
	}

	return utils.ListResponse(c, len(bookings), bookings)
}

func findOwnedBooking(c *fiber.Ctx) (*model.Booking, error) {
	id, _ := c.Locals("inputId").(uint)

	var booking model.Booking
	err := database.DB.WithContext(c.Context()).
		Preload("Event").
		Preload("User").
		First(&booking, id).Error
	if err != nil {
		return nil, utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND)
	}

	user := middleware.UserFromContext(c)
	if booking.UserId != user.ID && user.Role != constants.ROLE_ADMIN {
		return nil, utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_AUTHORIZED)
	}
	return &booking, nil
}

func GetBooking(c *fiber.Ctx) error {
	booking, err := findOwnedBooking(c)
	if booking == nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}

func UpdatePaymentStatus(c *fiber.Ctx) error {
	input, ok := c.Locals("updatePaymentInput").(model.UpdatePaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}
	id, _ := c.Locals("inputId").(uint)
	user := middleware.UserFromContext(c)

	booking, err := bookingService.UpdatePaymentStatus(c.Context(), user.ID, user.Role == constants.ROLE_ADMIN, id, input)
	if err != nil {
		return utils.FromServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}

func SendReminder(c *fiber.Ctx) error {
	id, _ := c.Locals("inputId").(uint)
	user := middleware.UserFromContext(c)

	err := bookingService.SendReminder(c.Context(), user.ID, user.Role == constants.ROLE_ADMIN, id)
	if err != nil {
		return utils.FromServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Reminder sent successfully",
	})
}

// DownloadTicket returns the printable PDF for a paid booking.
func DownloadTicket(c *fiber.Ctx) error {
	booking, err := findOwnedBooking(c)
	if booking == nil {
		return err
	}
	if booking.PaymentStatus != constants.PAYMENT_COMPLETED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket is available once payment is completed")
	}

	pdf, err := utils.GenerateTicketPDF(booking)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+booking.PublicCode+`.pdf"`)
	return c.Send(pdf)
}
