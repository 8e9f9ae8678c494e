package handler

import (
	"log"

	"event_ticketing/constants"
	"event_ticketing/middleware"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func CreatePaymentIntent(c *fiber.Ctx) error {
	input, ok := c.Locals("createIntentInput").(model.CreateIntentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}
	user := middleware.UserFromContext(c)

	intent, err := bookingService.CreateIntent(c.Context(), user.ID, user.Role == constants.ROLE_ADMIN, input.BookingId)
	if err != nil {
		return utils.FromServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}

func ConfirmPayment(c *fiber.Ctx) error {
	input, ok := c.Locals("confirmPaymentInput").(model.ConfirmPaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}

	booking, err := bookingService.Confirm(c.Context(), input)
	if err != nil {
		return utils.FromServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment success",
		"data":    booking,
	})
}

// Webhook is the gateway's asynchronous push path. The signature is checked
// before anything else; once it verifies, the gateway always gets a success
// acknowledgment, whatever happens internally, per its retry contract.
func Webhook(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")

	event, err := stripeGateway.VerifyWebhook(c.Body(), signature)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Webhook signature verification failed")
	}

	if err := bookingService.HandleGatewayEvent(c.Context(), event); err != nil {
		log.Printf("webhook processing failed for %s: %v", event.Type, err)
	}

	return c.JSON(fiber.Map{"received": true})
}
