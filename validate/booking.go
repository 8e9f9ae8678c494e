package validate

import (
	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
)

func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBookingInput
		if ok, err := body(c, &input); !ok {
			return err
		}

		c.Locals("createBookingInput", input)
		return c.Next()
	}
}

func UpdatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdatePaymentInput
		if ok, err := body(c, &input); !ok {
			return err
		}

		c.Locals("updatePaymentInput", input)
		return c.Next()
	}
}
