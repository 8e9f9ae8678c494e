package validate

import (
	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
)

func CreateIntent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateIntentInput
		if ok, err := body(c, &input); !ok {
			return err
		}

		c.Locals("createIntentInput", input)
		return c.Next()
	}
}

func ConfirmPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ConfirmPaymentInput
		if ok, err := body(c, &input); !ok {
			return err
		}

		c.Locals("confirmPaymentInput", input)
		return c.Next()
	}
}
