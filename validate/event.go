package validate

import (
	"time"

	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateEventInput
		if ok, err := body(c, &input); !ok {
			return err
		}
		if _, err := time.Parse("2006-01-02", input.Date); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Event date must be YYYY-MM-DD")
		}

		c.Locals("createEventInput", input)
		return c.Next()
	}
}

func EditEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditEventInput
		if ok, err := body(c, &input); !ok {
			return err
		}
		if input.Date != "" {
			if _, err := time.Parse("2006-01-02", input.Date); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "Event date must be YYYY-MM-DD")
			}
		}

		c.Locals("editEventInput", input)
		return c.Next()
	}
}
