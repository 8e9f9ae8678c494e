package validate

import (
	"strconv"

	"event_ticketing/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetById parses a numeric route param into Locals("inputId").
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil || valueKey <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id parameter")
		}

		c.Locals("inputId", uint(valueKey))
		return c.Next()
	}
}

// body parses and validates the request body into out, responding 400 itself
// on failure.
func body[T any](c *fiber.Ctx, out *T) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot parse request body")
	}
	if err := validate.Struct(out); err != nil {
		return false, utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return true, nil
}
