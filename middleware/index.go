package middleware

import (
	"errors"
	"log"
	"strings"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Protected resolves the bearer token to a user record and stores it in
// Locals. Fails closed on any verification problem.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token")
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token")
		}

		claim, ok := helper.ClaimFromToken(jwtToken)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token")
		}

		var user model.User
		if err := database.DB.First(&user, claim.UserId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals("user", &user)
		return c.Next()
	}
}

// RequireRole gates a route on the caller's role. Composed after Protected.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := UserFromContext(c)
		if user == nil || user.Role != role {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN)
		}
		return c.Next()
	}
}

func UserFromContext(c *fiber.Ctx) *model.User {
	user, _ := c.Locals("user").(*model.User)
	return user
}

// ErrorHandler is the terminal classifier for errors that handlers did not
// report inline. Known database shapes get a specific status; everything else
// is a generic 500 with no internal detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return utils.ErrorResponse(c, fiberErr.Code, fiberErr.Message)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Resource not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Duplicate field value entered")
	}

	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Server Error")
}
