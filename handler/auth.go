package handler

import (
	"event_ticketing/constants"
	"event_ticketing/helper"
	"event_ticketing/middleware"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func userPayload(user *model.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

func Register(c *fiber.Ctx) error {
	input, ok := c.Locals("registerInput").(model.RegisterInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}

	user, err := authService.Register(c.Context(), input)
	if err != nil {
		return utils.FromServiceError(c, err)
	}

	token, err := helper.GenerateToken(user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    userPayload(user),
	})
}

func Login(c *fiber.Ctx) error {
	input, ok := c.Locals("loginInput").(model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}

	user, err := authService.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		return utils.FromServiceError(c, err)
	}

	token, err := helper.GenerateToken(user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    userPayload(user),
	})
}

func Me(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_AUTHORIZED)
	}

	payload := userPayload(user)
	payload["phone"] = user.Phone
	return c.JSON(fiber.Map{
		"success": true,
		"user":    payload,
	})
}

// ForgotPassword answers the same way whether or not the email exists.
func ForgotPassword(c *fiber.Ctx) error {
	input, ok := c.Locals("forgotPasswordInput").(model.ForgotPasswordInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}

	if err := authService.ForgotPassword(c.Context(), input.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "If that email is registered, a reset link has been sent",
	})
}

func ResetPassword(c *fiber.Ctx) error {
	input, ok := c.Locals("resetPasswordInput").(model.ResetPasswordInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}

	if err := authService.ResetPassword(c.Context(), input.Token, input.Password); err != nil {
		return utils.FromServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password has been reset",
	})
}
