package utils

import (
	"errors"
	"strings"

	"event_ticketing/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func ListResponse(c *fiber.Ctx, count int, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// FromServiceError maps the service error taxonomy onto HTTP statuses.
// Unrecognized errors are returned as-is and land in the central error
// handler, which never leaks their detail.
func FromServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return ErrorResponse(c, fiber.StatusBadRequest, cleanMessage(err))
	case errors.Is(err, service.ErrUnauthorized):
		return ErrorResponse(c, fiber.StatusUnauthorized, cleanMessage(err))
	case errors.Is(err, service.ErrForbidden):
		return ErrorResponse(c, fiber.StatusForbidden, cleanMessage(err))
	case errors.Is(err, service.ErrNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, cleanMessage(err))
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrSoldOut):
		return ErrorResponse(c, fiber.StatusConflict, cleanMessage(err))
	case errors.Is(err, service.ErrUpstream):
		return ErrorResponse(c, fiber.StatusBadGateway, "Payment gateway error")
	default:
		return err
	}
}

var sentinels = []error{
	service.ErrInvalid,
	service.ErrUnauthorized,
	service.ErrForbidden,
	service.ErrNotFound,
	service.ErrConflict,
	service.ErrSoldOut,
	service.ErrUpstream,
}

func cleanMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range sentinels {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		offset := *limit * (*page - 1)
		query = query.Offset(offset)
	}
	return query
}

func Ptr[T any](v T) *T {
	return &v
}
