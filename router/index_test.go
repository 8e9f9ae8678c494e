package router

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestBookingRoutes(t *testing.T) {
	app := fiber.New()
	SetupRoutes(app)

	registered := make(map[string]bool)
	for _, stack := range app.Stack() {
		for _, route := range stack {
			registered[route.Method+" "+route.Path] = true
		}
	}

	// GET /bookings is the caller's own bookings; the admin listing lives on
	// /bookings/all.
	assert.True(t, registered["GET /api/bookings"] || registered["GET /api/bookings/"])
	assert.True(t, registered["GET /api/bookings/all"])
	assert.True(t, registered["GET /api/bookings/:id"])
	assert.True(t, registered["GET /api/bookings/:id/ticket"])
	assert.True(t, registered["PUT /api/bookings/:id/payment"])
	assert.True(t, registered["POST /api/bookings/:id/reminder"])
	assert.False(t, registered["GET /api/bookings/my-bookings"])

	assert.True(t, registered["POST /api/payments/webhook"])
	assert.True(t, registered["GET /api/events/:id/live"])
}
