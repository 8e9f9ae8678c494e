package handler

import (
	"event_ticketing/gateway"
	"event_ticketing/service"
)

var (
	authService    *service.AuthService
	bookingService *service.BookingService
	stripeGateway  *gateway.StripeGateway
)

// Init wires the handler package to its services. Called once from main
// after the database is up.
func Init(auth *service.AuthService, booking *service.BookingService, stripe *gateway.StripeGateway) {
	authService = auth
	bookingService = booking
	stripeGateway = stripe
}
