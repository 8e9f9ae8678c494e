package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"event_ticketing/constants"
	"event_ticketing/model"

	"github.com/google/uuid"
)

type EventStore interface {
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	// DecrementAvailable subtracts tickets from available_tickets in a single
	// conditional update and returns the remaining count. ErrSoldOut when the
	// event does not have that many tickets left.
	DecrementAvailable(ctx context.Context, eventID uint, tickets int) (int, error)
	RestoreAvailable(ctx context.Context, eventID uint, tickets int) error
}

type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id uint) (*model.Booking, error)
	// MarkCompleted flips pending -> completed and records the intent id.
	// Returns false when the booking was no longer pending, which is how two
	// racing settlements (direct confirm vs webhook) are deduplicated.
	MarkCompleted(ctx context.Context, id uint, intentID string) (bool, error)
	SetStatus(ctx context.Context, id uint, status, intentID string) error
	SetReminderSent(ctx context.Context, id uint) error
	FindDueReminders(ctx context.Context, from, to time.Time) ([]model.Booking, error)
}

const IntentSucceeded = "succeeded"

const GatewayPaymentSucceeded = "payment_intent.succeeded"

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

type GatewayEvent struct {
	Type     string
	IntentID string
	Metadata map[string]string
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

// BookingMailer sends booking emails. Implementations are fire-and-forget;
// a failed email must never fail the settlement that triggered it.
type BookingMailer interface {
	SendBookingConfirmation(booking *model.Booking)
	SendEventReminder(booking *model.Booking)
}

// AvailabilityPublisher pushes the new ticket count to the live feed.
// A nil publisher is skipped.
type AvailabilityPublisher func(eventID uint, available int)

type BookingService struct {
	events   EventStore
	bookings BookingStore
	gateway  PaymentGateway
	mailer   BookingMailer
	publish  AvailabilityPublisher
}

func NewBookingService(events EventStore, bookings BookingStore, gateway PaymentGateway, mailer BookingMailer, publish AvailabilityPublisher) *BookingService {
	return &BookingService{
		events:   events,
		bookings: bookings,
		gateway:  gateway,
		mailer:   mailer,
		publish:  publish,
	}
}

// Create opens a pending booking. No hold is placed on inventory here; the
// decrement happens on settlement, guarded by the conditional update.
func (s *BookingService) Create(ctx context.Context, userID uint, input model.CreateBookingInput) (*model.Booking, error) {
	event, err := s.events.FindByID(ctx, input.EventId)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.EVENT_NOT_FOUND)
	}
	if event.Status != constants.EVENT_ACTIVE {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, constants.EVENT_NOT_ACTIVE)
	}
	if input.Tickets > event.AvailableTickets {
		return nil, fmt.Errorf("%w: only %d tickets available", ErrInvalid, event.AvailableTickets)
	}

	booking := &model.Booking{
		PublicCode:    "BKG-" + uuid.New().String()[:8],
		UserId:        userID,
		EventId:       event.ID,
		Tickets:       input.Tickets,
		TotalAmount:   event.Price * float64(input.Tickets),
		PaymentStatus: constants.PAYMENT_PENDING,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return s.bookings.FindByID(ctx, booking.ID)
}

// CreateIntent opens a charge at the gateway for the booking's snapshotted
// amount. No local state changes.
func (s *BookingService) CreateIntent(ctx context.Context, userID uint, isAdmin bool, bookingID uint) (*PaymentIntent, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.BOOKING_NOT_FOUND)
	}
	if booking.UserId != userID && !isAdmin {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, constants.NOT_AUTHORIZED)
	}
	if booking.PaymentStatus == constants.PAYMENT_COMPLETED {
		return nil, fmt.Errorf("%w: %s", ErrConflict, constants.ALREADY_PAID)
	}

	amountCents := int64(booking.TotalAmount*100 + 0.5)
	intent, err := s.gateway.CreateIntent(ctx, amountCents, map[string]string{
		"bookingId": strconv.FormatUint(uint64(booking.ID), 10),
		"userId":    strconv.FormatUint(uint64(booking.UserId), 10),
		"eventId":   strconv.FormatUint(uint64(booking.EventId), 10),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return intent, nil
}

// Confirm verifies the intent with the gateway and settles the booking.
func (s *BookingService) Confirm(ctx context.Context, input model.ConfirmPaymentInput) (*model.Booking, error) {
	intent, err := s.gateway.RetrieveIntent(ctx, input.PaymentIntentId)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if intent.Status != IntentSucceeded {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, constants.PAYMENT_NOT_COMPLETED)
	}

	booking, err := s.bookings.FindByID(ctx, input.BookingId)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.BOOKING_NOT_FOUND)
	}
	return s.settle(ctx, booking, intent.ID)
}

// HandleGatewayEvent processes an already signature-verified webhook event.
// Settlement follows the same completed-state transition rule as Confirm, so
// a webhook firing after a direct confirm (or vice versa) is a no-op.
func (s *BookingService) HandleGatewayEvent(ctx context.Context, ev *GatewayEvent) error {
	if ev.Type != GatewayPaymentSucceeded {
		return nil
	}
	id, err := strconv.ParseUint(ev.Metadata["bookingId"], 10, 32)
	if err != nil {
		return fmt.Errorf("%w: webhook event carries no booking id", ErrInvalid)
	}
	booking, err := s.bookings.FindByID(ctx, uint(id))
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, constants.BOOKING_NOT_FOUND)
	}
	_, err = s.settle(ctx, booking, ev.IntentID)
	return err
}

// UpdatePaymentStatus transitions a pending booking to a terminal state.
// "completed" goes through the same settle path as Confirm.
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, userID uint, isAdmin bool, bookingID uint, input model.UpdatePaymentInput) (*model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.BOOKING_NOT_FOUND)
	}
	if booking.UserId != userID && !isAdmin {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, constants.NOT_AUTHORIZED)
	}
	if booking.PaymentStatus != constants.PAYMENT_PENDING {
		return nil, fmt.Errorf("%w: booking already %s", ErrConflict, booking.PaymentStatus)
	}

	if input.PaymentStatus == constants.PAYMENT_COMPLETED {
		return s.settle(ctx, booking, input.PaymentIntentId)
	}

	if err := s.bookings.SetStatus(ctx, booking.ID, input.PaymentStatus, input.PaymentIntentId); err != nil {
		return nil, err
	}
	return s.bookings.FindByID(ctx, booking.ID)
}

// settle is the single place a booking becomes completed and inventory moves.
// The decrement is conditional at the storage layer, so two settlements racing
// on the last tickets cannot oversell; the booking-status flip is conditional
// too, so the same booking can never be settled (or decremented) twice.
func (s *BookingService) settle(ctx context.Context, booking *model.Booking, intentID string) (*model.Booking, error) {
	if booking.PaymentStatus != constants.PAYMENT_PENDING {
		return nil, fmt.Errorf("%w: %s", ErrConflict, constants.ALREADY_PAID)
	}

	remaining, err := s.events.DecrementAvailable(ctx, booking.EventId, booking.Tickets)
	if err != nil {
		return nil, err
	}

	ok, err := s.bookings.MarkCompleted(ctx, booking.ID, intentID)
	if err != nil {
		if restoreErr := s.events.RestoreAvailable(ctx, booking.EventId, booking.Tickets); restoreErr != nil {
			log.Printf("failed to restore %d tickets for event %d: %v", booking.Tickets, booking.EventId, restoreErr)
		}
		return nil, err
	}
	if !ok {
		// Lost the race against another settlement of the same booking; give
		// the tickets back and report the duplicate.
		if restoreErr := s.events.RestoreAvailable(ctx, booking.EventId, booking.Tickets); restoreErr != nil {
			log.Printf("failed to restore %d tickets for event %d: %v", booking.Tickets, booking.EventId, restoreErr)
		}
		return nil, fmt.Errorf("%w: %s", ErrConflict, constants.ALREADY_PAID)
	}

	if s.publish != nil {
		s.publish(booking.EventId, remaining)
	}

	settled, err := s.bookings.FindByID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	s.mailer.SendBookingConfirmation(settled)
	return settled, nil
}

// SendReminder emails the event reminder for a booking, at most once.
func (s *BookingService) SendReminder(ctx context.Context, userID uint, isAdmin bool, bookingID uint) error {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, constants.BOOKING_NOT_FOUND)
	}
	if booking.UserId != userID && !isAdmin {
		return fmt.Errorf("%w: %s", ErrUnauthorized, constants.NOT_AUTHORIZED)
	}
	if booking.ReminderSent {
		return fmt.Errorf("%w: %s", ErrConflict, constants.REMINDER_ALREADY_SENT)
	}

	s.mailer.SendEventReminder(booking)
	return s.bookings.SetReminderSent(ctx, booking.ID)
}

// ReminderSweep sends reminders for completed bookings whose event starts
// inside the window. Used by the daily scheduler; shares the reminderSent
// guard with the manual endpoint.
func (s *BookingService) ReminderSweep(ctx context.Context, from, to time.Time) (int, error) {
	due, err := s.bookings.FindDueReminders(ctx, from, to)
	if err != nil {
		return 0, err
	}
	sent := 0
	for i := range due {
		booking := &due[i]
		if err := s.bookings.SetReminderSent(ctx, booking.ID); err != nil {
			log.Printf("reminder sweep: failed to flag booking %d: %v", booking.ID, err)
			continue
		}
		s.mailer.SendEventReminder(booking)
		sent++
	}
	return sent, nil
}
