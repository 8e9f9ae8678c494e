package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"event_ticketing/constants"
	"event_ticketing/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEventStore struct {
	findByID           func(ctx context.Context, id uint) (*model.Event, error)
	decrementAvailable func(ctx context.Context, eventID uint, tickets int) (int, error)
	restoreAvailable   func(ctx context.Context, eventID uint, tickets int) error
}

func (m *mockEventStore) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	return m.findByID(ctx, id)
}

func (m *mockEventStore) DecrementAvailable(ctx context.Context, eventID uint, tickets int) (int, error) {
	return m.decrementAvailable(ctx, eventID, tickets)
}

func (m *mockEventStore) RestoreAvailable(ctx context.Context, eventID uint, tickets int) error {
	return m.restoreAvailable(ctx, eventID, tickets)
}

type mockBookingStore struct {
	create           func(ctx context.Context, booking *model.Booking) error
	findByID         func(ctx context.Context, id uint) (*model.Booking, error)
	markCompleted    func(ctx context.Context, id uint, intentID string) (bool, error)
	setStatus        func(ctx context.Context, id uint, status, intentID string) error
	setReminderSent  func(ctx context.Context, id uint) error
	findDueReminders func(ctx context.Context, from, to time.Time) ([]model.Booking, error)
}

func (m *mockBookingStore) Create(ctx context.Context, booking *model.Booking) error {
	return m.create(ctx, booking)
}

func (m *mockBookingStore) FindByID(ctx context.Context, id uint) (*model.Booking, error) {
	return m.findByID(ctx, id)
}

func (m *mockBookingStore) MarkCompleted(ctx context.Context, id uint, intentID string) (bool, error) {
	return m.markCompleted(ctx, id, intentID)
}

func (m *mockBookingStore) SetStatus(ctx context.Context, id uint, status, intentID string) error {
	return m.setStatus(ctx, id, status, intentID)
}

func (m *mockBookingStore) SetReminderSent(ctx context.Context, id uint) error {
	return m.setReminderSent(ctx, id)
}

func (m *mockBookingStore) FindDueReminders(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	return m.findDueReminders(ctx, from, to)
}

type mockGateway struct {
	createIntent   func(ctx context.Context, amountCents int64, metadata map[string]string) (*PaymentIntent, error)
	retrieveIntent func(ctx context.Context, id string) (*PaymentIntent, error)
}

func (m *mockGateway) CreateIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*PaymentIntent, error) {
	return m.createIntent(ctx, amountCents, metadata)
}

func (m *mockGateway) RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	return m.retrieveIntent(ctx, id)
}

type mockMailer struct {
	confirmations int
	reminders     int
}

func (m *mockMailer) SendBookingConfirmation(*model.Booking) { m.confirmations++ }

func (m *mockMailer) SendEventReminder(*model.Booking) { m.reminders++ }

func activeEvent() *model.Event {
	return &model.Event{
		DTO:              model.DTO{ID: 5},
		Title:            "Go Conference",
		Status:           constants.EVENT_ACTIVE,
		TotalTickets:     10,
		AvailableTickets: 10,
		Price:            50,
	}
}

func pendingBooking() *model.Booking {
	return &model.Booking{
		DTO:           model.DTO{ID: 1},
		PublicCode:    "BKG-abc12345",
		UserId:        7,
		EventId:       5,
		Tickets:       3,
		TotalAmount:   150,
		PaymentStatus: constants.PAYMENT_PENDING,
	}
}

func TestCreateBookingSnapshotsAmount(t *testing.T) {
	var created *model.Booking
	events := &mockEventStore{
		findByID: func(ctx context.Context, id uint) (*model.Event, error) {
			return activeEvent(), nil
		},
	}
	bookings := &mockBookingStore{
		create: func(ctx context.Context, booking *model.Booking) error {
			booking.ID = 1
			created = booking
			return nil
		},
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return created, nil
		},
	}
	svc := NewBookingService(events, bookings, &mockGateway{}, &mockMailer{}, nil)

	booking, err := svc.Create(context.Background(), 7, model.CreateBookingInput{EventId: 5, Tickets: 3})
	require.NoError(t, err)
	assert.Equal(t, 150.0, booking.TotalAmount)
	assert.Equal(t, constants.PAYMENT_PENDING, booking.PaymentStatus)
	assert.Equal(t, 3, booking.Tickets)
	assert.Regexp(t, `^BKG-[0-9a-f-]{8}$`, booking.PublicCode)
}

func TestCreateBookingRejectsOverAvailability(t *testing.T) {
	events := &mockEventStore{
		findByID: func(ctx context.Context, id uint) (*model.Event, error) {
			event := activeEvent()
			event.AvailableTickets = 2
			return event, nil
		},
	}
	bookings := &mockBookingStore{
		create: func(ctx context.Context, booking *model.Booking) error {
			t.Fatal("no booking should be created")
			return nil
		},
	}
	svc := NewBookingService(events, bookings, &mockGateway{}, &mockMailer{}, nil)

	_, err := svc.Create(context.Background(), 7, model.CreateBookingInput{EventId: 5, Tickets: 3})
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "only 2 tickets available")
}

func TestCreateBookingRejectsInactiveEvent(t *testing.T) {
	events := &mockEventStore{
		findByID: func(ctx context.Context, id uint) (*model.Event, error) {
			event := activeEvent()
			event.Status = constants.EVENT_CANCELLED
			return event, nil
		},
	}
	svc := NewBookingService(events, &mockBookingStore{}, &mockGateway{}, &mockMailer{}, nil)

	_, err := svc.Create(context.Background(), 7, model.CreateBookingInput{EventId: 5, Tickets: 1})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestCreateBookingUnknownEvent(t *testing.T) {
	events := &mockEventStore{
		findByID: func(ctx context.Context, id uint) (*model.Event, error) {
			return nil, nil
		},
	}
	svc := NewBookingService(events, &mockBookingStore{}, &mockGateway{}, &mockMailer{}, nil)

	_, err := svc.Create(context.Background(), 7, model.CreateBookingInput{EventId: 99, Tickets: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateIntentChargesCentsWithMetadata(t *testing.T) {
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return pendingBooking(), nil
		},
	}
	var gotCents int64
	var gotMetadata map[string]string
	gw := &mockGateway{
		createIntent: func(ctx context.Context, amountCents int64, metadata map[string]string) (*PaymentIntent, error) {
			gotCents = amountCents
			gotMetadata = metadata
			return &PaymentIntent{ID: "pi_1", ClientSecret: "cs_1"}, nil
		},
	}
	svc := NewBookingService(&mockEventStore{}, bookings, gw, &mockMailer{}, nil)

	intent, err := svc.CreateIntent(context.Background(), 7, false, 1)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, int64(15000), gotCents)
	assert.Equal(t, map[string]string{"bookingId": "1", "userId": "7", "eventId": "5"}, gotMetadata)
}

func TestCreateIntentRejectsPaidBooking(t *testing.T) {
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			booking := pendingBooking()
			booking.PaymentStatus = constants.PAYMENT_COMPLETED
			return booking, nil
		},
	}
	svc := NewBookingService(&mockEventStore{}, bookings, &mockGateway{}, &mockMailer{}, nil)

	_, err := svc.CreateIntent(context.Background(), 7, false, 1)
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateIntentRejectsForeignBooking(t *testing.T) {
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return pendingBooking(), nil
		},
	}
	svc := NewBookingService(&mockEventStore{}, bookings, &mockGateway{}, &mockMailer{}, nil)

	_, err := svc.CreateIntent(context.Background(), 42, false, 1)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateIntentWrapsGatewayFailure(t *testing.T) {
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return pendingBooking(), nil
		},
	}
	gw := &mockGateway{
		createIntent: func(ctx context.Context, amountCents int64, metadata map[string]string) (*PaymentIntent, error) {
			return nil, errors.New("stripe is down")
		},
	}
	svc := NewBookingService(&mockEventStore{}, bookings, gw, &mockMailer{}, nil)

	_, err := svc.CreateIntent(context.Background(), 7, false, 1)
	require.ErrorIs(t, err, ErrUpstream)
}

func TestConfirmSettlesBooking(t *testing.T) {
	state := pendingBooking()
	events := &mockEventStore{
		decrementAvailable: func(ctx context.Context, eventID uint, tickets int) (int, error) {
			assert.Equal(t, uint(5), eventID)
			assert.Equal(t, 3, tickets)
			return 7, nil
		},
	}
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return state, nil
		},
		markCompleted: func(ctx context.Context, id uint, intentID string) (bool, error) {
			state.PaymentStatus = constants.PAYMENT_COMPLETED
			state.PaymentIntentId = intentID
			return true, nil
		},
	}
	gw := &mockGateway{
		retrieveIntent: func(ctx context.Context, id string) (*PaymentIntent, error) {
			return &PaymentIntent{ID: id, Status: IntentSucceeded}, nil
		},
	}
	mailer := &mockMailer{}
	var publishedEvent uint
	var publishedCount int
	svc := NewBookingService(events, bookings, gw, mailer, func(eventID uint, available int) {
		publishedEvent = eventID
		publishedCount = available
	})

	booking, err := svc.Confirm(context.Background(), model.ConfirmPaymentInput{PaymentIntentId: "pi_1", BookingId: 1})
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_COMPLETED, booking.PaymentStatus)
	assert.Equal(t, "pi_1", booking.PaymentIntentId)
	assert.Equal(t, 1, mailer.confirmations)
	assert.Equal(t, uint(5), publishedEvent)
	assert.Equal(t, 7, publishedCount)
}

func TestConfirmRejectsUnpaidIntent(t *testing.T) {
	gw := &mockGateway{
		retrieveIntent: func(ctx context.Context, id string) (*PaymentIntent, error) {
			return &PaymentIntent{ID: id, Status: "requires_payment_method"}, nil
		},
	}
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			t.Fatal("booking must not be touched before the intent is verified")
			return nil, nil
		},
	}
	svc := NewBookingService(&mockEventStore{}, bookings, gw, &mockMailer{}, nil)

	_, err := svc.Confirm(context.Background(), model.ConfirmPaymentInput{PaymentIntentId: "pi_1", BookingId: 1})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestConfirmTwiceDoesNotDecrementAgain(t *testing.T) {
	state := pendingBooking()
	state.PaymentStatus = constants.PAYMENT_COMPLETED
	events := &mockEventStore{
		decrementAvailable: func(ctx context.Context, eventID uint, tickets int) (int, error) {
			t.Fatal("inventory must not move for an already-completed booking")
			return 0, nil
		},
	}
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return state, nil
		},
	}
	gw := &mockGateway{
		retrieveIntent: func(ctx context.Context, id string) (*PaymentIntent, error) {
			return &PaymentIntent{ID: id, Status: IntentSucceeded}, nil
		},
	}
	svc := NewBookingService(events, bookings, gw, &mockMailer{}, nil)

	_, err := svc.Confirm(context.Background(), model.ConfirmPaymentInput{PaymentIntentId: "pi_1", BookingId: 1})
	require.ErrorIs(t, err, ErrConflict)
}

func TestSettleSoldOutLeavesBookingPending(t *testing.T) {
	events := &mockEventStore{
		decrementAvailable: func(ctx context.Context, eventID uint, tickets int) (int, error) {
			return 0, ErrSoldOut
		},
	}
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return pendingBooking(), nil
		},
		markCompleted: func(ctx context.Context, id uint, intentID string) (bool, error) {
			t.Fatal("booking must stay pending when the decrement fails")
			return false, nil
		},
	}
	gw := &mockGateway{
		retrieveIntent: func(ctx context.Context, id string) (*PaymentIntent, error) {
			return &PaymentIntent{ID: id, Status: IntentSucceeded}, nil
		},
	}
	svc := NewBookingService(events, bookings, gw, &mockMailer{}, nil)

	_, err := svc.Confirm(context.Background(), model.ConfirmPaymentInput{PaymentIntentId: "pi_1", BookingId: 1})
	require.ErrorIs(t, err, ErrSoldOut)
}

func TestSettleRestoresTicketsWhenLosingTheRace(t *testing.T) {
	restored := 0
	events := &mockEventStore{
		decrementAvailable: func(ctx context.Context, eventID uint, tickets int) (int, error) {
			return 7, nil
		},
		restoreAvailable: func(ctx context.Context, eventID uint, tickets int) error {
			restored += tickets
			return nil
		},
	}
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return pendingBooking(), nil
		},
		markCompleted: func(ctx context.Context, id uint, intentID string) (bool, error) {
			// Another settlement got there first.
			return false, nil
		},
	}
	gw := &mockGateway{
		retrieveIntent: func(ctx context.Context, id string) (*PaymentIntent, error) {
			return &PaymentIntent{ID: id, Status: IntentSucceeded}, nil
		},
	}
	mailer := &mockMailer{}
	svc := NewBookingService(events, bookings, gw, mailer, nil)

	_, err := svc.Confirm(context.Background(), model.ConfirmPaymentInput{PaymentIntentId: "pi_1", BookingId: 1})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 3, restored)
	assert.Zero(t, mailer.confirmations)
}

func TestHandleGatewayEventIgnoresOtherTypes(t *testing.T) {
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			t.Fatal("unrelated event types must be ignored")
			return nil, nil
		},
	}
	svc := NewBookingService(&mockEventStore{}, bookings, &mockGateway{}, &mockMailer{}, nil)

	err := svc.HandleGatewayEvent(context.Background(), &GatewayEvent{Type: "payment_intent.created"})
	require.NoError(t, err)
}

func TestHandleGatewayEventSettles(t *testing.T) {
	state := pendingBooking()
	events := &mockEventStore{
		decrementAvailable: func(ctx context.Context, eventID uint, tickets int) (int, error) {
			return 7, nil
		},
	}
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return state, nil
		},
		markCompleted: func(ctx context.Context, id uint, intentID string) (bool, error) {
			state.PaymentStatus = constants.PAYMENT_COMPLETED
			state.PaymentIntentId = intentID
			return true, nil
		},
	}
	mailer := &mockMailer{}
	svc := NewBookingService(events, bookings, &mockGateway{}, mailer, nil)

	err := svc.HandleGatewayEvent(context.Background(), &GatewayEvent{
		Type:     GatewayPaymentSucceeded,
		IntentID: "pi_hook",
		Metadata: map[string]string{"bookingId": "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_COMPLETED, state.PaymentStatus)
	assert.Equal(t, "pi_hook", state.PaymentIntentId)
	assert.Equal(t, 1, mailer.confirmations)
}

func TestHandleGatewayEventMissingBookingId(t *testing.T) {
	svc := NewBookingService(&mockEventStore{}, &mockBookingStore{}, &mockGateway{}, &mockMailer{}, nil)

	err := svc.HandleGatewayEvent(context.Background(), &GatewayEvent{
		Type:     GatewayPaymentSucceeded,
		IntentID: "pi_hook",
		Metadata: map[string]string{},
	})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestUpdatePaymentStatusFailed(t *testing.T) {
	state := pendingBooking()
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return state, nil
		},
		setStatus: func(ctx context.Context, id uint, status, intentID string) error {
			state.PaymentStatus = status
			return nil
		},
	}
	svc := NewBookingService(&mockEventStore{}, bookings, &mockGateway{}, &mockMailer{}, nil)

	booking, err := svc.UpdatePaymentStatus(context.Background(), 7, false, 1, model.UpdatePaymentInput{PaymentStatus: constants.PAYMENT_FAILED})
	require.NoError(t, err)
	assert.Equal(t, constants.PAYMENT_FAILED, booking.PaymentStatus)
}

func TestUpdatePaymentStatusTerminalGuard(t *testing.T) {
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			booking := pendingBooking()
			booking.PaymentStatus = constants.PAYMENT_REFUNDED
			return booking, nil
		},
	}
	svc := NewBookingService(&mockEventStore{}, bookings, &mockGateway{}, &mockMailer{}, nil)

	_, err := svc.UpdatePaymentStatus(context.Background(), 7, false, 1, model.UpdatePaymentInput{PaymentStatus: constants.PAYMENT_FAILED})
	require.ErrorIs(t, err, ErrConflict)
}

func TestSendReminderOnlyOnce(t *testing.T) {
	state := pendingBooking()
	state.PaymentStatus = constants.PAYMENT_COMPLETED
	flagged := false
	bookings := &mockBookingStore{
		findByID: func(ctx context.Context, id uint) (*model.Booking, error) {
			return state, nil
		},
		setReminderSent: func(ctx context.Context, id uint) error {
			flagged = true
			state.ReminderSent = true
			return nil
		},
	}
	mailer := &mockMailer{}
	svc := NewBookingService(&mockEventStore{}, bookings, &mockGateway{}, mailer, nil)

	require.NoError(t, svc.SendReminder(context.Background(), 7, false, 1))
	assert.True(t, flagged)
	assert.Equal(t, 1, mailer.reminders)

	err := svc.SendReminder(context.Background(), 7, false, 1)
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, mailer.reminders)
}

func TestReminderSweep(t *testing.T) {
	due := []model.Booking{
		{DTO: model.DTO{ID: 1}, PaymentStatus: constants.PAYMENT_COMPLETED},
		{DTO: model.DTO{ID: 2}, PaymentStatus: constants.PAYMENT_COMPLETED},
	}
	flagged := map[uint]bool{}
	bookings := &mockBookingStore{
		findDueReminders: func(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
			return due, nil
		},
		setReminderSent: func(ctx context.Context, id uint) error {
			if id == 2 {
				return errors.New("flag failed")
			}
			flagged[id] = true
			return nil
		},
	}
	mailer := &mockMailer{}
	svc := NewBookingService(&mockEventStore{}, bookings, &mockGateway{}, mailer, nil)

	now := time.Now()
	sent, err := svc.ReminderSweep(context.Background(), now, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, mailer.reminders)
	assert.True(t, flagged[1])
}
