package constants

const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"
)

// Event categories
const (
	CATEGORY_CONCERT    = "concert"
	CATEGORY_CONFERENCE = "conference"
	CATEGORY_WORKSHOP   = "workshop"
	CATEGORY_SPORTS     = "sports"
	CATEGORY_THEATER    = "theater"
	CATEGORY_OTHER      = "other"
)

// Event statuses
const (
	EVENT_ACTIVE    = "active"
	EVENT_CANCELLED = "cancelled"
	EVENT_COMPLETED = "completed"
)

// Booking payment statuses. pending is the only non-terminal state.
const (
	PAYMENT_PENDING   = "pending"
	PAYMENT_COMPLETED = "completed"
	PAYMENT_FAILED    = "failed"
	PAYMENT_REFUNDED  = "refunded"
)

// Response messages
const (
	ERROR_INTERNAL_ERROR       = "Something went wrong"
	ERROR_PARSE_DATA_TO_LOCALS = "Failed to read validated input"
	MISSING_LOGIN_INPUT        = "Please provide email and password"
	MISSING_REGISTER_INPUT     = "Please provide name, email, and password"
	INVALID_CREDENTIALS        = "Invalid credentials"
	INVALID_ADMIN_KEY          = "Invalid admin registration key"
	EMAIL_ALREADY_REGISTERED   = "User already exists with this email"
	NOT_ADMIN                  = "Admin access required"
	NOT_AUTHORIZED             = "Not authorized"
	EVENT_NOT_FOUND            = "Event not found"
	BOOKING_NOT_FOUND          = "Booking not found"
	USER_NOT_FOUND             = "User not found"
	EVENT_NOT_ACTIVE           = "Event is not available for booking"
	ALREADY_PAID               = "Already paid"
	REMINDER_ALREADY_SENT      = "Reminder already sent"
	SOLD_OUT                   = "Not enough tickets available"
	PAYMENT_NOT_COMPLETED      = "Payment has not been completed"
)
