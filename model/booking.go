package model

type Booking struct {
	DTO
	PublicCode string `gorm:"uniqueIndex;size:20" json:"publicCode"` // BKG-XXXXXXXX
	UserId     uint   `gorm:"not null;index" json:"userId"`
	User       *User  `gorm:"foreignKey:UserId" json:"user,omitempty"`
	EventId    uint   `gorm:"not null;index" json:"eventId"`
	Event      *Event `gorm:"foreignKey:EventId" json:"event,omitempty"`

	Tickets int `gorm:"not null" json:"tickets"`

	// TotalAmount is snapshotted from price x tickets at creation time.
	TotalAmount float64 `gorm:"not null" json:"totalAmount"`

	// pending -> completed | failed | refunded. Terminal states are absorbing.
	PaymentStatus   string `gorm:"not null;default:pending;index" json:"paymentStatus"`
	PaymentIntentId string `json:"paymentIntentId"`

	ReminderSent bool `gorm:"not null;default:false" json:"reminderSent"`
}

type CreateBookingInput struct {
	EventId uint `json:"eventId" validate:"required"`
	Tickets int  `json:"tickets" validate:"required,min=1"`
}

type UpdatePaymentInput struct {
	PaymentStatus   string `json:"paymentStatus" validate:"required,oneof=completed failed refunded"`
	PaymentIntentId string `json:"paymentIntentId"`
}

type CreateIntentInput struct {
	BookingId uint `json:"bookingId" validate:"required"`
}

type ConfirmPaymentInput struct {
	PaymentIntentId string `json:"paymentIntentId" validate:"required"`
	BookingId       uint   `json:"bookingId" validate:"required"`
}
