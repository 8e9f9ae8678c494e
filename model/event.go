package model

import "time"

type Venue struct {
	Name    string `gorm:"not null" validate:"required" json:"name"`
	Address string `gorm:"not null" validate:"required" json:"address"`
	City    string `gorm:"not null" validate:"required" json:"city"`
}

type Event struct {
	DTO
	Title       string    `gorm:"not null;index" json:"title"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `gorm:"not null;type:text" json:"description"`
	Category    string    `gorm:"not null;index" json:"category"` // concert | conference | workshop | sports | theater | other
	Date        time.Time `gorm:"not null;index" json:"date"`
	Time        string    `gorm:"not null" json:"time"`
	Venue       Venue     `gorm:"embedded;embeddedPrefix:venue_" json:"venue"`

	// TotalTickets is fixed at creation; AvailableTickets only moves through
	// the conditional decrement on payment settle.
	TotalTickets     int     `gorm:"not null" json:"totalTickets"`
	AvailableTickets int     `gorm:"not null" json:"availableTickets"`
	Price            float64 `gorm:"not null" json:"price"`

	Image     string `json:"image"`
	Organizer string `gorm:"not null" json:"organizer"`
	Status    string `gorm:"not null;default:active;index" json:"status"` // active | cancelled | completed

	CreatedById uint  `gorm:"not null" json:"createdById"`
	CreatedBy   *User `gorm:"foreignKey:CreatedById" json:"createdBy,omitempty"`
}

type CreateEventInput struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	Category     string  `json:"category" validate:"required,oneof=concert conference workshop sports theater other"`
	Date         string  `json:"date" validate:"required"` // 2006-01-02
	Time         string  `json:"time" validate:"required"`
	Venue        Venue   `json:"venue" validate:"required"`
	TotalTickets int     `json:"totalTickets" validate:"required,min=1"`
	Price        float64 `json:"price" validate:"min=0"`
	Image        string  `json:"image" validate:"omitempty,url"`
	Organizer    string  `json:"organizer" validate:"required"`
}

type EditEventInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"omitempty,oneof=concert conference workshop sports theater other"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Venue       *Venue  `json:"venue"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Organizer   string  `json:"organizer"`
	Status      string  `json:"status" validate:"omitempty,oneof=active cancelled completed"`
}
