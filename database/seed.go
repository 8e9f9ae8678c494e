package database

import (
	"event_ticketing/config"
	"event_ticketing/constants"
	"event_ticketing/model"
	"log"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

func SeedData(db *gorm.DB) {
	password := config.ConfigDefault("ADMIN_PASSWORD", "admin123")
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("failed to hash seed admin password:", err)
		return
	}

	admin := model.User{
		Name:     "Administrator",
		Email:    config.ConfigDefault("ADMIN_EMAIL", "admin@example.com"),
		Password: string(bytes),
		Role:     constants.ROLE_ADMIN,
	}
	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed admin user:", err)
		return
	}

	events := []model.Event{
		{
			Title:       "Summer Music Festival 2026",
			Description: "Join us for an amazing summer music festival featuring top artists from around the world. Experience live performances, food trucks, and an unforgettable atmosphere.",
			Category:    constants.CATEGORY_CONCERT,
			Date:        parseDate("2026-07-15"),
			Time:        "18:00",
			Venue: model.Venue{
				Name:    "Central Park Amphitheater",
				Address: "123 Park Avenue",
				City:    "New York",
			},
			TotalTickets:     5000,
			AvailableTickets: 5000,
			Price:            75.00,
			Organizer:        "Music Events Inc.",
			Status:           constants.EVENT_ACTIVE,
		},
		{
			Title:       "Tech Innovation Conference 2026",
			Description: "A premier technology conference bringing together industry leaders, innovators, and entrepreneurs. Learn about the latest trends in AI, blockchain, and cloud computing.",
			Category:    constants.CATEGORY_CONFERENCE,
			Date:        parseDate("2026-08-20"),
			Time:        "09:00",
			Venue: model.Venue{
				Name:    "Convention Center",
				Address: "456 Tech Boulevard",
				City:    "San Francisco",
			},
			TotalTickets:     800,
			AvailableTickets: 800,
			Price:            120.00,
			Organizer:        "TechWorld Group",
			Status:           constants.EVENT_ACTIVE,
		},
		{
			Title:       "City Marathon 2026",
			Description: "Annual city marathon open to runners of all levels. Route passes the city's most famous landmarks, with live bands and cheering stations along the way.",
			Category:    constants.CATEGORY_SPORTS,
			Date:        parseDate("2026-10-04"),
			Time:        "07:00",
			Venue: model.Venue{
				Name:    "Riverside Stadium",
				Address: "789 River Road",
				City:    "Chicago",
			},
			TotalTickets:     2000,
			AvailableTickets: 2000,
			Price:            40.00,
			Organizer:        "City Sports Council",
			Status:           constants.EVENT_ACTIVE,
		},
	}

	for _, event := range events {
		event.Slug = slug.Make(event.Title)
		event.CreatedById = admin.ID
		if err := db.Where(model.Event{Slug: event.Slug}).FirstOrCreate(&event).Error; err != nil {
			log.Println("failed to seed event:", event.Title, "error:", err)
		}
	}
}
