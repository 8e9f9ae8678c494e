package helper

import (
	"context"
	"log"
	"time"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/model"
	"event_ticketing/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var eventScheduler *cron.Cron

// StartEventStatusScheduler completes past events every hour.
func StartEventStatusScheduler() {
	eventScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := eventScheduler.AddFunc("@hourly", CompletePastEvents)
	if err != nil {
		log.Printf("failed to start event status scheduler: %v", err)
		return
	}

	eventScheduler.Start()
	log.Println("event status scheduler started (hourly)")
}

func StopEventStatusScheduler() {
	if eventScheduler != nil {
		eventScheduler.Stop()
	}
}

func CompletePastEvents() {
	cutoff := time.Now().Truncate(24 * time.Hour)
	res := database.DB.Model(&model.Event{}).
		Where("status = ? AND date < ?", constants.EVENT_ACTIVE, cutoff).
		Update("status", constants.EVENT_COMPLETED)
	if res.Error != nil {
		log.Printf("failed to complete past events: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("marked %d past events completed", res.RowsAffected)
	}
}

var reminderScheduler gocron.Scheduler

// StartReminderScheduler runs the daily reminder sweep for events starting
// within the next 24 hours.
func StartReminderScheduler(bookings *service.BookingService) {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("failed to create reminder scheduler: %v", err)
		return
	}
	reminderScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(9, 0, 0),
			),
		),
		gocron.NewTask(func() {
			now := time.Now()
			sent, err := bookings.ReminderSweep(context.Background(), now, now.Add(24*time.Hour))
			if err != nil {
				log.Printf("reminder sweep failed: %v", err)
				return
			}
			if sent > 0 {
				log.Printf("reminder sweep sent %d reminders", sent)
			}
		}),
	)
	if err != nil {
		log.Printf("failed to schedule reminder sweep: %v", err)
		return
	}

	s.Start()
	log.Println("reminder scheduler started (daily 09:00)")
}

func StopReminderScheduler() {
	if reminderScheduler != nil {
		_ = reminderScheduler.Shutdown()
	}
}
