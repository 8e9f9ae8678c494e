package repository

import (
	"context"
	"errors"
	"time"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/model"

	"gorm.io/gorm"
)

type BookingRepository struct{}

func (BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return database.DB.WithContext(ctx).Create(booking).Error
}

func (BookingRepository) FindByID(ctx context.Context, id uint) (*model.Booking, error) {
	var booking model.Booking
	err := database.DB.WithContext(ctx).
		Preload("Event").
		Preload("User").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// MarkCompleted only fires for bookings still pending; RowsAffected tells the
// caller whether it won the transition.
func (BookingRepository) MarkCompleted(ctx context.Context, id uint, intentID string) (bool, error) {
	res := database.DB.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND payment_status = ?", id, constants.PAYMENT_PENDING).
		Updates(map[string]any{
			"payment_status":    constants.PAYMENT_COMPLETED,
			"payment_intent_id": intentID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (BookingRepository) SetStatus(ctx context.Context, id uint, status, intentID string) error {
	updates := map[string]any{"payment_status": status}
	if intentID != "" {
		updates["payment_intent_id"] = intentID
	}
	return database.DB.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (BookingRepository) SetReminderSent(ctx context.Context, id uint) error {
	return database.DB.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}

func (BookingRepository) FindDueReminders(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := database.DB.WithContext(ctx).
		Preload("Event").
		Preload("User").
		Joins("JOIN events ON events.id = bookings.event_id").
		Where("bookings.payment_status = ? AND bookings.reminder_sent = false", constants.PAYMENT_COMPLETED).
		Where("events.date BETWEEN ? AND ?", from, to).
		Find(&bookings).Error
	return bookings, err
}
