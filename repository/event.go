package repository

import (
	"context"
	"errors"

	"event_ticketing/database"
	"event_ticketing/model"
	"event_ticketing/service"

	"gorm.io/gorm"
)

type EventRepository struct{}

func (EventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	err := database.DB.WithContext(ctx).Preload("CreatedBy").First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// DecrementAvailable is the only write path for available_tickets on a sale.
// The WHERE clause makes the check-and-subtract atomic, so concurrent
// settlements on the same event cannot drive the counter negative.
func (EventRepository) DecrementAvailable(ctx context.Context, eventID uint, tickets int) (int, error) {
	var remaining int
	res := database.DB.WithContext(ctx).Raw(
		`UPDATE events
		 SET available_tickets = available_tickets - ?
		 WHERE id = ? AND available_tickets >= ?
		 RETURNING available_tickets`,
		tickets, eventID, tickets,
	).Scan(&remaining)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, service.ErrSoldOut
	}
	return remaining, nil
}

func (EventRepository) RestoreAvailable(ctx context.Context, eventID uint, tickets int) error {
	return database.DB.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", eventID).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets + ?", tickets)).Error
}
