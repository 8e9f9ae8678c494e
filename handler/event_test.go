package handler

import (
	"testing"
	"time"

	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEventEdits(t *testing.T) {
	event := &model.Event{
		Title:            "Old Title",
		Description:      "Old description",
		Category:         "concert",
		Date:             time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		Time:             "18:00",
		Venue:            model.Venue{Name: "Old Hall", Address: "1 Old St", City: "Oldtown"},
		TotalTickets:     100,
		AvailableTickets: 80,
		Price:            50,
	}

	input := model.EditEventInput{
		Title: "New Title",
		Date:  "2026-09-01",
		Price: utils.Ptr(75.0),
		Venue: &model.Venue{Name: "New Hall", Address: "2 New St", City: "Newtown"},
	}
	require.NoError(t, applyEventEdits(event, input))

	assert.Equal(t, "New Title", event.Title)
	assert.Equal(t, "Old description", event.Description)
	assert.Equal(t, "concert", event.Category)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), event.Date)
	assert.Equal(t, 75.0, event.Price)
	assert.Equal(t, "New Hall", event.Venue.Name)

	// Inventory fields are never editable through this path.
	assert.Equal(t, 100, event.TotalTickets)
	assert.Equal(t, 80, event.AvailableTickets)
}

func TestApplyEventEditsBadDate(t *testing.T) {
	event := &model.Event{Title: "Concert"}
	err := applyEventEdits(event, model.EditEventInput{Date: "09/01/2026"})
	assert.Error(t, err)
}
