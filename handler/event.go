package handler

import (
	"context"
	"strconv"
	"time"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/middleware"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

const eventListCacheKey = "events:active"

const eventListCacheTTL = 60 * time.Second

func invalidateEventCache() {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), eventListCacheKey)
}

// GetEvents lists events filtered by category, status, and a title or
// description search. The default active listing is served from Redis.
func GetEvents(c *fiber.Ctx) error {
	category := c.Query("category")
	search := c.Query("search")
	status := c.Query("status", constants.EVENT_ACTIVE)

	cacheable := category == "" && search == "" && status == constants.EVENT_ACTIVE &&
		c.Query("limit") == "" && database.Redis != nil

	if cacheable {
		if cached, err := database.Redis.Get(c.Context(), eventListCacheKey).Bytes(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}
	}

	query := database.DB.WithContext(c.Context()).Model(&model.Event{}).
		Preload("CreatedBy").
		Where("status = ?", status)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var limit, page *int
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = &v
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		page = &v
	}

	var events []model.Event
	if err := utils.ApplyPagination(query, limit, page).Order("date ASC").Find(&events).Error; err != nil {
		return err
	}

	if cacheable {
		if payload, err := c.App().Config().JSONEncoder(fiber.Map{
			"success": true,
			"count":   len(events),
			"data":    events,
		}); err == nil {
			database.Redis.Set(c.Context(), eventListCacheKey, payload, eventListCacheTTL)
		}
	}

	return utils.ListResponse(c, len(events), events)
}

// GetEvent accepts a numeric id or a slug.
func GetEvent(c *fiber.Ctx) error {
	param := c.Params("id")

	query := database.DB.WithContext(c.Context()).Preload("CreatedBy")
	var event model.Event
	if id, err := strconv.Atoi(param); err == nil {
		if err := query.First(&event, id).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND)
		}
	} else {
		if err := query.Where("slug = ?", param).First(&event).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func CreateEvent(c *fiber.Ctx) error {
	input, ok := c.Locals("createEventInput").(model.CreateEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}
	user := middleware.UserFromContext(c)

	date, _ := time.Parse("2006-01-02", input.Date)
	event := model.Event{
		Title:            input.Title,
		Slug:             helper.GenerateUniqueEventSlug(database.DB, input.Title),
		Description:      input.Description,
		Category:         input.Category,
		Date:             date,
		Time:             input.Time,
		Venue:            input.Venue,
		TotalTickets:     input.TotalTickets,
		AvailableTickets: input.TotalTickets,
		Price:            input.Price,
		Image:            input.Image,
		Organizer:        input.Organizer,
		Status:           constants.EVENT_ACTIVE,
		CreatedById:      user.ID,
	}

	if err := database.DB.WithContext(c.Context()).Create(&event).Error; err != nil {
		return err
	}

	invalidateEventCache()
	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

func findOwnedEvent(c *fiber.Ctx) (*model.Event, error) {
	id, _ := c.Locals("inputId").(uint)

	var event model.Event
	if err := database.DB.WithContext(c.Context()).First(&event, id).Error; err != nil {
		return nil, utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND)
	}

	user := middleware.UserFromContext(c)
	if event.CreatedById != user.ID && user.Role != constants.ROLE_ADMIN {
		return nil, utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_AUTHORIZED)
	}
	return &event, nil
}

// applyEventEdits merges the non-empty input fields onto the event. Date,
// price, and venue need explicit handling; totalTickets and availableTickets
// are never touched here, inventory only moves on settlement.
func applyEventEdits(event *model.Event, input model.EditEventInput) error {
	if err := copier.CopyWithOption(event, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return err
	}
	if input.Date != "" {
		date, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return err
		}
		event.Date = date
	}
	if input.Price != nil {
		event.Price = *input.Price
	}
	if input.Venue != nil {
		event.Venue = *input.Venue
	}
	return nil
}

// EditEvent updates the mutable fields of an owned event.
func EditEvent(c *fiber.Ctx) error {
	input, ok := c.Locals("editEventInput").(model.EditEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS)
	}

	event, err := findOwnedEvent(c)
	if event == nil {
		return err
	}

	if err := applyEventEdits(event, input); err != nil {
		return err
	}

	if err := database.DB.WithContext(c.Context()).Save(event).Error; err != nil {
		return err
	}

	invalidateEventCache()
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func DeleteEvent(c *fiber.Ctx) error {
	event, err := findOwnedEvent(c)
	if event == nil {
		return err
	}

	if err := database.DB.WithContext(c.Context()).Delete(event).Error; err != nil {
		return err
	}

	invalidateEventCache()
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event deleted successfully",
	})
}

// UploadEventImage stores the event image on Cloudinary and saves its URL.
// Accepts a multipart "image" file or a JSON body with a remote url.
func UploadEventImage(c *fiber.Ctx) error {
	event, err := findOwnedEvent(c)
	if event == nil {
		return err
	}

	var source interface{}
	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return err
		}
		defer file.Close()
		source = file
	} else {
		var input struct {
			URL string `json:"url" validate:"required,url"`
		}
		if err := c.BodyParser(&input); err != nil || input.URL == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Provide an image file or url")
		}
		source = input.URL
	}

	url, err := helper.UploadEventImage(c.Context(), source, event.Slug)
	if err != nil {
		return err
	}

	event.Image = url
	if err := database.DB.WithContext(c.Context()).Model(event).Update("image", url).Error; err != nil {
		return err
	}

	invalidateEventCache()
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}
