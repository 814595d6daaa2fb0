package controllers

import (
	"github.com/gofiber/fiber/v2"

	"project/backend/middleware"
	"project/backend/services"
	"project/backend/utils"
)

type EventController struct {
	Events *services.EventService
}

func NewEventController(events *services.EventService) *EventController {
	return &EventController{Events: events}
}

// LogEvent handles POST /api/events.
func (ec *EventController) LogEvent(c *fiber.Ctx) error {
	type EventInput struct {
		UserID    string            `json:"user_id"`
		EventType string            `json:"event_type"`
		CourseID  string            `json:"course_id"`
		Metadata  map[string]string `json:"metadata"`
	}

	var input EventInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if userID := middleware.UserID(c); userID != "" {
		input.UserID = userID
	}

	ev, err := ec.Events.Log(input.UserID, input.EventType, input.CourseID, input.Metadata)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Created(c, ev)
}

// ListUserEvents handles GET /api/events/user/:id.
func (ec *EventController) ListUserEvents(c *fiber.Ctx) error {
	events, err := ec.Events.ListByUser(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, events)
}

// ListEventsByType handles GET /api/events/type/:type.
func (ec *EventController) ListEventsByType(c *fiber.Ctx) error {
	events, err := ec.Events.ListByType(c.Params("type"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, events)
}
