package controllers

import (
	"github.com/gofiber/fiber/v2"

	"project/backend/middleware"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

// GetPreferences handles GET /api/notifications/preferences.
func (nc *NotificationController) GetPreferences(c *fiber.Ctx) error {
	prefs, err := nc.Notifications.GetPreferences(middleware.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, prefs)
}

// UpdatePreferences handles PUT /api/notifications/preferences.
func (nc *NotificationController) UpdatePreferences(c *fiber.Ctx) error {
	var prefs models.NotificationPreferences
	if err := c.BodyParser(&prefs); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	prefs.UserID = middleware.UserID(c)

	if err := nc.Notifications.UpdatePreferences(&prefs); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, prefs)
}
