package models

import "time"

// NotificationPreferences holds one user's delivery settings and quiet hours.
type NotificationPreferences struct {
	UserID            string    `json:"user_id"`
	EmailEnabled      bool      `json:"email_enabled"`
	PushEnabled       bool      `json:"push_enabled"`
	InAppEnabled      bool      `json:"in_app_enabled"`
	QuietHoursEnabled bool      `json:"quiet_hours_enabled"`
	QuietStart        string    `json:"quiet_start,omitempty"` // "HH:MM"
	QuietEnd          string    `json:"quiet_end,omitempty"`   // "HH:MM"
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultNotificationPreferences returns the settings a user starts with.
func DefaultNotificationPreferences(userID string) NotificationPreferences {
	return NotificationPreferences{
		UserID:       userID,
		EmailEnabled: true,
		PushEnabled:  true,
		InAppEnabled: true,
	}
}
