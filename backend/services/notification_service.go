package services

import (
	"errors"
	"fmt"
	"time"

	"project/backend/models"
	"project/backend/store"
)

// NotificationService stores delivery preferences and quiet hours per user.
type NotificationService struct {
	prefs store.PreferenceStore
	now   func() time.Time
}

func NewNotificationService(prefs store.PreferenceStore) *NotificationService {
	return &NotificationService{prefs: prefs, now: time.Now}
}

// GetPreferences returns stored preferences, or the defaults for a user who
// never changed anything.
func (s *NotificationService) GetPreferences(userID string) (*models.NotificationPreferences, error) {
	prefs, err := s.prefs.GetPreferences(userID)
	if errors.Is(err, store.ErrNotFound) {
		defaults := models.DefaultNotificationPreferences(userID)
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *NotificationService) UpdatePreferences(prefs *models.NotificationPreferences) error {
	if prefs.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if prefs.QuietHoursEnabled {
		if _, err := time.Parse("15:04", prefs.QuietStart); err != nil {
			return fmt.Errorf("%w: quiet start must be HH:MM", ErrInvalidInput)
		}
		if _, err := time.Parse("15:04", prefs.QuietEnd); err != nil {
			return fmt.Errorf("%w: quiet end must be HH:MM", ErrInvalidInput)
		}
	}
	prefs.UpdatedAt = s.now()
	return s.prefs.SavePreferences(prefs)
}

// InQuietHours reports whether t falls inside the user's quiet window. A
// window like 22:00-07:00 wraps past midnight.
func (s *NotificationService) InQuietHours(userID string, t time.Time) (bool, error) {
	prefs, err := s.GetPreferences(userID)
	if err != nil {
		return false, err
	}
	if !prefs.QuietHoursEnabled {
		return false, nil
	}
	start, err := time.Parse("15:04", prefs.QuietStart)
	if err != nil {
		return false, nil
	}
	end, err := time.Parse("15:04", prefs.QuietEnd)
	if err != nil {
		return false, nil
	}

	minutes := t.Hour()*60 + t.Minute()
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()

	if startMin <= endMin {
		return minutes >= startMin && minutes < endMin, nil
	}
	return minutes >= startMin || minutes < endMin, nil
}
