package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
	"project/backend/store"
)

func TestNotificationDefaults(t *testing.T) {
	svc := NewNotificationService(store.NewMemory())

	prefs, err := svc.GetPreferences("u1")
	require.NoError(t, err)
	assert.True(t, prefs.EmailEnabled)
	assert.True(t, prefs.PushEnabled)
	assert.True(t, prefs.InAppEnabled)
	assert.False(t, prefs.QuietHoursEnabled)
}

func TestNotificationUpdateValidation(t *testing.T) {
	svc := NewNotificationService(store.NewMemory())

	err := svc.UpdatePreferences(&models.NotificationPreferences{
		UserID:            "u1",
		QuietHoursEnabled: true,
		QuietStart:        "late evening",
		QuietEnd:          "07:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.UpdatePreferences(&models.NotificationPreferences{
		UserID:            "u1",
		QuietHoursEnabled: true,
		QuietStart:        "22:00",
		QuietEnd:          "07:00",
	})
	require.NoError(t, err)

	prefs, err := svc.GetPreferences("u1")
	require.NoError(t, err)
	assert.Equal(t, "22:00", prefs.QuietStart)
}

func TestQuietHoursWrapMidnight(t *testing.T) {
	svc := NewNotificationService(store.NewMemory())
	require.NoError(t, svc.UpdatePreferences(&models.NotificationPreferences{
		UserID:            "u1",
		QuietHoursEnabled: true,
		QuietStart:        "22:00",
		QuietEnd:          "07:00",
	}))

	at := func(hour int) time.Time {
		return time.Date(2025, 6, 15, hour, 30, 0, 0, time.UTC)
	}

	quiet, err := svc.InQuietHours("u1", at(23))
	require.NoError(t, err)
	assert.True(t, quiet)

	quiet, err = svc.InQuietHours("u1", at(3))
	require.NoError(t, err)
	assert.True(t, quiet)

	quiet, err = svc.InQuietHours("u1", at(12))
	require.NoError(t, err)
	assert.False(t, quiet)
}
