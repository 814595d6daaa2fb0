package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
	"project/backend/store"
)

func TestEventLogAppendAndList(t *testing.T) {
	svc := NewEventService(store.NewMemory())

	ev, err := svc.Log("u1", models.EventCourseCompletion, "c1", map[string]string{"score": "92"})
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)

	_, err = svc.Log("u1", models.EventUserAchievement, "", nil)
	require.NoError(t, err)
	_, err = svc.Log("u2", models.EventCourseCompletion, "c2", nil)
	require.NoError(t, err)

	byUser, err := svc.ListByUser("u1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byType, err := svc.ListByType(models.EventCourseCompletion)
	require.NoError(t, err)
	assert.Len(t, byType, 2)
}

func TestEventLogRejectsUnknownType(t *testing.T) {
	svc := NewEventService(store.NewMemory())

	_, err := svc.Log("u1", "course_teleport", "c1", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListByType("course_teleport")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
