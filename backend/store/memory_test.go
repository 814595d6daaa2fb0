package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
)

func TestMemoryCourseCRUD(t *testing.T) {
	mem := NewMemory()

	_, err := mem.GetCourse("c1")
	assert.ErrorIs(t, err, ErrNotFound)

	course := models.Course{ID: "c1", Title: "First"}
	require.NoError(t, mem.SaveCourse(&course))

	got, err := mem.GetCourse("c1")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)

	course.Title = "Renamed"
	require.NoError(t, mem.SaveCourse(&course))
	got, err = mem.GetCourse("c1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	require.NoError(t, mem.DeleteCourse("c1"))
	assert.ErrorIs(t, mem.DeleteCourse("c1"), ErrNotFound)
}

func TestMemoryListCoursesKeepsInsertionOrder(t *testing.T) {
	mem := NewMemory()
	for _, id := range []string{"b", "a", "c"} {
		course := models.Course{ID: id}
		require.NoError(t, mem.SaveCourse(&course))
	}

	courses, err := mem.ListCourses()
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, "b", courses[0].ID)
	assert.Equal(t, "a", courses[1].ID)
	assert.Equal(t, "c", courses[2].ID)
}

func TestMemoryResultOverwriteBySubmission(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.SaveResult(&models.QuizResult{ID: "r1", SubmissionID: "s1"}))
	require.NoError(t, mem.SaveResult(&models.QuizResult{ID: "r2", SubmissionID: "s1"}))

	res, err := mem.GetResultBySubmission("s1")
	require.NoError(t, err)
	assert.Equal(t, "r2", res.ID)
}

func TestMemorySubmissionFiltering(t *testing.T) {
	mem := NewMemory()
	subs := []models.QuizSubmission{
		{ID: "s1", QuizID: "q1", UserID: "u1"},
		{ID: "s2", QuizID: "q1", UserID: "u2"},
		{ID: "s3", QuizID: "q2", UserID: "u1"},
		{ID: "s4", QuizID: "q1", UserID: "u1"},
	}
	for _, sub := range subs {
		s := sub
		require.NoError(t, mem.SaveSubmission(&s))
	}

	got, err := mem.ListSubmissions("q1", "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].ID)
	assert.Equal(t, "s4", got[1].ID)
}

func TestMemoryEventsFiltering(t *testing.T) {
	mem := NewMemory()
	events := []models.ActivityEvent{
		{ID: "e1", UserID: "u1", EventType: models.EventCourseView},
		{ID: "e2", UserID: "u2", EventType: models.EventCourseEnrollment},
		{ID: "e3", UserID: "u1", EventType: models.EventCourseEnrollment},
	}
	for _, ev := range events {
		require.NoError(t, mem.AppendEvent(ev))
	}

	byUser, err := mem.ListEventsByUser("u1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byType, err := mem.ListEventsByType(models.EventCourseEnrollment)
	require.NoError(t, err)
	assert.Len(t, byType, 2)
}

func TestMemoryUsers(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.CreateUser(&models.User{ID: "u1", Username: "ann"}))

	byName, err := mem.GetUserByUsername("ann")
	require.NoError(t, err)
	assert.Equal(t, "u1", byName.ID)

	_, err = mem.GetUserByUsername("bob")
	assert.ErrorIs(t, err, ErrNotFound)
}
