package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"project/backend/models"
	"project/backend/store"
)

var knownEventTypes = map[string]bool{
	models.EventCourseEnrollment: true,
	models.EventCourseCompletion: true,
	models.EventUserAchievement:  true,
	models.EventProfileUpdate:    true,
	models.EventCourseView:       true,
	models.EventCourseRating:     true,
}

// EventService maintains the append-only user activity log.
type EventService struct {
	events store.EventStore
	now    func() time.Time
}

func NewEventService(events store.EventStore) *EventService {
	return &EventService{events: events, now: time.Now}
}

func (s *EventService) Log(userID, eventType, courseID string, metadata map[string]string) (*models.ActivityEvent, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if !knownEventTypes[eventType] {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, eventType)
	}
	ev := models.ActivityEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventType: eventType,
		CourseID:  courseID,
		Metadata:  metadata,
		Timestamp: s.now(),
	}
	if err := s.events.AppendEvent(ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *EventService) ListByUser(userID string) ([]models.ActivityEvent, error) {
	return s.events.ListEventsByUser(userID)
}

func (s *EventService) ListByType(eventType string) ([]models.ActivityEvent, error) {
	if !knownEventTypes[eventType] {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, eventType)
	}
	return s.events.ListEventsByType(eventType)
}
