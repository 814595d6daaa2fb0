package models

import "time"

// Event types recorded in the activity log
const (
	EventCourseEnrollment = "course_enrollment"
	EventCourseCompletion = "course_completion"
	EventUserAchievement  = "user_achievement"
	EventProfileUpdate    = "profile_update"
	EventCourseView       = "course_view"
	EventCourseRating     = "course_rating"
)

// ActivityEvent is an append-only log entry; never mutated after creation.
type ActivityEvent struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	EventType string            `json:"event_type"`
	CourseID  string            `json:"course_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
