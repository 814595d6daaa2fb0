// Package store defines the persistence interfaces the engines are built
// against, plus in-memory and Postgres-backed implementations. Engines are
// constructed with these interfaces injected so tests can run on the memory
// store while deployments use the database.
package store

import (
	"errors"

	"project/backend/models"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

type CourseStore interface {
	GetCourse(id string) (*models.Course, error)
	ListCourses() ([]models.Course, error)
	SaveCourse(course *models.Course) error
	DeleteCourse(id string) error
}

type CategoryStore interface {
	GetCategory(id string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	SaveCategory(cat *models.Category) error
	DeleteCategory(id string) error
}

type ProfileStore interface {
	GetProfile(userID string) (*models.UserProfile, error)
	ListProfiles() ([]models.UserProfile, error)
	SaveProfile(profile *models.UserProfile) error
}

type AnalyticsStore interface {
	AppendSearch(rec models.SearchAnalytics) error
	ListSearches() ([]models.SearchAnalytics, error)
}

type QuizStore interface {
	GetQuiz(id string) (*models.Quiz, error)
	ListQuizzes() ([]models.Quiz, error)
	SaveQuiz(quiz *models.Quiz) error
	DeleteQuiz(id string) error

	GetSubmission(id string) (*models.QuizSubmission, error)
	ListSubmissions(quizID, userID string) ([]models.QuizSubmission, error)
	SaveSubmission(sub *models.QuizSubmission) error

	// SaveResult stores the result under its submission ID; regrading the
	// same submission overwrites the previous result.
	SaveResult(res *models.QuizResult) error
	GetResultBySubmission(submissionID string) (*models.QuizResult, error)
}

type EventStore interface {
	AppendEvent(ev models.ActivityEvent) error
	ListEventsByUser(userID string) ([]models.ActivityEvent, error)
	ListEventsByType(eventType string) ([]models.ActivityEvent, error)
}

type PreferenceStore interface {
	GetPreferences(userID string) (*models.NotificationPreferences, error)
	SavePreferences(prefs *models.NotificationPreferences) error
}

type UserStore interface {
	GetUser(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) error
}

// Store bundles every interface; both implementations satisfy it.
type Store interface {
	CourseStore
	CategoryStore
	ProfileStore
	AnalyticsStore
	QuizStore
	EventStore
	PreferenceStore
	UserStore
}
