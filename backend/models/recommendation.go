package models

import "time"

// Activity types accepted by RecordActivity
const (
	ActivityView     = "view"
	ActivityEnroll   = "enroll"
	ActivityRate     = "rate"
	ActivityComplete = "complete"
)

// UserProfile accumulates one user's behavior for personalization.
// Created lazily on first activity or recommendation request, never deleted.
type UserProfile struct {
	UserID              string             `json:"user_id"`
	EnrolledCourses     map[string]bool    `json:"enrolled_courses"`
	BrowsedCourses      map[string]int     `json:"browsed_courses"` // courseID -> view count
	Ratings             map[string]float64 `json:"ratings"`         // courseID -> 1-5
	PreferredCategories map[string]float64 `json:"preferred_categories"`
	PreferredLevels     []string           `json:"preferred_levels,omitempty"`
	LastActive          time.Time          `json:"last_active"`
}

type CourseRating struct {
	CourseID string  `json:"course_id"`
	Rating   float64 `json:"rating"`
}

// RecommendationContext seeds a profile when none exists yet. It never
// overwrites an existing profile's accumulated history.
type RecommendationContext struct {
	UserID              string         `json:"user_id"`
	EnrolledCourseIDs   []string       `json:"enrolled_course_ids,omitempty"`
	BrowsedCourseIDs    []string       `json:"browsed_course_ids,omitempty"`
	PreferredCategories []string       `json:"preferred_categories,omitempty"`
	PreferredLevels     []string       `json:"preferred_levels,omitempty"`
	Ratings             []CourseRating `json:"ratings,omitempty"`
}

type Recommendation struct {
	CourseID string  `json:"course_id"`
	Course   Course  `json:"course"`
	Score    float64 `json:"score"` // unbounded, higher is better
	Reason   string  `json:"reason"`
}
