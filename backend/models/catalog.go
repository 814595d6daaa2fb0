package models

import "time"

// Course levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

type Category struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	ParentCategory string `json:"parent_category,omitempty"` // lookup-only reference, empty for roots
}

type Instructor struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

type CourseMetadata struct {
	Level               string    `json:"level"` // beginner, intermediate, advanced
	DurationHours       float64   `json:"duration_hours"`
	Language            string    `json:"language"`
	PrerequisiteCourses []string  `json:"prerequisite_courses,omitempty"`
	MaxStudents         int       `json:"max_students"`
	IsPublished         bool      `json:"is_published"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type Course struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	ShortDesc       string         `json:"short_desc"`
	Description     string         `json:"description"`
	Category        Category       `json:"category"`
	Instructor      Instructor     `json:"instructor"`
	Price           float64        `json:"price"`
	Rating          float64        `json:"rating"` // 0-5 average
	RatingCount     int            `json:"rating_count"`
	EnrollmentCount int            `json:"enrollment_count"`
	Tags            []string       `json:"tags,omitempty"`
	Skills          []string       `json:"skills,omitempty"`
	Curriculum      []string       `json:"curriculum,omitempty"`
	Metadata        CourseMetadata `json:"metadata"`
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // user, admin
	CreatedAt    time.Time `json:"created_at"`
}
