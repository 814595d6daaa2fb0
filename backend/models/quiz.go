package models

import "time"

// Question types
const (
	QuestionMultipleChoice = "multiple-choice"
	QuestionTrueFalse      = "true-false"
	QuestionShortAnswer    = "short-answer"
	QuestionEssay          = "essay"
)

// Submission statuses
const (
	StatusInProgress = "in-progress"
	StatusSubmitted  = "submitted"
	StatusGraded     = "graded"
)

type QuestionOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	ID             string           `json:"id"`
	Type           string           `json:"type"`
	Prompt         string           `json:"prompt"`
	Options        []QuestionOption `json:"options,omitempty"`         // multiple-choice
	CorrectAnswer  string           `json:"correct_answer,omitempty"`  // true-false
	CorrectAnswers []string         `json:"correct_answers,omitempty"` // short-answer acceptable values
	Points         int              `json:"points"`
}

type QuizSettings struct {
	TimeLimit        int     `json:"time_limit"` // minutes, 0 = unlimited
	AttemptsAllowed  int     `json:"attempts_allowed"`
	ShuffleQuestions bool    `json:"shuffle_questions"`
	ShuffleOptions   bool    `json:"shuffle_options"`
	PassingScore     float64 `json:"passing_score"` // percentage
	ShowResults      bool    `json:"show_results"`
}

type QuizMetadata struct {
	Difficulty  string    `json:"difficulty"`
	Tags        []string  `json:"tags,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Quiz struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	CourseID     string       `json:"course_id"`
	InstructorID string       `json:"instructor_id"`
	Questions    []Question   `json:"questions"`
	Settings     QuizSettings `json:"settings"`
	Metadata     QuizMetadata `json:"metadata"`
}

type SubmittedAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// QuizSubmission is immutable once created except for status transitions.
type QuizSubmission struct {
	ID          string            `json:"id"`
	QuizID      string            `json:"quiz_id"`
	UserID      string            `json:"user_id"`
	Answers     []SubmittedAnswer `json:"answers"`
	SubmittedAt time.Time         `json:"submitted_at"`
	TimeSpent   float64           `json:"time_spent"` // minutes
	Status      string            `json:"status"`
}

type AnswerResult struct {
	QuestionID     string `json:"question_id"`
	Correct        *bool  `json:"correct,omitempty"` // nil for essay and missing questions
	PointsEarned   int    `json:"points_earned"`
	PointsPossible int    `json:"points_possible"`
	RequiresReview bool   `json:"requires_review,omitempty"`
	Note           string `json:"note,omitempty"`
}

type QuizResult struct {
	ID           string         `json:"id"`
	QuizID       string         `json:"quiz_id"`
	UserID       string         `json:"user_id"`
	SubmissionID string         `json:"submission_id"`
	TotalPoints  int            `json:"total_points"`
	EarnedPoints int            `json:"earned_points"`
	Percentage   float64        `json:"percentage"`
	Grade        string         `json:"grade"` // A, B, C, D, F
	Passed       bool           `json:"passed"`
	Answers      []AnswerResult `json:"answers"`
	Summary      string         `json:"summary"`
	GradedAt     time.Time      `json:"graded_at"`
}
