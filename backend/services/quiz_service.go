package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"project/backend/models"
	"project/backend/store"
)

type QuizService struct {
	quizzes store.QuizStore
	logger  *log.Logger
	now     func() time.Time
}

func NewQuizService(quizzes store.QuizStore, logger *log.Logger) *QuizService {
	return &QuizService{quizzes: quizzes, logger: logger, now: time.Now}
}

func (s *QuizService) GetQuiz(id string) (*models.Quiz, error) {
	return s.quizzes.GetQuiz(id)
}

func (s *QuizService) CreateQuiz(quiz *models.Quiz) error {
	if quiz.Title == "" {
		return fmt.Errorf("%w: quiz title is required", ErrInvalidInput)
	}
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			quiz.Questions[i].ID = uuid.NewString()
		}
	}
	now := s.now()
	quiz.Metadata.CreatedAt = now
	quiz.Metadata.UpdatedAt = now
	return s.quizzes.SaveQuiz(quiz)
}

// UpdateQuiz replaces a stored quiz. Question IDs are regenerated unless the
// update supplies them.
func (s *QuizService) UpdateQuiz(quiz *models.Quiz) error {
	existing, err := s.quizzes.GetQuiz(quiz.ID)
	if err != nil {
		return err
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			quiz.Questions[i].ID = uuid.NewString()
		}
	}
	quiz.Metadata.CreatedAt = existing.Metadata.CreatedAt
	quiz.Metadata.UpdatedAt = s.now()
	return s.quizzes.SaveQuiz(quiz)
}

func (s *QuizService) DeleteQuiz(id string) error {
	return s.quizzes.DeleteQuiz(id)
}

// Submit records a new submission after checking the attempt limit: once the
// user's prior submitted attempts reach AttemptsAllowed, further submissions
// are rejected.
func (s *QuizService) Submit(sub *models.QuizSubmission) error {
	quiz, err := s.quizzes.GetQuiz(sub.QuizID)
	if err != nil {
		return err
	}
	if sub.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	if quiz.Settings.AttemptsAllowed > 0 {
		prior, err := s.quizzes.ListSubmissions(sub.QuizID, sub.UserID)
		if err != nil {
			return err
		}
		attempts := 0
		for _, p := range prior {
			if p.Status == models.StatusSubmitted || p.Status == models.StatusGraded {
				attempts++
			}
		}
		if attempts >= quiz.Settings.AttemptsAllowed {
			return fmt.Errorf("%w: quiz %s", ErrAttemptsExhausted, quiz.ID)
		}
	}

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	sub.SubmittedAt = s.now()
	sub.Status = models.StatusSubmitted
	return s.quizzes.SaveSubmission(sub)
}

// Grade grades a stored submission and persists the result under its
// submission ID. Grading the same submission again overwrites the old result.
func (s *QuizService) Grade(submissionID string) (*models.QuizResult, error) {
	sub, err := s.quizzes.GetSubmission(submissionID)
	if err != nil {
		return nil, err
	}
	quiz, err := s.quizzes.GetQuiz(sub.QuizID)
	if err != nil {
		return nil, err
	}

	questions := make(map[string]models.Question, len(quiz.Questions))
	totalPoints := 0
	for _, q := range quiz.Questions {
		questions[q.ID] = q
		totalPoints += q.Points
	}

	earned := 0
	answers := make([]models.AnswerResult, 0, len(sub.Answers))
	reviewCount := 0
	for _, ans := range sub.Answers {
		question, ok := questions[ans.QuestionID]
		if !ok {
			// A missing question zero-scores this answer but never aborts the batch.
			s.logger.Printf("grading quiz %s: question %s not found", quiz.ID, ans.QuestionID)
			answers = append(answers, models.AnswerResult{
				QuestionID: ans.QuestionID,
				Note:       "question not found in quiz",
			})
			continue
		}
		result := gradeAnswer(question, ans.Answer)
		if result.RequiresReview {
			reviewCount++
		}
		earned += result.PointsEarned
		answers = append(answers, result)
	}

	percentage := 0.0
	if totalPoints > 0 {
		percentage = 100 * float64(earned) / float64(totalPoints)
	}

	result := &models.QuizResult{
		ID:           uuid.NewString(),
		QuizID:       quiz.ID,
		UserID:       sub.UserID,
		SubmissionID: sub.ID,
		TotalPoints:  totalPoints,
		EarnedPoints: earned,
		Percentage:   percentage,
		Grade:        letterGrade(percentage),
		Passed:       percentage >= quiz.Settings.PassingScore,
		Answers:      answers,
		GradedAt:     s.now(),
	}
	result.Summary = fmt.Sprintf("Scored %d of %d points (%.1f%%)", earned, totalPoints, percentage)
	if reviewCount > 0 {
		result.Summary += fmt.Sprintf(", %d answer(s) pending manual review", reviewCount)
	}

	if err := s.quizzes.SaveResult(result); err != nil {
		return nil, err
	}

	sub.Status = models.StatusGraded
	if err := s.quizzes.SaveSubmission(sub); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *QuizService) GetResult(submissionID string) (*models.QuizResult, error) {
	return s.quizzes.GetResultBySubmission(submissionID)
}

func gradeAnswer(question models.Question, answer string) models.AnswerResult {
	result := models.AnswerResult{
		QuestionID:     question.ID,
		PointsPossible: question.Points,
	}

	switch question.Type {
	case models.QuestionMultipleChoice:
		correct := false
		for _, opt := range question.Options {
			if opt.IsCorrect && (answer == opt.ID || answer == opt.Text) {
				correct = true
				break
			}
		}
		result.Correct = &correct
		if correct {
			result.PointsEarned = question.Points
		}

	case models.QuestionTrueFalse:
		correct := normalizeAnswer(answer) == normalizeAnswer(question.CorrectAnswer)
		result.Correct = &correct
		if correct {
			result.PointsEarned = question.Points
		}

	case models.QuestionShortAnswer:
		correct := false
		for _, accepted := range question.CorrectAnswers {
			if normalizeAnswer(answer) == normalizeAnswer(accepted) {
				correct = true
				break
			}
		}
		result.Correct = &correct
		if correct {
			result.PointsEarned = question.Points
		}

	case models.QuestionEssay:
		// Essays are never auto-graded; correctness stays unset.
		result.RequiresReview = true
		result.Note = "essay answer requires manual review"

	default:
		result.Note = fmt.Sprintf("unsupported question type %q", question.Type)
	}

	return result
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

func letterGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}
