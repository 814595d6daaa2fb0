package controllers

import (
	"github.com/gofiber/fiber/v2"

	"project/backend/middleware"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"
)

type QuizController struct {
	Quizzes *services.QuizService
}

func NewQuizController(quizzes *services.QuizService) *QuizController {
	return &QuizController{Quizzes: quizzes}
}

func (qc *QuizController) GetQuiz(c *fiber.Ctx) error {
	quiz, err := qc.Quizzes.GetQuiz(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, quiz)
}

func (qc *QuizController) CreateQuiz(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := c.BodyParser(&quiz); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := qc.Quizzes.CreateQuiz(&quiz); err != nil {
		return serviceError(c, err)
	}
	return utils.Created(c, quiz)
}

func (qc *QuizController) UpdateQuiz(c *fiber.Ctx) error {
	var quiz models.Quiz
	if err := c.BodyParser(&quiz); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	quiz.ID = c.Params("id")
	if err := qc.Quizzes.UpdateQuiz(&quiz); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, quiz)
}

func (qc *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	if err := qc.Quizzes.DeleteQuiz(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": c.Params("id")})
}

// SubmitQuiz handles POST /api/quizzes/:id/submissions: it records the
// submission (enforcing the attempt limit) and grades it immediately.
func (qc *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	var sub models.QuizSubmission
	if err := c.BodyParser(&sub); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	sub.QuizID = c.Params("id")
	if userID := middleware.UserID(c); userID != "" {
		sub.UserID = userID
	}

	if err := qc.Quizzes.Submit(&sub); err != nil {
		return serviceError(c, err)
	}

	result, err := qc.Quizzes.Grade(sub.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"submission": sub,
		"result":     result,
	})
}

// GetResult handles GET /api/submissions/:id/result.
func (qc *QuizController) GetResult(c *fiber.Ctx) error {
	result, err := qc.Quizzes.GetResult(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, result)
}
