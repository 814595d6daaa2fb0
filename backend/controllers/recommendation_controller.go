package controllers

import (
	"github.com/gofiber/fiber/v2"

	"project/backend/middleware"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"
)

type RecommendationController struct {
	Recs *services.RecommendationService
}

func NewRecommendationController(recs *services.RecommendationService) *RecommendationController {
	return &RecommendationController{Recs: recs}
}

// GetRecommendations handles POST /api/recommendations. The body carries the
// RecommendationContext; an authenticated user ID overrides the body's.
func (rc *RecommendationController) GetRecommendations(c *fiber.Ctx) error {
	var ctx models.RecommendationContext
	if err := c.BodyParser(&ctx); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if userID := middleware.UserID(c); userID != "" {
		ctx.UserID = userID
	}

	recs, err := rc.Recs.Recommend(ctx, c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, recs)
}

// GetTrendingCourses handles GET /api/recommendations/trending.
func (rc *RecommendationController) GetTrendingCourses(c *fiber.Ctx) error {
	recs, err := rc.Recs.Trending(c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, recs)
}

// GetSimilarCourses handles GET /api/courses/:id/similar.
func (rc *RecommendationController) GetSimilarCourses(c *fiber.Ctx) error {
	recs, err := rc.Recs.Similar(c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, recs)
}

// RecordActivity handles POST /api/activity.
func (rc *RecommendationController) RecordActivity(c *fiber.Ctx) error {
	type ActivityInput struct {
		UserID   string                 `json:"user_id"`
		Type     string                 `json:"type"`
		CourseID string                 `json:"course_id"`
		Data     map[string]interface{} `json:"data"`
	}

	var input ActivityInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if userID := middleware.UserID(c); userID != "" {
		input.UserID = userID
	}

	if err := rc.Recs.RecordActivity(input.UserID, input.Type, input.CourseID, input.Data); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"recorded": true})
}
