package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"project/backend/middleware"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"
)

type SearchController struct {
	Search *services.SearchService
}

func NewSearchController(search *services.SearchService) *SearchController {
	return &SearchController{Search: search}
}

// SearchCourses handles GET /api/search/courses.
func (sc *SearchController) SearchCourses(c *fiber.Ctx) error {
	filter, err := parseSearchFilter(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	sessionID := c.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = c.Query("session_id")
	}

	result, err := sc.Search.Search(c.Query("q"), filter, sessionID, middleware.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func parseSearchFilter(c *fiber.Ctx) (models.SearchFilter, error) {
	filter := models.SearchFilter{
		Category:   c.Query("category"),
		Level:      c.Query("level"),
		Language:   c.Query("language"),
		Instructor: c.Query("instructor"),
		SortBy:     c.Query("sort"),
		Page:       c.QueryInt("page"),
		Limit:      c.QueryInt("limit"),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = splitCSV(tags)
	}
	for param, target := range map[string]**float64{
		"price_min":    &filter.PriceMin,
		"price_max":    &filter.PriceMax,
		"min_rating":   &filter.MinRating,
		"duration_min": &filter.DurationMin,
		"duration_max": &filter.DurationMax,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "invalid "+param)
		}
		*target = &value
	}
	return filter, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetSuggestions handles GET /api/search/suggestions.
func (sc *SearchController) GetSuggestions(c *fiber.Ctx) error {
	suggestions, err := sc.Search.Suggest(c.Query("q"), c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, suggestions)
}

// GetPopularSearches handles GET /api/search/popular.
func (sc *SearchController) GetPopularSearches(c *fiber.Ctx) error {
	popular, err := sc.Search.PopularSearches(c.QueryInt("limit"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, popular)
}

func (sc *SearchController) GetCategories(c *fiber.Ctx) error {
	cats, err := sc.Search.GetCategories()
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, cats)
}

func (sc *SearchController) GetCategoryTree(c *fiber.Ctx) error {
	roots, err := sc.Search.GetCategoryTree()
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, roots)
}

func (sc *SearchController) UpsertCategory(c *fiber.Ctx) error {
	var cat models.Category
	if err := c.BodyParser(&cat); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := sc.Search.UpsertCategory(&cat); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, cat)
}

func (sc *SearchController) DeleteCategory(c *fiber.Ctx) error {
	if err := sc.Search.DeleteCategory(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": c.Params("id")})
}
