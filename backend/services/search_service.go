package services

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"project/backend/models"
	"project/backend/store"
)

// Relevance scoring weights
const (
	titleMatchScore   = 100
	descMatchScore    = 50
	tagMatchScore     = 25
	ratingWeight      = 5
	popularityWeight  = 10
	freshCourseBonus  = 20
	freshCourseWindow = 30 * 24 * time.Hour
)

const (
	defaultPageLimit   = 10
	maxPageLimit       = 50
	maxSuggestionLimit = 10
)

type SearchService struct {
	courses    store.CourseStore
	categories store.CategoryStore
	analytics  store.AnalyticsStore
	logger     *log.Logger
	now        func() time.Time
}

func NewSearchService(courses store.CourseStore, categories store.CategoryStore, analytics store.AnalyticsStore, logger *log.Logger) *SearchService {
	return &SearchService{
		courses:    courses,
		categories: categories,
		analytics:  analytics,
		logger:     logger,
		now:        time.Now,
	}
}

// Search filters the catalog by query text and structured filters, ranks the
// survivors and returns one page. Every call appends a SearchAnalytics record;
// an analytics failure is logged and never fails the search itself.
func (s *SearchService) Search(query string, filter models.SearchFilter, sessionID, userID string) (*models.SearchResult, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(query))
	now := s.now()

	courses, err := s.courses.ListCourses()
	if err != nil {
		return nil, err
	}

	type scoredCourse struct {
		course models.Course
		score  float64
	}

	var matched []scoredCourse
	for _, course := range courses {
		if !matchesQuery(course, normalized) {
			continue
		}
		if !matchesFilter(course, filter) {
			continue
		}
		matched = append(matched, scoredCourse{
			course: course,
			score:  relevanceScore(course, normalized, now),
		})
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = models.SortRelevance
	}
	switch sortBy {
	case models.SortRelevance:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].score > matched[j].score })
	case models.SortRating:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].course.Rating > matched[j].course.Rating })
	case models.SortPriceLow:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].course.Price < matched[j].course.Price })
	case models.SortPriceHigh:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].course.Price > matched[j].course.Price })
	case models.SortNewest:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].course.Metadata.CreatedAt.After(matched[j].course.Metadata.CreatedAt)
		})
	case models.SortPopular:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].course.EnrollmentCount > matched[j].course.EnrollmentCount
		})
	}

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := (page - 1) * limit

	pageCourses := []models.Course{}
	for i := offset; i < total && i < offset+limit; i++ {
		pageCourses = append(pageCourses, matched[i].course)
	}

	s.recordSearch(normalized, filter, total, sessionID, userID, now)

	return &models.SearchResult{
		Courses: pageCourses,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: offset+limit < total,
	}, nil
}

func (s *SearchService) recordSearch(query string, filter models.SearchFilter, resultCount int, sessionID, userID string, now time.Time) {
	err := s.analytics.AppendSearch(models.SearchAnalytics{
		ID:          uuid.NewString(),
		Query:       query,
		Filters:     filter,
		ResultCount: resultCount,
		Timestamp:   now,
		UserID:      userID,
		SessionID:   sessionID,
	})
	if err != nil {
		s.logger.Printf("search analytics append failed: %v", err)
	}
}

func validateFilter(filter models.SearchFilter) error {
	if filter.Page < 0 || filter.Limit < 0 {
		return fmt.Errorf("%w: page and limit must be positive", ErrInvalidInput)
	}
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		return fmt.Errorf("%w: price range min exceeds max", ErrInvalidInput)
	}
	if filter.DurationMin != nil && filter.DurationMax != nil && *filter.DurationMin > *filter.DurationMax {
		return fmt.Errorf("%w: duration range min exceeds max", ErrInvalidInput)
	}
	switch filter.SortBy {
	case "", models.SortRelevance, models.SortRating, models.SortPriceLow,
		models.SortPriceHigh, models.SortNewest, models.SortPopular:
	default:
		return fmt.Errorf("%w: unsupported sort key %q", ErrInvalidInput, filter.SortBy)
	}
	return nil
}

// searchableText concatenates every field the text filter looks at.
func searchableText(course models.Course) string {
	parts := []string{
		course.Title,
		course.Description,
		course.ShortDesc,
		course.Instructor.Name,
		course.Category.Name,
	}
	parts = append(parts, course.Tags...)
	parts = append(parts, course.Skills...)
	return strings.ToLower(strings.Join(parts, " "))
}

// matchesQuery accepts a course when the haystack contains the whole query,
// or when every whitespace-separated token appears somewhere in it.
func matchesQuery(course models.Course, query string) bool {
	if query == "" {
		return true
	}
	haystack := searchableText(course)
	if strings.Contains(haystack, query) {
		return true
	}
	tokens := strings.Fields(query)
	if len(tokens) < 2 {
		return false
	}
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}

func matchesFilter(course models.Course, filter models.SearchFilter) bool {
	if filter.Category != "" && course.Category.ID != filter.Category {
		return false
	}
	if filter.Level != "" && course.Metadata.Level != filter.Level {
		return false
	}
	if filter.PriceMin != nil || filter.PriceMax != nil {
		price := course.Price // missing price marshals as 0
		if filter.PriceMin != nil && price < *filter.PriceMin {
			return false
		}
		if filter.PriceMax != nil && price > *filter.PriceMax {
			return false
		}
	}
	if filter.MinRating != nil && course.Rating < *filter.MinRating {
		return false
	}
	if filter.Language != "" && course.Metadata.Language != filter.Language {
		return false
	}
	if filter.Instructor != "" && course.Instructor.ID != filter.Instructor {
		return false
	}
	if filter.DurationMin != nil && course.Metadata.DurationHours < *filter.DurationMin {
		return false
	}
	if filter.DurationMax != nil && course.Metadata.DurationHours > *filter.DurationMax {
		return false
	}
	if len(filter.Tags) > 0 && !tagsIntersect(course.Tags, filter.Tags) {
		return false
	}
	return true
}

func tagsIntersect(courseTags, wanted []string) bool {
	for _, tag := range courseTags {
		for _, w := range wanted {
			if strings.EqualFold(tag, w) {
				return true
			}
		}
	}
	return false
}

func relevanceScore(course models.Course, query string, now time.Time) float64 {
	var score float64
	if strings.Contains(strings.ToLower(course.Title), query) {
		score += titleMatchScore
	}
	if strings.Contains(strings.ToLower(course.Description), query) {
		score += descMatchScore
	}
	for _, tag := range course.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			score += tagMatchScore
		}
	}
	score += popularityWeight * math.Log(float64(course.EnrollmentCount)+1)
	score += ratingWeight * course.Rating
	if now.Sub(course.Metadata.CreatedAt) < freshCourseWindow {
		score += freshCourseBonus
	}
	return score
}

// Suggest returns up to limit distinct completions for a partial query, drawn
// from course titles first, then tags, then category names.
func (s *SearchService) Suggest(partial string, limit int) ([]string, error) {
	if limit < 1 || limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}
	normalized := strings.ToLower(strings.TrimSpace(partial))
	if normalized == "" {
		return []string{}, nil
	}

	courses, err := s.courses.ListCourses()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	suggestions := []string{}
	add := func(value string) {
		key := strings.ToLower(value)
		if len(suggestions) < limit && !seen[key] {
			seen[key] = true
			suggestions = append(suggestions, value)
		}
	}

	for _, course := range courses {
		if strings.Contains(strings.ToLower(course.Title), normalized) {
			add(course.Title)
		}
	}
	for _, course := range courses {
		for _, tag := range course.Tags {
			if strings.Contains(strings.ToLower(tag), normalized) {
				add(tag)
			}
		}
	}
	cats, err := s.categories.ListCategories()
	if err != nil {
		return nil, err
	}
	for _, cat := range cats {
		if strings.Contains(strings.ToLower(cat.Name), normalized) {
			add(cat.Name)
		}
	}

	return suggestions, nil
}

// PopularSearches aggregates the analytics log by exact normalized query and
// returns the most frequent ones.
func (s *SearchService) PopularSearches(limit int) ([]models.PopularSearch, error) {
	if limit < 1 {
		limit = defaultPageLimit
	}
	records, err := s.analytics.ListSearches()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, rec := range records {
		if rec.Query == "" {
			continue
		}
		if counts[rec.Query] == 0 {
			order = append(order, rec.Query)
		}
		counts[rec.Query]++
	}

	popular := make([]models.PopularSearch, 0, len(order))
	for _, q := range order {
		popular = append(popular, models.PopularSearch{Query: q, Count: counts[q]})
	}
	sort.SliceStable(popular, func(i, j int) bool { return popular[i].Count > popular[j].Count })

	if len(popular) > limit {
		popular = popular[:limit]
	}
	return popular, nil
}

func (s *SearchService) GetCategories() ([]models.Category, error) {
	return s.categories.ListCategories()
}

// GetCategoryTree returns only root categories, i.e. those without a parent.
// Children are resolved by the caller via ParentCategory references.
func (s *SearchService) GetCategoryTree() ([]models.Category, error) {
	cats, err := s.categories.ListCategories()
	if err != nil {
		return nil, err
	}
	roots := []models.Category{}
	for _, cat := range cats {
		if cat.ParentCategory == "" {
			roots = append(roots, cat)
		}
	}
	return roots, nil
}

func (s *SearchService) UpsertCategory(cat *models.Category) error {
	if cat.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	return s.categories.SaveCategory(cat)
}

func (s *SearchService) DeleteCategory(id string) error {
	return s.categories.DeleteCategory(id)
}
