package services

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
	"project/backend/store"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testLogger() *log.Logger {
	return log.New(os.Stdout, "[test] ", log.LstdFlags)
}

func testCourse(id, title string) models.Course {
	return models.Course{
		ID:    id,
		Title: title,
		Metadata: models.CourseMetadata{
			Level:       models.LevelBeginner,
			Language:    "en",
			MaxStudents: 1000,
			IsPublished: true,
			CreatedAt:   testNow.Add(-120 * 24 * time.Hour),
		},
	}
}

func newSearchFixture(t *testing.T) (*SearchService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	svc := NewSearchService(mem, mem, mem, testLogger())
	svc.now = func() time.Time { return testNow }
	return svc, mem
}

func TestSearchEmptyQueryReturnsEverything(t *testing.T) {
	svc, mem := newSearchFixture(t)
	for i := 0; i < 25; i++ {
		course := testCourse(fmt.Sprintf("c%02d", i), fmt.Sprintf("Course %02d", i))
		require.NoError(t, mem.SaveCourse(&course))
	}

	result, err := svc.Search("", models.SearchFilter{}, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, 25, result.Total)
	assert.Len(t, result.Courses, 10) // default limit
	assert.True(t, result.HasMore)

	last, err := svc.Search("", models.SearchFilter{Page: 3}, "s1", "")
	require.NoError(t, err)
	assert.Len(t, last.Courses, 5)
	assert.False(t, last.HasMore)
}

func TestSearchPriceRangeFilter(t *testing.T) {
	svc, mem := newSearchFixture(t)
	prices := []float64{5, 10, 15, 20, 25}
	for i, price := range prices {
		course := testCourse(fmt.Sprintf("c%d", i), "Priced Course")
		course.Price = price
		require.NoError(t, mem.SaveCourse(&course))
	}

	min, max := 10.0, 20.0
	result, err := svc.Search("", models.SearchFilter{PriceMin: &min, PriceMax: &max}, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	for _, course := range result.Courses {
		assert.GreaterOrEqual(t, course.Price, min)
		assert.LessOrEqual(t, course.Price, max)
	}
}

func TestSearchTextMatchAndTokenFallback(t *testing.T) {
	svc, mem := newSearchFixture(t)
	a := testCourse("c1", "Advanced Go Programming")
	a.Description = "Build concurrent systems"
	b := testCourse("c2", "Watercolor Painting")
	b.Tags = []string{"art"}
	require.NoError(t, mem.SaveCourse(&a))
	require.NoError(t, mem.SaveCourse(&b))

	result, err := svc.Search("go programming", models.SearchFilter{}, "s1", "")
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "c1", result.Courses[0].ID)

	// Tokens spread across fields still match via the AND-of-words fallback.
	result, err = svc.Search("concurrent go", models.SearchFilter{}, "s1", "")
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "c1", result.Courses[0].ID)
}

func TestSearchRelevanceRanking(t *testing.T) {
	svc, mem := newSearchFixture(t)
	titleHit := testCourse("c1", "Go Basics")
	descHit := testCourse("c2", "Backend Fundamentals")
	descHit.Description = "Web services in Go"
	require.NoError(t, mem.SaveCourse(&descHit))
	require.NoError(t, mem.SaveCourse(&titleHit))

	result, err := svc.Search("go", models.SearchFilter{}, "s1", "")
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	assert.Equal(t, "c1", result.Courses[0].ID) // title bonus beats description bonus
}

func TestSearchSortStability(t *testing.T) {
	svc, mem := newSearchFixture(t)
	// Identical courses score identically; encounter order must survive the sort.
	for _, id := range []string{"c1", "c2", "c3"} {
		course := testCourse(id, "Identical Course")
		require.NoError(t, mem.SaveCourse(&course))
	}

	result, err := svc.Search("identical", models.SearchFilter{}, "s1", "")
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)
	assert.Equal(t, "c1", result.Courses[0].ID)
	assert.Equal(t, "c2", result.Courses[1].ID)
	assert.Equal(t, "c3", result.Courses[2].ID)
}

func TestSearchSortModes(t *testing.T) {
	svc, mem := newSearchFixture(t)
	cheap := testCourse("c1", "Cheap")
	cheap.Price = 5
	cheap.Rating = 3
	cheap.EnrollmentCount = 500
	pricey := testCourse("c2", "Pricey")
	pricey.Price = 50
	pricey.Rating = 4.8
	pricey.EnrollmentCount = 10
	pricey.Metadata.CreatedAt = testNow.Add(-1 * 24 * time.Hour)
	require.NoError(t, mem.SaveCourse(&cheap))
	require.NoError(t, mem.SaveCourse(&pricey))

	cases := map[string]string{
		models.SortPriceLow:  "c1",
		models.SortPriceHigh: "c2",
		models.SortRating:    "c2",
		models.SortPopular:   "c1",
		models.SortNewest:    "c2",
	}
	for sortBy, wantFirst := range cases {
		result, err := svc.Search("", models.SearchFilter{SortBy: sortBy}, "s1", "")
		require.NoError(t, err)
		assert.Equal(t, wantFirst, result.Courses[0].ID, "sort %s", sortBy)
	}
}

func TestSearchRejectsBadInput(t *testing.T) {
	svc, _ := newSearchFixture(t)

	min, max := 30.0, 10.0
	_, err := svc.Search("", models.SearchFilter{PriceMin: &min, PriceMax: &max}, "s1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Search("", models.SearchFilter{SortBy: "alphabetical"}, "s1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchAlwaysRecordsAnalytics(t *testing.T) {
	svc, mem := newSearchFixture(t)

	_, err := svc.Search("nothing matches this", models.SearchFilter{}, "session-9", "u1")
	require.NoError(t, err)

	records, err := mem.ListSearches()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "nothing matches this", records[0].Query)
	assert.Equal(t, 0, records[0].ResultCount)
	assert.Equal(t, "session-9", records[0].SessionID)
	assert.Equal(t, "u1", records[0].UserID)
}

func TestSuggestPriorityAndDedup(t *testing.T) {
	svc, mem := newSearchFixture(t)
	course := testCourse("c1", "Go for Beginners")
	course.Tags = []string{"golang", "go"}
	require.NoError(t, mem.SaveCourse(&course))
	require.NoError(t, mem.SaveCategory(&models.Category{ID: "cat1", Name: "Go Development"}))

	suggestions, err := svc.Suggest("go", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 4)
	assert.Equal(t, "Go for Beginners", suggestions[0]) // titles before tags
	assert.Contains(t, suggestions, "golang")
	assert.Equal(t, "Go Development", suggestions[3]) // categories last
}

func TestPopularSearches(t *testing.T) {
	svc, _ := newSearchFixture(t)
	for _, q := range []string{"go", "rust", "go", "go", "rust", "python"} {
		_, err := svc.Search(q, models.SearchFilter{}, "s1", "")
		require.NoError(t, err)
	}

	popular, err := svc.PopularSearches(2)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, models.PopularSearch{Query: "go", Count: 3}, popular[0])
	assert.Equal(t, models.PopularSearch{Query: "rust", Count: 2}, popular[1])
}

func TestCategoryTreeReturnsRootsOnly(t *testing.T) {
	svc, mem := newSearchFixture(t)
	require.NoError(t, mem.SaveCategory(&models.Category{ID: "root", Name: "Programming"}))
	require.NoError(t, mem.SaveCategory(&models.Category{ID: "child", Name: "Go", ParentCategory: "root"}))

	roots, err := svc.GetCategoryTree()
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].ID)
}

func TestUpsertAndDeleteCategory(t *testing.T) {
	svc, _ := newSearchFixture(t)

	cat := models.Category{Name: "Data Science"}
	require.NoError(t, svc.UpsertCategory(&cat))
	assert.NotEmpty(t, cat.ID)

	assert.ErrorIs(t, svc.UpsertCategory(&models.Category{}), ErrInvalidInput)

	require.NoError(t, svc.DeleteCategory(cat.ID))
	assert.ErrorIs(t, svc.DeleteCategory(cat.ID), store.ErrNotFound)
}
