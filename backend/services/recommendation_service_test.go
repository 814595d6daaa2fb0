package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
	"project/backend/store"
)

func newRecFixture(t *testing.T) (*RecommendationService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	svc := NewRecommendationService(mem, mem, mem, testLogger())
	svc.now = func() time.Time { return testNow }
	return svc, mem
}

func TestRecommendSingleCourseReferenceScore(t *testing.T) {
	svc, mem := newRecFixture(t)
	course := testCourse("c1", "Intro to Programming")
	course.Category = models.Category{ID: "prog", Name: "Programming"}
	course.Rating = 4.5
	course.EnrollmentCount = 100
	require.NoError(t, mem.SaveCourse(&course))

	recs, err := svc.Recommend(models.RecommendationContext{
		UserID:              "u1",
		PreferredCategories: []string{"prog"},
		PreferredLevels:     []string{models.LevelBeginner},
	}, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	// 20 (category) + 30 (level) + 10*4.5 (rating) + 0 (rating count)
	// + 8*ln(101) (popularity) + 5*(1-100/101) (novelty)
	want := 20.0 + 30 + 45 +
		8*math.Log(101) +
		5*(1-100.0/101)
	assert.InDelta(t, want, recs[0].Score, 1e-9)
	assert.Equal(t, "c1", recs[0].CourseID)
	assert.Equal(t, "Matches your interest in Programming", recs[0].Reason)
}

func TestRecommendExcludesEnrolledBrowsedAndFull(t *testing.T) {
	svc, mem := newRecFixture(t)
	enrolled := testCourse("c1", "Enrolled")
	browsed := testCourse("c2", "Browsed")
	full := testCourse("c3", "Full")
	full.EnrollmentCount = 50
	full.Metadata.MaxStudents = 50
	unpublished := testCourse("c4", "Draft")
	unpublished.Metadata.IsPublished = false
	open := testCourse("c5", "Open")
	for _, course := range []models.Course{enrolled, browsed, full, unpublished, open} {
		c := course
		require.NoError(t, mem.SaveCourse(&c))
	}

	recs, err := svc.Recommend(models.RecommendationContext{
		UserID:            "u1",
		EnrolledCourseIDs: []string{"c1"},
		BrowsedCourseIDs:  []string{"c2"},
	}, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "c5", recs[0].CourseID)
}

func TestRecommendCollaborativeScore(t *testing.T) {
	svc, mem := newRecFixture(t)
	rated := testCourse("c1", "Rated by both")
	candidate := testCourse("c2", "Candidate")
	require.NoError(t, mem.SaveCourse(&rated))
	require.NoError(t, mem.SaveCourse(&candidate))

	// u2 shares c1 with u1 and rated the candidate 4.0.
	require.NoError(t, mem.SaveProfile(&models.UserProfile{
		UserID:  "u2",
		Ratings: map[string]float64{"c1": 5, "c2": 4},
	}))
	// u3 shares nothing with u1 and must not contribute.
	require.NoError(t, mem.SaveProfile(&models.UserProfile{
		UserID:  "u3",
		Ratings: map[string]float64{"c9": 1},
	}))

	recs, err := svc.Recommend(models.RecommendationContext{
		UserID:  "u1",
		Ratings: []models.CourseRating{{CourseID: "c1", Rating: 5}},
	}, 10)
	require.NoError(t, err)

	var candidateScore, baseline float64
	for _, rec := range recs {
		if rec.CourseID == "c2" {
			candidateScore = rec.Score
		}
	}
	// Score the same candidate with no raters around to isolate the collab term.
	other, mem2 := newRecFixture(t)
	c2 := candidate
	require.NoError(t, mem2.SaveCourse(&c2))
	solo, err := other.Recommend(models.RecommendationContext{UserID: "u1"}, 10)
	require.NoError(t, err)
	baseline = solo[0].Score

	assert.InDelta(t, 12*4.0, candidateScore-baseline, 0.5)
}

func TestRecommendContextDoesNotOverwriteProfile(t *testing.T) {
	svc, mem := newRecFixture(t)
	course := testCourse("c1", "Some Course")
	require.NoError(t, mem.SaveCourse(&course))

	require.NoError(t, mem.SaveProfile(&models.UserProfile{
		UserID:              "u1",
		EnrolledCourses:     map[string]bool{"c9": true},
		BrowsedCourses:      map[string]int{},
		Ratings:             map[string]float64{},
		PreferredCategories: map[string]float64{"history": 7},
	}))

	_, err := svc.Recommend(models.RecommendationContext{
		UserID:              "u1",
		PreferredCategories: []string{"history", "art"},
	}, 10)
	require.NoError(t, err)

	profile, err := mem.GetProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, 7.0, profile.PreferredCategories["history"]) // accumulated weight preserved
	assert.Equal(t, 1.0, profile.PreferredCategories["art"])     // unseen category merged in
	assert.True(t, profile.EnrolledCourses["c9"])
}

func TestRecordActivityViewTwice(t *testing.T) {
	svc, mem := newRecFixture(t)
	course := testCourse("c1", "Viewed Course")
	course.Category = models.Category{ID: "prog", Name: "Programming"}
	require.NoError(t, mem.SaveCourse(&course))

	require.NoError(t, svc.RecordActivity("u1", models.ActivityView, "c1", nil))
	require.NoError(t, svc.RecordActivity("u1", models.ActivityView, "c1", nil))

	profile, err := mem.GetProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.BrowsedCourses["c1"])
	assert.Equal(t, 2.0, profile.PreferredCategories["prog"])
}

func TestRecordActivityTypes(t *testing.T) {
	svc, mem := newRecFixture(t)
	course := testCourse("c1", "Course")
	require.NoError(t, mem.SaveCourse(&course))

	require.NoError(t, svc.RecordActivity("u1", models.ActivityEnroll, "c1", nil))
	require.NoError(t, svc.RecordActivity("u1", models.ActivityRate, "c1", map[string]interface{}{"rating": 4.0}))

	profile, err := mem.GetProfile("u1")
	require.NoError(t, err)
	assert.True(t, profile.EnrolledCourses["c1"])
	assert.Equal(t, 4.0, profile.Ratings["c1"])

	// Rating overwrites, never accumulates.
	require.NoError(t, svc.RecordActivity("u1", models.ActivityRate, "c1", map[string]interface{}{"rating": 2.0}))
	profile, err = mem.GetProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, profile.Ratings["c1"])

	events, err := mem.ListEventsByUser("u1")
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestRecordActivityErrors(t *testing.T) {
	svc, mem := newRecFixture(t)
	course := testCourse("c1", "Course")
	require.NoError(t, mem.SaveCourse(&course))

	assert.ErrorIs(t, svc.RecordActivity("u1", models.ActivityView, "missing", nil), store.ErrNotFound)
	assert.ErrorIs(t, svc.RecordActivity("u1", "poke", "c1", nil), ErrInvalidInput)
	assert.ErrorIs(t, svc.RecordActivity("u1", models.ActivityRate, "c1", map[string]interface{}{"rating": 9.0}), ErrInvalidInput)
}

func TestSimilarCourses(t *testing.T) {
	svc, mem := newRecFixture(t)
	base := testCourse("c1", "Go Basics")
	base.Category = models.Category{ID: "prog"}
	base.Instructor = models.Instructor{ID: "i1", Name: "Ann"}
	base.Tags = []string{"go", "backend"}
	base.Rating = 4.0

	twin := testCourse("c2", "Go Advanced")
	twin.Category = models.Category{ID: "prog"}
	twin.Instructor = models.Instructor{ID: "i1", Name: "Ann"}
	twin.Tags = []string{"go"}
	twin.Rating = 4.2

	stranger := testCourse("c3", "French Cooking")
	stranger.Category = models.Category{ID: "cook"}
	stranger.Instructor = models.Instructor{ID: "i2"}
	stranger.Rating = 2.0

	for _, course := range []models.Course{base, twin, stranger} {
		c := course
		require.NoError(t, mem.SaveCourse(&c))
	}

	recs, err := svc.Similar("c1", 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c2", recs[0].CourseID)
	// category 40 + level 20 + instructor 30 + 1 shared tag 5 + language 10 + close rating 15
	assert.InDelta(t, 120.0, recs[0].Score, 1e-9)

	_, err = svc.Similar("missing", 10)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTrendingRecencyBuckets(t *testing.T) {
	svc, mem := newRecFixture(t)
	fresh := testCourse("c1", "Fresh")
	fresh.Metadata.CreatedAt = testNow.Add(-10 * 24 * time.Hour)
	recent := testCourse("c2", "Recent")
	recent.Metadata.CreatedAt = testNow.Add(-60 * 24 * time.Hour)
	old := testCourse("c3", "Old")
	old.Metadata.CreatedAt = testNow.Add(-200 * 24 * time.Hour)
	for _, course := range []models.Course{old, recent, fresh} {
		c := course
		require.NoError(t, mem.SaveCourse(&c))
	}

	recs, err := svc.Trending(10)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "c1", recs[0].CourseID)
	assert.Equal(t, "c2", recs[1].CourseID)
	assert.Equal(t, "c3", recs[2].CourseID)
	assert.InDelta(t, 50.0, recs[0].Score, 1e-9)
	assert.InDelta(t, 20.0, recs[1].Score, 1e-9)
	assert.InDelta(t, 0.0, recs[2].Score, 1e-9)
}
