package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"project/backend/models"
	"project/backend/store"
)

// Recommendation scoring weights
const (
	categoryAffinityWeight = 20
	levelMatchBonus        = 30
	recRatingWeight        = 10
	ratingCountWeight      = 5
	recPopularityWeight    = 8
	skillOverlapWeight     = 15
	collaborativeWeight    = 12
	noveltyWeight          = 5
	prerequisiteBonus      = 25
)

// Similar-course scoring weights
const (
	simCategoryScore   = 40
	simLevelScore      = 20
	simInstructorScore = 30
	simTagWeight       = 5
	simSkillWeight     = 8
	simLanguageScore   = 10
	simRatingScore     = 15
)

// Trending weights
const (
	trendPopularityWeight = 10
	trendRatingWeight     = 8
	trendFreshBonus       = 50
	trendRecentBonus      = 20
)

const (
	maxRecommendLimit = 30
	maxSimilarLimit   = 20
	defaultRecLimit   = 10
)

type RecommendationService struct {
	courses  store.CourseStore
	profiles store.ProfileStore
	events   store.EventStore
	logger   *log.Logger
	now      func() time.Time
}

func NewRecommendationService(courses store.CourseStore, profiles store.ProfileStore, events store.EventStore, logger *log.Logger) *RecommendationService {
	return &RecommendationService{
		courses:  courses,
		profiles: profiles,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// Recommend scores every un-enrolled, un-browsed, not-full published course
// for the user described by ctx and returns the top limit of them.
func (s *RecommendationService) Recommend(ctx models.RecommendationContext, limit int) ([]models.Recommendation, error) {
	if ctx.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if limit < 1 || limit > maxRecommendLimit {
		limit = defaultRecLimit
	}

	profile, err := s.resolveProfile(ctx)
	if err != nil {
		return nil, err
	}

	courses, err := s.courses.ListCourses()
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.ListProfiles()
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool)
	for id := range profile.EnrolledCourses {
		excluded[id] = true
	}
	for id := range profile.BrowsedCourses {
		excluded[id] = true
	}
	for _, id := range ctx.EnrolledCourseIDs {
		excluded[id] = true
	}
	for _, id := range ctx.BrowsedCourseIDs {
		excluded[id] = true
	}

	levels := ctx.PreferredLevels
	if len(levels) == 0 {
		levels = profile.PreferredLevels
	}

	maxEnrollment := 0
	for _, course := range courses {
		if course.EnrollmentCount > maxEnrollment {
			maxEnrollment = course.EnrollmentCount
		}
	}

	userSkills := s.ratedCourseSkills(profile, courses)

	recs := []models.Recommendation{}
	for _, course := range courses {
		if !course.Metadata.IsPublished || excluded[course.ID] {
			continue
		}
		if course.Metadata.MaxStudents > 0 && course.EnrollmentCount >= course.Metadata.MaxStudents {
			continue
		}

		score := s.scoreCandidate(course, profile, levels, userSkills, profiles, maxEnrollment)
		recs = append(recs, models.Recommendation{
			CourseID: course.ID,
			Course:   course,
			Score:    score,
			Reason:   recommendationReason(course, profile, levels),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (s *RecommendationService) scoreCandidate(course models.Course, profile *models.UserProfile, levels []string, userSkills map[string]bool, profiles []models.UserProfile, maxEnrollment int) float64 {
	score := profile.PreferredCategories[course.Category.ID] * categoryAffinityWeight

	for _, level := range levels {
		if course.Metadata.Level == level {
			score += levelMatchBonus
			break
		}
	}

	score += recRatingWeight * course.Rating
	score += ratingCountWeight * math.Log(float64(course.RatingCount)+1)
	score += recPopularityWeight * math.Log(float64(course.EnrollmentCount)+1)

	for _, skill := range course.Skills {
		if userSkills[skill] {
			score += skillOverlapWeight
		}
	}

	score += collaborativeWeight * collaborativeScore(profile, course.ID, profiles)
	score += noveltyWeight * (1 - float64(course.EnrollmentCount)/float64(maxEnrollment+1))

	for _, prereq := range course.Metadata.PrerequisiteCourses {
		if profile.EnrolledCourses[prereq] {
			score += prerequisiteBonus
		}
	}

	return score
}

// ratedCourseSkills collects the skills of every course the user has rated.
func (s *RecommendationService) ratedCourseSkills(profile *models.UserProfile, courses []models.Course) map[string]bool {
	skills := make(map[string]bool)
	for _, course := range courses {
		if _, rated := profile.Ratings[course.ID]; !rated {
			continue
		}
		for _, skill := range course.Skills {
			skills[skill] = true
		}
	}
	return skills
}

// collaborativeScore averages the ratings other users gave courseID, counting
// only users who share at least one rated course with this user. Sharers who
// never rated courseID contribute zero to the average. This is a deliberately
// unweighted nearest-neighbor approximation.
func collaborativeScore(profile *models.UserProfile, courseID string, profiles []models.UserProfile) float64 {
	var sum float64
	var sharers int
	for _, other := range profiles {
		if other.UserID == profile.UserID {
			continue
		}
		shared := false
		for rated := range profile.Ratings {
			if _, ok := other.Ratings[rated]; ok {
				shared = true
				break
			}
		}
		if !shared {
			continue
		}
		sharers++
		sum += other.Ratings[courseID]
	}
	if sharers == 0 {
		return 0
	}
	return sum / float64(sharers)
}

// recommendationReason picks one line by first-match priority. The instructor
// line is always available, so it terminates the chain.
func recommendationReason(course models.Course, profile *models.UserProfile, levels []string) string {
	if profile.PreferredCategories[course.Category.ID] > 0 {
		return fmt.Sprintf("Matches your interest in %s", course.Category.Name)
	}
	for _, level := range levels {
		if course.Metadata.Level == level {
			return fmt.Sprintf("Fits your preferred %s level", level)
		}
	}
	return fmt.Sprintf("Taught by %s, rated %.1f by students", course.Instructor.Name, course.Instructor.Rating)
}

// resolveProfile loads the stored profile, creating one from ctx when absent.
// Existing history is never overwritten; context preferences only add weight
// for categories the profile has not seen yet.
func (s *RecommendationService) resolveProfile(ctx models.RecommendationContext) (*models.UserProfile, error) {
	profile, err := s.profiles.GetProfile(ctx.UserID)
	if err == nil {
		ensureProfileMaps(profile)
		changed := false
		for _, cat := range ctx.PreferredCategories {
			if _, ok := profile.PreferredCategories[cat]; !ok {
				profile.PreferredCategories[cat] = 1
				changed = true
			}
		}
		if changed {
			if err := s.profiles.SaveProfile(profile); err != nil {
				return nil, err
			}
		}
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	profile = newProfile(ctx.UserID)
	for _, id := range ctx.EnrolledCourseIDs {
		profile.EnrolledCourses[id] = true
	}
	for _, id := range ctx.BrowsedCourseIDs {
		profile.BrowsedCourses[id]++
	}
	for _, r := range ctx.Ratings {
		profile.Ratings[r.CourseID] = r.Rating
	}
	for _, cat := range ctx.PreferredCategories {
		profile.PreferredCategories[cat] = 1
	}
	profile.PreferredLevels = append(profile.PreferredLevels, ctx.PreferredLevels...)
	profile.LastActive = s.now()

	if err := s.profiles.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ensureProfileMaps guards against profiles deserialized with nil maps.
func ensureProfileMaps(profile *models.UserProfile) {
	if profile.EnrolledCourses == nil {
		profile.EnrolledCourses = make(map[string]bool)
	}
	if profile.BrowsedCourses == nil {
		profile.BrowsedCourses = make(map[string]int)
	}
	if profile.Ratings == nil {
		profile.Ratings = make(map[string]float64)
	}
	if profile.PreferredCategories == nil {
		profile.PreferredCategories = make(map[string]float64)
	}
}

func newProfile(userID string) *models.UserProfile {
	return &models.UserProfile{
		UserID:              userID,
		EnrolledCourses:     make(map[string]bool),
		BrowsedCourses:      make(map[string]int),
		Ratings:             make(map[string]float64),
		PreferredCategories: make(map[string]float64),
	}
}

// Similar ranks every other published course against the base course.
func (s *RecommendationService) Similar(courseID string, limit int) ([]models.Recommendation, error) {
	if limit < 1 || limit > maxSimilarLimit {
		limit = defaultRecLimit
	}

	base, err := s.courses.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.ListCourses()
	if err != nil {
		return nil, err
	}

	recs := []models.Recommendation{}
	for _, course := range courses {
		if course.ID == base.ID || !course.Metadata.IsPublished {
			continue
		}
		score := similarityScore(*base, course)
		recs = append(recs, models.Recommendation{
			CourseID: course.ID,
			Course:   course,
			Score:    score,
			Reason:   fmt.Sprintf("Similar to %s", base.Title),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func similarityScore(base, other models.Course) float64 {
	var score float64
	if base.Category.ID == other.Category.ID {
		score += simCategoryScore
	}
	if base.Metadata.Level == other.Metadata.Level {
		score += simLevelScore
	}
	if base.Instructor.ID == other.Instructor.ID {
		score += simInstructorScore
	}
	score += simTagWeight * float64(overlapCount(base.Tags, other.Tags))
	score += simSkillWeight * float64(overlapCount(base.Skills, other.Skills))
	if base.Metadata.Language == other.Metadata.Language && base.Metadata.Language != "" {
		score += simLanguageScore
	}
	if math.Abs(base.Rating-other.Rating) < 0.5 {
		score += simRatingScore
	}
	return score
}

func overlapCount(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	count := 0
	for _, v := range b {
		if set[v] {
			count++
		}
	}
	return count
}

// Trending ranks published courses by enrollment, rating and recency.
func (s *RecommendationService) Trending(limit int) ([]models.Recommendation, error) {
	if limit < 1 {
		limit = defaultRecLimit
	}
	courses, err := s.courses.ListCourses()
	if err != nil {
		return nil, err
	}

	now := s.now()
	recs := []models.Recommendation{}
	for _, course := range courses {
		if !course.Metadata.IsPublished {
			continue
		}
		score := trendPopularityWeight*math.Log(float64(course.EnrollmentCount)+1) +
			trendRatingWeight*course.Rating
		age := now.Sub(course.Metadata.CreatedAt)
		switch {
		case age < 30*24*time.Hour:
			score += trendFreshBonus
		case age < 90*24*time.Hour:
			score += trendRecentBonus
		}
		recs = append(recs, models.Recommendation{
			CourseID: course.ID,
			Course:   course,
			Score:    score,
			Reason:   "Trending now",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// RecordActivity mutates the user's profile for one activity and appends an
// event to the activity log. The category weight is bumped on every call
// regardless of activity type.
func (s *RecommendationService) RecordActivity(userID, activityType, courseID string, data map[string]interface{}) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	course, err := s.courses.GetCourse(courseID)
	if err != nil {
		return err
	}

	profile, err := s.profiles.GetProfile(userID)
	if errors.Is(err, store.ErrNotFound) {
		profile = newProfile(userID)
	} else if err != nil {
		return err
	}
	ensureProfileMaps(profile)

	eventType := ""
	switch activityType {
	case models.ActivityView:
		profile.BrowsedCourses[courseID]++
		eventType = models.EventCourseView
	case models.ActivityEnroll:
		profile.EnrolledCourses[courseID] = true
		eventType = models.EventCourseEnrollment
	case models.ActivityComplete:
		profile.EnrolledCourses[courseID] = true
		eventType = models.EventCourseCompletion
	case models.ActivityRate:
		rating, err := ratingFromData(data)
		if err != nil {
			return err
		}
		profile.Ratings[courseID] = rating
		eventType = models.EventCourseRating
	default:
		return fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, activityType)
	}

	profile.PreferredCategories[course.Category.ID]++
	profile.LastActive = s.now()

	if err := s.profiles.SaveProfile(profile); err != nil {
		return err
	}

	metadata := map[string]string{"activity": activityType}
	for k, v := range data {
		metadata[k] = fmt.Sprint(v)
	}
	appendErr := s.events.AppendEvent(models.ActivityEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventType: eventType,
		CourseID:  courseID,
		Metadata:  metadata,
		Timestamp: s.now(),
	})
	if appendErr != nil {
		// The event log is best-effort; a failed append must not fail the activity.
		s.logger.Printf("activity event append failed: %v", appendErr)
	}
	return nil
}

func ratingFromData(data map[string]interface{}) (float64, error) {
	raw, ok := data["rating"]
	if !ok {
		return 0, fmt.Errorf("%w: rate activity requires a rating", ErrInvalidInput)
	}
	var rating float64
	switch v := raw.(type) {
	case float64:
		rating = v
	case int:
		rating = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: rating must be numeric", ErrInvalidInput)
		}
		rating = parsed
	default:
		return 0, fmt.Errorf("%w: rating must be numeric", ErrInvalidInput)
	}
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	return rating, nil
}
