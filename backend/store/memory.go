package store

import (
	"sync"

	"project/backend/models"
)

// Memory is the in-memory Store. A single RWMutex guards all maps; every
// operation is short-lived so contention is not a concern at this scale.
type Memory struct {
	mu          sync.RWMutex
	courses     map[string]models.Course
	courseOrder []string
	categories  map[string]models.Category
	catOrder    []string
	profiles    map[string]models.UserProfile
	searches    []models.SearchAnalytics
	quizzes     map[string]models.Quiz
	submissions map[string]models.QuizSubmission
	subOrder    []string
	results     map[string]models.QuizResult // keyed by submission ID
	events      []models.ActivityEvent
	preferences map[string]models.NotificationPreferences
	users       map[string]models.User
}

func NewMemory() *Memory {
	return &Memory{
		courses:     make(map[string]models.Course),
		categories:  make(map[string]models.Category),
		profiles:    make(map[string]models.UserProfile),
		quizzes:     make(map[string]models.Quiz),
		submissions: make(map[string]models.QuizSubmission),
		results:     make(map[string]models.QuizResult),
		preferences: make(map[string]models.NotificationPreferences),
		users:       make(map[string]models.User),
	}
}

func (m *Memory) GetCourse(id string) (*models.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	course, ok := m.courses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &course, nil
}

// ListCourses returns courses in insertion order so stable sorts downstream
// keep a deterministic encounter order.
func (m *Memory) ListCourses() ([]models.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Course, 0, len(m.courseOrder))
	for _, id := range m.courseOrder {
		out = append(out, m.courses[id])
	}
	return out, nil
}

func (m *Memory) SaveCourse(course *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[course.ID]; !ok {
		m.courseOrder = append(m.courseOrder, course.ID)
	}
	m.courses[course.ID] = *course
	return nil
}

func (m *Memory) DeleteCourse(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return ErrNotFound
	}
	delete(m.courses, id)
	for i, cid := range m.courseOrder {
		if cid == id {
			m.courseOrder = append(m.courseOrder[:i], m.courseOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) GetCategory(id string) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cat, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &cat, nil
}

func (m *Memory) ListCategories() ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Category, 0, len(m.catOrder))
	for _, id := range m.catOrder {
		out = append(out, m.categories[id])
	}
	return out, nil
}

func (m *Memory) SaveCategory(cat *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[cat.ID]; !ok {
		m.catOrder = append(m.catOrder, cat.ID)
	}
	m.categories[cat.ID] = *cat
	return nil
}

func (m *Memory) DeleteCategory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return ErrNotFound
	}
	delete(m.categories, id)
	for i, cid := range m.catOrder {
		if cid == id {
			m.catOrder = append(m.catOrder[:i], m.catOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) GetProfile(userID string) (*models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}

func (m *Memory) ListProfiles() ([]models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.UserProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (m *Memory) SaveProfile(profile *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = *profile
	return nil
}

func (m *Memory) AppendSearch(rec models.SearchAnalytics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = append(m.searches, rec)
	return nil
}

func (m *Memory) ListSearches() ([]models.SearchAnalytics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.SearchAnalytics, len(m.searches))
	copy(out, m.searches)
	return out, nil
}

func (m *Memory) GetQuiz(id string) (*models.Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	quiz, ok := m.quizzes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &quiz, nil
}

func (m *Memory) ListQuizzes() ([]models.Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Quiz, 0, len(m.quizzes))
	for _, q := range m.quizzes {
		out = append(out, q)
	}
	return out, nil
}

func (m *Memory) SaveQuiz(quiz *models.Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[quiz.ID] = *quiz
	return nil
}

func (m *Memory) DeleteQuiz(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[id]; !ok {
		return ErrNotFound
	}
	delete(m.quizzes, id)
	return nil
}

func (m *Memory) GetSubmission(id string) (*models.QuizSubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sub, nil
}

func (m *Memory) ListSubmissions(quizID, userID string) ([]models.QuizSubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.QuizSubmission
	for _, id := range m.subOrder {
		sub := m.submissions[id]
		if sub.QuizID == quizID && sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *Memory) SaveSubmission(sub *models.QuizSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.submissions[sub.ID]; !ok {
		m.subOrder = append(m.subOrder, sub.ID)
	}
	m.submissions[sub.ID] = *sub
	return nil
}

func (m *Memory) SaveResult(res *models.QuizResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[res.SubmissionID] = *res
	return nil
}

func (m *Memory) GetResultBySubmission(submissionID string) (*models.QuizResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.results[submissionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (m *Memory) AppendEvent(ev models.ActivityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *Memory) ListEventsByUser(userID string) ([]models.ActivityEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.ActivityEvent
	for _, ev := range m.events {
		if ev.UserID == userID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *Memory) ListEventsByType(eventType string) ([]models.ActivityEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.ActivityEvent
	for _, ev := range m.events {
		if ev.EventType == eventType {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *Memory) GetPreferences(userID string) (*models.NotificationPreferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefs, ok := m.preferences[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &prefs, nil
}

func (m *Memory) SavePreferences(prefs *models.NotificationPreferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preferences[prefs.UserID] = *prefs
	return nil
}

func (m *Memory) GetUser(id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *Memory) GetUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}
