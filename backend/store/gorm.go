package store

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"project/backend/models"
)

// Gorm persists records as JSON payload columns next to the keys the queries
// filter on. Engine-facing models stay free of ORM tags that way.
type Gorm struct {
	db *gorm.DB
}

type courseRecord struct {
	ID        string `gorm:"primaryKey"`
	Payload   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type categoryRecord struct {
	ID      string `gorm:"primaryKey"`
	Payload string
}

type profileRecord struct {
	UserID  string `gorm:"primaryKey"`
	Payload string
}

type searchRecord struct {
	ID        string `gorm:"primaryKey"`
	Query     string `gorm:"index"`
	SessionID string
	UserID    string
	Payload   string
	CreatedAt time.Time
}

type quizRecord struct {
	ID      string `gorm:"primaryKey"`
	Payload string
}

type submissionRecord struct {
	ID        string `gorm:"primaryKey"`
	QuizID    string `gorm:"index"`
	UserID    string `gorm:"index"`
	Payload   string
	CreatedAt time.Time
}

type resultRecord struct {
	SubmissionID string `gorm:"primaryKey"`
	Payload      string
}

type eventRecord struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	EventType string `gorm:"index"`
	Payload   string
	CreatedAt time.Time
}

type preferenceRecord struct {
	UserID  string `gorm:"primaryKey"`
	Payload string
}

type userRecord struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex"`
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

func NewGorm(db *gorm.DB) (*Gorm, error) {
	err := db.AutoMigrate(
		&courseRecord{},
		&categoryRecord{},
		&profileRecord{},
		&searchRecord{},
		&quizRecord{},
		&submissionRecord{},
		&resultRecord{},
		&eventRecord{},
		&preferenceRecord{},
		&userRecord{},
	)
	if err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (g *Gorm) GetCourse(id string) (*models.Course, error) {
	var rec courseRecord
	if err := g.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	var course models.Course
	if err := json.Unmarshal([]byte(rec.Payload), &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (g *Gorm) ListCourses() ([]models.Course, error) {
	var recs []courseRecord
	if err := g.db.Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.Course, 0, len(recs))
	for _, rec := range recs {
		var course models.Course
		if err := json.Unmarshal([]byte(rec.Payload), &course); err != nil {
			return nil, err
		}
		out = append(out, course)
	}
	return out, nil
}

func (g *Gorm) SaveCourse(course *models.Course) error {
	payload, err := json.Marshal(course)
	if err != nil {
		return err
	}
	rec := courseRecord{ID: course.ID, Payload: string(payload)}
	return g.db.Save(&rec).Error
}

func (g *Gorm) DeleteCourse(id string) error {
	res := g.db.Delete(&courseRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gorm) GetCategory(id string) (*models.Category, error) {
	var rec categoryRecord
	if err := g.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	var cat models.Category
	if err := json.Unmarshal([]byte(rec.Payload), &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (g *Gorm) ListCategories() ([]models.Category, error) {
	var recs []categoryRecord
	if err := g.db.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(recs))
	for _, rec := range recs {
		var cat models.Category
		if err := json.Unmarshal([]byte(rec.Payload), &cat); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

func (g *Gorm) SaveCategory(cat *models.Category) error {
	payload, err := json.Marshal(cat)
	if err != nil {
		return err
	}
	return g.db.Save(&categoryRecord{ID: cat.ID, Payload: string(payload)}).Error
}

func (g *Gorm) DeleteCategory(id string) error {
	res := g.db.Delete(&categoryRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gorm) GetProfile(userID string) (*models.UserProfile, error) {
	var rec profileRecord
	if err := g.db.First(&rec, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	var profile models.UserProfile
	if err := json.Unmarshal([]byte(rec.Payload), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (g *Gorm) ListProfiles() ([]models.UserProfile, error) {
	var recs []profileRecord
	if err := g.db.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.UserProfile, 0, len(recs))
	for _, rec := range recs {
		var profile models.UserProfile
		if err := json.Unmarshal([]byte(rec.Payload), &profile); err != nil {
			return nil, err
		}
		out = append(out, profile)
	}
	return out, nil
}

func (g *Gorm) SaveProfile(profile *models.UserProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return g.db.Save(&profileRecord{UserID: profile.UserID, Payload: string(payload)}).Error
}

func (g *Gorm) AppendSearch(rec models.SearchAnalytics) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return g.db.Create(&searchRecord{
		ID:        rec.ID,
		Query:     rec.Query,
		SessionID: rec.SessionID,
		UserID:    rec.UserID,
		Payload:   string(payload),
	}).Error
}

func (g *Gorm) ListSearches() ([]models.SearchAnalytics, error) {
	var recs []searchRecord
	if err := g.db.Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.SearchAnalytics, 0, len(recs))
	for _, rec := range recs {
		var sa models.SearchAnalytics
		if err := json.Unmarshal([]byte(rec.Payload), &sa); err != nil {
			return nil, err
		}
		out = append(out, sa)
	}
	return out, nil
}

func (g *Gorm) GetQuiz(id string) (*models.Quiz, error) {
	var rec quizRecord
	if err := g.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	var quiz models.Quiz
	if err := json.Unmarshal([]byte(rec.Payload), &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (g *Gorm) ListQuizzes() ([]models.Quiz, error) {
	var recs []quizRecord
	if err := g.db.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.Quiz, 0, len(recs))
	for _, rec := range recs {
		var quiz models.Quiz
		if err := json.Unmarshal([]byte(rec.Payload), &quiz); err != nil {
			return nil, err
		}
		out = append(out, quiz)
	}
	return out, nil
}

func (g *Gorm) SaveQuiz(quiz *models.Quiz) error {
	payload, err := json.Marshal(quiz)
	if err != nil {
		return err
	}
	return g.db.Save(&quizRecord{ID: quiz.ID, Payload: string(payload)}).Error
}

func (g *Gorm) DeleteQuiz(id string) error {
	res := g.db.Delete(&quizRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gorm) GetSubmission(id string) (*models.QuizSubmission, error) {
	var rec submissionRecord
	if err := g.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	var sub models.QuizSubmission
	if err := json.Unmarshal([]byte(rec.Payload), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (g *Gorm) ListSubmissions(quizID, userID string) ([]models.QuizSubmission, error) {
	var recs []submissionRecord
	err := g.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("created_at").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.QuizSubmission, 0, len(recs))
	for _, rec := range recs {
		var sub models.QuizSubmission
		if err := json.Unmarshal([]byte(rec.Payload), &sub); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

func (g *Gorm) SaveSubmission(sub *models.QuizSubmission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	return g.db.Save(&submissionRecord{
		ID:      sub.ID,
		QuizID:  sub.QuizID,
		UserID:  sub.UserID,
		Payload: string(payload),
	}).Error
}

func (g *Gorm) SaveResult(res *models.QuizResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return g.db.Save(&resultRecord{SubmissionID: res.SubmissionID, Payload: string(payload)}).Error
}

func (g *Gorm) GetResultBySubmission(submissionID string) (*models.QuizResult, error) {
	var rec resultRecord
	if err := g.db.First(&rec, "submission_id = ?", submissionID).Error; err != nil {
		return nil, notFound(err)
	}
	var res models.QuizResult
	if err := json.Unmarshal([]byte(rec.Payload), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (g *Gorm) AppendEvent(ev models.ActivityEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return g.db.Create(&eventRecord{
		ID:        ev.ID,
		UserID:    ev.UserID,
		EventType: ev.EventType,
		Payload:   string(payload),
	}).Error
}

func (g *Gorm) ListEventsByUser(userID string) ([]models.ActivityEvent, error) {
	var recs []eventRecord
	if err := g.db.Where("user_id = ?", userID).Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	return decodeEvents(recs)
}

func (g *Gorm) ListEventsByType(eventType string) ([]models.ActivityEvent, error) {
	var recs []eventRecord
	if err := g.db.Where("event_type = ?", eventType).Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	return decodeEvents(recs)
}

func decodeEvents(recs []eventRecord) ([]models.ActivityEvent, error) {
	out := make([]models.ActivityEvent, 0, len(recs))
	for _, rec := range recs {
		var ev models.ActivityEvent
		if err := json.Unmarshal([]byte(rec.Payload), &ev); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (g *Gorm) GetPreferences(userID string) (*models.NotificationPreferences, error) {
	var rec preferenceRecord
	if err := g.db.First(&rec, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	var prefs models.NotificationPreferences
	if err := json.Unmarshal([]byte(rec.Payload), &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (g *Gorm) SavePreferences(prefs *models.NotificationPreferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return g.db.Save(&preferenceRecord{UserID: prefs.UserID, Payload: string(payload)}).Error
}

func (g *Gorm) GetUser(id string) (*models.User, error) {
	var rec userRecord
	if err := g.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return userFromRecord(rec), nil
}

func (g *Gorm) GetUserByUsername(username string) (*models.User, error) {
	var rec userRecord
	if err := g.db.First(&rec, "username = ?", username).Error; err != nil {
		return nil, notFound(err)
	}
	return userFromRecord(rec), nil
}

func (g *Gorm) CreateUser(user *models.User) error {
	return g.db.Create(&userRecord{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}).Error
}

func userFromRecord(rec userRecord) *models.User {
	return &models.User{
		ID:           rec.ID,
		Username:     rec.Username,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Role:         rec.Role,
		CreatedAt:    rec.CreatedAt,
	}
}
