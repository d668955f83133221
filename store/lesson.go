package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sorogan/lesson"
	"sorogan/models"
)

// LessonStore persists Studio-authored lesson documents. It implements
// lesson.Loader so authored documents and the embedded content pack are
// interchangeable to the engines.
type LessonStore struct {
	DB *gorm.DB
}

func NewLessonStore(db *gorm.DB) *LessonStore {
	return &LessonStore{DB: db}
}

// Load fetches the authored document with the given id.
func (s *LessonStore) Load(id string) (*lesson.Lesson, error) {
	var rec models.LessonRecord
	err := s.DB.Where("lesson_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q", lesson.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load lesson %q: %w", id, err)
	}
	return recordToLesson(&rec)
}

// Index lists the authored documents as master-index entries.
func (s *LessonStore) Index() ([]lesson.IndexEntry, error) {
	var recs []models.LessonRecord
	if err := s.DB.Order("lesson_id").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]lesson.IndexEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, lesson.IndexEntry{
			ID:          r.LessonID,
			Title:       r.Title,
			TitleArabic: r.TitleArabic,
			Level:       r.Level,
		})
	}
	return out, nil
}

// Save validates and upserts the document keyed by its lesson id.
func (s *LessonStore) Save(l *lesson.Lesson) error {
	if err := l.Validate(); err != nil {
		return err
	}
	textData, err := json.Marshal(l.TextData)
	if err != nil {
		return fmt.Errorf("encode textData: %w", err)
	}
	quizData, err := json.Marshal(l.QuizData)
	if err != nil {
		return fmt.Errorf("encode quizData: %w", err)
	}

	var rec models.LessonRecord
	err = s.DB.Where("lesson_id = ?", l.ID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.LessonRecord{LessonID: l.ID}
	} else if err != nil {
		return err
	}

	rec.Title = l.Title
	rec.TitleArabic = l.TitleArabic
	rec.Level = l.Level
	rec.TextData = datatypes.JSON(textData)
	rec.QuizData = datatypes.JSON(quizData)
	rec.FullTranslation = l.FullTranslation
	rec.Reference = l.Reference

	if rec.ID == 0 {
		return s.DB.Create(&rec).Error
	}
	return s.DB.Save(&rec).Error
}

// Delete removes the authored document.
func (s *LessonStore) Delete(id string) error {
	res := s.DB.Unscoped().Where("lesson_id = ?", id).Delete(&models.LessonRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %q", lesson.ErrNotFound, id)
	}
	return nil
}

func recordToLesson(rec *models.LessonRecord) (*lesson.Lesson, error) {
	l := &lesson.Lesson{
		ID:              rec.LessonID,
		Title:           rec.Title,
		TitleArabic:     rec.TitleArabic,
		Level:           rec.Level,
		FullTranslation: rec.FullTranslation,
		Reference:       rec.Reference,
	}
	if len(rec.TextData) > 0 {
		if err := json.Unmarshal(rec.TextData, &l.TextData); err != nil {
			return nil, fmt.Errorf("%w: %v", lesson.ErrInvalidFormat, err)
		}
	}
	if len(rec.QuizData) > 0 {
		if err := json.Unmarshal(rec.QuizData, &l.QuizData); err != nil {
			return nil, fmt.Errorf("%w: %v", lesson.ErrInvalidFormat, err)
		}
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}
