package store

import (
	"errors"

	"gorm.io/gorm"

	"sorogan/models"
)

// ProgressStore persists one user's completed-lesson set.
type ProgressStore struct {
	DB     *gorm.DB
	UserID uint
}

func NewProgressStore(db *gorm.DB, userID uint) *ProgressStore {
	return &ProgressStore{DB: db, UserID: userID}
}

// ToggleComplete flips membership of lessonID in the completed set.
func (p *ProgressStore) ToggleComplete(lessonID string) error {
	var rec models.CompletedLesson
	err := p.DB.Where("user_id = ? AND lesson_id = ?", p.UserID, lessonID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p.DB.Create(&models.CompletedLesson{UserID: p.UserID, LessonID: lessonID}).Error
	}
	if err != nil {
		return err
	}
	return p.DB.Unscoped().Delete(&rec).Error
}

// IsComplete reports membership of lessonID.
func (p *ProgressStore) IsComplete(lessonID string) (bool, error) {
	var count int64
	err := p.DB.Model(&models.CompletedLesson{}).
		Where("user_id = ? AND lesson_id = ?", p.UserID, lessonID).
		Count(&count).Error
	return count > 0, err
}

// Completed lists the user's completed lesson ids.
func (p *ProgressStore) Completed() ([]string, error) {
	var ids []string
	err := p.DB.Model(&models.CompletedLesson{}).
		Where("user_id = ?", p.UserID).
		Order("lesson_id").
		Pluck("lesson_id", &ids).Error
	return ids, err
}

// ResetAll wipes the user's progress, settings and tutorial flag: the
// full "reset progress" action. Destructive; callers confirm first.
func ResetAll(db *gorm.DB, userID uint) error {
	if err := db.Unscoped().Where("user_id = ?", userID).Delete(&models.CompletedLesson{}).Error; err != nil {
		return err
	}
	return db.Unscoped().Where("user_id = ?", userID).Delete(&models.SettingsRecord{}).Error
}
