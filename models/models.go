package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:user"` // user, admin
}

// LessonRecord is a Studio-authored lesson document. The word-paragraph
// array and quiz items are stored as JSON, matching the content-pack
// format, so export produces the same shape the seed files use.
type LessonRecord struct {
	gorm.Model
	LessonID        string `gorm:"uniqueIndex;not null"`
	Title           string
	TitleArabic     string
	Level           string // Ibtida’i, Mutawassit, Mutaqaddim
	TextData        datatypes.JSON
	QuizData        datatypes.JSON
	FullTranslation string
	Reference       string
}

// SettingsRecord holds one user's display settings as a JSON blob. Unknown
// fields from older app versions are dropped on read; missing fields take
// current defaults.
type SettingsRecord struct {
	gorm.Model
	UserID          uint `gorm:"uniqueIndex;not null"`
	Data            datatypes.JSON
	HasSeenTutorial bool `gorm:"default:false"`
}

// CompletedLesson is one entry of a user's completed-lesson set.
type CompletedLesson struct {
	gorm.Model
	UserID   uint   `gorm:"index:idx_completed_user_lesson,unique;not null"`
	LessonID string `gorm:"index:idx_completed_user_lesson,unique;not null"`
}
