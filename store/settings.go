// Package store provides the gorm-backed implementations of the settings,
// progress and lesson-document stores.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sorogan/models"
	"sorogan/settings"
)

// SettingsStore persists one user's settings row.
type SettingsStore struct {
	DB     *gorm.DB
	UserID uint
}

func NewSettingsStore(db *gorm.DB, userID uint) *SettingsStore {
	return &SettingsStore{DB: db, UserID: userID}
}

// Get returns the persisted settings overlaid on current defaults, so
// fields introduced after the row was written come back with their default
// values instead of zeroes.
func (s *SettingsStore) Get() (settings.Settings, error) {
	current := settings.Defaults()

	var rec models.SettingsRecord
	err := s.DB.Where("user_id = ?", s.UserID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return current, nil
	}
	if err != nil {
		return current, fmt.Errorf("load settings: %w", err)
	}
	if len(rec.Data) > 0 {
		if err := json.Unmarshal(rec.Data, &current); err != nil {
			return settings.Defaults(), fmt.Errorf("parse settings: %w", err)
		}
	}
	return current, nil
}

// Update shallow-merges the patch into the persisted record and replaces
// it atomically.
func (s *SettingsStore) Update(p settings.Partial) error {
	current, err := s.Get()
	if err != nil {
		return err
	}
	p.Apply(&current)
	return s.save(current)
}

// ResetToDefaults replaces the record with factory settings.
func (s *SettingsStore) ResetToDefaults() error {
	return s.save(settings.Defaults())
}

func (s *SettingsStore) save(cfg settings.Settings) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	var rec models.SettingsRecord
	err = s.DB.Where("user_id = ?", s.UserID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.SettingsRecord{UserID: s.UserID, Data: datatypes.JSON(raw)}
		return s.DB.Create(&rec).Error
	}
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	rec.Data = datatypes.JSON(raw)
	return s.DB.Save(&rec).Error
}

// MarkTutorialSeen records that the onboarding tips were shown.
func (s *SettingsStore) MarkTutorialSeen() error {
	var rec models.SettingsRecord
	err := s.DB.Where("user_id = ?", s.UserID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		raw, _ := json.Marshal(settings.Defaults())
		rec = models.SettingsRecord{UserID: s.UserID, Data: datatypes.JSON(raw), HasSeenTutorial: true}
		return s.DB.Create(&rec).Error
	}
	if err != nil {
		return err
	}
	rec.HasSeenTutorial = true
	return s.DB.Save(&rec).Error
}

// TutorialSeen reports whether the onboarding tips were already shown.
func (s *SettingsStore) TutorialSeen() (bool, error) {
	var rec models.SettingsRecord
	err := s.DB.Where("user_id = ?", s.UserID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rec.HasSeenTutorial, nil
}
