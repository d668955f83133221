package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sorogan/lesson"
	"sorogan/models"
	"sorogan/settings"
	"sorogan/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.Migrate(db))
	return db
}

func TestSettingsStoreDefaultsWhenEmpty(t *testing.T) {
	st := NewSettingsStore(newTestDB(t), 1)

	got, err := st.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), got)
}

func TestSettingsStoreUpdateAndReset(t *testing.T) {
	st := NewSettingsStore(newTestDB(t), 1)

	off := false
	size := 2.25
	require.NoError(t, st.Update(settings.Partial{IsHarakatMode: &off, ArabicSize: &size}))

	got, err := st.Get()
	require.NoError(t, err)
	assert.False(t, got.IsHarakatMode)
	assert.Equal(t, 2.25, got.ArabicSize)
	assert.True(t, got.IsSoundEnabled, "unpatched fields keep defaults")

	require.NoError(t, st.ResetToDefaults())
	got, err = st.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), got)
}

func TestSettingsStoreMergesNewDefaults(t *testing.T) {
	db := newTestDB(t)

	// A record written by an older app version knows nothing about the
	// typography fields.
	rec := models.SettingsRecord{UserID: 1, Data: datatypes.JSON([]byte(`{"isHarakatMode": false}`))}
	require.NoError(t, db.Create(&rec).Error)

	got, err := NewSettingsStore(db, 1).Get()
	require.NoError(t, err)
	assert.False(t, got.IsHarakatMode, "persisted value wins")
	assert.Equal(t, settings.Defaults().ArabicSize, got.ArabicSize, "missing fields take defaults")
	assert.Equal(t, settings.Defaults().ArabicFontFamily, got.ArabicFontFamily)
}

func TestSettingsStorePerUser(t *testing.T) {
	db := newTestDB(t)
	off := false
	require.NoError(t, NewSettingsStore(db, 1).Update(settings.Partial{IsHarakatMode: &off}))

	other, err := NewSettingsStore(db, 2).Get()
	require.NoError(t, err)
	assert.True(t, other.IsHarakatMode)
}

func TestSettingsStoreTutorialFlag(t *testing.T) {
	st := NewSettingsStore(newTestDB(t), 1)

	seen, err := st.TutorialSeen()
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, st.MarkTutorialSeen())
	seen, err = st.TutorialSeen()
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestProgressStoreToggle(t *testing.T) {
	st := NewProgressStore(newTestDB(t), 1)

	require.NoError(t, st.ToggleComplete("l1"))
	done, err := st.IsComplete("l1")
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, st.ToggleComplete("l2"))
	ids, err := st.Completed()
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l2"}, ids)

	// Toggling again removes the entry.
	require.NoError(t, st.ToggleComplete("l1"))
	done, err = st.IsComplete("l1")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestProgressStorePerUser(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewProgressStore(db, 1).ToggleComplete("l1"))

	done, err := NewProgressStore(db, 2).IsComplete("l1")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestResetAll(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewProgressStore(db, 1).ToggleComplete("l1"))
	require.NoError(t, NewSettingsStore(db, 1).MarkTutorialSeen())
	require.NoError(t, NewProgressStore(db, 2).ToggleComplete("l1"))

	require.NoError(t, ResetAll(db, 1))

	ids, err := NewProgressStore(db, 1).Completed()
	require.NoError(t, err)
	assert.Empty(t, ids)

	seen, err := NewSettingsStore(db, 1).TutorialSeen()
	require.NoError(t, err)
	assert.False(t, seen)

	// Other users untouched.
	done, err := NewProgressStore(db, 2).IsComplete("l1")
	require.NoError(t, err)
	assert.True(t, done)
}

func authoredDoc() *lesson.Lesson {
	return &lesson.Lesson{
		ID:          "studio-1",
		Title:       "Authored",
		TitleArabic: "مؤلف",
		Level:       lesson.LevelIbtidai,
		TextData: []lesson.Paragraph{
			{{Gundul: "العلم", Berharakat: "الْعِلْمُ", TasykilOptions: []string{"الْعَلَمُ"}}},
		},
		QuizData: []lesson.Question{
			{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 0},
		},
	}
}

func TestLessonStoreRoundTrip(t *testing.T) {
	st := NewLessonStore(newTestDB(t))

	require.NoError(t, st.Save(authoredDoc()))

	got, err := st.Load("studio-1")
	require.NoError(t, err)
	assert.Equal(t, "Authored", got.Title)
	require.Len(t, got.TextData, 1)
	assert.Equal(t, "الْعِلْمُ", got.TextData[0][0].Berharakat)
	require.Len(t, got.QuizData, 1)
	assert.Equal(t, 0, got.QuizData[0].CorrectAnswer)
}

func TestLessonStoreUpsert(t *testing.T) {
	st := NewLessonStore(newTestDB(t))
	require.NoError(t, st.Save(authoredDoc()))

	doc := authoredDoc()
	doc.Title = "Renamed"
	require.NoError(t, st.Save(doc))

	entries, err := st.Index()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Renamed", entries[0].Title)
}

func TestLessonStoreRejectsInvalid(t *testing.T) {
	st := NewLessonStore(newTestDB(t))

	doc := authoredDoc()
	doc.TextData = nil
	assert.ErrorIs(t, st.Save(doc), lesson.ErrInvalidFormat)

	doc = authoredDoc()
	doc.QuizData[0].CorrectAnswer = 5
	assert.ErrorIs(t, st.Save(doc), lesson.ErrInvalidFormat)
}

func TestLessonStoreNotFound(t *testing.T) {
	st := NewLessonStore(newTestDB(t))

	_, err := st.Load("missing")
	assert.ErrorIs(t, err, lesson.ErrNotFound)
	assert.ErrorIs(t, st.Delete("missing"), lesson.ErrNotFound)
}

func TestLessonStoreDelete(t *testing.T) {
	st := NewLessonStore(newTestDB(t))
	require.NoError(t, st.Save(authoredDoc()))

	require.NoError(t, st.Delete("studio-1"))
	_, err := st.Load("studio-1")
	assert.ErrorIs(t, err, lesson.ErrNotFound)
}

func TestLessonStoreCorruptRecord(t *testing.T) {
	db := newTestDB(t)
	rec := models.LessonRecord{LessonID: "broken", TextData: datatypes.JSON([]byte(`"not an array"`))}
	require.NoError(t, db.Create(&rec).Error)

	_, err := NewLessonStore(db).Load("broken")
	assert.ErrorIs(t, err, lesson.ErrInvalidFormat)
}
