package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.True(t, d.IsHarakatMode)
	assert.True(t, d.IsSoundEnabled)
	assert.False(t, d.IsTranslationMode)
	assert.False(t, d.IsTasykilMode)
	assert.Equal(t, 1.875, d.ArabicSize)
	assert.Equal(t, 2.5, d.LineHeight)
	assert.NotEmpty(t, d.ArabicFontFamily)
}

func TestPartialApply(t *testing.T) {
	s := Defaults()

	off := false
	size := 2.25
	Partial{IsHarakatMode: &off, ArabicSize: &size}.Apply(&s)

	assert.False(t, s.IsHarakatMode)
	assert.Equal(t, 2.25, s.ArabicSize)
	// Untouched fields keep their values.
	assert.True(t, s.IsSoundEnabled)
	assert.Equal(t, 2.5, s.LineHeight)
}

func TestVisible(t *testing.T) {
	// showAll wins regardless of mode or per-word state.
	assert.True(t, Visible(true, false, false))
	assert.True(t, Visible(true, true, true))

	// Otherwise both the mode and the per-word flag are required.
	assert.True(t, Visible(false, true, true))
	assert.False(t, Visible(false, true, false))
	assert.False(t, Visible(false, false, true))
	assert.False(t, Visible(false, false, false))
}

func TestToggleHarakatModeDropsShowAll(t *testing.T) {
	s := Defaults()
	s.IsHarakatMode = true
	s.ShowAllHarakat = true

	ToggleHarakatMode(s).Apply(&s)
	assert.False(t, s.IsHarakatMode)
	assert.False(t, s.ShowAllHarakat)

	// Turning the mode back on does not resurrect show-all.
	ToggleHarakatMode(s).Apply(&s)
	assert.True(t, s.IsHarakatMode)
	assert.False(t, s.ShowAllHarakat)
}

func TestToggleNgaLogatModeDropsShowAll(t *testing.T) {
	s := Defaults()
	s.IsNgaLogatMode = true
	s.ShowAllNgaLogat = true

	ToggleNgaLogatMode(s).Apply(&s)
	assert.False(t, s.IsNgaLogatMode)
	assert.False(t, s.ShowAllNgaLogat)
}

func TestToggleTranslationModeKeepsShowAll(t *testing.T) {
	s := Defaults()
	s.IsTranslationMode = true
	s.ShowAllTranslations = true

	ToggleTranslationMode(s).Apply(&s)
	assert.False(t, s.IsTranslationMode)
	assert.True(t, s.ShowAllTranslations)
}
