package settings

// Settings is the flat record of display-mode flags and typography persisted
// per user. JSON keys match the original content pack so exported settings
// stay portable.
type Settings struct {
	IsHarakatMode          bool `json:"isHarakatMode"`
	IsTranslationMode      bool `json:"isTranslationMode"`
	ShowAllTranslations    bool `json:"showAllTranslations"`
	ShowAllHarakat         bool `json:"showAllHarakat"`
	IsFocusMode            bool `json:"isFocusMode"`
	IsNgaLogatMode         bool `json:"isNgaLogatMode"`
	ShowAllNgaLogat        bool `json:"showAllNgaLogat"`
	UseNgaLogatColorCoding bool `json:"useNgaLogatColorCoding"`
	IsTasykilMode          bool `json:"isTasykilMode"`
	IsSoundEnabled         bool `json:"isSoundEnabled"`

	ArabicSize       float64 `json:"arabicSize"`
	LineHeight       float64 `json:"lineHeight"`
	WordSpacing      float64 `json:"wordSpacing"`
	TooltipSize      float64 `json:"tooltipSize"`
	IrabSize         float64 `json:"irabSize"`
	ArabicFontFamily string  `json:"arabicFontFamily"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() Settings {
	return Settings{
		IsHarakatMode:  true,
		IsSoundEnabled: true,

		ArabicSize:       1.875,
		LineHeight:       2.5,
		WordSpacing:      0.25,
		TooltipSize:      0.8,
		IrabSize:         1.5,
		ArabicFontFamily: `"Noto Naskh Arabic", serif`,
	}
}

// Partial is a shallow patch: only non-nil fields are applied.
type Partial struct {
	IsHarakatMode          *bool `json:"isHarakatMode,omitempty"`
	IsTranslationMode      *bool `json:"isTranslationMode,omitempty"`
	ShowAllTranslations    *bool `json:"showAllTranslations,omitempty"`
	ShowAllHarakat         *bool `json:"showAllHarakat,omitempty"`
	IsFocusMode            *bool `json:"isFocusMode,omitempty"`
	IsNgaLogatMode         *bool `json:"isNgaLogatMode,omitempty"`
	ShowAllNgaLogat        *bool `json:"showAllNgaLogat,omitempty"`
	UseNgaLogatColorCoding *bool `json:"useNgaLogatColorCoding,omitempty"`
	IsTasykilMode          *bool `json:"isTasykilMode,omitempty"`
	IsSoundEnabled         *bool `json:"isSoundEnabled,omitempty"`

	ArabicSize       *float64 `json:"arabicSize,omitempty"`
	LineHeight       *float64 `json:"lineHeight,omitempty"`
	WordSpacing      *float64 `json:"wordSpacing,omitempty"`
	TooltipSize      *float64 `json:"tooltipSize,omitempty"`
	IrabSize         *float64 `json:"irabSize,omitempty"`
	ArabicFontFamily *string  `json:"arabicFontFamily,omitempty"`
}

// Apply merges the set fields of p into s.
func (p Partial) Apply(s *Settings) {
	if p.IsHarakatMode != nil {
		s.IsHarakatMode = *p.IsHarakatMode
	}
	if p.IsTranslationMode != nil {
		s.IsTranslationMode = *p.IsTranslationMode
	}
	if p.ShowAllTranslations != nil {
		s.ShowAllTranslations = *p.ShowAllTranslations
	}
	if p.ShowAllHarakat != nil {
		s.ShowAllHarakat = *p.ShowAllHarakat
	}
	if p.IsFocusMode != nil {
		s.IsFocusMode = *p.IsFocusMode
	}
	if p.IsNgaLogatMode != nil {
		s.IsNgaLogatMode = *p.IsNgaLogatMode
	}
	if p.ShowAllNgaLogat != nil {
		s.ShowAllNgaLogat = *p.ShowAllNgaLogat
	}
	if p.UseNgaLogatColorCoding != nil {
		s.UseNgaLogatColorCoding = *p.UseNgaLogatColorCoding
	}
	if p.IsTasykilMode != nil {
		s.IsTasykilMode = *p.IsTasykilMode
	}
	if p.IsSoundEnabled != nil {
		s.IsSoundEnabled = *p.IsSoundEnabled
	}
	if p.ArabicSize != nil {
		s.ArabicSize = *p.ArabicSize
	}
	if p.LineHeight != nil {
		s.LineHeight = *p.LineHeight
	}
	if p.WordSpacing != nil {
		s.WordSpacing = *p.WordSpacing
	}
	if p.TooltipSize != nil {
		s.TooltipSize = *p.TooltipSize
	}
	if p.IrabSize != nil {
		s.IrabSize = *p.IrabSize
	}
	if p.ArabicFontFamily != nil {
		s.ArabicFontFamily = *p.ArabicFontFamily
	}
}

// Visible is the effective per-word visibility rule shared by every display
// mode: a word is revealed when its show-all flag is on, or its mode is
// active and the word was toggled individually.
func Visible(showAll, modeActive, perWord bool) bool {
	return showAll || (modeActive && perWord)
}

func boolPtr(b bool) *bool { return &b }

// ToggleHarakatMode flips harakat mode. Turning the mode off also drops
// show-all-harakat, matching the toolbar behavior.
func ToggleHarakatMode(s Settings) Partial {
	next := !s.IsHarakatMode
	showAll := s.ShowAllHarakat
	if !next {
		showAll = false
	}
	return Partial{IsHarakatMode: boolPtr(next), ShowAllHarakat: boolPtr(showAll)}
}

// ToggleTranslationMode flips translation mode. Unlike harakat and nga-logat,
// show-all-translations is left untouched when the mode goes off.
func ToggleTranslationMode(s Settings) Partial {
	return Partial{IsTranslationMode: boolPtr(!s.IsTranslationMode)}
}

// ToggleNgaLogatMode flips nga-logat mode, dropping show-all-nga-logat when
// the mode goes off.
func ToggleNgaLogatMode(s Settings) Partial {
	next := !s.IsNgaLogatMode
	showAll := s.ShowAllNgaLogat
	if !next {
		showAll = false
	}
	return Partial{IsNgaLogatMode: boolPtr(next), ShowAllNgaLogat: boolPtr(showAll)}
}
