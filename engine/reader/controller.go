// Package reader implements the lesson reading surface: per-word reveal
// state, focus-paragraph tracking and the pure word renderer.
package reader

import (
	"sorogan/engine"
	"sorogan/lesson"
	"sorogan/settings"
)

// Controller owns the transient interaction state of one open lesson.
// All methods are synchronous; the host serializes calls.
type Controller struct {
	doc    *lesson.Lesson
	cfg    settings.Settings
	detail engine.DetailSurface

	harakat     map[lesson.Address]bool
	translation map[lesson.Address]bool
	ngaLogat    map[lesson.Address]bool
	focus       int
}

func NewController(doc *lesson.Lesson, cfg settings.Settings, detail engine.DetailSurface) *Controller {
	if detail == nil {
		detail = engine.NopDetailSurface{}
	}
	c := &Controller{doc: doc, cfg: cfg, detail: detail}
	c.ResetAll()
	return c
}

// ResetAll clears every reveal map and the focus paragraph. Called on
// lesson switch and on global settings reset.
func (c *Controller) ResetAll() {
	c.harakat = make(map[lesson.Address]bool)
	c.translation = make(map[lesson.Address]bool)
	c.ngaLogat = make(map[lesson.Address]bool)
	c.focus = 0
}

// SetLesson swaps the document and drops all reveal history.
func (c *Controller) SetLesson(doc *lesson.Lesson) {
	c.doc = doc
	c.ResetAll()
}

// ApplySettings installs a fresh settings snapshot. Toggling any display
// mode clears that mode's reveal map; a word's reveal history never
// survives a mode toggle.
func (c *Controller) ApplySettings(next settings.Settings) {
	if next.IsHarakatMode != c.cfg.IsHarakatMode {
		c.harakat = make(map[lesson.Address]bool)
	}
	if next.IsTranslationMode != c.cfg.IsTranslationMode {
		c.translation = make(map[lesson.Address]bool)
	}
	if next.IsNgaLogatMode != c.cfg.IsNgaLogatMode {
		c.ngaLogat = make(map[lesson.Address]bool)
	}
	c.cfg = next
}

// Settings returns the current snapshot.
func (c *Controller) Settings() settings.Settings { return c.cfg }

// Lesson returns the open document.
func (c *Controller) Lesson() *lesson.Lesson { return c.doc }

// Click focuses the word's paragraph and flips the word's reveal flag in
// every mode that is currently active. Toggles are independent: with all
// three modes on, one click flips all three. Punctuation and stale
// addresses are no-ops.
func (c *Controller) Click(addr lesson.Address) {
	w, ok := c.doc.Word(addr)
	if !ok || w.Punctuation() {
		return
	}
	c.focus = addr.Paragraph
	if c.cfg.IsHarakatMode {
		c.harakat[addr] = !c.harakat[addr]
	}
	if c.cfg.IsTranslationMode {
		c.translation[addr] = !c.translation[addr]
	}
	if c.cfg.IsNgaLogatMode {
		c.ngaLogat[addr] = !c.ngaLogat[addr]
	}
}

// DoubleClick opens the detail surface with the word's I'rab note. Words
// without a note, punctuation and stale addresses are no-ops.
func (c *Controller) DoubleClick(addr lesson.Address) {
	w, ok := c.doc.Word(addr)
	if !ok || w.Punctuation() || w.Irab == "" {
		return
	}
	c.detail.Open(engine.Detail{
		Title:     w.Berharakat,
		Body:      w.Irab,
		Direction: "rtl",
		Link:      w.Link,
	})
}

// Visibility is the resolved reveal state of one word.
type Visibility struct {
	Harakat     bool `json:"harakat"`
	Translation bool `json:"translation"`
	NgaLogat    bool `json:"ngaLogat"`
}

// Visibility resolves the effective visibility triple for addr.
func (c *Controller) Visibility(addr lesson.Address) Visibility {
	return Visibility{
		Harakat:     settings.Visible(c.cfg.ShowAllHarakat, c.cfg.IsHarakatMode, c.harakat[addr]),
		Translation: settings.Visible(c.cfg.ShowAllTranslations, c.cfg.IsTranslationMode, c.translation[addr]),
		NgaLogat:    settings.Visible(c.cfg.ShowAllNgaLogat, c.cfg.IsNgaLogatMode, c.ngaLogat[addr]),
	}
}

// FocusParagraph returns the index of the paragraph holding focus.
func (c *Controller) FocusParagraph() int { return c.focus }

// ParagraphDimmed reports whether paragraph p should be de-emphasized.
// Only meaningful while focus mode is active.
func (c *Controller) ParagraphDimmed(p int) bool {
	return c.cfg.IsFocusMode && p != c.focus
}
