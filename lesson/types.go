package lesson

import (
	"regexp"
	"unicode/utf8"
)

// Position places a dialect gloss relative to its word.
type Position string

const (
	PositionTop         Position = "top"
	PositionBottom      Position = "bottom"
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
)

// DialectGloss is a small positioned symbol annotation near a word
// (nga-logat), purely presentational. A word may carry several.
type DialectGloss struct {
	Symbol   string   `json:"symbol"`
	Position Position `json:"position"`
}

// Word is a single token of the lesson text. Berharakat is the fully
// vocalized form, Gundul the bare form shown before any reveal.
type Word struct {
	Berharakat     string         `json:"berharakat"`
	Gundul         string         `json:"gundul"`
	Terjemahan     string         `json:"terjemahan,omitempty"`
	Irab           string         `json:"irab,omitempty"`
	Link           string         `json:"link,omitempty"`
	NgaLogat       []DialectGloss `json:"nga_logat,omitempty"`
	TasykilOptions []string       `json:"tasykil_options,omitempty"`
}

// Paragraph is an ordered run of words. Its index inside Lesson.TextData
// is its identity.
type Paragraph []Word

// Question is one multiple-choice quiz item. CorrectAnswer indexes into
// Options as authored; option order shown to the user is shuffled elsewhere.
type Question struct {
	Question      string   `json:"question"`
	Context       string   `json:"context,omitempty"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Lesson is one loaded document. Immutable once loaded; engines hold a
// reference and never mutate it.
type Lesson struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	TitleArabic     string      `json:"titleArabic"`
	Level           string      `json:"level"`
	TextData        []Paragraph `json:"textData"`
	QuizData        []Question  `json:"quizData,omitempty"`
	FullTranslation string      `json:"fullTranslation,omitempty"`
	Reference       string      `json:"reference,omitempty"`
}

// Lesson levels as used by the master index.
const (
	LevelIbtidai    = "Ibtida’i"
	LevelMutawassit = "Mutawassit"
	LevelMutaqaddim = "Mutaqaddim"
)

var punctuationRe = regexp.MustCompile(`[.،؟:!()"«»]`)

// Punctuation reports whether the word is a short punctuation token.
// Punctuation never receives click or double-click handling.
func (w Word) Punctuation() bool {
	return utf8.RuneCountInString(w.Gundul) < 3 && punctuationRe.MatchString(w.Gundul)
}

// Interactive reports whether the word takes part in the tasykil drill,
// i.e. it carries at least one distractor vocalization.
func (w Word) Interactive() bool {
	return len(w.TasykilOptions) > 0
}

// Word returns the word at addr, or false if the address does not exist
// in this document. Stale addresses are a lookup miss, never a panic.
func (l *Lesson) Word(addr Address) (Word, bool) {
	if addr.Paragraph < 0 || addr.Paragraph >= len(l.TextData) {
		return Word{}, false
	}
	p := l.TextData[addr.Paragraph]
	if addr.Word < 0 || addr.Word >= len(p) {
		return Word{}, false
	}
	return p[addr.Word], true
}

// InteractiveWord pairs an interactive word with its address.
type InteractiveWord struct {
	Address Address
	Word    Word
}

// InteractiveWords flattens the paragraphs in document order and keeps the
// words with distractors. The returned order is the drill question order;
// it is deterministic for a given document.
func (l *Lesson) InteractiveWords() []InteractiveWord {
	var out []InteractiveWord
	for pi, para := range l.TextData {
		for wi, w := range para {
			if w.Interactive() {
				out = append(out, InteractiveWord{
					Address: Address{Paragraph: pi, Word: wi},
					Word:    w,
				})
			}
		}
	}
	return out
}
