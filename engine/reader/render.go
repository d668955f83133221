package reader

import (
	"embed"
	"encoding/json"
	"strings"

	"sorogan/lesson"
)

//go:embed data/ngalogat-symbol-colors.json
var colorFS embed.FS

// DefaultGlossColor is used when color coding is off or a symbol has no
// mapping.
const DefaultGlossColor = "default"

// tooltipPadding widens the tooltip slightly past the measured text.
const tooltipPadding = 16

// SymbolColors loads the authored nga-logat symbol-to-color table.
func SymbolColors() map[string]string {
	raw, err := colorFS.ReadFile("data/ngalogat-symbol-colors.json")
	if err != nil {
		return map[string]string{}
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]string{}
	}
	return m
}

// TextMeasurer reports the rendered width of a text run. The view layer
// supplies the real implementation; tests use fixed-width fakes.
type TextMeasurer interface {
	TextWidth(s string) float64
}

// GlossView is one dialect-gloss overlay ready to draw.
type GlossView struct {
	Symbol   string          `json:"symbol"`
	Position lesson.Position `json:"position"`
	Color    string          `json:"color"`
}

// Tooltip is the word-gloss box shown under a word.
type Tooltip struct {
	Text  string  `json:"text"`
	Width float64 `json:"width"`
}

// WordView is the fully resolved presentation of one word. Producing it has
// no side effects; click handling stays with the controller.
type WordView struct {
	Text        string      `json:"text"`
	Punctuation bool        `json:"punctuation"`
	Glosses     []GlossView `json:"glosses,omitempty"`
	Tooltip     *Tooltip    `json:"tooltip,omitempty"`
}

// Render derives the display of w under the given visibility triple.
// colors may be nil; measurer may be nil when no tooltip sizing is wanted.
func Render(w lesson.Word, vis Visibility, colorCoding bool, colors map[string]string, measurer TextMeasurer) WordView {
	view := WordView{Punctuation: w.Punctuation()}

	view.Text = w.Gundul
	if vis.Harakat {
		view.Text = w.Berharakat
	}

	if vis.NgaLogat {
		for _, g := range w.NgaLogat {
			color := DefaultGlossColor
			if colorCoding {
				if c, ok := colors[g.Symbol]; ok {
					color = c
				}
			}
			view.Glosses = append(view.Glosses, GlossView{
				Symbol:   g.Symbol,
				Position: g.Position,
				Color:    color,
			})
		}
	}

	if vis.Translation && w.Terjemahan != "" {
		view.Tooltip = &Tooltip{
			Text:  w.Terjemahan,
			Width: tooltipWidth(view.Text, w.Terjemahan, measurer),
		}
	}

	return view
}

// tooltipWidth sizes the tooltip to the wider of the Arabic text and the
// longest single word of the translation, so the gloss never wraps
// mid-word under a narrow token.
func tooltipWidth(arabic, translation string, m TextMeasurer) float64 {
	if m == nil {
		return 0
	}
	width := m.TextWidth(arabic)
	for _, word := range strings.Fields(translation) {
		if w := m.TextWidth(word); w > width {
			width = w
		}
	}
	return width + tooltipPadding
}
