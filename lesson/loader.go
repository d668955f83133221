package lesson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound means no index entry matches the requested lesson id.
	ErrNotFound = errors.New("lesson not found")
	// ErrInvalidFormat means the document exists but lacks a well-formed
	// word-paragraph array.
	ErrInvalidFormat = errors.New("invalid lesson format")
)

// Loader fetches a lesson document by id.
type Loader interface {
	Load(id string) (*Lesson, error)
}

// IndexEntry is one row of the master index shipped with the content pack.
type IndexEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	TitleArabic string `json:"titleArabic"`
	Level       string `json:"level"`
	Path        string `json:"path"`
}

// IndexLoader resolves lessons through a master index over a content
// filesystem, typically an embed.FS.
type IndexLoader struct {
	fsys    fs.FS
	entries []IndexEntry
	byID    map[string]IndexEntry
}

// NewIndexLoader reads the master index at indexPath from fsys.
func NewIndexLoader(fsys fs.FS, indexPath string) (*IndexLoader, error) {
	raw, err := fs.ReadFile(fsys, indexPath)
	if err != nil {
		return nil, fmt.Errorf("read master index: %w", err)
	}
	var entries []IndexEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse master index: %w", err)
	}
	byID := make(map[string]IndexEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	return &IndexLoader{fsys: fsys, entries: entries, byID: byID}, nil
}

// Index returns the master index entries in authored order.
func (il *IndexLoader) Index() []IndexEntry {
	out := make([]IndexEntry, len(il.entries))
	copy(out, il.entries)
	return out
}

// Load fetches and validates the lesson with the given id.
func (il *IndexLoader) Load(id string) (*Lesson, error) {
	entry, ok := il.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	raw, err := fs.ReadFile(il.fsys, entry.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	var l Lesson
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	l.ID = id
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks that the document is well formed: textData is present
// (an empty array is a valid lesson with nothing to read), every word has
// at least one text form, and every quiz answer index is in range.
func (l *Lesson) Validate() error {
	if l.TextData == nil {
		return fmt.Errorf("%w: missing textData", ErrInvalidFormat)
	}
	for pi, para := range l.TextData {
		for wi, w := range para {
			if w.Gundul == "" && w.Berharakat == "" {
				return fmt.Errorf("%w: empty word at %d-%d", ErrInvalidFormat, pi, wi)
			}
		}
	}
	for qi, q := range l.QuizData {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("%w: question %d correctAnswer out of range", ErrInvalidFormat, qi)
		}
	}
	return nil
}
