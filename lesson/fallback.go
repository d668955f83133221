package lesson

import "errors"

// FallbackLoader tries each loader in order, moving on only when the
// lesson is not found. Used to let Studio-authored documents shadow the
// embedded content pack.
type FallbackLoader []Loader

func (fl FallbackLoader) Load(id string) (*Lesson, error) {
	var lastErr error = ErrNotFound
	for _, l := range fl {
		doc, err := l.Load(id)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
