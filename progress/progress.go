// Package progress tracks which lessons a user has completed.
package progress

// Store is the completed-lesson set. ToggleComplete flips membership, the
// way finishing a quiz marks a lesson done.
type Store interface {
	ToggleComplete(lessonID string) error
	IsComplete(lessonID string) (bool, error)
	Completed() ([]string, error)
}

// MemoryStore is a non-persistent Store for engines under test.
type MemoryStore struct {
	done map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{done: make(map[string]bool)}
}

func (m *MemoryStore) ToggleComplete(lessonID string) error {
	if m.done[lessonID] {
		delete(m.done, lessonID)
	} else {
		m.done[lessonID] = true
	}
	return nil
}

func (m *MemoryStore) IsComplete(lessonID string) (bool, error) {
	return m.done[lessonID], nil
}

func (m *MemoryStore) Completed() ([]string, error) {
	out := make([]string, 0, len(m.done))
	for id := range m.done {
		out = append(out, id)
	}
	return out, nil
}
