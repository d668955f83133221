package settings

// Store persists one Settings record. Get must merge newly introduced
// default fields into previously persisted records without discarding
// user-set values; Update shallow-merges and replaces.
type Store interface {
	Get() (Settings, error)
	Update(Partial) error
	ResetToDefaults() error
}

// MemoryStore is a non-persistent Store for engines under test.
type MemoryStore struct {
	current Settings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{current: Defaults()}
}

func (m *MemoryStore) Get() (Settings, error) { return m.current, nil }

func (m *MemoryStore) Update(p Partial) error {
	p.Apply(&m.current)
	return nil
}

func (m *MemoryStore) ResetToDefaults() error {
	m.current = Defaults()
	return nil
}
