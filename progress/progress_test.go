package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreToggle(t *testing.T) {
	st := NewMemoryStore()

	require.NoError(t, st.ToggleComplete("l1"))
	done, err := st.IsComplete("l1")
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, st.ToggleComplete("l1"))
	done, err = st.IsComplete("l1")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestMemoryStoreCompleted(t *testing.T) {
	st := NewMemoryStore()
	require.NoError(t, st.ToggleComplete("a"))
	require.NoError(t, st.ToggleComplete("b"))

	ids, err := st.Completed()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
