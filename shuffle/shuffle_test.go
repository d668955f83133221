package shuffle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringsIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	in := []string{"a", "b", "c", "d", "e"}

	out := Strings(rng, in)
	require.Len(t, out, len(in))
	assert.ElementsMatch(t, in, out)

	// Input untouched.
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, in)
}

func TestStringsSeedDeterminism(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f"}
	first := Strings(rand.New(rand.NewSource(42)), in)
	second := Strings(rand.New(rand.NewSource(42)), in)
	assert.Equal(t, first, second)
}

func TestSlice(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := []int{1, 2, 3, 4}

	out := Slice(rng, in)
	assert.ElementsMatch(t, in, out)
	assert.Equal(t, []int{1, 2, 3, 4}, in)
}

func TestEmptyAndSingle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	assert.Empty(t, Strings(rng, nil))
	assert.Equal(t, []string{"x"}, Strings(rng, []string{"x"}))
}
