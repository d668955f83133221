// Package shuffle provides a seedable, unbiased Fisher–Yates shuffle.
package shuffle

import "math/rand"

// Strings returns a shuffled copy of in; the input is left untouched.
func Strings(rng *rand.Rand, in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Slice returns a shuffled copy of in for any element type.
func Slice[T any](rng *rand.Rand, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
