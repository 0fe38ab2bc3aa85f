package randomizer

import "math/rand"

// Source supplies uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// NewSeeded returns a deterministic source for the given seed.
func NewSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
