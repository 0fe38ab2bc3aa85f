package randomizer

// Sequence replays a fixed list of draws, wrapping around when exhausted.
type Sequence struct {
	draws []float64
	next  int
}

// NewSequence returns a source that yields draws in order.
func NewSequence(draws ...float64) *Sequence {
	return &Sequence{draws: draws}
}

// Float64 returns the next draw, or 0 for an empty sequence.
func (s *Sequence) Float64() float64 {
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.next]
	s.next = (s.next + 1) % len(s.draws)
	return v
}

// Reset rewinds the sequence to its first draw.
func (s *Sequence) Reset() {
	s.next = 0
}
