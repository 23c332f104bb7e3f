package service

// Sequence hands out monotonically increasing identifiers. Each service owns
// its own so tests can start from a known value.
type Sequence struct {
	next int64
}

// NewSequence returns a sequence whose first value is start.
func NewSequence(start int64) *Sequence {
	return &Sequence{next: start}
}

func (s *Sequence) Next() int64 {
	id := s.next
	s.next++
	return id
}

// Peek returns the value Next would hand out.
func (s *Sequence) Peek() int64 { return s.next }
