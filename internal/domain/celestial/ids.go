package celestial

// FirstID is the first id handed out by a fresh IDSequence.
const FirstID = 1000

// IDSequence is a monotonically increasing id source for bodies.
// Ids are never reused, even after the body holding one is deleted.
// It is not safe for concurrent use.
type IDSequence struct {
	next int
}

// NewIDSequence returns a sequence starting at FirstID.
func NewIDSequence() *IDSequence {
	return &IDSequence{next: FirstID}
}

// Next returns the next id and advances the sequence.
func (s *IDSequence) Next() int {
	id := s.next
	s.next++
	return id
}

// Peek returns the id the next call to Next will hand out.
func (s *IDSequence) Peek() int {
	return s.next
}

// Observe moves the sequence past id so that an id restored from storage is
// never handed out again.
func (s *IDSequence) Observe(id int) {
	if id >= s.next {
		s.next = id + 1
	}
}
