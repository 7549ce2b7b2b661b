// ABOUTME: Bounded set of article links already delivered to the rotation queue
// ABOUTME: Clears wholesale on overflow, trading occasional repeats for bounded memory

package rotate

// DefaultSeenCap bounds the seen-link set.
const DefaultSeenCap = 1000

// SeenLinks remembers which article links have already been queued across
// refresh cycles. When the set grows past its cap it is cleared wholesale, so
// a previously seen link becomes new again. Not safe for concurrent use; the
// rotation engine guards it with its own lock.
type SeenLinks struct {
	cap   int
	links map[string]struct{}
}

// NewSeenLinks creates a set that clears once it exceeds cap entries.
// A non-positive cap falls back to DefaultSeenCap.
func NewSeenLinks(cap int) *SeenLinks {
	if cap <= 0 {
		cap = DefaultSeenCap
	}
	return &SeenLinks{
		cap:   cap,
		links: make(map[string]struct{}),
	}
}

// Has reports whether link has been seen since the last overflow clear.
func (s *SeenLinks) Has(link string) bool {
	_, ok := s.links[link]
	return ok
}

// Add records link. If the set then exceeds its cap, everything is forgotten.
func (s *SeenLinks) Add(link string) {
	s.links[link] = struct{}{}
	if len(s.links) > s.cap {
		s.links = make(map[string]struct{})
	}
}

// Len returns the number of links currently remembered.
func (s *SeenLinks) Len() int {
	return len(s.links)
}
