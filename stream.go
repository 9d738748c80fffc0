package bpmap

// Stream is a finite, single-pass, non-restartable sequence of Entry
// produced by repeated Next calls, per spec.md §4.8. Concurrent writes
// are not snapshotted against: an insert made after a given Next call
// may or may not be reflected in later Stream output (spec.md §9 Open
// Question 5).
type Stream struct {
	h       Handle
	buf     []Entry
	pos     int
	lastKey *Key
	done    bool
}

// Stream returns a new Stream starting from the beginning of the key
// space.
func (h Handle) Stream() *Stream {
	return &Stream{h: h}
}

// Next returns the next entry in the stream, or ok=false once the
// stream is exhausted.
func (s *Stream) Next() (entry Entry, ok bool, err error) {
	for s.pos >= len(s.buf) {
		if s.done {
			return Entry{}, false, nil
		}
		entries, err := s.h.Next(s.lastKey)
		if err != nil {
			return Entry{}, false, err
		}
		if entries == nil {
			s.done = true
			return Entry{}, false, nil
		}
		s.buf = entries
		s.pos = 0
	}

	e := s.buf[s.pos]
	s.pos++
	last := e.Key
	s.lastKey = &last
	return e, true, nil
}
