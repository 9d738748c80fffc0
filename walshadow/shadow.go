package walshadow

import (
	"bpmap/diskfile"
)

// Shadow stages writes too large or too structurally disruptive for a
// single WAL record — the initial free-stack bulk load, a header/root
// rebuild — so that either the whole staged write lands or none of it
// does, without ever leaving the primary file half-updated.
//
// Grounded on the same askorykh-goDB recovery.go replay idiom as the
// WAL (a completion marker written only after every byte of the payload
// is down and flushed; the shadow file carries no magic header), applied
// here to a stage-then-
// publish-then-discard lifecycle instead of append-many-then-truncate.
type Shadow struct {
	f    *diskfile.File
	path string
}

const shadowCompleteMarker = 0xA5

// OpenShadow opens or creates the shadow file at path. A freshly created
// file has no completion marker and is treated as empty.
func OpenShadow(path string) (*Shadow, error) {
	f, err := diskfile.Open(path, diskfile.OpenOptions{})
	if err != nil {
		return nil, err
	}
	return &Shadow{f: f, path: path}, nil
}

// Close releases the shadow file descriptor.
func (s *Shadow) Close() error { return s.f.Close() }

// Stage writes payload to the shadow file followed by a single
// completion-marker byte, flushing after each so the marker can never
// land before the payload it certifies.
func (s *Shadow) Stage(payload []byte) error {
	if err := s.f.Truncate(0); err != nil {
		return err
	}
	if err := s.f.WriteAt(0, payload); err != nil {
		return err
	}
	if err := s.f.Flush(); err != nil {
		return err
	}
	if err := s.f.WriteAt(int64(len(payload)), []byte{shadowCompleteMarker}); err != nil {
		return err
	}
	return s.f.Flush()
}

// Discard truncates the shadow file to empty, used once a staged
// payload has been durably applied to the primary file and no longer
// needs to be recoverable from the shadow.
func (s *Shadow) Discard() error {
	if err := s.f.Truncate(0); err != nil {
		return err
	}
	return s.f.Flush()
}

// ReadStaged returns the staged payload and true if the shadow file
// holds one complete, marker-terminated payload. A missing marker (the
// process crashed mid-Stage) reports ok=false with no error: the staged
// write never completed and is simply dropped, leaving the primary file
// and header as the sole source of truth.
func (s *Shadow) ReadStaged() (payload []byte, ok bool, err error) {
	size, err := s.f.Size()
	if err != nil {
		return nil, false, err
	}
	if size < 1 {
		return nil, false, nil
	}

	buf := make([]byte, size)
	if err := s.f.ReadAt(0, buf); err != nil {
		return nil, false, err
	}
	if buf[len(buf)-1] != shadowCompleteMarker {
		return nil, false, nil
	}
	return buf[:len(buf)-1], true, nil
}
