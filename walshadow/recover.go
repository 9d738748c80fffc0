package walshadow

import "bpmap/diskfile"

// Recover runs the crash-recovery pass spec.md §4.4 requires at Open:
// replay a complete pending WAL record onto the primary file, then
// adopt a complete staged shadow payload if one exists; with neither,
// the primary file's own header is already authoritative.
//
// applyShadow receives a staged shadow payload and is responsible for
// decoding it and writing whatever it represents (a rebuilt free stack,
// a rebuilt header) onto primary; it is supplied by the operator package
// since shadow payload layout is operator-level, not WAL-level,
// knowledge.
func Recover(primary *diskfile.File, wal *Log, shadow *Shadow, applyShadow func(payload []byte) error) error {
	writes, ok, err := wal.ReadPendingRecord()
	if err != nil {
		return err
	}
	if ok {
		for _, w := range writes {
			if err := primary.WriteAt(w.Offset.FileOffset(), w.Data); err != nil {
				return err
			}
		}
		if err := primary.Flush(); err != nil {
			return err
		}
		if err := wal.Clear(); err != nil {
			return err
		}
	}

	payload, ok, err := shadow.ReadStaged()
	if err != nil {
		return err
	}
	if ok {
		if err := applyShadow(payload); err != nil {
			return err
		}
		if err := primary.Flush(); err != nil {
			return err
		}
		if err := shadow.Discard(); err != nil {
			return err
		}
	}

	return nil
}
