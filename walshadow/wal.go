// Package walshadow implements the durability protocol from spec.md
// §4.4: a write-ahead log that makes a single request's batch of page
// writes atomic across crashes, and a shadow file used to stage the rare
// writes too large for a single WAL record (the initial free-stack load,
// a header/root rebuild).
//
// No teacher repo has a WAL; this is grounded on
// askorykh-goDB/internal/storage/filestore/{wal.go,recovery.go}'s magic
// header + typed/length-prefixed record framing and replay-then-truncate
// recovery flow, adapted from per-row SQL records to page-offset/byte
// write batches with a trailing checksum (askorykh-goDB's WAL has no
// checksum; spec.md §4.4 requires one, so that part is new).
package walshadow

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"bpmap/diskfile"
	"bpmap/page"
)

var walMagic = [4]byte{'B', 'P', 'W', 'L'}

// Write is one (offset, bytes) pair in a commit batch.
type Write struct {
	Offset page.PageOffset
	Data   []byte
}

// Log owns the WAL file for one open database.
type Log struct {
	f *diskfile.File
}

// Open opens or creates the WAL file at path, writing the magic header
// if the file is new.
func Open(path string) (*Log, error) {
	f, err := diskfile.Open(path, diskfile.OpenOptions{})
	if err != nil {
		return nil, err
	}
	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		if err := f.WriteAt(0, walMagic[:]); err != nil {
			return nil, err
		}
		if err := f.Flush(); err != nil {
			return nil, err
		}
	}
	return &Log{f: f}, nil
}

// Close releases the WAL file descriptor.
func (l *Log) Close() error { return l.f.Close() }

// encodeRecord serializes a commit batch: count, then (offset, length,
// bytes) per write, then a trailing CRC32 over everything written so
// far (count through the last write's bytes).
func encodeRecord(writes []Write) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(writes)))
	for _, w := range writes {
		_ = binary.Write(&buf, binary.LittleEndian, uint32(w.Offset))
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(w.Data)))
		buf.Write(w.Data)
	}
	sum := crc32.ChecksumIEEE(buf.Bytes())
	_ = binary.Write(&buf, binary.LittleEndian, sum)
	return buf.Bytes()
}

// WriteRecord appends writes as a single framed record and flushes the
// WAL. The record replaces any previous one: since the core processes
// one request at a time (spec.md §5), at most one commit is ever pending
// in the WAL, so each WriteRecord starts fresh right after the magic
// header rather than growing the file indefinitely.
func (l *Log) WriteRecord(writes []Write) error {
	record := encodeRecord(writes)
	if err := l.f.Truncate(int64(len(walMagic))); err != nil {
		return err
	}
	if err := l.f.WriteAt(int64(len(walMagic)), record); err != nil {
		return err
	}
	return l.f.Flush()
}

// Clear truncates the WAL back to just its magic header, marking the
// pending transaction as committed (step 4 of spec.md §4.4's commit
// protocol).
func (l *Log) Clear() error {
	if err := l.f.Truncate(int64(len(walMagic))); err != nil {
		return err
	}
	return l.f.Flush()
}

// ReadPendingRecord reads and validates whatever record currently sits
// in the WAL (used at Open, and only there, to replay a crash). ok is
// false — with no error — when the WAL holds no record, or holds one
// that is incomplete or checksum-mismatched: both are crashes-before-
// commit-completed and mean the transaction never durably committed, so
// it is simply discarded per spec.md §4.4.
func (l *Log) ReadPendingRecord() (writes []Write, ok bool, err error) {
	size, err := l.f.Size()
	if err != nil {
		return nil, false, err
	}
	if size <= int64(len(walMagic)) {
		return nil, false, nil
	}

	body := make([]byte, size-int64(len(walMagic)))
	if err := l.f.ReadAt(int64(len(walMagic)), body); err != nil {
		return nil, false, err
	}

	writes, valid := decodeRecord(body)
	if !valid {
		return nil, false, nil
	}
	return writes, true, nil
}

// decodeRecord parses and checksum-validates a record body. A torn or
// truncated record (from a crash mid-append) simply fails validation.
func decodeRecord(body []byte) ([]Write, bool) {
	if len(body) < 8 {
		return nil, false
	}

	r := bytes.NewReader(body)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, false
	}

	writes := make([]Write, 0, count)
	for i := uint32(0); i < count; i++ {
		var offset, length uint32
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return nil, false
		}
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, false
		}
		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, false
		}
		writes = append(writes, Write{Offset: page.PageOffset(offset), Data: data})
	}

	var wantSum uint32
	if err := binary.Read(r, binary.LittleEndian, &wantSum); err != nil {
		return nil, false
	}
	if r.Len() != 0 {
		return nil, false // trailing garbage: torn write
	}

	gotSum := crc32.ChecksumIEEE(body[:len(body)-4])
	if gotSum != wantSum {
		return nil, false
	}
	return writes, true
}
