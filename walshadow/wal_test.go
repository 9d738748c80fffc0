package walshadow

import (
	"bytes"
	"path/filepath"
	"testing"
)

func Test_writeRecordThenReadPendingRoundTrip(t *testing.T) {
	l := openTempLog(t)
	defer l.Close()

	writes := []Write{
		{Offset: 1, Data: []byte("first page")},
		{Offset: 2, Data: []byte("second page")},
	}
	if err := l.WriteRecord(writes); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	got, ok, err := l.ReadPendingRecord()
	if err != nil {
		t.Fatalf("ReadPendingRecord: %v", err)
	}
	if !ok {
		t.Fatalf("expected a pending record")
	}
	if len(got) != len(writes) {
		t.Fatalf("got %d writes, want %d", len(got), len(writes))
	}
	for i := range writes {
		if got[i].Offset != writes[i].Offset || !bytes.Equal(got[i].Data, writes[i].Data) {
			t.Fatalf("write %d mismatch: got %+v, want %+v", i, got[i], writes[i])
		}
	}
}

func Test_clearLeavesNoPendingRecord(t *testing.T) {
	l := openTempLog(t)
	defer l.Close()

	if err := l.WriteRecord([]Write{{Offset: 1, Data: []byte("x")}}); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := l.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	_, ok, err := l.ReadPendingRecord()
	if err != nil {
		t.Fatalf("ReadPendingRecord: %v", err)
	}
	if ok {
		t.Fatalf("expected no pending record after Clear")
	}
}

func Test_freshLogHasNoPendingRecord(t *testing.T) {
	l := openTempLog(t)
	defer l.Close()

	_, ok, err := l.ReadPendingRecord()
	if err != nil {
		t.Fatalf("ReadPendingRecord: %v", err)
	}
	if ok {
		t.Fatalf("a freshly created WAL should have nothing pending")
	}
}

func Test_tornRecordIsDiscardedNotErrored(t *testing.T) {
	l := openTempLog(t)
	defer l.Close()

	if err := l.WriteRecord([]Write{{Offset: 1, Data: []byte("abcdefgh")}}); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	// Simulate a crash mid-append by dropping the last few bytes (the
	// checksum, or part of it) straight on the underlying file.
	size, err := l.f.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if err := l.f.Truncate(size - 2); err != nil {
		t.Fatalf("Truncate: %v", err)
	}

	_, ok, err := l.ReadPendingRecord()
	if err != nil {
		t.Fatalf("a torn record must be discarded, not surfaced as an error: %v", err)
	}
	if ok {
		t.Fatalf("a torn record must not be reported as valid")
	}
}

func Test_decodeRecordRejectsBadChecksum(t *testing.T) {
	body := encodeRecord([]Write{{Offset: 1, Data: []byte("x")}})
	body[len(body)-1] ^= 0xff // flip a checksum byte

	_, ok := decodeRecord(body)
	if ok {
		t.Fatalf("expected checksum mismatch to be rejected")
	}
}

func openTempLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "wal.log"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return l
}
