package diskfile

import (
	"bytes"
	"path/filepath"
	"testing"

	"bpmap/page"
)

func Test_writeAtThenReadAtRoundTrip(t *testing.T) {
	f := openTemp(t)
	defer f.Close()

	data := []byte("some page bytes")
	if err := f.WriteAt(128, data); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}

	got := make([]byte, len(data))
	if err := f.ReadAt(128, got); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if !bytes.Equal(data, got) {
		t.Fatalf("got %q, want %q", got, data)
	}
}

func Test_sizeReflectsWrites(t *testing.T) {
	f := openTemp(t)
	defer f.Close()

	if err := f.WriteAt(0, make([]byte, page.Len)); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	size, err := f.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	assertEqual(t, int64(page.Len), size, "")
}

func Test_writeRangeRejectsWrongLength(t *testing.T) {
	f := openTemp(t)
	defer f.Close()

	r := page.PageRange{Offset: 0, Count: 1}
	err := f.WriteRange(r, make([]byte, page.Len-1))
	if err == nil {
		t.Fatalf("expected an error for a length mismatch")
	}
}

func Test_readRangeWriteRangeRoundTrip(t *testing.T) {
	f := openTemp(t)
	defer f.Close()

	r := page.PageRange{Offset: 2, Count: 3}
	data := bytes.Repeat([]byte{0x7}, r.ByteLen())
	if err := f.WriteRange(r, data); err != nil {
		t.Fatalf("WriteRange: %v", err)
	}
	got, err := f.ReadRange(r)
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if !bytes.Equal(data, got) {
		t.Fatalf("range round trip mismatch")
	}
}

func Test_truncateShrinksFile(t *testing.T) {
	f := openTemp(t)
	defer f.Close()

	if err := f.WriteAt(0, make([]byte, page.Len*2)); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if err := f.Truncate(page.Len); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	size, err := f.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	assertEqual(t, int64(page.Len), size, "")
}

func Test_existsReportsPresence(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nope")
	ok, err := Exists(p)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	assertEqual(t, false, ok, "")

	f := openAt(t, p)
	f.Close()
	ok, err = Exists(p)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	assertEqual(t, true, ok, "")
}

func Test_removeToleratesMissingFile(t *testing.T) {
	dir := t.TempDir()
	err := Remove(filepath.Join(dir, "never-existed"))
	if err != nil {
		t.Fatalf("Remove on a missing file should not error: %v", err)
	}
}

func openTemp(t *testing.T) *File {
	t.Helper()
	return openAt(t, filepath.Join(t.TempDir(), "data.bpmap"))
}

func openAt(t *testing.T, path string) *File {
	t.Helper()
	f, err := Open(path, OpenOptions{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return f
}

func assertEqual[T comparable](t *testing.T, expected T, actual T, msg string) {
	t.Helper()
	if expected == actual {
		return
	}
	if msg != "" {
		t.Errorf("expected (%+v) is not equal to actual (%+v): (%v)", expected, actual, msg)
	} else {
		t.Errorf("expected (%+v) is not equal to actual (%+v)", expected, actual)
	}
}
