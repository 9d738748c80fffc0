package page

import (
	"bytes"
	"testing"
)

func Test_recordEncodeDecodeRoundTrip(t *testing.T) {
	content := bytes.Repeat([]byte{0x42}, 1000)
	r, err := NewRecord(content)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}

	decoded, err := DecodeRecord(r.Encode())
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if !bytes.Equal(content, decoded.Content) {
		t.Fatalf("content round trip mismatch: got %d bytes, want %d", len(decoded.Content), len(content))
	}
}

func Test_recordPageCountExactBoundary(t *testing.T) {
	// A value that exactly fills one page once the 4-byte length prefix
	// is counted must still take exactly one page, not spill to two.
	content := make([]byte, Len-4)
	r, err := NewRecord(content)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	assertEqual(t, uint8(1), r.PageCount(), "")

	content2 := make([]byte, Len-3)
	r2, err := NewRecord(content2)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	assertEqual(t, uint8(2), r2.PageCount(), "one byte over a page boundary spills to a second page")
}

func Test_recordRejectsOversizedValue(t *testing.T) {
	_, err := NewRecord(make([]byte, MaxValueLen+1))
	if err == nil {
		t.Fatalf("expected an error for a value over MaxValueLen")
	}
}
