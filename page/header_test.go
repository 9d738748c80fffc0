package page

import "testing"

func Test_newHeaderIsEmpty(t *testing.T) {
	h := NewHeader()
	assertEqual(t, true, h.IsEmpty(), "a fresh header has no root")
	assertEqual(t, PageOffset(1), h.NextPageOffset, "page 0 is reserved for the header itself")
	assertEqual(t, int64(Len), h.FileSize(), "")
}

func Test_headerEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{FreeStackTop: 7, RootNode: 3, NextPageOffset: 12}
	decoded, err := DecodeHeader(h.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertEqual(t, h, decoded, "")
}

func Test_decodeHeaderRejectsWrongSize(t *testing.T) {
	_, err := DecodeHeader(make([]byte, Len-1))
	if err == nil {
		t.Fatalf("expected an error decoding a short buffer")
	}
}
