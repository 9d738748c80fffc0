package page

import (
	"encoding/binary"
	"fmt"
)

// Header is page 0: three little-endian uint32 fields followed by zero
// padding to fill the page.
type Header struct {
	// FreeStackTop is Null when no free-stack node is recorded, otherwise
	// the offset of the first free-stack node.
	FreeStackTop PageOffset
	// RootNode is Null when the map is empty, otherwise the offset of the
	// leaf or internal node that roots the tree.
	RootNode PageOffset
	// NextPageOffset is the high-water mark: the next offset handed out
	// when the free stack has no suitable range.
	NextPageOffset PageOffset
}

// NewHeader returns an empty header: no free stack, no root, and the
// first allocatable page starting right after the header itself.
func NewHeader() Header {
	return Header{FreeStackTop: Null, RootNode: Null, NextPageOffset: 1}
}

// IsEmpty reports whether the map described by this header has no
// entries.
func (h Header) IsEmpty() bool { return h.RootNode.IsNull() }

// FileSize returns the size, in bytes, of the primary file as implied by
// the high-water mark.
func (h Header) FileSize() int64 { return h.NextPageOffset.FileOffset() }

// Encode serializes the header to a freshly allocated, zero-padded page.
func (h Header) Encode() []byte {
	buf := make([]byte, Len)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.FreeStackTop))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(h.RootNode))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(h.NextPageOffset))
	return buf
}

// DecodeHeader parses a header page. buf must be exactly Len bytes; any
// violation is a structural-corruption (Broken) condition for the caller
// to surface.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) != Len {
		return Header{}, fmt.Errorf("page: header: expected %d bytes, got %d", Len, len(buf))
	}
	return Header{
		FreeStackTop:   PageOffset(binary.LittleEndian.Uint32(buf[0:4])),
		RootNode:       PageOffset(binary.LittleEndian.Uint32(buf[4:8])),
		NextPageOffset: PageOffset(binary.LittleEndian.Uint32(buf[8:12])),
	}, nil
}
