package page

import (
	"encoding/binary"
	"fmt"
)

// MaxRecordPages is the largest page count a single record block can
// span (page_count fits in a uint8), capping values at
// MaxRecordPages*Len - 4 bytes, a little under 1MiB.
const MaxRecordPages = 255

// MaxValueLen is the largest value Record can hold.
const MaxValueLen = MaxRecordPages*Len - 4

// Record is the multi-page storage of a single value: a uint32 content
// length followed by the content bytes and zero padding to a page
// boundary.
type Record struct {
	Content []byte
}

// NewRecord validates content against the size cap and returns a Record
// wrapping it. Content is not copied; callers must not mutate it after
// construction.
func NewRecord(content []byte) (Record, error) {
	if len(content) > MaxValueLen {
		return Record{}, fmt.Errorf("page: record: content length %d exceeds max %d", len(content), MaxValueLen)
	}
	return Record{Content: content}, nil
}

// PageCount returns ceil((len(content)+4) / Len), the number of pages
// this record occupies on disk.
func (r Record) PageCount() uint8 {
	return uint8((len(r.Content) + 4 + Len - 1) / Len)
}

// Encode serializes the record to a freshly allocated, page-padded
// buffer of PageCount()*Len bytes.
func (r Record) Encode() []byte {
	pageCount := int(r.PageCount())
	buf := make([]byte, pageCount*Len)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(r.Content)))
	copy(buf[4:], r.Content)
	return buf
}

// DecodeRecord parses a record block. buf's length must be a positive
// multiple of Len.
func DecodeRecord(buf []byte) (Record, error) {
	if len(buf) == 0 || len(buf)%Len != 0 {
		return Record{}, fmt.Errorf("page: record: buffer length %d is not a positive multiple of %d", len(buf), Len)
	}

	contentLen := int(binary.LittleEndian.Uint32(buf[0:4]))
	if contentLen < 0 || 4+contentLen > len(buf) {
		return Record{}, fmt.Errorf("page: record: content length %d does not fit in %d-byte block", contentLen, len(buf))
	}

	content := make([]byte, contentLen)
	copy(content, buf[4:4+contentLen])
	return Record{Content: content}, nil
}
