// Package page implements the on-disk page formats used by the B+Tree
// store: the header page, internal and leaf tree nodes, free-stack nodes
// and variable-length record blocks. Every layout here is bit-exact with
// the wire format described in the BpMap design: fixed 4096-byte pages,
// all integers little-endian, explicit zero padding.
package page

import "encoding/binary"

// Len is the fixed size, in bytes, of a single page.
const Len = 4096

// PageOffset is a 32-bit page index. The byte offset of a page is
// index * Len. Offset 0 is reserved for the header and doubles as the
// null sentinel for forward pointers (no page is ever allocated there).
type PageOffset uint32

// Null is both the header's page offset and the sentinel value meaning
// "no page".
const Null PageOffset = 0

// IsNull reports whether o is the null sentinel.
func (o PageOffset) IsNull() bool { return o == Null }

// FileOffset returns the byte offset of this page within its file.
func (o PageOffset) FileOffset() int64 { return int64(o) * int64(Len) }

// PageRange is a contiguous run of up to 255 pages, used both for
// variable-length records and for free-list entries.
type PageRange struct {
	Offset PageOffset
	Count  uint8
}

// HeaderRange is the range of page 0: the single page holding the
// header, so its Count is always 1.
var HeaderRange = PageRange{Offset: Null, Count: 1}

// ByteLen returns the number of bytes spanned by the range.
func (r PageRange) ByteLen() int { return int(r.Count) * Len }

// FileOffset returns the starting byte offset of the range.
func (r PageRange) FileOffset() int64 { return r.Offset.FileOffset() }

// Overlaps reports whether r and other share any page.
func (r PageRange) Overlaps(other PageRange) bool {
	rStart, rEnd := uint64(r.Offset), uint64(r.Offset)+uint64(r.Count)
	oStart, oEnd := uint64(other.Offset), uint64(other.Offset)+uint64(other.Count)
	return rStart < oEnd && oStart < rEnd
}

// Key is a 128-bit key stored as sixteen little-endian bytes — the exact
// wire representation of the original u128 keys, so encoding a Key is a
// plain byte copy and no byteswap is ever needed on the page format.
type Key [16]byte

// KeyFromUint64 builds a Key whose low 64 bits are v and whose high 64
// bits are zero. Every concrete scenario in the test suite indexes by
// small integers, so this is the constructor used throughout the tests
// and the demo CLI.
func KeyFromUint64(v uint64) Key {
	var k Key
	binary.LittleEndian.PutUint64(k[:8], v)
	return k
}

// Uint64 returns the low 64 bits of the key. Only meaningful for keys
// built with KeyFromUint64 (the high bits are not checked to be zero).
func (k Key) Uint64() uint64 {
	return binary.LittleEndian.Uint64(k[:8])
}

// Less reports whether k sorts strictly before other, treating both as
// 128-bit unsigned integers (the bytes are little-endian, so comparison
// walks from the most-significant byte down).
func (k Key) Less(other Key) bool {
	for i := 15; i >= 0; i-- {
		if k[i] != other[i] {
			return k[i] < other[i]
		}
	}
	return false
}

// Compare returns -1, 0 or 1 as k is less than, equal to, or greater than
// other.
func (k Key) Compare(other Key) int {
	for i := 15; i >= 0; i-- {
		if k[i] != other[i] {
			if k[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func putKey(buf []byte, k Key) {
	copy(buf, k[:])
}

func getKey(buf []byte) Key {
	var k Key
	copy(k[:], buf[:16])
	return k
}
