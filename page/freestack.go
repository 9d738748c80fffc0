package page

import (
	"encoding/binary"
	"fmt"
)

// FreeStackMaxRanges is the number of PageRange entries a single
// free-stack node can hold: 818, chosen so the node fits in one page
// (4 + 2 + 818*5 = 4096).
const FreeStackMaxRanges = 818

// FreeStackNode is one page of the on-disk free list: a singly linked
// list of pages, each holding up to FreeStackMaxRanges freed PageRanges
// in LIFO order.
type FreeStackNode struct {
	Next   PageOffset
	Ranges []PageRange
}

// NewFreeStackNode returns an empty free-stack node.
func NewFreeStackNode() FreeStackNode {
	return FreeStackNode{Next: Null, Ranges: nil}
}

// IsEmpty reports whether the node holds no ranges.
func (n FreeStackNode) IsEmpty() bool { return len(n.Ranges) == 0 }

// IsFull reports whether the node has no room for another range.
func (n FreeStackNode) IsFull() bool { return len(n.Ranges) == FreeStackMaxRanges }

// TryPop removes and returns the first range with Count >= pageCount
// (first-fit over the node in push order, oldest first), or false if
// none fits.
func (n *FreeStackNode) TryPop(pageCount uint8) (PageRange, bool) {
	for i, r := range n.Ranges {
		if pageCount <= r.Count {
			n.Ranges = append(n.Ranges[:i], n.Ranges[i+1:]...)
			return r, true
		}
	}
	return PageRange{}, false
}

// Push adds a freed range to the node. The caller must ensure the node
// is not already full.
func (n *FreeStackNode) Push(r PageRange) {
	if n.IsFull() {
		panic("page: free-stack node is full")
	}
	n.Ranges = append(n.Ranges, r)
}

// Encode serializes the node to a freshly allocated, zero-padded page.
func (n FreeStackNode) Encode() []byte {
	buf := make([]byte, Len)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(n.Next))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(len(n.Ranges)))

	off := 6
	for _, r := range n.Ranges {
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(r.Offset))
		buf[off+4] = r.Count
		off += 5
	}
	return buf
}

// DecodeFreeStackNode parses a free-stack node page. The caller must only
// invoke this when it already knows, from context (the header's free
// stack top, or another free-stack node's Next pointer), that the offset
// being read holds a free-stack node.
func DecodeFreeStackNode(buf []byte) (FreeStackNode, error) {
	if len(buf) != Len {
		return FreeStackNode{}, fmt.Errorf("page: free-stack: expected %d bytes, got %d", Len, len(buf))
	}

	next := PageOffset(binary.LittleEndian.Uint32(buf[0:4]))
	count := int(binary.LittleEndian.Uint16(buf[4:6]))
	if count > FreeStackMaxRanges {
		return FreeStackNode{}, fmt.Errorf("page: free-stack: range count %d exceeds max %d", count, FreeStackMaxRanges)
	}

	ranges := make([]PageRange, count)
	off := 6
	for i := 0; i < count; i++ {
		ranges[i] = PageRange{
			Offset: PageOffset(binary.LittleEndian.Uint32(buf[off : off+4])),
			Count:  buf[off+4],
		}
		off += 5
	}

	return FreeStackNode{Next: next, Ranges: ranges}, nil
}
