package page

import (
	"encoding/binary"
	"fmt"
)

// LeafKeyCap is the maximum number of entries a leaf node can hold.
const LeafKeyCap = 194

// LeafEntry is one (key, record range) pair stored in a leaf.
type LeafEntry struct {
	Key   Key
	Range PageRange
}

// LeafNode holds entries sorted strictly ascending by key, plus a
// pointer to the next leaf in key order (Null if this is the rightmost
// leaf).
type LeafNode struct {
	RightSibling PageOffset
	Entries      []LeafEntry
}

// NewLeafNode returns an empty leaf with the given right sibling.
func NewLeafNode(rightSibling PageOffset) LeafNode {
	return LeafNode{RightSibling: rightSibling}
}

// IsFull reports whether the leaf has no room for another entry.
func (n LeafNode) IsFull() bool { return len(n.Entries) == LeafKeyCap }

func (n LeafNode) indexToInsert(key Key) int {
	for i, e := range n.Entries {
		if key.Less(e.Key) {
			return i
		}
	}
	return len(n.Entries)
}

// Insert adds (key, r) in sorted position. The caller must only call
// this when the leaf is not full.
func (n *LeafNode) Insert(key Key, r PageRange) {
	if n.IsFull() {
		panic("page: leaf node is full")
	}
	index := n.indexToInsert(key)
	n.Entries = append(n.Entries, LeafEntry{})
	copy(n.Entries[index+1:], n.Entries[index:])
	n.Entries[index] = LeafEntry{Key: key, Range: r}
}

// SplitAndInsert inserts (key, r) into a full leaf, then splits the
// resulting 195 entries into a left half (this node, 97 entries) and a
// right half (98 entries, returned as a new leaf). The new leaf inherits
// the old right sibling; n's right sibling becomes rightOffset (the page
// the caller is about to allocate for the returned leaf). The returned
// key is the first key of the new right leaf, for propagation to the
// parent.
func (n *LeafNode) SplitAndInsert(key Key, r PageRange, rightOffset PageOffset) (LeafNode, Key) {
	if !n.IsFull() {
		panic("page: leaf node is not full")
	}
	index := n.indexToInsert(key)
	n.Entries = append(n.Entries, LeafEntry{})
	copy(n.Entries[index+1:], n.Entries[index:])
	n.Entries[index] = LeafEntry{Key: key, Range: r}

	leftCount := len(n.Entries) / 2
	rightEntries := append([]LeafEntry(nil), n.Entries[leftCount:]...)
	n.Entries = n.Entries[:leftCount]

	right := LeafNode{RightSibling: n.RightSibling, Entries: rightEntries}
	n.RightSibling = rightOffset

	return right, right.Entries[0].Key
}

// Contains reports whether key is present in the leaf.
func (n LeafNode) Contains(key Key) bool {
	for _, e := range n.Entries {
		if e.Key == key {
			return true
		}
	}
	return false
}

// Delete removes and returns the entry for key. It panics if key is not
// present; callers must check Contains/GetRecordRange first.
func (n *LeafNode) Delete(key Key) LeafEntry {
	for i, e := range n.Entries {
		if e.Key == key {
			n.Entries = append(n.Entries[:i], n.Entries[i+1:]...)
			return e
		}
	}
	panic("page: delete of key not present in leaf")
}

// GetRecordRange returns the record range for key, if present.
func (n LeafNode) GetRecordRange(key Key) (PageRange, bool) {
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Range, true
		}
	}
	return PageRange{}, false
}

// NextResultKind distinguishes the three shapes LeafNode.Next can
// return.
type NextResultKind int

const (
	NextFound NextResultKind = iota
	NextNoMoreEntries
	NextCheckRightNode
)

// NextResult is the result of scanning a leaf from an exclusive start
// key: either a non-empty batch of entries strictly greater than the
// start key, a signal to continue at the right sibling, or a signal that
// the scan is over.
type NextResult struct {
	Kind            NextResultKind
	Entries         []LeafEntry
	RightNodeOffset PageOffset
}

// Next returns entries strictly greater than exclusiveStart (nil means
// "from the beginning"). If this leaf has no more matching entries but a
// right sibling exists, it signals the caller to continue there;
// otherwise it signals the scan is complete.
func (n LeafNode) Next(exclusiveStart *Key) NextResult {
	startIndex := 0
	if exclusiveStart != nil {
		startIndex = len(n.Entries)
		for i, e := range n.Entries {
			if exclusiveStart.Less(e.Key) {
				startIndex = i
				break
			}
		}
	}

	if startIndex == len(n.Entries) {
		if !n.RightSibling.IsNull() {
			return NextResult{Kind: NextCheckRightNode, RightNodeOffset: n.RightSibling}
		}
		return NextResult{Kind: NextNoMoreEntries}
	}

	entries := make([]LeafEntry, len(n.Entries)-startIndex)
	copy(entries, n.Entries[startIndex:])
	return NextResult{Kind: NextFound, Entries: entries}
}

// Encode serializes the leaf node to a freshly allocated, zero-padded
// page.
func (n LeafNode) Encode() []byte {
	buf := make([]byte, Len)
	buf[0] = tagLeaf
	binary.LittleEndian.PutUint32(buf[1:5], uint32(n.RightSibling))
	if len(n.Entries) > 0xff {
		panic("page: leaf node entry count exceeds uint8 range")
	}
	buf[5] = uint8(len(n.Entries))

	off := 6
	for _, e := range n.Entries {
		putKey(buf[off:], e.Key)
		off += 16
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(e.Range.Offset))
		off += 4
		buf[off] = e.Range.Count
		off++
	}
	return buf
}

// DecodeLeafNode parses a leaf node page.
func DecodeLeafNode(buf []byte) (LeafNode, error) {
	if len(buf) != Len {
		return LeafNode{}, fmt.Errorf("page: leaf: expected %d bytes, got %d", Len, len(buf))
	}
	if buf[0] != tagLeaf {
		return LeafNode{}, fmt.Errorf("page: leaf: bad tag byte %#x", buf[0])
	}

	rightSibling := PageOffset(binary.LittleEndian.Uint32(buf[1:5]))
	count := int(buf[5])
	if count > LeafKeyCap {
		return LeafNode{}, fmt.Errorf("page: leaf: entry count %d exceeds cap %d", count, LeafKeyCap)
	}

	entries := make([]LeafEntry, count)
	off := 6
	for i := 0; i < count; i++ {
		key := getKey(buf[off:])
		off += 16
		rangeOffset := PageOffset(binary.LittleEndian.Uint32(buf[off : off+4]))
		off += 4
		rangeCount := buf[off]
		off++
		entries[i] = LeafEntry{Key: key, Range: PageRange{Offset: rangeOffset, Count: rangeCount}}
	}

	return LeafNode{RightSibling: rightSibling, Entries: entries}, nil
}
