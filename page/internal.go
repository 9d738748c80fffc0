package page

import (
	"encoding/binary"
	"fmt"
)

// InternalKeyCap is the maximum number of keys an internal node can hold.
const InternalKeyCap = 204

const tagInternal = 0x00
const tagLeaf = 0x01

// InternalNode holds N keys and N+1 child offsets: all keys in
// child[i] are < keys[i]; all keys in child[i+1] are >= keys[i].
type InternalNode struct {
	Keys    []Key
	Offsets []PageOffset
}

// NewInternalNode builds an internal node from keys and child offsets.
// len(offsets) must be len(keys)+1 and keys must be non-empty.
func NewInternalNode(keys []Key, offsets []PageOffset) InternalNode {
	if len(keys) == 0 {
		panic("page: internal node must have at least one key")
	}
	if len(offsets) != len(keys)+1 {
		panic("page: internal node child count must be key count + 1")
	}
	k := make([]Key, len(keys))
	copy(k, keys)
	o := make([]PageOffset, len(offsets))
	copy(o, offsets)
	return InternalNode{Keys: k, Offsets: o}
}

// IsFull reports whether the node has no room for another key.
func (n InternalNode) IsFull() bool { return len(n.Keys) == InternalKeyCap }

// keyIndex returns the smallest index i such that key < Keys[i], or
// len(Keys) if no such index exists.
func (n InternalNode) keyIndex(key Key) int {
	for i, k := range n.Keys {
		if key.Less(k) {
			return i
		}
	}
	return len(n.Keys)
}

// Lookup descends to the child offset responsible for key.
func (n InternalNode) Lookup(key Key) PageOffset {
	return n.Offsets[n.keyIndex(key)]
}

// Insert inserts key with its associated right child (the child produced
// by a split whose center key is key), assuming rightChild belongs
// immediately to the right of key's position. If the node overflows, it
// is split at the midpoint: the lower half stays in n, the upper half is
// returned as a new right node, and the center key is popped out for the
// caller to propagate to the parent.
func (n *InternalNode) Insert(key Key, rightChild PageOffset) (*InternalNode, Key, bool) {
	index := n.keyIndex(key)
	wasFull := n.IsFull()

	n.Keys = append(n.Keys, Key{})
	copy(n.Keys[index+1:], n.Keys[index:])
	n.Keys[index] = key

	n.Offsets = append(n.Offsets, PageOffset(0))
	copy(n.Offsets[index+2:], n.Offsets[index+1:])
	n.Offsets[index+1] = rightChild

	if !wasFull {
		return nil, Key{}, false
	}

	mid := InternalKeyCap / 2

	rightKeys := append([]Key(nil), n.Keys[mid:]...)
	n.Keys = n.Keys[:mid]
	centerKey := n.Keys[len(n.Keys)-1]
	n.Keys = n.Keys[:len(n.Keys)-1]

	rightOffsets := append([]PageOffset(nil), n.Offsets[mid:]...)
	n.Offsets = n.Offsets[:mid]

	right := NewInternalNode(rightKeys, rightOffsets)
	return &right, centerKey, true
}

// Encode serializes the internal node to a freshly allocated, zero-padded
// page.
func (n InternalNode) Encode() []byte {
	buf := make([]byte, Len)
	buf[0] = tagInternal
	binary.LittleEndian.PutUint32(buf[1:5], uint32(len(n.Keys)))

	off := 5
	if len(n.Keys) > 0 {
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(n.Offsets[0]))
		off += 4
	}
	for i, k := range n.Keys {
		putKey(buf[off:], k)
		off += 16
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(n.Offsets[i+1]))
		off += 4
	}
	return buf
}

// DecodeInternalNode parses an internal node page.
func DecodeInternalNode(buf []byte) (InternalNode, error) {
	if len(buf) != Len {
		return InternalNode{}, fmt.Errorf("page: internal: expected %d bytes, got %d", Len, len(buf))
	}
	if buf[0] != tagInternal {
		return InternalNode{}, fmt.Errorf("page: internal: bad tag byte %#x", buf[0])
	}

	keyCount := int(binary.LittleEndian.Uint32(buf[1:5]))
	if keyCount > InternalKeyCap {
		return InternalNode{}, fmt.Errorf("page: internal: key count %d exceeds cap %d", keyCount, InternalKeyCap)
	}

	keys := make([]Key, 0, keyCount)
	offsets := make([]PageOffset, 0, keyCount+1)

	off := 5
	if keyCount > 0 {
		offsets = append(offsets, PageOffset(binary.LittleEndian.Uint32(buf[off:off+4])))
		off += 4
	}
	for i := 0; i < keyCount; i++ {
		keys = append(keys, getKey(buf[off:]))
		off += 16
		offsets = append(offsets, PageOffset(binary.LittleEndian.Uint32(buf[off:off+4])))
		off += 4
	}

	return InternalNode{Keys: keys, Offsets: offsets}, nil
}
