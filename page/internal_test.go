package page

import "testing"

func makeInternalNode(keyCount int) InternalNode {
	keys := make([]Key, keyCount)
	offsets := make([]PageOffset, keyCount+1)
	for i := 0; i < keyCount; i++ {
		keys[i] = KeyFromUint64(uint64(i * 2))
		offsets[i] = PageOffset(i)
	}
	offsets[keyCount] = PageOffset(keyCount)
	return NewInternalNode(keys, offsets)
}

func Test_internalNodeLookup(t *testing.T) {
	n := makeInternalNode(3) // keys 0, 2, 4 -> offsets 0,1,2,3
	assertEqual(t, PageOffset(1), n.Lookup(KeyFromUint64(0)), "a key equal to a separator belongs to the child on its right")
	assertEqual(t, PageOffset(1), n.Lookup(KeyFromUint64(1)), "")
	assertEqual(t, PageOffset(2), n.Lookup(KeyFromUint64(3)), "")
	assertEqual(t, PageOffset(3), n.Lookup(KeyFromUint64(100)), "")
}

func Test_internalNodeInsertWithoutOverflow(t *testing.T) {
	n := makeInternalNode(2)
	right, centerKey, split := n.Insert(KeyFromUint64(1000), PageOffset(99))
	assertEqual(t, false, split, "a node below capacity never splits")
	if right != nil {
		t.Fatalf("expected no right node, got %+v", right)
	}
	assertEqual(t, Key{}, centerKey, "")
	assertEqual(t, 3, len(n.Keys), "")
	assertEqual(t, 4, len(n.Offsets), "")
}

func Test_internalNodeInsertOverflowSplitsAtMidpoint(t *testing.T) {
	n := makeInternalNode(InternalKeyCap)
	newKey := KeyFromUint64(uint64(InternalKeyCap * 10))
	right, centerKey, split := n.Insert(newKey, PageOffset(9999))

	assertEqual(t, true, split, "a full node must split on insert")
	if right == nil {
		t.Fatalf("expected a right node from a split")
	}

	mid := InternalKeyCap / 2
	assertEqual(t, mid-1, len(n.Keys), "left side keeps mid-1 keys after popping the center key")
	assertEqual(t, mid, len(n.Offsets), "left side keeps mid child offsets")
	assertEqual(t, InternalKeyCap+1-mid, len(right.Keys), "right side gets the remaining keys")
	assertEqual(t, InternalKeyCap+2-mid, len(right.Offsets), "right side gets the remaining child offsets")
	assertEqual(t, n.Keys[len(n.Keys)-1].Less(centerKey), true, "the center key is greater than everything kept on the left")
	assertEqual(t, centerKey.Less(right.Keys[0]), true, "the center key is less than everything moved to the right")
}

func Test_internalNodeIsFull(t *testing.T) {
	n := makeInternalNode(InternalKeyCap - 1)
	assertEqual(t, false, n.IsFull(), "")
	n.Insert(KeyFromUint64(uint64(InternalKeyCap*10)), PageOffset(1))
	assertEqual(t, true, n.IsFull(), "")
}

func Test_internalEncodeDecodeRoundTrip(t *testing.T) {
	n := makeInternalNode(5)
	decoded, err := DecodeInternalNode(n.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertEqual(t, len(n.Keys), len(decoded.Keys), "")
	for i := range n.Keys {
		assertEqual(t, n.Keys[i], decoded.Keys[i], "")
	}
	for i := range n.Offsets {
		assertEqual(t, n.Offsets[i], decoded.Offsets[i], "")
	}
}
