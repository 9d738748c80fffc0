package operator

import "bpmap/page"

// ancestor is one internal node visited while descending to a leaf,
// kept so a leaf split can propagate upward without re-reading pages.
// Mirrors the teacher's BPlusTreeMetadata.seen stack (index/bplustree.go),
// generalized from *innerNode pointers to (offset, decoded node) pairs
// since our nodes are read from disk rather than held in memory.
type ancestor struct {
	offset page.PageOffset
	node   page.InternalNode
}

// traverse descends from the root to the leaf responsible for key,
// returning that leaf, its offset, and the ordered ancestor path (root
// first). The caller must have already checked the root is non-null.
func (op *Operator) traverse(key page.Key) (leafOffset page.PageOffset, leaf page.LeafNode, ancestors []ancestor, err error) {
	cur := op.header.RootNode
	for {
		isLeaf, l, internal, readErr := op.readNode(cur)
		if readErr != nil {
			return 0, page.LeafNode{}, nil, readErr
		}
		if isLeaf {
			return cur, l, ancestors, nil
		}
		ancestors = append(ancestors, ancestor{offset: cur, node: internal})
		cur = internal.Lookup(key)
	}
}
