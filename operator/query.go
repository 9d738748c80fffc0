package operator

import (
	"fmt"

	"bpmap/page"
)

// Get returns the value for key, if present. Purely read-only: no WAL
// involvement, per spec.md §4.5.
func (op *Operator) Get(key page.Key) ([]byte, bool, error) {
	if op.broken {
		return nil, false, ErrBroken
	}
	if op.header.RootNode.IsNull() {
		return nil, false, nil
	}

	_, leaf, _, err := op.traverse(key)
	if err != nil {
		return nil, false, err
	}
	r, ok := leaf.GetRecordRange(key)
	if !ok {
		return nil, false, nil
	}

	value, err := op.readRecord(r)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Contains reports whether key is present, via the identical traversal
// Get uses but without reading the record.
func (op *Operator) Contains(key page.Key) (bool, error) {
	if op.broken {
		return false, ErrBroken
	}
	if op.header.RootNode.IsNull() {
		return false, nil
	}
	_, leaf, _, err := op.traverse(key)
	if err != nil {
		return false, err
	}
	return leaf.Contains(key), nil
}

// readRecord reads and decodes the record block at r, bypassing the
// page cache: record blocks may span several pages and are typically read
// once, so caching them would mostly evict structural pages for no
// benefit.
func (op *Operator) readRecord(r page.PageRange) ([]byte, error) {
	buf, err := op.primary.ReadRange(r)
	if err != nil {
		return nil, op.fail(err)
	}
	rec, err := page.DecodeRecord(buf)
	if err != nil {
		return nil, op.fail(err)
	}
	return rec.Content, nil
}

// Next implements spec.md §4.5 next: descend to the leftmost candidate
// leaf for exclusiveStart (nil meaning "from the beginning"), then
// follow right siblings until a non-empty Found or NoMoreEntries. It
// materializes (key, value) entries at this call site (spec.md §9 Open
// Question 2). A nil, nil return means there is nothing more to yield.
func (op *Operator) Next(exclusiveStart *page.Key) ([]Entry, error) {
	if op.broken {
		return nil, ErrBroken
	}
	if op.header.RootNode.IsNull() {
		return nil, nil
	}

	descendKey := page.Key{}
	if exclusiveStart != nil {
		descendKey = *exclusiveStart
	}

	cur := op.header.RootNode
	for {
		isLeaf, leaf, internal, err := op.readNode(cur)
		if err != nil {
			return nil, err
		}
		if isLeaf {
			return op.scanFromLeaf(cur, leaf, exclusiveStart)
		}
		cur = internal.Lookup(descendKey)
	}
}

func (op *Operator) scanFromLeaf(offset page.PageOffset, leaf page.LeafNode, exclusiveStart *page.Key) ([]Entry, error) {
	for {
		res := leaf.Next(exclusiveStart)
		switch res.Kind {
		case page.NextFound:
			return op.materialize(res.Entries)
		case page.NextNoMoreEntries:
			return nil, nil
		case page.NextCheckRightNode:
			var err error
			_, leaf, _, err = op.readLeaf(res.RightNodeOffset)
			if err != nil {
				return nil, err
			}
		}
	}
}

func (op *Operator) readLeaf(offset page.PageOffset) (page.PageOffset, page.LeafNode, page.InternalNode, error) {
	isLeaf, leaf, internal, err := op.readNode(offset)
	if err != nil {
		return offset, page.LeafNode{}, page.InternalNode{}, err
	}
	if !isLeaf {
		return offset, page.LeafNode{}, page.InternalNode{}, op.fail(fmt.Errorf("page %d: expected a leaf, found an internal node", offset))
	}
	return offset, leaf, internal, nil
}

func (op *Operator) materialize(entries []page.LeafEntry) ([]Entry, error) {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		value, err := op.readRecord(e.Range)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: e.Key, Value: value})
	}
	return out, nil
}
