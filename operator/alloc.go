package operator

import (
	"fmt"

	"bpmap/page"
)

// loadFreeListIfNeeded lazily walks the on-disk free-stack chain into an
// in-memory working set the first time a request needs to allocate or
// free a page. Resolves spec.md §9 Open Question 4: at Open we trust
// header.NextPageOffset and do nothing; the chain is only read once an
// allocation actually needs it, never as part of Open's own work.
//
// The free-stack node pages themselves are folded into the working set
// as single-page ranges: buildShadowPayload rebuilds the whole on-disk
// chain from scratch at Close, so the old node pages are as reusable as
// any other freed page once their contents have been read into memory.
func (op *Operator) loadFreeListIfNeeded() error {
	if op.freeListLoaded {
		return nil
	}
	op.freeListLoaded = true

	cur := op.header.FreeStackTop
	for !cur.IsNull() {
		buf, err := op.primary.ReadRange(page.PageRange{Offset: cur, Count: 1})
		if err != nil {
			return op.fail(fmt.Errorf("read free-stack node at %d: %w", cur, err))
		}
		node, err := page.DecodeFreeStackNode(buf)
		if err != nil {
			return op.fail(fmt.Errorf("decode free-stack node at %d: %w", cur, err))
		}
		op.freeList = append(op.freeList, node.Ranges...)
		op.freeList = append(op.freeList, page.PageRange{Offset: cur, Count: 1})
		cur = node.Next
	}
	op.header.FreeStackTop = page.Null
	return nil
}

// allocate returns a fresh PageRange of at least n pages: a first-fit
// pop from the free list if one exists (the popped range is returned
// whole, so it may span more than n pages), else the next n pages past
// the current high-water mark.
func (op *Operator) allocate(n uint8) (page.PageRange, error) {
	if err := op.loadFreeListIfNeeded(); err != nil {
		return page.PageRange{}, err
	}

	for i, r := range op.freeList {
		if r.Count >= n {
			op.freeList = append(op.freeList[:i], op.freeList[i+1:]...)
			return r, nil
		}
	}

	r := page.PageRange{Offset: op.header.NextPageOffset, Count: n}
	op.header.NextPageOffset += page.PageOffset(n)
	return r, nil
}

// free returns r to the in-memory free list for future allocate calls.
// It is not durably recorded until Close persists the whole free stack.
func (op *Operator) free(r page.PageRange) error {
	if err := op.loadFreeListIfNeeded(); err != nil {
		return err
	}
	op.freeList = append(op.freeList, r)
	return nil
}
