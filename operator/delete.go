package operator

import (
	"bpmap/page"
	"bpmap/walshadow"
)

// Delete implements spec.md §4.5 delete: traverse to the owning leaf; a
// missing key succeeds without change; a present key has its record
// range freed and its leaf entry removed. No rebalancing or merging is
// performed (spec.md §9 Open Question 3): empty leaves stay linked.
func (op *Operator) Delete(key page.Key) error {
	if op.broken {
		return ErrBroken
	}
	if op.header.RootNode.IsNull() {
		return nil
	}

	leafOffset, leaf, _, err := op.traverse(key)
	if err != nil {
		return err
	}

	recordRange, ok := leaf.GetRecordRange(key)
	if !ok {
		return nil
	}

	if err := op.free(recordRange); err != nil {
		return err
	}
	leaf.Delete(key)

	writes := []walshadow.Write{
		{Offset: leafOffset, Data: leaf.Encode()},
		{Offset: page.Null, Data: op.header.Encode()},
	}
	return op.commit(writes)
}
