package operator

import (
	"bpmap/page"
	"bpmap/walshadow"
)

// Insert implements spec.md §4.5 insert: traverse to the owning leaf
// (creating a root leaf if the tree is empty), free and remove any
// existing entry for key, write the new record, insert into the leaf,
// splitting and propagating up through ancestors (allocating a new root
// if the split reaches the top), and commit the whole batch atomically.
func (op *Operator) Insert(key page.Key, value []byte) error {
	if op.broken {
		return ErrBroken
	}

	record, err := page.NewRecord(value)
	if err != nil {
		return ErrValueTooLarge
	}

	var writes []walshadow.Write

	var leafOffset page.PageOffset
	var leaf page.LeafNode
	var ancestors []ancestor

	if op.header.RootNode.IsNull() {
		r, err := op.allocate(1)
		if err != nil {
			return err
		}
		leafOffset = r.Offset
		leaf = page.NewLeafNode(page.Null)
		op.header.RootNode = leafOffset
	} else {
		leafOffset, leaf, ancestors, err = op.traverse(key)
		if err != nil {
			return err
		}
	}

	if oldRange, ok := leaf.GetRecordRange(key); ok {
		if err := op.free(oldRange); err != nil {
			return err
		}
		leaf.Delete(key)
	}

	recordRange, err := op.allocate(record.PageCount())
	if err != nil {
		return err
	}
	writes = append(writes, walshadow.Write{Offset: recordRange.Offset, Data: record.Encode()})

	if !leaf.IsFull() {
		leaf.Insert(key, recordRange)
		writes = append(writes, walshadow.Write{Offset: leafOffset, Data: leaf.Encode()})
	} else {
		rightRange, err := op.allocate(1)
		if err != nil {
			return err
		}
		newLeaf, centerKey := leaf.SplitAndInsert(key, recordRange, rightRange.Offset)
		writes = append(writes,
			walshadow.Write{Offset: leafOffset, Data: leaf.Encode()},
			walshadow.Write{Offset: rightRange.Offset, Data: newLeaf.Encode()},
		)

		pendingKey := centerKey
		pendingRight := rightRange.Offset
		rootSplitPending := true

		for i := len(ancestors) - 1; i >= 0; i-- {
			anc := &ancestors[i]
			newRight, newCenter, split := anc.node.Insert(pendingKey, pendingRight)
			writes = append(writes, walshadow.Write{Offset: anc.offset, Data: anc.node.Encode()})
			if !split {
				rootSplitPending = false
				break
			}
			r, err := op.allocate(1)
			if err != nil {
				return err
			}
			writes = append(writes, walshadow.Write{Offset: r.Offset, Data: newRight.Encode()})
			pendingKey = newCenter
			pendingRight = r.Offset
		}

		if rootSplitPending {
			r, err := op.allocate(1)
			if err != nil {
				return err
			}
			newRoot := page.NewInternalNode([]page.Key{pendingKey}, []page.PageOffset{op.header.RootNode, pendingRight})
			writes = append(writes, walshadow.Write{Offset: r.Offset, Data: newRoot.Encode()})
			op.header.RootNode = r.Offset
		}
	}

	writes = append(writes, walshadow.Write{Offset: page.Null, Data: op.header.Encode()})
	return op.commit(writes)
}
