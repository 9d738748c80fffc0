package operator

import "fmt"

// Close persists the free stack, flushes the primary file, and releases
// all descriptors. It is idempotent: a second Close is a no-op returning
// nil (see SPEC_FULL.md §7). A subsequent Open of the same path finds no
// pending WAL record (already true of steady-state operation — every
// commit clears the WAL itself) and no pending shadow (staged and
// discarded entirely within this call).
func (op *Operator) Close() error {
	if op.closed {
		return nil
	}
	if op.broken {
		op.closed = true
		op.closeDescriptors()
		return nil
	}

	if err := op.loadFreeListIfNeeded(); err != nil {
		op.closeDescriptors()
		return err
	}

	payload := op.buildShadowPayload()
	if err := op.shadow.Stage(payload); err != nil {
		op.closeDescriptors()
		return fmt.Errorf("operator: stage shutdown shadow: %w", err)
	}
	if err := op.applyShadowPayload(payload); err != nil {
		op.closeDescriptors()
		return fmt.Errorf("operator: apply shutdown shadow: %w", err)
	}
	if err := op.primary.Flush(); err != nil {
		op.closeDescriptors()
		return fmt.Errorf("operator: flush on close: %w", err)
	}
	if err := op.shadow.Discard(); err != nil {
		op.closeDescriptors()
		return fmt.Errorf("operator: discard shutdown shadow: %w", err)
	}
	if err := op.wal.Clear(); err != nil {
		op.closeDescriptors()
		return fmt.Errorf("operator: clear wal on close: %w", err)
	}

	op.closed = true
	op.closeDescriptors()
	return nil
}
