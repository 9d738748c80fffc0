// Package operator is the sole mutator of the on-disk B+Tree. It owns the
// page cache and the primary/WAL/shadow file descriptors, executes one
// request at a time (insert, delete, get, contains, next, file size,
// close), and is the only code that ever writes to the primary file.
//
// Grounded on the teacher's index/bplustree.go (the "seen" ancestor-stack
// traversal idiom) and Rust pages.rs's node algorithms, generalized from
// int keys and in-memory-only nodes to page.Key and actual disk pages.
package operator

import (
	"fmt"
	"log"

	"bpmap/diskfile"
	"bpmap/page"
	"bpmap/pagecache"
	"bpmap/walshadow"
)

// Entry is a materialized (key, value) pair, the shape the client-facing
// Next/Stream API yields — spec.md's Open Question 2: LeafNode.Next only
// carries (key, record range); Operator is responsible for turning that
// into (key, value) by reading the record.
type Entry struct {
	Key   page.Key
	Value []byte
}

// Operator owns one open database.
type Operator struct {
	path string

	primary *diskfile.File
	wal     *walshadow.Log
	shadow  *walshadow.Shadow
	cache   *pagecache.Cache

	header page.Header

	freeList       []page.PageRange
	freeListLoaded bool

	broken bool
	closed bool
}

// Open opens (creating if absent) the database at path, recovering from
// any incomplete WAL record or staged shadow write left by a prior
// crash, and returns a ready-to-use Operator. cacheCapacity is the page
// cache's entry capacity (0 disables caching).
func Open(path string, cacheCapacity int) (*Operator, error) {
	primary, err := diskfile.Open(path, diskfile.OpenOptions{})
	if err != nil {
		return nil, fmt.Errorf("operator: open primary: %w", err)
	}
	wal, err := walshadow.Open(path + ".wal")
	if err != nil {
		primary.Close()
		return nil, fmt.Errorf("operator: open wal: %w", err)
	}
	shadow, err := walshadow.OpenShadow(path + ".shadow")
	if err != nil {
		primary.Close()
		wal.Close()
		return nil, fmt.Errorf("operator: open shadow: %w", err)
	}

	op := &Operator{
		path:    path,
		primary: primary,
		wal:     wal,
		shadow:  shadow,
		cache:   pagecache.New(cacheCapacity),
	}

	size, err := primary.Size()
	if err != nil {
		op.closeDescriptors()
		return nil, fmt.Errorf("operator: stat primary: %w", err)
	}
	if size == 0 {
		op.header = page.NewHeader()
		if err := op.primary.WriteAt(0, op.header.Encode()); err != nil {
			op.closeDescriptors()
			return nil, fmt.Errorf("operator: write initial header: %w", err)
		}
		if err := op.primary.Flush(); err != nil {
			op.closeDescriptors()
			return nil, fmt.Errorf("operator: flush initial header: %w", err)
		}
		return op, nil
	}

	if err := walshadow.Recover(primary, wal, shadow, op.applyShadowPayload); err != nil {
		log.Printf("operator: recovery failed for %s: %v", path, err)
		op.closeDescriptors()
		return nil, fmt.Errorf("%w: recovery: %v", ErrBroken, err)
	}

	headerBuf := make([]byte, page.Len)
	if err := op.primary.ReadAt(0, headerBuf); err != nil {
		op.closeDescriptors()
		return nil, fmt.Errorf("operator: read header: %w", err)
	}
	header, err := page.DecodeHeader(headerBuf)
	if err != nil {
		op.closeDescriptors()
		return nil, fmt.Errorf("%w: decode header: %v", ErrBroken, err)
	}
	op.header = header

	return op, nil
}

// FileSize returns the logical size of the primary file: the high-water
// page offset times the page length.
func (op *Operator) FileSize() (int64, error) {
	if op.broken {
		return 0, ErrBroken
	}
	return op.header.FileSize(), nil
}

// fail latches the engine broken and returns ErrBroken wrapping cause.
func (op *Operator) fail(cause error) error {
	op.broken = true
	return fmt.Errorf("%w: %v", ErrBroken, cause)
}

func (op *Operator) closeDescriptors() {
	op.primary.Close()
	op.wal.Close()
	op.shadow.Close()
}

// readPage returns the raw bytes of the single page at offset, via the
// cache when possible.
func (op *Operator) readPage(offset page.PageOffset) ([]byte, error) {
	if cached, ok := op.cache.Get(uint32(offset)); ok {
		return cached, nil
	}
	buf, err := op.primary.ReadRange(page.PageRange{Offset: offset, Count: 1})
	if err != nil {
		return nil, op.fail(err)
	}
	op.cache.Put(uint32(offset), buf)
	return buf, nil
}

// readNode reads the page at offset and decodes it as either a leaf or
// an internal node, discriminated by its tag byte (spec.md §3
// "Lifecycle": a page's logical type is its byte-0 tag).
func (op *Operator) readNode(offset page.PageOffset) (isLeaf bool, leaf page.LeafNode, internal page.InternalNode, err error) {
	buf, err := op.readPage(offset)
	if err != nil {
		return false, page.LeafNode{}, page.InternalNode{}, err
	}
	if len(buf) == 0 {
		return false, page.LeafNode{}, page.InternalNode{}, op.fail(fmt.Errorf("empty page at offset %d", offset))
	}
	switch buf[0] {
	case 0x01:
		leaf, err = page.DecodeLeafNode(buf)
		if err != nil {
			return false, page.LeafNode{}, page.InternalNode{}, op.fail(err)
		}
		return true, leaf, page.InternalNode{}, nil
	default:
		internal, err = page.DecodeInternalNode(buf)
		if err != nil {
			return false, page.LeafNode{}, page.InternalNode{}, op.fail(err)
		}
		return false, page.LeafNode{}, internal, nil
	}
}

// commit runs the WAL commit protocol from spec.md §4.4 for one
// request's batch of writes, then admits every write that is exactly one
// page long (structural pages and single-page record blocks; multi-page
// record blocks are not admitted) into the cache already-clean.
func (op *Operator) commit(writes []walshadow.Write) error {
	if err := op.wal.WriteRecord(writes); err != nil {
		return op.fail(fmt.Errorf("wal append: %w", err))
	}
	for _, w := range writes {
		if err := op.primary.WriteAt(w.Offset.FileOffset(), w.Data); err != nil {
			return op.fail(fmt.Errorf("apply write at %d: %w", w.Offset, err))
		}
	}
	if err := op.primary.Flush(); err != nil {
		return op.fail(fmt.Errorf("flush primary: %w", err))
	}
	if err := op.wal.Clear(); err != nil {
		return op.fail(fmt.Errorf("clear wal: %w", err))
	}
	for _, w := range writes {
		if len(w.Data) == page.Len {
			op.cache.Put(uint32(w.Offset), w.Data)
		}
	}
	return nil
}
