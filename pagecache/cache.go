// Package pagecache implements the bounded page cache sitting in front of
// the primary database file: a PageOffset -> raw page bytes map with
// simple LRU eviction, generalized from the teacher's pin/unpin buffer
// pool (memory.BufferPoolManager) to the spec's offset-keyed block cache.
//
// Unlike the teacher's buffer pool, this cache is strictly read-through:
// the operator never lets a write sit only in the cache. A request's
// writes are held in the operator's own pending-write batch (never
// touching the cache) until the WAL commit has durably applied them to
// the primary file; only then are they admitted here, already clean. That
// sidesteps the "flush dirty entry before eviction" plumbing spec.md
// describes, at the cost of bypassing the cache for pages a request is
// actively mutating — an acceptable trade given requests are processed
// one at a time (spec.md §5) and freshly-written pages are re-admitted
// immediately after commit. See DESIGN.md for the rationale.
package pagecache

import "container/list"

type entry struct {
	offset uint32
	data   []byte
}

// Cache is a bounded PageOffset -> bytes map with LRU eviction. Capacity
// is in entries, not bytes; a capacity of 0 disables caching entirely
// (every lookup becomes a miss and nothing is ever admitted).
type Cache struct {
	capacity int
	items    map[uint32]*list.Element
	order    *list.List // front = most recently used
}

// New returns a cache with the given entry capacity.
func New(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		items:    make(map[uint32]*list.Element),
		order:    list.New(),
	}
}

// Get returns a copy of the cached bytes for offset and true on a hit.
func (c *Cache) Get(offset uint32) ([]byte, bool) {
	el, ok := c.items[offset]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	e := el.Value.(*entry)
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true
}

// Put admits data (already durable on disk) for offset, evicting the
// least-recently-used entry if the cache is at capacity. A capacity of 0
// makes Put a no-op.
func (c *Cache) Put(offset uint32, data []byte) {
	if c.capacity <= 0 {
		return
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	if el, ok := c.items[offset]; ok {
		el.Value.(*entry).data = stored
		c.order.MoveToFront(el)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictOne()
	}

	el := c.order.PushFront(&entry{offset: offset, data: stored})
	c.items[offset] = el
}

// Invalidate drops offset from the cache, if present. The operator does
// not call it: every page it writes is re-admitted with Put after the
// commit, which replaces any older entry for that offset.
func (c *Cache) Invalidate(offset uint32) {
	el, ok := c.items[offset]
	if !ok {
		return
	}
	c.order.Remove(el)
	delete(c.items, offset)
}

func (c *Cache) evictOne() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry).offset)
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int { return len(c.items) }
