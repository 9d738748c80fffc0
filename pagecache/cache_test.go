package pagecache

import "testing"

func Test_putThenGetHits(t *testing.T) {
	c := New(2)
	c.Put(1, []byte("hello"))

	got, ok := c.Get(1)
	assertEqual(t, true, ok, "")
	assertEqual(t, "hello", string(got), "")
}

func Test_getMissOnUnknownOffset(t *testing.T) {
	c := New(2)
	_, ok := c.Get(99)
	assertEqual(t, false, ok, "")
}

func Test_capacityZeroDisablesCaching(t *testing.T) {
	c := New(0)
	c.Put(1, []byte("x"))
	_, ok := c.Get(1)
	assertEqual(t, false, ok, "a capacity-0 cache never admits anything")
	assertEqual(t, 0, c.Len(), "")
}

func Test_evictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	c.Put(1, []byte("a"))
	c.Put(2, []byte("b"))
	c.Get(1) // 1 is now more recently used than 2
	c.Put(3, []byte("c"))

	_, ok := c.Get(2)
	assertEqual(t, false, ok, "2 was least recently used and should have been evicted")

	_, ok = c.Get(1)
	assertEqual(t, true, ok, "1 was touched more recently and should survive")

	_, ok = c.Get(3)
	assertEqual(t, true, ok, "")
}

func Test_invalidateRemovesEntry(t *testing.T) {
	c := New(2)
	c.Put(1, []byte("a"))
	c.Invalidate(1)
	_, ok := c.Get(1)
	assertEqual(t, false, ok, "")
}

func Test_putOnExistingOffsetUpdatesInPlace(t *testing.T) {
	c := New(1)
	c.Put(1, []byte("old"))
	c.Put(1, []byte("new"))
	assertEqual(t, 1, c.Len(), "updating an existing key must not grow the cache")

	got, _ := c.Get(1)
	assertEqual(t, "new", string(got), "")
}

func assertEqual[T comparable](t *testing.T, expected T, actual T, msg string) {
	t.Helper()
	if expected == actual {
		return
	}
	if msg != "" {
		t.Errorf("expected (%+v) is not equal to actual (%+v): (%v)", expected, actual, msg)
	} else {
		t.Errorf("expected (%+v) is not equal to actual (%+v)", expected, actual)
	}
}
