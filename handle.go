package bpmap

import (
	"sync"

	"bpmap/operator"
)

// requestBufferSize is the small constant buffer on the request channel.
// An unbuffered channel would also be correct (the backend always drains
// it immediately since it does nothing else), but a small buffer avoids
// needless scheduling stalls when many goroutines call through cloned
// Handles at once, as in the concurrent bulk-insert scenario.
const requestBufferSize = 64

// Handle is a cheap, cloneable front-end to one open database: every
// method builds the corresponding request, sends it on the shared
// channel, and blocks for the reply. Cloning a Handle (copying the
// struct; it holds only the channel and a pointer to the shared close
// state, both reference types) lets multiple
// goroutines submit requests concurrently — the backend still serializes
// them in receive order — mirroring the Rust front-end's
// #[derive(Clone)].
type Handle struct {
	requests chan message
	shared   *handleState
}

// handleState is shared by every clone of a Handle so that, however many
// clones call Close, the backend goroutine is sent exactly one close
// message — sending a second one after the first has been processed
// would enqueue into a channel nobody is reading anymore and block the
// caller forever.
type handleState struct {
	closeOnce sync.Once
	closeErr  error
}

// Open opens (creating if absent) the database at path, recovering from
// any crash left over from a prior run, and starts its backend
// goroutine. cacheCapacity is the page cache's entry capacity; 0
// disables caching.
func Open(path string, cacheCapacity int) (Handle, error) {
	op, err := operator.Open(path, cacheCapacity)
	if err != nil {
		return Handle{}, err
	}
	requests := make(chan message, requestBufferSize)
	go backendLoop(op, requests)
	return Handle{requests: requests, shared: &handleState{}}, nil
}

// send enqueues msg, blocking while the request channel is full. This is
// the Go rendering of the Rust front-end's bounded-channel `.await` —
// backpressure on a full buffer, not a dropped request — so a burst of
// concurrent callers (spec.md §8 scenario 1) is throttled rather than
// failed.
func (h Handle) send(msg message) error {
	h.requests <- msg
	return nil
}

// Insert stores value under key, replacing any existing value.
func (h Handle) Insert(key Key, value []byte) error {
	reply := make(chan error, 1)
	if err := h.send(&insertRequest{key: key, value: value, reply: reply}); err != nil {
		return err
	}
	return <-reply
}

// Delete removes key, if present. Deleting an absent key is not an
// error.
func (h Handle) Delete(key Key) error {
	reply := make(chan error, 1)
	if err := h.send(&deleteRequest{key: key, reply: reply}); err != nil {
		return err
	}
	return <-reply
}

// Contains reports whether key is present.
func (h Handle) Contains(key Key) (bool, error) {
	reply := make(chan result[bool], 1)
	if err := h.send(&containsRequest{key: key, reply: reply}); err != nil {
		return false, err
	}
	res := <-reply
	return res.value, res.err
}

// Get returns the value stored under key, and whether it was present.
func (h Handle) Get(key Key) ([]byte, bool, error) {
	reply := make(chan result[getOutcome], 1)
	if err := h.send(&getRequest{key: key, reply: reply}); err != nil {
		return nil, false, err
	}
	res := <-reply
	return res.value.data, res.value.ok, res.err
}

// Next returns the entries strictly greater than exclusiveStart (nil
// meaning "from the beginning"), up to one leaf's worth. A nil slice
// with a nil error means there is nothing more to scan.
func (h Handle) Next(exclusiveStart *Key) ([]Entry, error) {
	reply := make(chan result[[]Entry], 1)
	if err := h.send(&nextRequest{exclusiveStart: exclusiveStart, reply: reply}); err != nil {
		return nil, err
	}
	res := <-reply
	return res.value, res.err
}

// FileSize returns the current size, in bytes, of the primary file.
func (h Handle) FileSize() (int64, error) {
	reply := make(chan result[int64], 1)
	if err := h.send(&fileSizeRequest{reply: reply}); err != nil {
		return 0, err
	}
	res := <-reply
	return res.value, res.err
}

// Close flushes pending state, persists the free stack, and terminates
// the backend goroutine. It is idempotent — including across clones of
// the same Handle: only the first call (from any clone) actually talks
// to the backend; every other call, concurrent or later, observes the
// same result without sending a second close message.
func (h Handle) Close() error {
	h.shared.closeOnce.Do(func() {
		reply := make(chan error, 1)
		if err := h.send(&closeRequest{reply: reply}); err != nil {
			h.shared.closeErr = err
			return
		}
		h.shared.closeErr = <-reply
	})
	return h.shared.closeErr
}
