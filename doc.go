// Package bpmap is an embedded, single-file, concurrent B+Tree key-value
// store: fixed 128-bit keys to variable-length values up to ~1MiB,
// crash-consistent across a primary file, write-ahead log and shadow
// file, reachable only through a cloneable front-end Handle that
// serializes every call onto a single backend goroutine.
//
// Generalizes the teacher's ad hoc main.go smoke test (a BufferPoolManager
// plus B+Tree driven directly from main) into the request/reply channel
// split the original Rust implementation used tokio::spawn and oneshot
// channels for: Open starts one backend goroutine owning an
// operator.Operator, and every Handle method sends a typed request and
// blocks on its own one-shot reply channel.
package bpmap

import (
	"bpmap/operator"
	"bpmap/page"
)

// Key is a 128-bit key, stored and compared as sixteen little-endian
// bytes.
type Key = page.Key

// Entry is a materialized (key, value) pair returned by Next and Stream.
type Entry = operator.Entry

// KeyFromUint64 builds a Key from a 64-bit value (the low 8 bytes); the
// high 8 bytes are zero. Convenient for callers whose keys fit in a
// uint64, which is every concrete scenario in the original test suite.
func KeyFromUint64(v uint64) Key { return page.KeyFromUint64(v) }
