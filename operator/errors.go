package operator

import "errors"

// ErrBroken is returned once the engine has observed an I/O failure or a
// structurally invalid page and has latched into a terminal state; no
// further request touches disk until the engine is closed and reopened.
var ErrBroken = errors.New("bpmap: engine is broken, reopen required")

// ErrTemporary is reserved for transient conditions at the request
// boundary; the operator itself never returns it. A full request channel
// applies backpressure (blocks the caller) rather than surfacing this,
// so today nothing returns it, but it remains part of the client-visible
// error model per spec.md §7.
var ErrTemporary = errors.New("bpmap: temporary failure, retry")

// ErrValueTooLarge is a plain input-validation error, distinct from the
// Broken/Temporary pair: the caller handed in a value bigger than a
// record block can ever hold, independent of engine state.
var ErrValueTooLarge = errors.New("bpmap: value exceeds maximum record size")
