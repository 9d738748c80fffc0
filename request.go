package bpmap

import "bpmap/operator"

// result carries a value/error pair back over a one-shot reply channel —
// Go's closest analogue to the Rust oneshot channel's Result<T, Broken>.
type result[T any] struct {
	value T
	err   error
}

// message is one request the backend goroutine can dispatch against the
// operator. Each concrete type owns its own reply channel.
type message interface {
	dispatch(op *operator.Operator)
	failBroken()
}

type insertRequest struct {
	key   Key
	value []byte
	reply chan error
}

func (r *insertRequest) dispatch(op *operator.Operator) { r.reply <- op.Insert(r.key, r.value) }
func (r *insertRequest) failBroken()                    { r.reply <- ErrBroken }

type deleteRequest struct {
	key   Key
	reply chan error
}

func (r *deleteRequest) dispatch(op *operator.Operator) { r.reply <- op.Delete(r.key) }
func (r *deleteRequest) failBroken()                    { r.reply <- ErrBroken }

type containsRequest struct {
	key   Key
	reply chan result[bool]
}

func (r *containsRequest) dispatch(op *operator.Operator) {
	ok, err := op.Contains(r.key)
	r.reply <- result[bool]{value: ok, err: err}
}
func (r *containsRequest) failBroken() { r.reply <- result[bool]{err: ErrBroken} }

// getOutcome is the (value, found) pair Get returns, bundled so it fits
// through the single-value result[T] reply channel.
type getOutcome struct {
	data []byte
	ok   bool
}

type getRequest struct {
	key   Key
	reply chan result[getOutcome]
}

func (r *getRequest) dispatch(op *operator.Operator) {
	data, ok, err := op.Get(r.key)
	r.reply <- result[getOutcome]{value: getOutcome{data: data, ok: ok}, err: err}
}
func (r *getRequest) failBroken() { r.reply <- result[getOutcome]{err: ErrBroken} }

type nextRequest struct {
	exclusiveStart *Key
	reply          chan result[[]Entry]
}

func (r *nextRequest) dispatch(op *operator.Operator) {
	entries, err := op.Next(r.exclusiveStart)
	r.reply <- result[[]Entry]{value: entries, err: err}
}
func (r *nextRequest) failBroken() { r.reply <- result[[]Entry]{err: ErrBroken} }

type fileSizeRequest struct {
	reply chan result[int64]
}

func (r *fileSizeRequest) dispatch(op *operator.Operator) {
	size, err := op.FileSize()
	r.reply <- result[int64]{value: size, err: err}
}
func (r *fileSizeRequest) failBroken() { r.reply <- result[int64]{err: ErrBroken} }

type closeRequest struct {
	reply chan error
}

func (r *closeRequest) dispatch(op *operator.Operator) { r.reply <- op.Close() }
func (r *closeRequest) failBroken()                    { r.reply <- nil }
