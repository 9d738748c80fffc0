package bpmap

import "bpmap/operator"

// backendLoop is the single cooperative task from spec.md §5: it owns op
// exclusively, reads messages off requests in receive order, dispatches
// each to completion before reading the next, and — once a close
// message is processed — drains whatever is already queued (replying
// ErrBroken to each per spec.md §4.6) before returning.
func backendLoop(op *operator.Operator, requests chan message) {
	for msg := range requests {
		_, isClose := msg.(*closeRequest)
		msg.dispatch(op)
		if isClose {
			drainQueued(requests)
			return
		}
	}
}

// drainQueued replies ErrBroken to every message already sitting in the
// channel buffer without blocking for new arrivals; sends issued after
// the backend goroutine has returned block forever; a Handle must not be
// used after its Close has completed.
func drainQueued(requests chan message) {
	for {
		select {
		case msg := <-requests:
			msg.failBroken()
		default:
			return
		}
	}
}
