// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vow

// abortSignal is the control error that unwinds a loop body after its break
// capability settles the terminal promise. It travels as a panic payload
// out of the body, is converted into a rejection by the continuation
// machinery, and is absorbed by the loop's safety net: the net's settlement
// attempt is a guaranteed no-op because the terminal promise settled first.
//
// token is a freshly cloned, never-settled promise unique to the iteration
// that raised the signal. Nothing resolves it and nothing references it
// after the unwind; its only job is to be a value no caller error could
// collide with.
type abortSignal struct {
	token any
}

func (*abortSignal) Error() string {
	return "vow: loop iteration aborted"
}

// isAbort reports whether err is a loop abort signal.
func isAbort(err error) bool {
	_, ok := err.(*abortSignal)
	return ok
}

// Breaker is the per-iteration break capability handed to a [Repeat] body.
// It closes over the loop's terminal promise and the iteration's abort
// token. Break and BreakWith settle the terminal promise and then unwind
// the current body invocation; neither returns.
//
// A Breaker is valid for the body invocation it was passed to and must be
// the body's final action. Calling it later still settles nothing twice —
// the settlement attempt is a settle-once no-op — but the unwind panics in
// whatever frame made the call.
type Breaker[T any] struct {
	terminal *Promise[T]
	token    *Promise[T]
}

// Break resolves the loop's terminal promise with v and unwinds the
// current body invocation. Does not return.
func (b *Breaker[T]) Break(v T) {
	b.terminal.Resolve(v)
	panic(&abortSignal{token: b.token})
}

// BreakWith delegates the terminal promise's settlement to d: the loop's
// outcome mirrors d's eventual outcome, whether d settles before or after
// this call. Unwinds the current body invocation; does not return.
func (b *Breaker[T]) BreakWith(d *Promise[T]) {
	if d == nil {
		panic("vow: break with nil promise")
	}
	b.terminal.adopt(d)
	panic(&abortSignal{token: b.token})
}

// CatchBreaker is the per-iteration break capability handed to a
// [RepeatCatch] body. It is the rejection-channel dual of [Breaker]:
// Break rejects the terminal promise instead of resolving it.
type CatchBreaker[T any] struct {
	terminal *Promise[T]
	token    *Promise[T]
}

// Break rejects the loop's terminal promise with err and unwinds the
// current body invocation. Does not return. Panics if err is nil.
func (b *CatchBreaker[T]) Break(err error) {
	b.terminal.Reject(err)
	panic(&abortSignal{token: b.token})
}

// BreakWith delegates the terminal promise's settlement to d, in either
// settlement order. Unwinds the current body invocation; does not return.
func (b *CatchBreaker[T]) BreakWith(d *Promise[T]) {
	if d == nil {
		panic("vow: break with nil promise")
	}
	b.terminal.adopt(d)
	panic(&abortSignal{token: b.token})
}
