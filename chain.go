// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vow

import "fmt"

// Continuation registration. Chaining operators are package-level generic
// functions because Go methods cannot introduce type parameters.
//
// Every operator returns a derived promise on the input's scheduler. The
// handler's returned promise is adopted: the derived promise settles exactly
// as it does. A handler that panics rejects the derived promise instead
// (see recoveredError); this is the package's exception channel and the one
// the loop combinators unwind through.

// PanicError wraps a non-error value recovered from a panicking
// continuation handler, carrying it as a rejection reason.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("vow: handler panic: %v", e.Value)
}

// recoveredError converts a recovered panic value into a rejection reason.
// Error values pass through unchanged so control errors (the loop abort
// signal included) keep their identity.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}

// runHandler invokes f and settles d from its outcome: the returned promise
// is adopted, a panic becomes a rejection, a nil return is a contract
// violation surfaced as a rejection.
func runHandler[U any](d *Promise[U], f func() *Promise[U]) {
	defer func() {
		if r := recover(); r != nil {
			d.fail(recoveredError(r))
		}
	}()
	out := f()
	if out == nil {
		d.fail(&PanicError{Value: "vow: continuation handler returned nil promise"})
		return
	}
	d.adopt(out)
}

// Then registers a fulfillment continuation on p and returns the derived
// promise. A rejection of p passes through to the derived promise
// unhandled.
func Then[T, U any](p *Promise[T], onFulfilled func(T) *Promise[U]) *Promise[U] {
	if onFulfilled == nil {
		panic("vow: nil continuation handler")
	}
	d := New[U](p.sched)
	p.subscribe(func() {
		if p.state == StateRejected {
			d.fail(p.err)
			return
		}
		runHandler(d, func() *Promise[U] { return onFulfilled(p.value) })
	})
	return d
}

// Catch registers a rejection continuation on p and returns the derived
// promise. A fulfillment of p passes through to the derived promise
// untouched.
func Catch[T any](p *Promise[T], onRejected func(error) *Promise[T]) *Promise[T] {
	if onRejected == nil {
		panic("vow: nil continuation handler")
	}
	d := New[T](p.sched)
	p.subscribe(func() {
		if p.state == StateFulfilled {
			d.fulfill(p.value)
			return
		}
		runHandler(d, func() *Promise[T] { return onRejected(p.err) })
	})
	return d
}

// ThenCatch registers continuations on both channels at once. Unlike
// chaining Then and Catch, the rejection handler here observes only p's own
// rejection, not a panic raised by the fulfillment handler.
func ThenCatch[T, U any](p *Promise[T], onFulfilled func(T) *Promise[U], onRejected func(error) *Promise[U]) *Promise[U] {
	if onFulfilled == nil || onRejected == nil {
		panic("vow: nil continuation handler")
	}
	d := New[U](p.sched)
	p.subscribe(func() {
		if p.state == StateFulfilled {
			runHandler(d, func() *Promise[U] { return onFulfilled(p.value) })
			return
		}
		runHandler(d, func() *Promise[U] { return onRejected(p.err) })
	})
	return d
}

// Map applies a pure function to p's fulfilled value.
//
// Allocation note: Map is equivalent to Then(p, compose(Resolved, f)) but
// settles the derived promise directly, avoiding the intermediate resolved
// promise per application.
func Map[T, U any](p *Promise[T], f func(T) U) *Promise[U] {
	if f == nil {
		panic("vow: nil continuation handler")
	}
	d := New[U](p.sched)
	p.subscribe(func() {
		if p.state == StateRejected {
			d.fail(p.err)
			return
		}
		defer func() {
			if r := recover(); r != nil {
				d.fail(recoveredError(r))
			}
		}()
		d.fulfill(f(p.value))
	})
	return d
}

// Finally runs cleanup once p settles, on either channel, and passes p's
// settlement through unchanged. A panicking cleanup replaces the settlement
// with its own rejection.
func Finally[T any](p *Promise[T], cleanup func()) *Promise[T] {
	if cleanup == nil {
		panic("vow: nil continuation handler")
	}
	d := New[T](p.sched)
	p.subscribe(func() {
		defer func() {
			if r := recover(); r != nil {
				d.fail(recoveredError(r))
			}
		}()
		cleanup()
		if p.state == StateFulfilled {
			d.fulfill(p.value)
		} else {
			d.fail(p.err)
		}
	})
	return d
}
