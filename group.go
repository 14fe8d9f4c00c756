// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vow

// All returns a promise that resolves with every input's value, in input
// order, once all inputs fulfill, or rejects with the first rejection to
// settle. With no inputs it resolves immediately with an empty slice.
//
// All inputs must be bound to s.
func All[T any](s *Scheduler, ps ...*Promise[T]) *Promise[[]T] {
	d := New[[]T](s)
	if len(ps) == 0 {
		d.fulfill([]T{})
		return d
	}
	values := make([]T, len(ps))
	remaining := len(ps)
	for i, p := range ps {
		p.subscribe(func() {
			if p.state == StateRejected {
				d.fail(p.err)
				return
			}
			values[i] = p.value
			remaining--
			if remaining == 0 {
				d.fulfill(values)
			}
		})
	}
	return d
}

// Race returns a promise that settles exactly as the first input to settle
// does; the settle-once invariant absorbs every later settlement. With no
// inputs the result stays pending forever.
//
// All inputs must be bound to s.
func Race[T any](s *Scheduler, ps ...*Promise[T]) *Promise[T] {
	d := New[T](s)
	for _, p := range ps {
		p.subscribe(func() {
			if p.state == StateFulfilled {
				d.fulfill(p.value)
			} else {
				d.fail(p.err)
			}
		})
	}
	return d
}
