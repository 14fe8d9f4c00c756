// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vow

// State is the settlement state of a promise.
type State uint8

const (
	// StatePending means the promise has not settled.
	StatePending State = iota
	// StateFulfilled means the promise settled with a value.
	StateFulfilled
	// StateRejected means the promise settled with an error.
	StateRejected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFulfilled:
		return "fulfilled"
	case StateRejected:
		return "rejected"
	}
	return "invalid"
}

// Promise represents a value of type T or an error available at a future
// time. A promise settles at most once: after the first Resolve or Reject,
// further settlement attempts are no-ops (the settle-once invariant).
//
// Promises are bound to a [Scheduler] and confined to its goroutine.
// Registered continuations always run asynchronously as microtasks, even
// when registered after settlement.
type Promise[T any] struct {
	sched *Scheduler
	state State
	// locked marks a promise whose fate is delegated to another promise.
	// Public settlement attempts are no-ops while locked; only the
	// delegation bridge may settle it.
	locked bool
	value  T
	err    error
	subs   []func()
}

// New creates a pending promise bound to the given scheduler.
func New[T any](s *Scheduler) *Promise[T] {
	if s == nil {
		panic("vow: promise with nil scheduler")
	}
	return &Promise[T]{sched: s}
}

// Resolved creates a promise already fulfilled with v.
func Resolved[T any](s *Scheduler, v T) *Promise[T] {
	p := New[T](s)
	p.state = StateFulfilled
	p.value = v
	return p
}

// Rejected creates a promise already rejected with err.
func Rejected[T any](s *Scheduler, err error) *Promise[T] {
	if err == nil {
		panic("vow: reject with nil error")
	}
	p := New[T](s)
	p.state = StateRejected
	p.err = err
	return p
}

// Resolve settles the promise with v. No-op if already settled or if the
// promise's fate has been delegated.
func (p *Promise[T]) Resolve(v T) {
	if p.locked {
		return
	}
	p.fulfill(v)
}

// Reject settles the promise with err. No-op if already settled or if the
// promise's fate has been delegated. Panics if err is nil.
func (p *Promise[T]) Reject(err error) {
	if err == nil {
		panic("vow: reject with nil error")
	}
	if p.locked {
		return
	}
	p.fail(err)
}

// CloneUnsettled returns a fresh pending promise bound to the same
// scheduler, sharing no state with the receiver.
func (p *Promise[T]) CloneUnsettled() *Promise[T] {
	return New[T](p.sched)
}

// State returns the promise's settlement state.
func (p *Promise[T]) State() State {
	return p.state
}

// Value returns the fulfillment value and true, or zero and false when the
// promise is not fulfilled.
func (p *Promise[T]) Value() (T, bool) {
	if p.state == StateFulfilled {
		return p.value, true
	}
	var zero T
	return zero, false
}

// Reason returns the rejection reason and true, or nil and false when the
// promise is not rejected.
func (p *Promise[T]) Reason() (error, bool) {
	if p.state == StateRejected {
		return p.err, true
	}
	return nil, false
}

// Scheduler returns the scheduler the promise is bound to.
func (p *Promise[T]) Scheduler() *Scheduler {
	return p.sched
}

// fulfill settles ignoring the delegation lock. Internal settlement path
// used by the adoption bridge once the delegate's outcome is known.
func (p *Promise[T]) fulfill(v T) {
	if p.state != StatePending {
		return
	}
	p.state = StateFulfilled
	p.value = v
	p.flush()
}

// fail settles ignoring the delegation lock.
func (p *Promise[T]) fail(err error) {
	if p.state != StatePending {
		return
	}
	p.state = StateRejected
	p.err = err
	p.flush()
}

// flush schedules every registered continuation and drops the list.
func (p *Promise[T]) flush() {
	for _, f := range p.subs {
		p.sched.Schedule(f)
	}
	p.subs = nil
}

// subscribe registers f to run once p settles. f runs as a microtask and
// reads the settled state directly from p; it is scheduled immediately when
// p has already settled.
func (p *Promise[T]) subscribe(f func()) {
	if p.state == StatePending {
		p.subs = append(p.subs, f)
		return
	}
	p.sched.Schedule(f)
}

// adopt locks p's fate to d: p's eventual settlement mirrors d's, and
// public settlement attempts on p become no-ops immediately. No-op when p
// has already settled or is already delegated. Adopting p itself would
// leave p pending forever, so it is surfaced as a rejection instead.
func (p *Promise[T]) adopt(d *Promise[T]) {
	if p.state != StatePending || p.locked {
		return
	}
	if d == p {
		p.fail(&PanicError{Value: "vow: promise adopting itself"})
		return
	}
	p.locked = true
	d.subscribe(func() {
		if d.state == StateFulfilled {
			p.fulfill(d.value)
		} else {
			p.fail(d.err)
		}
	})
}

// Await drains the promise's scheduler until the promise settles, then
// returns its outcome. Panics if the queue exhausts with the promise still
// pending, since nothing could settle it anymore.
func Await[T any](p *Promise[T]) (T, error) {
	for p.state == StatePending {
		if !p.sched.Tick() {
			panic("vow: await on a promise that can no longer settle")
		}
	}
	if p.state == StateRejected {
		var zero T
		return zero, p.err
	}
	return p.value, nil
}
