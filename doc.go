// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package vow provides a single-threaded promise primitive and asynchronous
// looping combinators in Go.
//
// The core type [Promise] represents a value or error available at a future
// time. Promises settle at most once to Fulfilled or Rejected; continuations
// registered on a promise run as microtasks on a cooperative [Scheduler].
// On top of the primitive, [Repeat] and [RepeatCatch] build unbounded
// asynchronous loops that grow their continuation chain one link per
// iteration and terminate through a per-iteration break capability.
//
// # Design Philosophy
//
// vow provides:
//   - A minimal tri-state promise with a strict settle-once invariant
//   - Cooperative, single-goroutine scheduling with a flat drain loop
//   - Loop combinators that compose the primitive's scheduling rather than
//     introducing their own
//
// Everything the package schedules runs on the goroutine that calls
// [Scheduler.Run] or [Scheduler.Tick]. There are no goroutines, channels,
// or locks inside the package; promises and schedulers are confined to one
// goroutine by convention.
//
// # Promise Primitive
//
//   - [New]: Create a pending promise bound to a scheduler
//   - [Resolved], [Rejected]: Create settled promises
//   - [Promise.Resolve], [Promise.Reject]: Settle (no-ops once settled)
//   - [Promise.CloneUnsettled]: Independent pending promise, same scheduler
//   - [Promise.State], [Promise.Value], [Promise.Reason]: Observation
//   - [Await]: Drain the scheduler until the promise settles
//
// Rejection reasons are ordinary error values. Any number of independent
// continuation registrations may observe the same promise; callbacks always
// run asynchronously through the scheduler, even when registered on an
// already-settled promise.
//
// # Scheduling
//
//   - [NewScheduler]: Create a microtask scheduler
//   - [Scheduler.Schedule]: Enqueue a microtask
//   - [Scheduler.Run]: Drain the queue to exhaustion
//   - [Scheduler.Tick]: Run exactly one microtask
//   - [Scheduler.Idle]: Report whether the queue is empty
//
// Run and Tick iterate a flat loop: a continuation that schedules further
// continuations never deepens the call stack, which is what lets the loop
// combinators run for an unbounded number of iterations.
//
// # Continuation Chaining
//
// Chaining operators are package-level generic functions, since Go methods
// cannot introduce type parameters:
//
//   - [Then]: Register a fulfillment continuation
//   - [Catch]: Register a rejection continuation
//   - [ThenCatch]: Register both at once
//   - [Map]: Apply a pure function to the fulfilled value
//   - [Finally]: Run cleanup on either channel, passing the settlement through
//
// Handlers return a promise; the derived promise adopts its settlement.
// A handler that panics rejects the derived promise: error panic values are
// used as the rejection reason directly, other values are wrapped in
// [PanicError]. This panic channel is also how the loop combinators unwind.
//
// # Group Combinators
//
//   - [All]: Resolve with every value, or reject with the first rejection
//   - [Race]: Settle like the first input to settle
//
// # Loop Combinators
//
// [Repeat] loops while iterations succeed: each fulfilled step feeds its
// value to the next invocation of the body. [RepeatCatch] is the dual on the
// rejection channel: it loops while iterations fail, feeding each rejection
// reason to the body, and terminates successfully as soon as an iteration
// fulfills.
//
//   - [Repeat], [RepeatFrom]: Loop while succeeding (seed value / live promise)
//   - [RepeatCatch], [RepeatCatchFrom]: Loop while failing
//
// Both return a terminal promise immediately; it settles exactly once, when
// the loop ends. The continuation chain behind a loop is grown lazily, one
// link per iteration, so a loop neither pre-allocates its chain nor recurses
// per iteration. Iterations are strictly sequential: iteration n+1's body
// never starts before iteration n's outcome is known.
//
// # Break
//
// The body receives a fresh break capability each iteration ([Breaker] for
// Repeat, [CatchBreaker] for RepeatCatch):
//
//   - [Breaker.Break]: Resolve the terminal promise with a value
//   - [CatchBreaker.Break]: Reject the terminal promise with an error
//   - [Breaker.BreakWith], [CatchBreaker.BreakWith]: Delegate the terminal
//     settlement to another promise's eventual outcome
//
// Break does not return: it settles the terminal promise and then unwinds
// the current body invocation with a panic carrying an internal abort
// signal. The loop's safety net absorbs the signal; because the terminal
// promise is already settled, the net's own settlement attempt is a
// guaranteed no-op under the settle-once invariant. The signal never appears
// as the terminal promise's settlement. Break must be the body's final
// action; a capability retained past its iteration still settles nothing
// twice, but its unwind panics in the caller's frame.
//
// # Example
//
//	s := vow.NewScheduler()
//	sum := 0
//	done := vow.Repeat(s, 5, func(br *vow.Breaker[int], n int) *vow.Promise[int] {
//		if n == 0 {
//			br.Break(sum)
//		}
//		sum += n
//		return vow.Resolved(s, n-1)
//	})
//	v, _ := vow.Await(done)
//	// v == 15
package vow
