// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vow

// catchLoop drives one RepeatCatch invocation: the rejection-channel dual
// of repeatLoop. The body is a failure continuation, so the loop keeps
// going exactly as long as iterations keep rejecting; the success channel
// is the safety net that terminates it.
type catchLoop[T any] struct {
	tail     *Promise[T]
	terminal *Promise[T]
	body     func(*CatchBreaker[T], error) *Promise[T]
}

// RepeatCatch loops body while its iterations fail. The seed error is
// wrapped in a freshly rejected promise; each iteration receives the
// previous iteration's rejection reason and a fresh [CatchBreaker], and
// returns a promise. The loop continues to the next iteration only when
// that promise rejects again.
//
// The returned terminal promise resolves as soon as an iteration succeeds
// (the body's promise fulfills) and rejects when the body invokes its
// breaker. A body panic is converted to a rejection and therefore continues
// the loop: the next iteration receives the panic's error. The only
// rejections that stop the loop are the internal abort signal.
func RepeatCatch[T any](s *Scheduler, seed error, body func(*CatchBreaker[T], error) *Promise[T]) *Promise[T] {
	return RepeatCatchFrom(Rejected[T](s, seed), body)
}

// RepeatCatchFrom is the instance form of [RepeatCatch]: the loop seeds
// from whatever failure p eventually produces. A fulfillment of p resolves
// the terminal promise without the body ever running.
func RepeatCatchFrom[T any](p *Promise[T], body func(*CatchBreaker[T], error) *Promise[T]) *Promise[T] {
	if body == nil {
		panic("vow: repeat with nil body")
	}
	l := &catchLoop[T]{
		tail:     p,
		terminal: p.CloneUnsettled(),
		body:     body,
	}
	l.advance()
	return l.terminal
}

// advance installs the next iteration: the step continuation on the failure
// channel and, downstream of it, the success safety net.
func (l *catchLoop[T]) advance() {
	l.tail = Then(Catch(l.tail, l.step), l.settleSuccess)
}

// step runs one iteration of the failure loop. In this variant the chain is
// extended before the body runs: the next iteration's attachment must exist
// by the time the body's result starts settling the current link.
//
// An incoming abort signal means a breaker or the safety net already ended
// the loop further up the chain; the body is not run with it. The terminal
// settlement attempt is the documented safety-net no-op.
func (l *catchLoop[T]) step(err error) *Promise[T] {
	if isAbort(err) {
		l.terminal.Reject(err)
		return Rejected[T](l.terminal.sched, err)
	}
	br := &CatchBreaker[T]{terminal: l.terminal, token: l.tail.CloneUnsettled()}
	l.advance()
	return l.body(br, err)
}

// settleSuccess is the safety net on the success channel: the failure chain
// produced a non-rejected outcome, so the loop is over. It resolves the
// terminal promise and then performs the breaker's unwind with the same
// cloned-tail token pattern, aborting any continuation links already
// installed downstream; their settlement attempts are settle-once no-ops.
func (l *catchLoop[T]) settleSuccess(v T) *Promise[T] {
	l.terminal.Resolve(v)
	panic(&abortSignal{token: l.tail.CloneUnsettled()})
}
