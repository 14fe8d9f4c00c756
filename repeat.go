// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vow

// repeatLoop drives one Repeat invocation. The chain of continuations
// behind the loop is grown lazily: advance installs exactly one iteration's
// continuations, and the iteration's step handler calls advance again
// before returning. Growth happens through this loop-state object rather
// than a self-capturing closure, so the whole apparatus is unreferenced and
// collectable as soon as the loop ends.
//
// tail is the most recently installed link and is owned exclusively by this
// loop; advance updates it exactly once per iteration. terminal is the
// promise handed to the caller, never linked into the chain, and settled
// exactly once: by the body's breaker, or by the safety net on failure.
type repeatLoop[T any] struct {
	tail     *Promise[T]
	terminal *Promise[T]
	body     func(*Breaker[T], T) *Promise[T]
}

// Repeat loops body while its iterations succeed. The seed is wrapped in a
// freshly resolved promise; each iteration receives the previous
// iteration's fulfillment value and a fresh [Breaker], and returns the
// promise of the next value.
//
// The returned terminal promise resolves when the body invokes its breaker
// and rejects when an iteration fails (the body panics, or its returned
// promise rejects). Without either, the loop runs forever. Iterations are
// strictly sequential.
func Repeat[T any](s *Scheduler, seed T, body func(*Breaker[T], T) *Promise[T]) *Promise[T] {
	return RepeatFrom(Resolved(s, seed), body)
}

// RepeatFrom is the instance form of [Repeat]: the loop seeds from whatever
// p eventually yields. A rejection of p rejects the terminal promise
// without the body ever running.
func RepeatFrom[T any](p *Promise[T], body func(*Breaker[T], T) *Promise[T]) *Promise[T] {
	if body == nil {
		panic("vow: repeat with nil body")
	}
	l := &repeatLoop[T]{
		tail:     p,
		terminal: p.CloneUnsettled(),
		body:     body,
	}
	l.advance()
	return l.terminal
}

// advance installs the next iteration: a step continuation on the success
// channel and, downstream of it, the safety net on the failure channel.
// The net sits below the step handler so that it also observes the step's
// own panics — the breaker's abort signal in particular.
func (l *repeatLoop[T]) advance() {
	l.tail = Catch(Then(l.tail, l.step), l.settleFailure)
}

// step runs one iteration. The abort token is cloned from the chain tail as
// it stands when the iteration runs. The chain is extended before the
// body's result is returned; the next iteration still cannot start until
// that result settles.
func (l *repeatLoop[T]) step(v T) *Promise[T] {
	br := &Breaker[T]{terminal: l.terminal, token: l.tail.CloneUnsettled()}
	out := l.body(br, v)
	l.advance()
	return out
}

// settleFailure is the safety net. Any failure reaching it — a genuine body
// failure, or the breaker's abort signal — is turned into one settlement
// attempt on the terminal promise. For the abort signal the terminal
// promise has already settled, so the attempt is a no-op; either way no
// further chain growth occurs on this path.
func (l *repeatLoop[T]) settleFailure(err error) *Promise[T] {
	l.terminal.Reject(err)
	return Rejected[T](l.terminal.sched, err)
}
