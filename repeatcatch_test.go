// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vow_test

import (
	"errors"
	"strconv"
	"testing"

	"code.hybscloud.com/vow"
)

// numErr carries a loop counter on the rejection channel.
type numErr int

func (e numErr) Error() string {
	return "count " + strconv.Itoa(int(e))
}

func TestRepeatCatchSuccessTerminates(t *testing.T) {
	s := vow.NewScheduler()
	done := vow.RepeatCatch(s, numErr(1), func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		n := int(err.(numErr))
		if n < 3 {
			return vow.Rejected[int](s, numErr(n+1))
		}
		return vow.Resolved(s, n)
	})
	v, err := vow.Await(done)
	if err != nil {
		t.Fatalf("got error %v", err)
	}
	if v != 3 {
		t.Fatalf("got %d, want 3", v)
	}
}

func TestRepeatCatchBreakRejectsTerminal(t *testing.T) {
	s := vow.NewScheduler()
	errStop := errors.New("stop")
	calls := 0
	done := vow.RepeatCatch(s, numErr(0), func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		calls++
		if calls == 3 {
			br.Break(errStop)
		}
		return vow.Rejected[int](s, numErr(calls))
	})
	if _, err := vow.Await(done); err != errStop {
		t.Fatalf("got %v, want stop", err)
	}
	if calls != 3 {
		t.Fatalf("body ran %d times, want 3", calls)
	}
}

func TestRepeatCatchTerminalReturnedImmediately(t *testing.T) {
	s := vow.NewScheduler()
	done := vow.RepeatCatch(s, numErr(0), func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		return vow.Resolved(s, 0)
	})
	if done.State() != vow.StatePending {
		t.Fatalf("got %v before drain, want pending", done.State())
	}
	s.Run()
	if done.State() != vow.StateFulfilled {
		t.Fatalf("got %v, want fulfilled", done.State())
	}
}

// A body panic is a rejection, and a rejection is the continue signal: the
// next iteration receives the recovered error.
func TestRepeatCatchBodyPanicContinuesLoop(t *testing.T) {
	s := vow.NewScheduler()
	errOnce := errors.New("once")
	calls := 0
	done := vow.RepeatCatch(s, numErr(0), func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		calls++
		if calls == 1 {
			panic(errOnce)
		}
		if err != errOnce {
			t.Fatalf("iteration 2 got %v, want once", err)
		}
		return vow.Resolved(s, 7)
	})
	v, err := vow.Await(done)
	if err != nil || v != 7 {
		t.Fatalf("got (%d, %v), want (7, nil)", v, err)
	}
	if calls != 2 {
		t.Fatalf("body ran %d times, want 2", calls)
	}
}

func TestRepeatCatchBodyValuePanicContinuesWrapped(t *testing.T) {
	s := vow.NewScheduler()
	calls := 0
	done := vow.RepeatCatch(s, numErr(0), func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		calls++
		if calls == 1 {
			panic("gone")
		}
		var pe *vow.PanicError
		if !errors.As(err, &pe) || pe.Value != "gone" {
			t.Fatalf("iteration 2 got %v, want wrapped gone", err)
		}
		return vow.Resolved(s, 1)
	})
	if v, err := vow.Await(done); err != nil || v != 1 {
		t.Fatalf("got (%d, %v), want (1, nil)", v, err)
	}
}

func TestRepeatCatchDelegatedBreakSettledDelegate(t *testing.T) {
	s := vow.NewScheduler()
	delegate := vow.Rejected[int](s, errBoom)
	done := vow.RepeatCatch(s, numErr(0), func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		br.BreakWith(delegate)
		return nil
	})
	if _, err := vow.Await(done); err != errBoom {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestRepeatCatchDelegatedBreakPendingDelegate(t *testing.T) {
	s := vow.NewScheduler()
	delegate := vow.New[int](s)
	done := vow.RepeatCatch(s, numErr(0), func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		br.BreakWith(delegate)
		return nil
	})
	s.Run()
	if done.State() != vow.StatePending {
		t.Fatalf("got %v, want pending", done.State())
	}
	delegate.Resolve(55)
	s.Run()
	if v, _ := done.Value(); v != 55 {
		t.Fatalf("got %d, want 55", v)
	}
}

func TestRepeatCatchFromFulfilledSeed(t *testing.T) {
	s := vow.NewScheduler()
	ran := false
	done := vow.RepeatCatchFrom(vow.Resolved(s, 12), func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		ran = true
		return vow.Resolved(s, 0)
	})
	v, err := vow.Await(done)
	if err != nil || v != 12 {
		t.Fatalf("got (%d, %v), want (12, nil)", v, err)
	}
	if ran {
		t.Fatal("body ran with a fulfilled seed")
	}
}

func TestRepeatCatchFromPendingSeed(t *testing.T) {
	s := vow.NewScheduler()
	seed := vow.New[int](s)
	done := vow.RepeatCatchFrom(seed, func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		return vow.Resolved(s, int(err.(numErr)) * 2)
	})
	s.Run()
	if done.State() != vow.StatePending {
		t.Fatalf("got %v, want pending", done.State())
	}
	seed.Reject(numErr(21))
	s.Run()
	if v, _ := done.Value(); v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
}

func TestRepeatCatchTerminalSettleOnce(t *testing.T) {
	s := vow.NewScheduler()
	done := vow.RepeatCatch(s, numErr(0), func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		return vow.Resolved(s, 5)
	})
	s.Run()
	done.Resolve(6)
	done.Reject(errBoom)
	if v, _ := done.Value(); v != 5 {
		t.Fatalf("got %d, want 5", v)
	}
}

func TestRepeatCatchNilBodyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("RepeatCatch with nil body did not panic")
		}
	}()
	vow.RepeatCatch[int](vow.NewScheduler(), errBoom, nil)
}

func TestRepeatCatchManyIterationsFlatStack(t *testing.T) {
	s := vow.NewScheduler()
	const iterations = 100000
	done := vow.RepeatCatch(s, numErr(iterations), func(br *vow.CatchBreaker[int], err error) *vow.Promise[int] {
		n := int(err.(numErr))
		if n == 0 {
			return vow.Resolved(s, -1)
		}
		return vow.Rejected[int](s, numErr(n-1))
	})
	v, err := vow.Await(done)
	if err != nil || v != -1 {
		t.Fatalf("got (%d, %v), want (-1, nil)", v, err)
	}
}
