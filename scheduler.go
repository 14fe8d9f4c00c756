// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vow

// compactThreshold is the consumed-prefix length above which Tick shifts
// pending tasks to the front of the queue instead of letting the backing
// array grow with the consumed prefix.
const compactThreshold = 256

// Scheduler is a single-threaded cooperative microtask queue.
// Tasks run in FIFO order on the goroutine that calls [Scheduler.Run] or
// [Scheduler.Tick]; a running task may schedule further tasks, which are
// appended behind every task already queued.
//
// A Scheduler is confined to one goroutine. It performs no locking.
type Scheduler struct {
	tasks []func()
	head  int
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule enqueues a microtask.
func (s *Scheduler) Schedule(f func()) {
	if f == nil {
		panic("vow: schedule nil task")
	}
	s.tasks = append(s.tasks, f)
}

// Tick runs exactly one queued microtask.
// Returns false without running anything when the queue is empty.
//
// The consumed prefix of the backing array is reclaimed eagerly when the
// queue drains and shifted away once it passes compactThreshold, so a
// long-running drain keeps the queue's footprint proportional to the number
// of pending tasks, not the number of tasks ever scheduled.
func (s *Scheduler) Tick() bool {
	if s.head == len(s.tasks) {
		s.tasks = s.tasks[:0]
		s.head = 0
		return false
	}
	f := s.tasks[s.head]
	s.tasks[s.head] = nil
	s.head++
	if s.head == len(s.tasks) {
		s.tasks = s.tasks[:0]
		s.head = 0
	} else if s.head >= compactThreshold && s.head*2 >= len(s.tasks) {
		n := copy(s.tasks, s.tasks[s.head:])
		for i := n; i < len(s.tasks); i++ {
			s.tasks[i] = nil
		}
		s.tasks = s.tasks[:n]
		s.head = 0
	}
	f()
	return true
}

// Run drains the queue to exhaustion, including tasks scheduled while
// draining. The loop is flat: tasks that schedule further tasks do not
// deepen the call stack.
func (s *Scheduler) Run() {
	for s.Tick() {
	}
}

// Idle reports whether the queue is empty.
func (s *Scheduler) Idle() bool {
	return s.head == len(s.tasks)
}
