// Package sched runs deferred and periodic tasks on the goroutine that owns
// a session. Nothing runs on its own: the owner calls Advance once per frame.
package sched

import (
	"container/heap"
	"time"
)

type task struct {
	due      time.Time
	seq      uint64
	interval time.Duration // zero for one-shot tasks
	fn       func()
	index    int // heap index, -1 when not queued
	done     bool
}

// Handle refers to a scheduled task.
type Handle struct {
	t *task
	s *Scheduler
}

// Cancel stops the task from running again. It reports whether the task was
// still pending.
func (h Handle) Cancel() bool {
	if h.t == nil || h.t.done {
		return false
	}
	h.t.done = true
	if h.t.index >= 0 {
		heap.Remove(&h.s.queue, h.t.index)
	}
	return true
}

// Active reports whether the task will still run.
func (h Handle) Active() bool {
	return h.t != nil && !h.t.done
}

// Scheduler is a single-threaded timer queue. It is not safe for concurrent
// use.
type Scheduler struct {
	now    time.Time
	queue  taskQueue
	seq    uint64
	closed bool
}

// New creates a scheduler whose clock starts at start.
func New(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	return s.schedule(d, 0, fn)
}

// Every runs fn every d, first at now+d. A non-positive d is treated as one
// millisecond.
func (s *Scheduler) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		d = time.Millisecond
	}
	return s.schedule(d, d, fn)
}

func (s *Scheduler) schedule(d, interval time.Duration, fn func()) Handle {
	if s.closed {
		return Handle{}
	}
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &task{due: s.now.Add(d), seq: s.seq, interval: interval, fn: fn}
	heap.Push(&s.queue, t)
	return Handle{t: t, s: s}
}

// Advance runs every task due at or before now in due order and returns how
// many ran. While a task runs, Now reports its due time. Time never moves
// backwards.
func (s *Scheduler) Advance(now time.Time) int {
	ran := 0
	for len(s.queue) > 0 {
		t := s.queue[0]
		if t.due.After(now) {
			break
		}
		heap.Pop(&s.queue)
		if t.due.After(s.now) {
			s.now = t.due
		}
		if t.interval > 0 {
			t.due = t.due.Add(t.interval)
			s.seq++
			t.seq = s.seq
			heap.Push(&s.queue, t)
		} else {
			t.done = true
		}
		t.fn()
		ran++
	}
	if now.After(s.now) {
		s.now = now
	}
	return ran
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Close cancels every task. Later After and Every calls return inactive
// handles.
func (s *Scheduler) Close() {
	for _, t := range s.queue {
		t.done = true
		t.index = -1
	}
	s.queue = nil
	s.closed = true
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
