package sched

import "time"

// Throttle returns a function that calls fn at most once per limit. Calls
// made while throttled are dropped.
func Throttle(s *Scheduler, limit time.Duration, fn func()) func() {
	blocked := false
	return func() {
		if blocked {
			return
		}
		fn()
		blocked = true
		s.After(limit, func() { blocked = false })
	}
}

// Debounce returns a function that calls fn once wait has passed without
// another call.
func Debounce(s *Scheduler, wait time.Duration, fn func()) func() {
	var pending Handle
	return func() {
		pending.Cancel()
		pending = s.After(wait, fn)
	}
}
