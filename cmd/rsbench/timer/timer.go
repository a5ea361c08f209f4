// Package timer measures wall-clock time around a unit of work.
package timer

import "time"

type Timer struct {
	start   time.Time
	elapsed time.Duration
	stopped bool
}

func Start() *Timer {
	return &Timer{start: time.Now()}
}

// Stop freezes the elapsed time on the first call and returns it. Later calls
// return the frozen value.
func (t *Timer) Stop() time.Duration {
	if !t.stopped {
		// time.Since uses the monotonic clock, the clamp only guards odd clocks
		t.elapsed = max(time.Since(t.start), 0)
		t.stopped = true
	}
	return t.elapsed
}

// Elapsed reports the frozen duration, ok is false until Stop was called.
func (t *Timer) Elapsed() (time.Duration, bool) {
	return t.elapsed, t.stopped
}

// Measure times fn. The timer is stopped on every exit path and the error of
// fn is returned untouched.
func Measure(fn func() error) (elapsed time.Duration, err error) {
	t := Start()
	defer func() {
		elapsed = t.Stop()
	}()
	return 0, fn()
}
