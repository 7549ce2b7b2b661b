// ABOUTME: Clock and timer abstraction injected into the rotation engine
// ABOUTME: Lets tests drive auto-advance deterministically instead of sleeping

package rotate

import "time"

// Clock creates timers. Production code uses RealClock; tests substitute a
// fake that fires on demand.
type Clock interface {
	NewTimer(d time.Duration) Timer
}

// Timer is the subset of time.Timer the rotation loop needs.
type Timer interface {
	C() <-chan time.Time
	Reset(d time.Duration)
	Stop() bool
}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) NewTimer(d time.Duration) Timer {
	return &realTimer{t: time.NewTimer(d)}
}

type realTimer struct {
	t *time.Timer
}

func (r *realTimer) C() <-chan time.Time { return r.t.C }
func (r *realTimer) Reset(d time.Duration) {
	r.t.Reset(d)
}
func (r *realTimer) Stop() bool { return r.t.Stop() }
