package timer

import "time"

// Alarm holds at most one pending wake-up. Setting a new wake-up cancels the
// previous one, and a cancelled wake-up never runs its callback, even when the
// underlying timer already fired and its callback is queued on the executor.
//
// An Alarm must only be used from its scheduler's execution thread.
type Alarm struct {
	sched Scheduler
	timer Timer
	gen   uint64
	armed bool
}

func NewAlarm(sched Scheduler) *Alarm {
	if sched == nil {
		panic("Alarm: scheduler cannot be nil")
	}
	return &Alarm{sched: sched}
}

// Set arranges for fn to run once after d. Negative delays run as soon as possible.
func (a *Alarm) Set(d time.Duration, fn func()) {
	a.Cancel()

	a.gen++
	gen := a.gen
	a.armed = true
	a.timer = a.sched.AfterFunc(clampDelay(d), func() {
		if !a.armed || a.gen != gen {
			return
		}
		a.armed = false
		a.timer = nil
		fn()
	})
}

// Cancel drops the pending wake-up, if any. Calling it again is a no-op.
func (a *Alarm) Cancel() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.armed {
		a.armed = false
		a.gen++
	}
}

// Pending reports whether a wake-up is scheduled.
func (a *Alarm) Pending() bool {
	return a.armed
}
