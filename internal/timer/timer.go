// Package timer holds the scheduling primitives the workout engine runs on:
// a single logical thread of execution (Executor), delayed callbacks on that
// thread (Scheduler) and a cancellable single wake-up (Alarm).
package timer

import "time"

// Timer is a pending delayed callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Executor is a Scheduler whose callbacks, and any function handed to Post,
// all run on one logical thread, one at a time.
type Executor interface {
	Scheduler
	Post(fn func())
}

func clampDelay(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
