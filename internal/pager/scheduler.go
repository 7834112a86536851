package pager

import "time"

// Scheduler arranges for Navigator.Expire(tag) to be called once d has
// elapsed. Calls must be delivered on the goroutine that drives the
// navigator.
type Scheduler interface {
	Schedule(tag uint64, d time.Duration)
}

// Canceler is implemented by schedulers able to drop a pending expiry.
type Canceler interface {
	Cancel(tag uint64)
}

type nopScheduler struct{}

func (nopScheduler) Schedule(uint64, time.Duration) {}
