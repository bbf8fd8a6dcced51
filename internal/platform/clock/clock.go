package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Timer is a cancellable single-shot scheduled callback. Stop reports
// whether the callback was prevented from running.
type Timer interface {
	Stop() bool
}

// Scheduler arms single-shot timers. Callbacks run on their own goroutine
// and must not block the caller.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
