package service

import (
	"sync"
	"time"

	"worklog/internal/modules/reminder/domain"
	"worklog/internal/platform/clock"
)

// TimerSet keeps at most one live timer per key. Re-arming a key
// replaces its timer; callbacks run on the scheduler's goroutine.
type TimerSet struct {
	clk       clock.Clock
	scheduler clock.Scheduler

	mu     sync.Mutex
	timers map[domain.Key]*timerEntry
}

type timerEntry struct {
	timer clock.Timer
	at    time.Time
}

func NewTimerSet(clk clock.Clock, scheduler clock.Scheduler) *TimerSet {
	return &TimerSet{clk: clk, scheduler: scheduler, timers: map[domain.Key]*timerEntry{}}
}

// Arm schedules fn at the given instant. An instant already in the
// past fires immediately. Arming an armed key replaces its timer; a
// replaced timer that fires anyway leaves the successor in place.
func (s *TimerSet) Arm(key domain.Key, at time.Time, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.timers[key]; ok {
		entry.timer.Stop()
	}
	delay := at.Sub(s.clk.Now())
	if delay < 0 {
		delay = 0
	}
	entry := &timerEntry{at: at}
	entry.timer = s.scheduler.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.timers[key] == entry {
			delete(s.timers, key)
		}
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = entry
}

func (s *TimerSet) Cancel(key domain.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.timers[key]; ok {
		entry.timer.Stop()
		delete(s.timers, key)
	}
}

// ArmedAt reports the instant the key's timer fires at, if armed.
func (s *TimerSet) ArmedAt(key domain.Key) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.timers[key]
	if !ok {
		return time.Time{}, false
	}
	return entry.at, true
}

// Keys snapshots the armed keys, for reconciliation sweeps.
func (s *TimerSet) Keys() []domain.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]domain.Key, 0, len(s.timers))
	for key := range s.timers {
		keys = append(keys, key)
	}
	return keys
}

func (s *TimerSet) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.timers {
		entry.timer.Stop()
		delete(s.timers, key)
	}
}
