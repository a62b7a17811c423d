package futex

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/llxisdsh/futex/internal/opt"
)

// Stats counts how Lock, Subscribe and Wait calls resolved. Counters are
// striped across cache lines so recording from many goroutines does not
// serialize on one word; reads sum all stripes.
//
// Recording never changes locking behavior.
//
// It is zero-value usable.
type Stats struct {
	_       noCopy
	stripes [statsStripes]opt.CounterStripe_
}

const statsStripes = 16

const (
	statLockFast = iota
	statLockSlow
	statSubscribeHeld
	statSubscribeFree
	statWaitBlocked
	statWaitImmediate
	statWaitThenHeld
	statWaitThenFree
)

// StatsSnapshot is a point-in-time sum of a Stats.
type StatsSnapshot struct {
	LockFast      uint64 // Lock returned without blocking
	LockSlow      uint64 // Lock went through the wait queue
	SubscribeHeld uint64 // Subscribe observed a writer
	SubscribeFree uint64 // Subscribe observed no writer
	WaitBlocked   uint64 // Wait parked at least once
	WaitImmediate uint64 // Wait saw the lock free while spinning
	WaitThenHeld  uint64 // lock word was non-zero right after Wait returned
	WaitThenFree  uint64 // lock word was zero right after Wait returned
}

// Locks returns the number of recorded Lock calls.
func (s StatsSnapshot) Locks() uint64 { return s.LockFast + s.LockSlow }

// Subscribes returns the number of recorded Subscribe calls.
func (s StatsSnapshot) Subscribes() uint64 { return s.SubscribeHeld + s.SubscribeFree }

// Waits returns the number of recorded Wait calls.
func (s StatsSnapshot) Waits() uint64 { return s.WaitBlocked + s.WaitImmediate }

// RecordLock counts one Lock call; slow is Lock's return value.
func (s *Stats) RecordLock(slow bool) {
	if slow {
		s.add(statLockSlow)
	} else {
		s.add(statLockFast)
	}
}

// RecordSubscribe counts one Subscribe call; v is Subscribe's return value.
func (s *Stats) RecordSubscribe(v uint32) {
	if v != mutexFree {
		s.add(statSubscribeHeld)
	} else {
		s.add(statSubscribeFree)
	}
}

// RecordWait counts one Wait call. blocked is Wait's return value and
// after is a Subscribe taken right after it returned.
func (s *Stats) RecordWait(blocked bool, after uint32) {
	if blocked {
		s.add(statWaitBlocked)
	} else {
		s.add(statWaitImmediate)
	}
	if after != mutexFree {
		s.add(statWaitThenHeld)
	} else {
		s.add(statWaitThenFree)
	}
}

// TrackLock locks m and records the outcome.
func (s *Stats) TrackLock(m *Mutex) {
	s.RecordLock(m.Lock())
}

// TrackSubscribe reads m's lock word and records the outcome.
func (s *Stats) TrackSubscribe(m *Mutex) uint32 {
	v := m.Subscribe()
	s.RecordSubscribe(v)
	return v
}

// TrackWait waits for m to become free and records the outcome.
func (s *Stats) TrackWait(m *Mutex) bool {
	blocked := m.Wait()
	s.RecordWait(blocked, m.Subscribe())
	return blocked
}

// Snapshot sums all stripes. Concurrent recording may or may not be
// included.
func (s *Stats) Snapshot() StatsSnapshot {
	var sum [opt.StripeCounters_]uint64
	for i := range s.stripes {
		for j := range sum {
			sum[j] += uint64(atomic.LoadUintptr(&s.stripes[i].C[j]))
		}
	}
	return StatsSnapshot{
		LockFast:      sum[statLockFast],
		LockSlow:      sum[statLockSlow],
		SubscribeHeld: sum[statSubscribeHeld],
		SubscribeFree: sum[statSubscribeFree],
		WaitBlocked:   sum[statWaitBlocked],
		WaitImmediate: sum[statWaitImmediate],
		WaitThenHeld:  sum[statWaitThenHeld],
		WaitThenFree:  sum[statWaitThenFree],
	}
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	for i := range s.stripes {
		for j := range s.stripes[i].C {
			atomic.StoreUintptr(&s.stripes[i].C[j], 0)
		}
	}
}

func (s *Stats) add(idx int) {
	stripe := &s.stripes[rand.Uint32()&(statsStripes-1)]
	atomic.AddUintptr(&stripe.C[idx], 1)
}
