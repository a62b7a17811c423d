// Package futex provides the hybrid spin/block mutex that serializes
// allocator state (arenas, free lists, size-class metadata), together with
// a quiescence wait that lets optimistic readers find out whether a writer
// is active without taking the mutex.
package futex

import (
	"sync"
	"sync/atomic"
)

// Mutex is a three-state futex mutex ("Futexes Are Tricky", mutex 2) with
// a bounded spin phase, plus a broadcast word for quiescence waiters.
//
// State:
//   - lock: 0 free, 1 held, 2 held and a wake is owed on unlock.
//   - wait: 0 nobody parked in Wait, 1 at least one goroutine parked.
//
// The lock word only ever holds 0, 1 or 2; Unlock's decrement fast path
// depends on it.
//
// It is zero-value usable. It must not be copied after first use.
//
// Size: 32 bytes on 64-bit (2*4 byte words + 4 byte spin count + padding
// + 16 byte queue interface).
type Mutex struct {
	_    noCopy
	lock uint32
	wait uint32

	spinCount int32
	queue     WaitQueue
}

const (
	mutexFree        = 0
	mutexHeld        = 1
	mutexHeldWaiters = 2

	waitNone   = 0
	waitParked = 1
)

// Lock acquires the mutex, blocking until it is available.
//
// The result reports whether the caller had to go through the wait queue
// (slow path). It is meant for contention statistics only.
func (m *Mutex) Lock() (slow bool) {
	if atomic.LoadUint32(&m.lock) == mutexFree &&
		atomic.CompareAndSwapUint32(&m.lock, mutexFree, mutexHeld) {
		return false
	}
	return m.lockSlow()
}

func (m *Mutex) lockSlow() bool {
	limit := m.spins()
	for spins := 0; spins < limit; {
		if atomic.LoadUint32(&m.lock) != mutexFree {
			pause()
			spins++
			continue
		}
		if atomic.CompareAndSwapUint32(&m.lock, mutexFree, mutexHeld) {
			return false
		}
		// Lost the CAS race; that is not the holder's fault, don't count it.
	}

	if atomic.CompareAndSwapUint32(&m.lock, mutexFree, mutexHeld) {
		return false
	}

	// From here on the holder owes us a wake. If the word already says 2
	// there is nothing to publish; otherwise swap it in, and if the swap
	// returns 0 the lock was released in between and is now ours.
	c := atomic.LoadUint32(&m.lock)
	if c != mutexHeldWaiters {
		c = atomic.SwapUint32(&m.lock, mutexHeldWaiters)
	}
	q := m.waitQueue()
	for c != mutexFree {
		q.Block(&m.lock, mutexHeldWaiters)
		c = atomic.SwapUint32(&m.lock, mutexHeldWaiters)
	}
	return true
}

// TryLock acquires the mutex only if it is free, and reports whether it
// did. It never spins or blocks.
func (m *Mutex) TryLock() bool {
	return atomic.CompareAndSwapUint32(&m.lock, mutexFree, mutexHeld)
}

// Unlock releases the mutex and wakes the parties it owes a wake: one
// goroutine blocked in Lock, if the word said so, and every goroutine
// parked in Wait.
//
// Unlocking a mutex the caller does not hold is a programming error; it
// panics and leaves the lock word free.
func (m *Mutex) Unlock() {
	if v := atomic.AddUint32(&m.lock, ^uint32(0)); v != mutexFree {
		if v == ^uint32(0) {
			// Undo the wrap so the word never leaves {0,1,2}.
			atomic.AddUint32(&m.lock, 1)
			panic("futex: unlock of unlocked mutex")
		}
		// Was 2: someone may be sleeping on the lock word.
		atomic.StoreUint32(&m.lock, mutexFree)
		m.waitQueue().Wake(&m.lock, 1)
	}
	if atomic.LoadUint32(&m.wait) != waitNone {
		atomic.StoreUint32(&m.wait, waitNone)
		m.waitQueue().Wake(&m.wait, WakeAll)
	}
}

// Subscribe returns the raw lock word: 0 if no writer holds the mutex at
// this instant, 1 or 2 otherwise. It never blocks.
func (m *Mutex) Subscribe() uint32 {
	return atomic.LoadUint32(&m.lock)
}

// Wait blocks until the mutex is observed free. It never acquires the
// mutex, so by the time Wait returns another goroutine may already hold
// it again.
//
// The result reports whether the caller had to park at least once.
func (m *Mutex) Wait() (blocked bool) {
	limit := m.spins()
	for {
		for range limit {
			if atomic.LoadUint32(&m.lock) == mutexFree {
				return blocked
			}
			pause()
		}
		atomic.StoreUint32(&m.wait, waitParked)
		// Publishing the flag and re-reading the lock word pairs with
		// Unlock's release-then-check-flag: either we see the free lock
		// here, or Unlock sees our flag and wakes us.
		if atomic.LoadUint32(&m.lock) == mutexFree {
			return blocked
		}
		m.waitQueue().Block(&m.wait, waitParked)
		blocked = true
	}
}

// Locker returns a sync.Locker view of the mutex that discards Lock's
// slow-path flag.
func (m *Mutex) Locker() sync.Locker {
	return (*mutexLocker)(m)
}

type mutexLocker Mutex

func (l *mutexLocker) Lock()   { (*Mutex)(l).Lock() }
func (l *mutexLocker) Unlock() { (*Mutex)(l).Unlock() }

//go:nosplit
func (m *Mutex) spins() int {
	if m.spinCount > 0 {
		return int(m.spinCount)
	}
	return defaultSpinCount
}

func (m *Mutex) waitQueue() WaitQueue {
	if m.queue != nil {
		return m.queue
	}
	return defaultWaitQueue
}
