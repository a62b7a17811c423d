package futex

import (
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/futex/internal/opt"
)

// ParkingLot is a portable WaitQueue. It keeps one FIFO of parked
// goroutines per address in a table; the compare in Block and the dequeue
// in Wake both run inside the table's per-key critical section, so a
// waker that changed the word before calling Wake can never miss a sleeper.
//
// It is zero-value usable and safe for concurrent use.
type ParkingLot struct {
	_ noCopy
	t parkTable
}

// parkQueue is only read or written from inside parkTable.update.
type parkQueue struct {
	waiters []*parked
}

type parked struct {
	sema opt.Sema
}

// Block parks the caller until Wake is called on addr, unless *addr no
// longer equals expected at the moment of enqueueing.
func (p *ParkingLot) Block(addr *uint32, expected uint32) {
	w := &parked{}
	var enqueued bool
	p.t.update(uintptr(unsafe.Pointer(addr)), func(q *parkQueue) *parkQueue {
		if atomic.LoadUint32(addr) != expected {
			return q
		}
		enqueued = true
		if q == nil {
			return &parkQueue{waiters: []*parked{w}}
		}
		q.waiters = append(q.waiters, w)
		return q
	})
	if enqueued {
		w.sema.Acquire()
	}
}

// Wake unparks up to n goroutines blocked on addr, oldest first.
func (p *ParkingLot) Wake(addr *uint32, n int) int {
	if n <= 0 {
		return 0
	}
	var woken []*parked
	p.t.update(uintptr(unsafe.Pointer(addr)), func(q *parkQueue) *parkQueue {
		if q == nil {
			return nil
		}
		k := min(n, len(q.waiters))
		woken = make([]*parked, k)
		copy(woken, q.waiters[:k])
		if k == len(q.waiters) {
			// Drop the entry so idle addresses don't pin table space.
			return nil
		}
		clear(q.waiters[:k])
		q.waiters = q.waiters[k:]
		return q
	})
	for _, w := range woken {
		w.sema.Release()
	}
	return len(woken)
}

// Parked reports how many goroutines are currently parked on addr.
func (p *ParkingLot) Parked(addr *uint32) int {
	var n int
	p.t.update(uintptr(unsafe.Pointer(addr)), func(q *parkQueue) *parkQueue {
		if q != nil {
			n = len(q.waiters)
		}
		return q
	})
	return n
}
