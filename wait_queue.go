package futex

import (
	"math"
)

// WaitQueue is the block/wake capability a Mutex parks on. It is keyed by
// the address of a 32-bit word, the same contract as a Linux futex.
//
// Block must atomically check that *addr still equals expected and, only
// if so, put the caller to sleep until a Wake on the same address. It may
// return early (interrupts, spurious wakeups, value already changed);
// callers always re-check their condition after Block returns.
//
// Wake wakes at most n goroutines blocked on addr and returns how many it
// woke. Pass WakeAll to wake every blocked goroutine.
type WaitQueue interface {
	Block(addr *uint32, expected uint32)
	Wake(addr *uint32, n int) int
}

// WakeAll asks Wake to release every goroutine blocked on the address.
const WakeAll = math.MaxInt32

// DefaultWaitQueue returns the queue used by a Mutex that was not given
// one through WithWaitQueue. On Linux this is the kernel futex, unless the
// futex_portable build tag selects the ParkingLot.
func DefaultWaitQueue() WaitQueue {
	return defaultWaitQueue
}
