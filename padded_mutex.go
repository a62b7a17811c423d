package futex

import (
	"unsafe"
)

// PaddedMutex is a Mutex padded out to a whole cache line, for arrays of
// per-arena mutexes where neighbouring lock words would otherwise share a
// line and bounce between cores.
type PaddedMutex struct {
	Mutex
	_ [(CacheLineSize - unsafe.Sizeof(Mutex{})%CacheLineSize) % CacheLineSize]byte
}
