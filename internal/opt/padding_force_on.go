//go:build futex_enable_padding

package opt

import (
	"unsafe"
)

// CounterStripe_ represents a group of striped counters to reduce contention.
// Padding is force-enabled via the futex_enable_padding build tag.
// Use: go build -tags=futex_enable_padding
type CounterStripe_ struct {
	C [StripeCounters_]uintptr // Counter values, accessed atomically
	_ [(CacheLineSize_ - unsafe.Sizeof(struct {
		C [StripeCounters_]uintptr
	}{})%CacheLineSize_) % CacheLineSize_]byte
}
