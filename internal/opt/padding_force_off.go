//go:build futex_disable_padding

package opt

// CounterStripe_ represents a group of striped counters to reduce contention.
// Padding is force-disabled via the futex_disable_padding build tag.
// Use: go build -tags=futex_disable_padding
type CounterStripe_ struct {
	C [StripeCounters_]uintptr // Counter values, accessed atomically
}
