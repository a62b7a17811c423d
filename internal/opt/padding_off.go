//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !futex_disable_padding && !futex_enable_padding

package opt

// CounterStripe_ represents a group of striped counters to reduce contention.
// Padding is disabled by default for:
// - amd64 (a stripe of eight 8-byte counters already fills a 64-byte line)
// - 32-bit architectures (386, arm, mips, mipsle, wasm)
type CounterStripe_ struct {
	C [StripeCounters_]uintptr // Counter values, accessed atomically
}
