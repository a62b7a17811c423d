//go:build race

package opt

// Race_ reports that the race detector is enabled. Tests use it to scale
// down stress loops, which run several times slower under instrumentation.
const Race_ = true
