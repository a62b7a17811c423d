package futex

import (
	_ "unsafe" // for linkname

	"github.com/llxisdsh/futex/internal/opt"
)

// CacheLineSize is the cache line size PaddedMutex and Stats pad to.
const CacheLineSize = opt.CacheLineSize_

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// pause hints the CPU that we are in a spin-wait loop (PAUSE on x86,
// YIELD on arm64), letting a sibling hardware thread make progress.
//
//go:nosplit
func pause() {
	runtime_doSpin()
}

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()
