// Package arena is a lock-bracketed slab allocator built on futex.Mutex.
//
// Writers (Reserve, Release) serialize on the arena's mutex. Readers of
// the arena's accounting (Usage) never take it: they read optimistically
// and only fall back to futex.Mutex.Wait when a writer was in flight.
package arena

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/futex"
)

// Arena hands out blocks of one slab. It is safe for concurrent use.
type Arena struct {
	mu     *futex.Mutex
	engine Engine
	slab   []byte
	stats  *futex.Stats

	// gen is bumped by every completed write, after the accounting below
	// and before the unlock. inUse and blocks are only written under mu.
	gen    atomic.Uint64
	inUse  atomic.Int64
	blocks atomic.Int64
}

// Usage is a consistent snapshot of an arena's accounting.
type Usage struct {
	InUse    int // bytes in reserved blocks
	Blocks   int // number of reserved blocks
	Capacity int // slab size
}

// Config defines configurable options for New.
type Config struct {
	engine       Engine
	mutexOptions []func(*futex.MutexConfig)
	stats        *futex.Stats
}

// WithEngine makes the arena carve its slab with e instead of a FirstFit
// engine. e.Capacity() must equal the capacity passed to New.
func WithEngine(e Engine) func(*Config) {
	return func(c *Config) {
		c.engine = e
	}
}

// WithMutexOptions configures the arena's mutex.
func WithMutexOptions(options ...func(*futex.MutexConfig)) func(*Config) {
	return func(c *Config) {
		c.mutexOptions = append(c.mutexOptions, options...)
	}
}

// WithStats records every Lock and Wait the arena performs into s.
// Several arenas may share one Stats.
func WithStats(s *futex.Stats) func(*Config) {
	return func(c *Config) {
		c.stats = s
	}
}

// New creates an arena over a freshly allocated, MaxAlign-aligned slab of
// capacity bytes.
func New(capacity int, options ...func(*Config)) (*Arena, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity %d: %w", capacity, ErrBadSize)
	}
	var c Config
	for _, o := range options {
		o(&c)
	}
	if c.engine == nil {
		e, err := NewFirstFit(capacity)
		if err != nil {
			return nil, err
		}
		c.engine = e
	} else if c.engine.Capacity() != capacity {
		return nil, fmt.Errorf("engine capacity %d != %d: %w",
			c.engine.Capacity(), capacity, ErrBadSize)
	}
	if c.stats == nil {
		c.stats = &futex.Stats{}
	}
	return &Arena{
		mu:     futex.NewMutex(c.mutexOptions...),
		engine: c.engine,
		slab:   alignedSlab(capacity),
		stats:  c.stats,
	}, nil
}

func alignedSlab(capacity int) []byte {
	buf := make([]byte, capacity+MaxAlign)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	shift := int((MaxAlign - base%MaxAlign) % MaxAlign)
	return buf[shift : shift+capacity : shift+capacity]
}

// Reserve reserves size bytes aligned to align (a power of two, at most
// MaxAlign).
func (a *Arena) Reserve(size, align int) (Block, error) {
	a.stats.TrackLock(a.mu)
	defer a.mu.Unlock()

	b, err := a.engine.Reserve(size, align)
	if err != nil {
		return Block{}, fmt.Errorf("reserve %d bytes aligned to %d: %w", size, align, err)
	}
	a.inUse.Add(int64(b.Size))
	a.blocks.Add(1)
	a.gen.Add(1)
	return b, nil
}

// Release returns b to the arena. b must not be used afterwards.
func (a *Arena) Release(b Block) error {
	a.stats.TrackLock(a.mu)
	defer a.mu.Unlock()

	if err := a.engine.Release(b); err != nil {
		return fmt.Errorf("release block at %d: %w", b.Off, err)
	}
	a.inUse.Add(-int64(b.Size))
	a.blocks.Add(-1)
	a.gen.Add(1)
	return nil
}

// Bytes returns the memory of b. The slice is only valid until b is
// released.
func (a *Arena) Bytes(b Block) []byte {
	return a.slab[b.Off : b.Off+b.Size : b.Off+b.Size]
}

// Capacity returns the slab size.
func (a *Arena) Capacity() int {
	return len(a.slab)
}

// Usage returns a consistent snapshot of the arena's accounting without
// taking the mutex. It spins through Subscribe while no writer is active
// and parks in Wait only when it catches one in flight.
func (a *Arena) Usage() Usage {
	for {
		g1 := a.gen.Load()
		if a.stats.TrackSubscribe(a.mu) != 0 {
			a.stats.TrackWait(a.mu)
			continue
		}
		u := Usage{
			InUse:    int(a.inUse.Load()),
			Blocks:   int(a.blocks.Load()),
			Capacity: len(a.slab),
		}
		// A writer that started after the first Subscribe is either still
		// holding the mutex here or has already bumped gen.
		if a.mu.Subscribe() == 0 && a.gen.Load() == g1 {
			return u
		}
	}
}

// Stats returns the counters the arena records its mutex traffic into.
func (a *Arena) Stats() *futex.Stats {
	return a.stats
}
