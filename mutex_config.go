package futex

// ============================================================================
// Configuration
// ============================================================================

// defaultSpinCount is how many times Lock and Wait re-read the lock word
// before falling back to the wait queue.
const defaultSpinCount = 20

// MutexConfig defines configurable options for NewMutex.
type MutexConfig struct {
	// queue is the block/wake capability the mutex parks on.
	// If nil, DefaultWaitQueue() is used.
	queue WaitQueue

	// spinCount bounds the spin phase of Lock and Wait.
	// If zero, defaultSpinCount is used.
	spinCount int
}

// WithWaitQueue makes the mutex park on q instead of the default queue.
// Every goroutine using the mutex must reach it through the same queue,
// which is guaranteed because the queue is stored in the mutex itself.
func WithWaitQueue(q WaitQueue) func(*MutexConfig) {
	return func(c *MutexConfig) {
		c.queue = q
	}
}

// WithSpinCount sets how many busy reads Lock and Wait perform before
// blocking.
//
// panic if n <= 0.
func WithSpinCount(n int) func(*MutexConfig) {
	if n <= 0 {
		panic("futex: spin count must be positive")
	}
	return func(c *MutexConfig) {
		c.spinCount = n
	}
}

// NewMutex creates a Mutex configured by options. A zero Mutex is
// equivalent to NewMutex() with no options.
func NewMutex(options ...func(*MutexConfig)) *Mutex {
	var c MutexConfig
	for _, o := range options {
		o(&c)
	}
	return &Mutex{
		queue:     c.queue,
		spinCount: int32(c.spinCount),
	}
}
