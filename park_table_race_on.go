//go:build race

package futex

import (
	"sync"
)

// parkTableLocked reports whether parkTable serializes every key on a
// single lock instead of the concurrent map.
const parkTableLocked = true

// parkTable under race detector: pb's map reads bucket metadata with
// plain loads the detector reports, so fall back to a mutex-guarded map.
// Same contract as the !race table: fn runs in the key's critical section
// and returns the queue to keep, nil to drop the entry.
type parkTable struct {
	mu sync.Mutex
	m  map[uintptr]*parkQueue
}

func (t *parkTable) update(key uintptr, fn func(q *parkQueue) *parkQueue) {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := fn(t.m[key])
	if next == nil {
		delete(t.m, key)
		return
	}
	if t.m == nil {
		t.m = make(map[uintptr]*parkQueue)
	}
	t.m[key] = next
}
