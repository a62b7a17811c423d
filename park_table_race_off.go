//go:build !race

package futex

import (
	"github.com/llxisdsh/pb"
)

// parkTableLocked reports whether parkTable serializes every key on a
// single lock instead of the concurrent map.
const parkTableLocked = false

// parkTable maps an address to its parked goroutines. update runs fn
// inside pb's per-bucket lock: fn sees the current queue (nil if none) and
// returns the queue to keep, nil to drop the entry.
type parkTable struct {
	m pb.MapOf[uintptr, *parkQueue]
}

func (t *parkTable) update(key uintptr, fn func(q *parkQueue) *parkQueue) {
	t.m.ProcessEntry(
		key,
		func(l *pb.EntryOf[uintptr, *parkQueue]) (*pb.EntryOf[uintptr, *parkQueue], *parkQueue, bool) {
			var cur *parkQueue
			if l != nil {
				cur = l.Value
			}
			next := fn(cur)
			switch {
			case next == nil:
				return nil, nil, l != nil
			case l != nil && next == cur:
				return l, next, true
			default:
				return &pb.EntryOf[uintptr, *parkQueue]{Value: next}, next, l != nil
			}
		},
	)
}
