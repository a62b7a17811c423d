package futex

import (
	"sync"
	"testing"
)

func TestStats_Record(t *testing.T) {
	var s Stats
	s.RecordLock(false)
	s.RecordLock(true)
	s.RecordLock(false)
	s.RecordSubscribe(0)
	s.RecordSubscribe(mutexHeldWaiters)
	s.RecordWait(true, 0)
	s.RecordWait(false, mutexHeld)

	got := s.Snapshot()
	want := StatsSnapshot{
		LockFast:      2,
		LockSlow:      1,
		SubscribeHeld: 1,
		SubscribeFree: 1,
		WaitBlocked:   1,
		WaitImmediate: 1,
		WaitThenHeld:  1,
		WaitThenFree:  1,
	}
	if got != want {
		t.Fatalf("Snapshot = %+v, want %+v", got, want)
	}
	if got.Locks() != 3 || got.Subscribes() != 2 || got.Waits() != 2 {
		t.Fatalf("sums = %d/%d/%d, want 3/2/2", got.Locks(), got.Subscribes(), got.Waits())
	}

	s.Reset()
	if got := s.Snapshot(); got != (StatsSnapshot{}) {
		t.Fatalf("Snapshot after Reset = %+v", got)
	}
}

func TestStats_ConcurrentRecording(t *testing.T) {
	var s Stats
	const goroutines, iters = 8, 10000
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for i := range iters {
				s.RecordLock(i%2 == 0)
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.Locks() != goroutines*iters {
		t.Fatalf("Locks = %d, want %d", snap.Locks(), goroutines*iters)
	}
	if snap.LockFast != snap.LockSlow {
		t.Fatalf("fast=%d slow=%d, want equal", snap.LockFast, snap.LockSlow)
	}
}

func TestStats_Track(t *testing.T) {
	var s Stats
	var m Mutex

	s.TrackLock(&m)
	if v := s.TrackSubscribe(&m); v == 0 {
		t.Fatal("TrackSubscribe = 0 while held")
	}
	m.Unlock()
	if blocked := s.TrackWait(&m); blocked {
		t.Fatal("TrackWait blocked on a free mutex")
	}

	snap := s.Snapshot()
	if snap.LockFast != 1 || snap.SubscribeHeld != 1 || snap.WaitImmediate != 1 || snap.WaitThenFree != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
