package opt

import (
	"sync"
	"testing"
	"time"
)

func TestSema_AcquireBlocksUntilRelease(t *testing.T) {
	var s Sema

	done := make(chan struct{})
	go func() {
		s.Acquire()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Acquire returned before Release")
	case <-time.After(50 * time.Millisecond):
		// OK
	}

	s.Release()
	select {
	case <-done:
		// OK
	case <-time.After(time.Second):
		t.Fatal("Acquire did not return after Release")
	}
}

func TestSema_ReleaseBeforeAcquire(t *testing.T) {
	var s Sema
	s.Release()

	done := make(chan struct{})
	go func() {
		s.Acquire()
		close(done)
	}()
	select {
	case <-done:
		// OK, the early Release was banked.
	case <-time.After(time.Second):
		t.Fatal("early Release was lost")
	}
}

func TestSema_MultipleWaiters(t *testing.T) {
	var s Sema
	var wg sync.WaitGroup
	n := 10
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			s.Acquire()
		}()
	}

	// Give them time to block
	time.Sleep(50 * time.Millisecond)

	for range n {
		s.Release()
	}

	ch := make(chan struct{})
	go func() {
		wg.Wait()
		close(ch)
	}()

	select {
	case <-ch:
		// OK
	case <-time.After(time.Second):
		t.Fatal("Not all waiters woke up")
	}
}

func TestCounterStripe_Layout(t *testing.T) {
	var s CounterStripe_
	if len(s.C) != StripeCounters_ {
		t.Fatalf("stripe has %d counters, want %d", len(s.C), StripeCounters_)
	}
	if CacheLineSize_ == 0 || CacheLineSize_&(CacheLineSize_-1) != 0 {
		t.Fatalf("CacheLineSize_=%d is not a power of two", CacheLineSize_)
	}
}
