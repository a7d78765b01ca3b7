package state

import (
	"sync"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore[string]()

	if _, ok := s.Get(1); ok {
		t.Fatal("empty store must report no session")
	}

	s.Set(1, "a")
	s.Set(2, "b")

	if got, ok := s.Get(1); !ok || got != "a" {
		t.Fatalf("Get(1) = %q, %v", got, ok)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	s.Set(1, "c")
	if got, _ := s.Get(1); got != "c" {
		t.Fatalf("Set must replace: got %q", got)
	}

	s.Clear(1)
	if _, ok := s.Get(1); ok {
		t.Fatal("Clear must remove the session")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	// Clearing a missing entry is a no-op.
	s.Clear(99)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore[int]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Set(id, j)
				s.Get(id)
			}
			s.Clear(id)
		}(int64(i))
	}
	wg.Wait()

	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
}

func TestLockerSerializesPerUser(t *testing.T) {
	l := NewLocker()

	const workers = 8
	const iterations = 200
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				unlock := l.Lock(42)
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	if counter != workers*iterations {
		t.Fatalf("counter = %d, want %d", counter, workers*iterations)
	}
	if len(l.locks) != 0 {
		t.Fatalf("lock table must be empty after release, got %d entries", len(l.locks))
	}
}

func TestLockerIndependentUsers(t *testing.T) {
	l := NewLocker()

	unlockA := l.Lock(1)

	done := make(chan struct{})
	go func() {
		unlockB := l.Lock(2)
		unlockB()
		close(done)
	}()

	// A held lock for one user must not block another user.
	<-done
	unlockA()

	if len(l.locks) != 0 {
		t.Fatalf("lock table must be empty after release, got %d entries", len(l.locks))
	}
}
