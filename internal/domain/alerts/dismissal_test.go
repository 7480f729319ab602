package alerts

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryStore_DismissIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	pid := uuid.New()

	for i := 0; i < 2; i++ {
		if err := store.Dismiss(ctx, pid, "alert-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	set, err := store.DismissedSet(ctx, pid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set) != 1 || !set["alert-1"] {
		t.Errorf("set = %v, want exactly alert-1", set)
	}
}

func TestMemoryStore_ScopedByPatient(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	if err := store.Dismiss(ctx, a, "alert-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set, err := store.DismissedSet(ctx, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("patient b should have no dismissals, got %v", set)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	pid := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Dismiss(ctx, pid, "alert-1")
		}()
		go func() {
			defer wg.Done()
			_, _ = store.DismissedSet(ctx, pid)
		}()
	}
	wg.Wait()

	set, _ := store.DismissedSet(ctx, pid)
	if !set["alert-1"] {
		t.Error("alert-1 should be dismissed")
	}
}
