package ws

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestRegistry_AttachReplaces(t *testing.T) {
	r := NewRegistry()
	roomA := uuid.New()
	roomB := uuid.New()

	if replaced := r.Attach("room", roomA); replaced {
		t.Error("first attach should not report a replacement")
	}
	if !r.Covers(roomA) {
		t.Error("registry should cover roomA after attach")
	}

	// Re-attaching the same key swaps the subscription instead of stacking.
	if replaced := r.Attach("room", roomB); !replaced {
		t.Error("second attach under the same key should replace")
	}
	if r.Covers(roomA) {
		t.Error("old subscription must be gone after replacement")
	}
	if !r.Covers(roomB) {
		t.Error("new subscription should be live")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 subscription, got %d", r.Len())
	}
}

func TestRegistry_DetachUnknownKey(t *testing.T) {
	r := NewRegistry()
	if r.Detach("nope") {
		t.Error("detaching an unknown key should report false")
	}

	roomID := uuid.New()
	r.Attach("room", roomID)
	if !r.Detach("room") {
		t.Error("detaching a live key should report true")
	}
	if r.Covers(roomID) {
		t.Error("detached subscription should not cover its room")
	}
	// Second detach of the same key is a no-op.
	if r.Detach("room") {
		t.Error("double detach should report false")
	}
}

func TestRegistry_DetachAll(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		r.Attach(fmt.Sprintf("sub-%d", i), uuid.New())
	}
	if r.Len() != 5 {
		t.Fatalf("expected 5 subscriptions, got %d", r.Len())
	}

	r.DetachAll()
	if r.Len() != 0 {
		t.Errorf("expected empty registry after DetachAll, got %d", r.Len())
	}
}

func TestRegistry_ConcurrentAttachDetach(t *testing.T) {
	r := NewRegistry()
	roomID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("sub-%d", n%4)
			r.Attach(key, roomID)
			r.Covers(roomID)
			r.Detach(key)
		}(i)
	}
	wg.Wait()

	if r.Len() > 4 {
		t.Errorf("at most 4 keys can remain, got %d", r.Len())
	}
}
