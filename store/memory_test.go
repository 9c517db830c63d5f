package store

import (
	"context"
	"testing"
)

func TestMemoryStoreCommitAndClear(t *testing.T) {
	mem := NewMemoryStore()
	ref := Ref{SessionID: "s1", TenantID: "t1"}
	rec := &Record{ID: "user-1"}

	if err := mem.Commit(context.Background(), ref, rec); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	got, found := mem.Load(ref)
	if !found || got.ID != "user-1" {
		t.Fatalf("expected committed record, got %+v found=%v", got, found)
	}

	// Caller mutation after commit must not leak into the store.
	rec.ID = "mutated"
	if got, _ := mem.Load(ref); got.ID != "user-1" {
		t.Fatalf("expected stored copy isolated, got %q", got.ID)
	}

	if err := mem.Commit(context.Background(), ref, nil); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, found := mem.Load(ref); found {
		t.Fatal("expected reference cleared")
	}
	if mem.Len() != 0 {
		t.Fatalf("expected empty store, got %d", mem.Len())
	}
}
