package memory

import "testing"

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session := store.GetOrCreate("client-1")
	if session == nil {
		t.Fatalf("expected session")
	}
	if again := store.GetOrCreate("client-1"); again != session {
		t.Fatalf("expected the same session on second GetOrCreate")
	}
	if _, ok := store.Get("client-1"); !ok {
		t.Fatalf("expected session present")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", store.Len())
	}

	store.Delete("client-1")
	if _, ok := store.Get("client-1"); ok {
		t.Fatalf("expected session removed")
	}
}
