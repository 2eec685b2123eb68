package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ccse-study-service/internal/domain"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore()

	if _, ok, err := store.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := store.Put(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(v) != `{"a":1}` {
		t.Fatalf("unexpected get: %q ok=%v err=%v", v, ok, err)
	}
	if store.Writes() != 1 {
		t.Fatalf("expected 1 write, got %d", store.Writes())
	}
}

func TestRemoteStoreMergesFields(t *testing.T) {
	ctx := context.Background()
	store := NewRemoteStore()

	if _, found, err := store.Pull(ctx, "u1"); found || err != nil {
		t.Fatalf("expected no document, got found=%v err=%v", found, err)
	}

	store.SetField("u1", "displayName", json.RawMessage(`"Ana"`))
	state := domain.NewProgressState()
	state.Stats.ExamsTaken = 2
	state.Favorites = []int{1001}
	if err := store.Push(ctx, "u1", state); err != nil {
		t.Fatalf("push: %v", err)
	}

	if _, ok := store.Field("u1", "displayName"); !ok {
		t.Fatalf("expected sibling field to survive push")
	}
	got, found, err := store.Pull(ctx, "u1")
	if err != nil || !found {
		t.Fatalf("pull: found=%v err=%v", found, err)
	}
	if got.Stats.ExamsTaken != 2 || len(got.Favorites) != 1 || got.Favorites[0] != 1001 {
		t.Fatalf("unexpected state %+v", got)
	}
}

func TestRemoteStoreUnavailable(t *testing.T) {
	store := NewRemoteStore()
	store.SetUnavailable(true)

	if err := store.Push(context.Background(), "u1", domain.NewProgressState()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, _, err := store.Pull(context.Background(), "u1"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
