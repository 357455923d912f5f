package memory

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/sunnet-n/quiz-game/internal/app"
)

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, err := store.Get(ctx, "room:ABC123"); !errors.Is(err, app.ErrKeyNotFound) {
		t.Fatalf("expected key not found, got %v", err)
	}

	value := []byte(`{"code":"ABC123"}`)
	if err := store.Set(ctx, "room:ABC123", value); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[0] = 'x' // caller mutation must not leak into the store

	got, err := store.Get(ctx, "room:ABC123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"code":"ABC123"}` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestStoreGetByPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.SetMany(ctx,
		app.Entry{Key: "room:ABC123", Value: []byte("room")},
		app.Entry{Key: "room:ABC123:player:p1", Value: []byte("p1")},
		app.Entry{Key: "room:ABC123:player:p2", Value: []byte("p2")},
		app.Entry{Key: "room:XYZ999:player:p3", Value: []byte("p3")},
	)
	if err != nil {
		t.Fatalf("set many: %v", err)
	}

	values, err := store.GetByPrefix(ctx, "room:ABC123:player:")
	if err != nil {
		t.Fatalf("get by prefix: %v", err)
	}
	got := make([]string, 0, len(values))
	for _, v := range values {
		got = append(got, string(v))
	}
	sort.Strings(got)
	if len(got) != 2 || got[0] != "p1" || got[1] != "p2" {
		t.Fatalf("expected [p1 p2], got %v", got)
	}
}
