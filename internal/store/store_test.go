package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	val := []byte(`[1]`)
	if err := m.Set(ctx, "k", val); err != nil {
		t.Fatalf("set: %v", err)
	}
	val[1] = '2' // caller mutation must not leak into the store

	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[1]` {
		t.Fatalf("got %s", got)
	}
}
