package state

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteSetGetRemove(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")
	store, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	if _, ok, err := store.GetItem(ctx, "ce2-grammaire-progress"); err != nil || ok {
		t.Fatalf("expected missing item, got ok=%v err=%v", ok, err)
	}

	if err := store.SetItem(ctx, "ce2-grammaire-progress", `{"totalScore":3}`); err != nil {
		t.Fatalf("set item: %v", err)
	}
	// Second write must replace, not duplicate.
	if err := store.SetItem(ctx, "ce2-grammaire-progress", `{"totalScore":5}`); err != nil {
		t.Fatalf("overwrite item: %v", err)
	}
	got, ok, err := store.GetItem(ctx, "ce2-grammaire-progress")
	if err != nil || !ok {
		t.Fatalf("get item: ok=%v err=%v", ok, err)
	}
	if got != `{"totalScore":5}` {
		t.Fatalf("unexpected value %q", got)
	}
	ts, err := store.UpdatedAt(ctx, "ce2-grammaire-progress")
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if ts.IsZero() {
		t.Fatalf("expected updated timestamp")
	}

	if err := store.RemoveItem(ctx, "ce2-grammaire-progress"); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if _, ok, _ := store.GetItem(ctx, "ce2-grammaire-progress"); ok {
		t.Fatalf("expected item to be removed")
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "state.db")
	ctx := context.Background()

	first, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	if err := first.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := first.SetItem(ctx, "k", "v"); err != nil {
		t.Fatalf("set item: %v", err)
	}
	_ = first.Close()

	second, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer func() { _ = second.Close() }()
	if err := second.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema again: %v", err)
	}
	got, ok, err := second.GetItem(ctx, "k")
	if err != nil || !ok || got != "v" {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", got, ok, err)
	}
}

func TestSQLiteRejectsEmptyKey(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	defer func() { _ = store.Close() }()
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := store.SetItem(context.Background(), "  ", "v"); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestMemoryStoreFailWrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if err := m.SetItem(ctx, "k", "v1"); err != nil {
		t.Fatalf("set item: %v", err)
	}
	m.FailWrites(true)
	if err := m.SetItem(ctx, "k", "v2"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	m.FailWrites(false)
	got, _, _ := m.GetItem(ctx, "k")
	if got != "v1" {
		t.Fatalf("failed write must not change value, got %q", got)
	}
	m.FailReads(true)
	if _, _, err := m.GetItem(ctx, "k"); err == nil {
		t.Fatalf("expected read failure")
	}
}
