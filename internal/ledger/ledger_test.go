package ledger

import (
	"testing"

	"github.com/brokerdesk/reminders/internal/storage"
)

func TestLedger_AddIsIdempotent(t *testing.T) {
	t.Parallel()
	l, err := Load(storage.NewMemStore(), 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := l.Add("rem-1"); err != nil {
			t.Fatalf("add #%d: %v", i, err)
		}
	}
	if !l.Contains("rem-1") {
		t.Fatal("expected membership after Add")
	}
	if l.Len() != 1 {
		t.Fatalf("set semantics violated: len=%d", l.Len())
	}
}

func TestLedger_SurvivesReload(t *testing.T) {
	t.Parallel()
	store := storage.NewMemStore()

	l, err := Load(store, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := l.Add("rem-1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded, err := Load(store, 0)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Contains("rem-1") {
		t.Fatal("delivered id lost across reload")
	}
}

func TestLedger_RemoveAndReset(t *testing.T) {
	t.Parallel()
	l, err := Load(storage.NewMemStore(), 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_ = l.Add("rem-1")
	_ = l.Add("rem-2")

	if err := l.Remove("rem-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if l.Contains("rem-1") {
		t.Fatal("rem-1 still present after Remove")
	}
	// Removing an absent id is a no-op.
	if err := l.Remove("rem-1"); err != nil {
		t.Fatalf("second remove: %v", err)
	}

	if err := l.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if l.Len() != 0 || l.Contains("rem-2") {
		t.Fatal("reset left entries behind")
	}
}

func TestLedger_RetentionPrunesOldest(t *testing.T) {
	t.Parallel()
	l, err := Load(storage.NewMemStore(), 3)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if err := l.Add(id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	if l.Len() != 3 {
		t.Fatalf("retention not applied: len=%d", l.Len())
	}
	if l.Contains("a") || l.Contains("b") {
		t.Fatal("oldest entries should have been pruned")
	}
	for _, id := range []string{"c", "d", "e"} {
		if !l.Contains(id) {
			t.Fatalf("recent id %s pruned", id)
		}
	}
}
