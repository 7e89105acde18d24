package localstore

import (
	"strings"
	"testing"
	"time"

	"github.com/brokerdesk/reminders/internal/storage"
	"github.com/brokerdesk/reminders/internal/types"
)

func TestStore_AddSynthesizesID(t *testing.T) {
	t.Parallel()
	s, err := Load(storage.NewMemStore())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	rec, err := s.Add(types.LocalRecord{
		Title:         "Call back Mr. Osei",
		ScheduledTime: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.HasPrefix(rec.ID, "local-") || len(rec.ID) <= len("local-") {
		t.Fatalf("expected synthesized id, got %q", rec.ID)
	}
	if !rec.IsLocal {
		t.Fatal("record not flagged local")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("creation timestamp not set")
	}
}

func TestStore_SurvivesReload(t *testing.T) {
	t.Parallel()
	store := storage.NewMemStore()

	s, err := Load(store)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rec, err := s.Add(types.LocalRecord{Title: "Site visit follow-up", ScheduledTime: time.Now()})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded, err := Load(store)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	list := reloaded.List()
	if len(list) != 1 || list[0].ID != rec.ID {
		t.Fatalf("records lost across reload: %+v", list)
	}
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()
	s, err := Load(storage.NewMemStore())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rec, _ := s.Add(types.LocalRecord{Title: "a", ScheduledTime: time.Now()})

	if err := s.Remove(rec.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("record not removed, len=%d", s.Len())
	}
	// Absent id is a no-op.
	if err := s.Remove(rec.ID); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}
