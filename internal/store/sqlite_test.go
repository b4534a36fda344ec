package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"triage-cli/internal/model"
	"triage-cli/internal/section"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: filepath.Join(dir, ".triage")}
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	db := &DB{
		Config: model.ListConfiguration{Mode: model.ModePrioritized},
		Items: []model.Item{
			{
				ID: "item-a", Title: "write tests", Done: false,
				Priority: model.PriorityHigh, ManualOrder: 2,
				SectionKey: string(section.HighPriority),
				CreatedAt:  now, UpdatedAt: now,
			},
			{
				ID: "item-b", Title: "ship it", Done: true,
				Priority: model.PriorityMedium, ManualOrder: 1,
				SectionKey: string(section.Done),
				CreatedAt:  now, UpdatedAt: now,
			},
		},
	}

	if err := s.Save(ctx, db); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Config.Mode != model.ModePrioritized {
		t.Fatalf("mode = %v, want prioritized", got.Config.Mode)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	// Rows come back ordered by (section key, manual order desc).
	if got.Items[0].ID != "item-a" || got.Items[1].ID != "item-b" {
		t.Fatalf("load order = %s, %s", got.Items[0].ID, got.Items[1].ID)
	}
	if got.Items[0].Title != "write tests" || !got.Items[0].CreatedAt.Equal(now) {
		t.Fatalf("item-a fields lost: %+v", got.Items[0])
	}
}

func TestLoadEmptyStoreDefaultsToSimpleMode(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), ".triage")}
	db, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if db.Config.Mode != model.ModeSimple {
		t.Fatalf("mode = %v, want simple", db.Config.Mode)
	}
	if len(db.Items) != 0 {
		t.Fatalf("expected empty items, got %d", len(db.Items))
	}
}

func TestDiscoverDirWalksUp(t *testing.T) {
	root := t.TempDir()
	s := Store{Dir: filepath.Join(root, ".triage")}
	if err := s.Ensure(); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	nested := filepath.Join(root, "a", "b")
	if err := (Store{Dir: nested}).Ensure(); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	found, ok := DiscoverDir(nested)
	if !ok || found != filepath.Join(root, ".triage") {
		t.Fatalf("DiscoverDir = %q, %v", found, ok)
	}
}

func TestMaxManualOrder(t *testing.T) {
	db := &DB{}
	if got := db.MaxManualOrder(); got != 0 {
		t.Fatalf("empty max = %d, want 0", got)
	}
	db.Items = []model.Item{
		{ID: "item-a", ManualOrder: 3},
		{ID: "item-b", ManualOrder: 7},
	}
	if got := db.MaxManualOrder(); got != 7 {
		t.Fatalf("max = %d, want 7", got)
	}
}

func TestRecomputeSectionKeys(t *testing.T) {
	db := &DB{
		Config: model.ListConfiguration{Mode: model.ModeSimple},
		Items: []model.Item{
			{ID: "item-a", Done: false, Priority: model.PriorityHigh},
			{ID: "item-b", Done: true, Priority: model.PriorityLow},
		},
	}
	db.RecomputeSectionKeys()
	if db.Items[0].SectionKey != string(section.ToDo) || db.Items[1].SectionKey != string(section.Done) {
		t.Fatalf("simple keys = %q, %q", db.Items[0].SectionKey, db.Items[1].SectionKey)
	}

	db.Config.Mode = model.ModePrioritized
	db.RecomputeSectionKeys()
	if db.Items[0].SectionKey != string(section.HighPriority) {
		t.Fatalf("prioritized key = %q, want %q", db.Items[0].SectionKey, section.HighPriority)
	}
}
