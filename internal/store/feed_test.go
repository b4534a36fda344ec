package store

import (
	"fmt"
	"reflect"
	"testing"

	"triage-cli/internal/model"
	"triage-cli/internal/section"
)

type rawRecorder struct {
	events []string
}

func (r *rawRecorder) BeginUpdates() { r.events = append(r.events, "begin") }
func (r *rawRecorder) SectionInserted(index int) {
	r.events = append(r.events, fmt.Sprintf("+section %d", index))
}
func (r *rawRecorder) SectionDeleted(index int) {
	r.events = append(r.events, fmt.Sprintf("-section %d", index))
}
func (r *rawRecorder) RowInserted(path RawPath) {
	r.events = append(r.events, fmt.Sprintf("+row %d/%d", path.Section, path.Row))
}
func (r *rawRecorder) RowDeleted(path RawPath) {
	r.events = append(r.events, fmt.Sprintf("-row %d/%d", path.Section, path.Row))
}
func (r *rawRecorder) RowUpdated(path RawPath, item model.Item) {
	r.events = append(r.events, fmt.Sprintf("~row %d/%d %s", path.Section, path.Row, item.ID))
}
func (r *rawRecorder) RowMoved(from, to RawPath, item model.Item) {
	r.events = append(r.events, fmt.Sprintf("move %d/%d -> %d/%d %s", from.Section, from.Row, to.Section, to.Row, item.ID))
}
func (r *rawRecorder) EndUpdates() { r.events = append(r.events, "end") }

func feedItem(id string, done bool, order int, mode model.Mode) model.Item {
	return model.Item{
		ID:          id,
		Title:       id,
		Done:        done,
		Priority:    model.PriorityMedium,
		ManualOrder: order,
		SectionKey:  string(section.For(done, model.PriorityMedium, mode)),
	}
}

func TestFeed_GroupsBySectionKeySortedByManualOrderDesc(t *testing.T) {
	f := NewFeed()
	f.Reload([]model.Item{
		feedItem("item-low", false, 1, model.ModeSimple),
		feedItem("item-high", false, 9, model.ModeSimple),
		feedItem("item-done", true, 5, model.ModeSimple),
	}, model.ModeSimple)

	secs := f.Sections()
	if len(secs) != 2 {
		t.Fatalf("sections = %d, want 2", len(secs))
	}
	if secs[0].Key != section.ToDo || secs[1].Key != section.Done {
		t.Fatalf("section order = %v, %v", secs[0].Key, secs[1].Key)
	}
	if secs[0].Rows[0].ID != "item-high" || secs[0].Rows[1].ID != "item-low" {
		t.Fatalf("rows not ordered by manual order desc: %v", secs[0].Rows)
	}
}

func TestFeed_InsertEmitsSectionAndRow(t *testing.T) {
	f := NewFeed()
	rec := &rawRecorder{}
	f.Subscribe(rec)

	f.SetSnapshot([]model.Item{
		feedItem("item-a", false, 1, model.ModeSimple),
	}, model.ModeSimple)

	want := []string{"begin", "+section 0", "+row 0/0", "end"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
}

func TestFeed_DeleteLastRowRemovesSection(t *testing.T) {
	f := NewFeed()
	f.Reload([]model.Item{
		feedItem("item-a", false, 2, model.ModeSimple),
		feedItem("item-b", true, 1, model.ModeSimple),
	}, model.ModeSimple)
	rec := &rawRecorder{}
	f.Subscribe(rec)

	f.SetSnapshot([]model.Item{
		feedItem("item-a", false, 2, model.ModeSimple),
	}, model.ModeSimple)

	want := []string{"begin", "-section 1", "-row 1/0", "end"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
}

func TestFeed_InPlaceEditEmitsUpdate(t *testing.T) {
	f := NewFeed()
	f.Reload([]model.Item{
		feedItem("item-a", false, 1, model.ModeSimple),
	}, model.ModeSimple)
	rec := &rawRecorder{}
	f.Subscribe(rec)

	edited := feedItem("item-a", false, 1, model.ModeSimple)
	edited.Title = "renamed"
	f.SetSnapshot([]model.Item{edited}, model.ModeSimple)

	want := []string{"begin", "~row 0/0 item-a", "end"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
}

func TestFeed_CrossSectionChangeEmitsMove(t *testing.T) {
	f := NewFeed()
	f.Reload([]model.Item{
		feedItem("item-a", false, 2, model.ModeSimple),
		feedItem("item-b", true, 1, model.ModeSimple),
	}, model.ModeSimple)
	rec := &rawRecorder{}
	f.Subscribe(rec)

	f.SetSnapshot([]model.Item{
		feedItem("item-a", true, 2, model.ModeSimple),
		feedItem("item-b", true, 1, model.ModeSimple),
	}, model.ModeSimple)

	want := []string{
		"begin",
		"-section 0",
		"move 0/0 -> 0/0 item-a",
		"move 1/0 -> 0/1 item-b",
		"end",
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
}

func TestFeed_ItemAtOutOfRange(t *testing.T) {
	f := NewFeed()
	if _, ok := f.ItemAt(RawPath{Section: 0, Row: 0}); ok {
		t.Fatalf("expected miss on empty feed")
	}
}

func TestFeed_SkipsInvalidSectionKeys(t *testing.T) {
	f := NewFeed()
	bad := feedItem("item-a", false, 1, model.ModeSimple)
	bad.SectionKey = "zz"
	f.Reload([]model.Item{bad}, model.ModeSimple)
	if len(f.Sections()) != 0 {
		t.Fatalf("expected malformed rows to be dropped, got %v", f.Sections())
	}
}
