package store

import (
	"sort"

	"triage-cli/internal/model"
	"triage-cli/internal/section"
)

// RawPath addresses a row in the store's native grouped result set.
// Raw coordinates never include empty sections.
type RawPath struct {
	Section int
	Row     int
}

// ResultSection is one group of the raw result set: a section key plus its
// rows sorted by manual order descending.
type ResultSection struct {
	Key  section.Section
	Rows []model.Item
}

// Observer receives raw-coordinate change batches from a Feed.
//
// Batches always arrive in the shape
// BeginUpdates, section events, row events, EndUpdates, with every index
// valid against the feed state at the matching side of the batch: deleted
// coordinates refer to the pre-batch result set, inserted coordinates to
// the post-batch one.
type Observer interface {
	BeginUpdates()
	SectionInserted(index int)
	SectionDeleted(index int)
	RowInserted(path RawPath)
	RowDeleted(path RawPath)
	RowUpdated(path RawPath, item model.Item)
	RowMoved(from, to RawPath, item model.Item)
	EndUpdates()
}

// Feed maintains the grouped raw result set and notifies observers of
// changes between snapshots. It is the in-process equivalent of a fetched
// results stream: the persistence layer pushes full snapshots and the feed
// turns them into fine-grained insert/delete/update/move events.
//
// Feed is not safe for concurrent use; it is driven from the single UI
// thread of control like everything else in this package.
type Feed struct {
	mode      model.Mode
	sections  []ResultSection
	observers []Observer
}

func NewFeed() *Feed {
	return &Feed{}
}

// Subscribe registers an observer for subsequent snapshot diffs.
func (f *Feed) Subscribe(o Observer) {
	f.observers = append(f.observers, o)
}

// Mode returns the mode of the last snapshot.
func (f *Feed) Mode() model.Mode { return f.mode }

// Sections returns the current grouped result set in raw order.
func (f *Feed) Sections() []ResultSection { return f.sections }

// ItemAt resolves a raw path against the current result set.
func (f *Feed) ItemAt(p RawPath) (model.Item, bool) {
	if p.Section < 0 || p.Section >= len(f.sections) {
		return model.Item{}, false
	}
	rows := f.sections[p.Section].Rows
	if p.Row < 0 || p.Row >= len(rows) {
		return model.Item{}, false
	}
	return rows[p.Row], true
}

// Items returns all items in raw result-set order.
func (f *Feed) Items() []model.Item {
	var out []model.Item
	for _, sec := range f.sections {
		out = append(out, sec.Rows...)
	}
	return out
}

// Reload replaces the result set without notifying observers. Used for the
// initial load and for explicit full reloads where the consumer rebuilds
// its own state afterwards.
func (f *Feed) Reload(items []model.Item, mode model.Mode) {
	f.mode = mode
	f.sections = groupItems(items)
}

// SetSnapshot replaces the result set and delivers the difference to every
// observer as one begin/end-bracketed batch.
func (f *Feed) SetSnapshot(items []model.Item, mode model.Mode) {
	old := f.sections
	f.mode = mode
	f.sections = groupItems(items)

	events := diffSections(old, f.sections)

	for _, o := range f.observers {
		o.BeginUpdates()
	}
	for _, ev := range events {
		for _, o := range f.observers {
			ev(o)
		}
	}
	for _, o := range f.observers {
		o.EndUpdates()
	}
}

// groupItems groups items by section key and sorts groups by key and rows
// by manual order descending. Items with empty keys are skipped; the
// mutation layer never produces them.
func groupItems(items []model.Item) []ResultSection {
	byKey := map[section.Section][]model.Item{}
	for _, it := range items {
		key := section.Section(it.SectionKey)
		if !key.IsValid() {
			continue
		}
		byKey[key] = append(byKey[key], it)
	}

	keys := make([]section.Section, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]ResultSection, 0, len(keys))
	for _, k := range keys {
		rows := byKey[k]
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].ManualOrder != rows[j].ManualOrder {
				return rows[i].ManualOrder > rows[j].ManualOrder
			}
			return rows[i].ID < rows[j].ID
		})
		out = append(out, ResultSection{Key: k, Rows: rows})
	}
	return out
}

type feedEvent func(Observer)

// diffSections computes the event batch that transforms old into new:
// section deletes/inserts first, then row deletes, moves, updates and
// inserts. Rows are matched by item ID; a row whose section or position
// changed becomes a move, a row whose payload changed in place becomes an
// update.
func diffSections(old, new []ResultSection) []feedEvent {
	var events []feedEvent

	oldKeyIndex := map[section.Section]int{}
	for i, sec := range old {
		oldKeyIndex[sec.Key] = i
	}
	newKeyIndex := map[section.Section]int{}
	for i, sec := range new {
		newKeyIndex[sec.Key] = i
	}

	for i, sec := range old {
		if _, ok := newKeyIndex[sec.Key]; !ok {
			idx := i
			events = append(events, func(o Observer) { o.SectionDeleted(idx) })
		}
	}
	for i, sec := range new {
		if _, ok := oldKeyIndex[sec.Key]; !ok {
			idx := i
			events = append(events, func(o Observer) { o.SectionInserted(idx) })
		}
	}

	type located struct {
		path RawPath
		item model.Item
	}
	oldByID := map[string]located{}
	for si, sec := range old {
		for ri, it := range sec.Rows {
			oldByID[it.ID] = located{path: RawPath{Section: si, Row: ri}, item: it}
		}
	}
	newByID := map[string]located{}
	for si, sec := range new {
		for ri, it := range sec.Rows {
			newByID[it.ID] = located{path: RawPath{Section: si, Row: ri}, item: it}
		}
	}

	// Deletes in descending old order so earlier events do not shift the
	// coordinates of later ones when applied one by one.
	var deleted []located
	for id, loc := range oldByID {
		if _, ok := newByID[id]; !ok {
			deleted = append(deleted, loc)
		}
	}
	sort.Slice(deleted, func(i, j int) bool {
		if deleted[i].path.Section != deleted[j].path.Section {
			return deleted[i].path.Section > deleted[j].path.Section
		}
		return deleted[i].path.Row > deleted[j].path.Row
	})
	for _, loc := range deleted {
		p := loc.path
		events = append(events, func(o Observer) { o.RowDeleted(p) })
	}

	// Survivors: moved when the section key or resolved row changed,
	// updated when only the payload changed.
	var survivors []string
	for id := range newByID {
		if _, ok := oldByID[id]; ok {
			survivors = append(survivors, id)
		}
	}
	sort.Strings(survivors)
	for _, id := range survivors {
		oldLoc := oldByID[id]
		newLoc := newByID[id]
		oldKey := old[oldLoc.path.Section].Key
		newKey := new[newLoc.path.Section].Key
		switch {
		case oldKey != newKey || oldLoc.path.Row != newLoc.path.Row:
			from, to, it := oldLoc.path, newLoc.path, newLoc.item
			events = append(events, func(o Observer) { o.RowMoved(from, to, it) })
		case oldLoc.item != newLoc.item:
			p, it := newLoc.path, newLoc.item
			events = append(events, func(o Observer) { o.RowUpdated(p, it) })
		}
	}

	// Inserts in ascending new order.
	var inserted []located
	for id, loc := range newByID {
		if _, ok := oldByID[id]; !ok {
			inserted = append(inserted, loc)
		}
	}
	sort.Slice(inserted, func(i, j int) bool {
		if inserted[i].path.Section != inserted[j].path.Section {
			return inserted[i].path.Section < inserted[j].path.Section
		}
		return inserted[i].path.Row < inserted[j].path.Row
	})
	for _, loc := range inserted {
		p := loc.path
		events = append(events, func(o Observer) { o.RowInserted(p) })
	}

	return events
}
