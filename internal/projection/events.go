// Package projection maintains the mapping between the store's raw
// grouped result set and the displayed list of sections, which may include
// synthesized empty sections. It translates raw-coordinate change batches
// into display-coordinate ones and implements manual drag reordering.
package projection

import (
	"triage-cli/internal/model"
	"triage-cli/internal/section"
	"triage-cli/internal/store"
)

// IndexPath addresses a row in display coordinates: the section index is a
// position in the displayed section list, empty sections included.
type IndexPath struct {
	Section int
	Row     int
}

// Delegate receives display-coordinate change batches from the engine.
// It is the display-side mirror of store.Observer.
//
// Section events carry the section value alongside the display index so a
// presenter can render headers without a lookup. Within one batch, deleted
// coordinates refer to the pre-batch display list and inserted coordinates
// to the post-batch one.
type Delegate interface {
	BeginUpdates()
	SectionInserted(index int, sec section.Section)
	SectionDeleted(index int, sec section.Section)
	RowInserted(path IndexPath)
	RowDeleted(path IndexPath)
	RowUpdated(path IndexPath, item model.Item)
	RowMoved(from, to IndexPath, item model.Item)
	EndUpdates()
}

// DisplaySection pairs a section with its position in the raw result set,
// or no position at all when the section is empty and only shown because
// empty sections are enabled. Values are rebuilt on every change and never
// persisted.
type DisplaySection struct {
	Section section.Section

	underlying int
	hasRows    bool
	feed       *store.Feed
}

// UnderlyingIndex returns the section's index in the raw result set.
// ok is false for synthesized empty sections.
func (d DisplaySection) UnderlyingIndex() (int, bool) {
	return d.underlying, d.hasRows
}

// Title returns the section header text.
func (d DisplaySection) Title() string { return d.Section.Title() }

// NumRows returns the number of rows currently in the section.
func (d DisplaySection) NumRows() int {
	if !d.hasRows {
		return 0
	}
	raw := d.feed.Sections()
	if d.underlying < 0 || d.underlying >= len(raw) {
		return 0
	}
	return len(raw[d.underlying].Rows)
}
