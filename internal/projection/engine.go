package projection

import (
	"fmt"

	"triage-cli/internal/model"
	"triage-cli/internal/section"
	"triage-cli/internal/store"
)

// Engine projects the feed's raw result set into the displayed section
// list. It subscribes to the feed as a raw observer and forwards the
// translated batches to its delegate.
//
// The engine is single-threaded: it must be driven from the same logical
// thread as the feed and the delegate. There is no internal locking.
type Engine struct {
	feed     *store.Feed
	delegate Delegate

	// Diag receives diagnostics for events dropped defensively, e.g. a
	// raw coordinate that cannot be resolved against the snapshot. Nil
	// discards them.
	Diag func(string)

	sections           []DisplaySection
	showsEmptySections bool

	// Snapshot taken at BeginUpdates. Row coordinates arriving mid-batch
	// refer to the pre-batch section list on their "from" side, which is
	// meaningless against the rebuilt list.
	oldSections []DisplaySection

	// Raw section indices inserted/deleted within the current batch.
	// Moves touching one of these degrade to delete+insert.
	rawInsertedSections map[int]bool
	rawDeletedSections  map[int]bool

	suspended   int
	autoRelease []*SuspendToken
}

// NewEngine builds an engine over feed, forwarding display-coordinate
// events to delegate, and subscribes it to the feed. The initial section
// list hides empty sections.
func NewEngine(feed *store.Feed, delegate Delegate) *Engine {
	e := &Engine{
		feed:     feed,
		delegate: delegate,
	}
	e.sections = e.buildSections(false)
	feed.Subscribe(e)
	return e
}

// DisplaySections returns the current displayed sections in order.
func (e *Engine) DisplaySections() []DisplaySection { return e.sections }

// ShowsEmptySections reports whether empty sections are displayed.
func (e *Engine) ShowsEmptySections() bool { return e.showsEmptySections }

// RowAt resolves a display path to its item. ok is false for empty
// sections and out-of-range paths.
func (e *Engine) RowAt(path IndexPath) (model.Item, bool) {
	if path.Section < 0 || path.Section >= len(e.sections) {
		return model.Item{}, false
	}
	ds := e.sections[path.Section]
	raw, ok := ds.UnderlyingIndex()
	if !ok {
		return model.Item{}, false
	}
	return e.feed.ItemAt(store.RawPath{Section: raw, Row: path.Row})
}

// SetShowsEmptySections toggles synthesized empty sections. The delegate
// receives one section insert or delete per purely-synthetic section,
// each addressed at its position in the catalog-ordered with-empty list,
// bracketed as a single batch.
func (e *Engine) SetShowsEmptySections(show bool) {
	if show == e.showsEmptySections {
		return
	}

	e.delegate.BeginUpdates()

	withEmpty := e.buildSections(true)
	for i, ds := range withEmpty {
		if _, ok := ds.UnderlyingIndex(); ok {
			continue
		}
		if show {
			e.delegate.SectionInserted(i, ds.Section)
		} else {
			e.delegate.SectionDeleted(i, ds.Section)
		}
	}

	e.showsEmptySections = show
	e.Rebuild()
	e.delegate.EndUpdates()
}

// Rebuild regenerates the display section list from the feed. Idempotent:
// calling it redundantly only costs the rebuild work.
func (e *Engine) Rebuild() {
	e.sections = e.buildSections(e.showsEmptySections)
}

// Reload replaces the feed snapshot and rebuilds without notifying the
// delegate of any changes.
func (e *Engine) Reload(items []model.Item, mode model.Mode) {
	e.feed.Reload(items, mode)
	e.Rebuild()
}

// buildSections computes the display list. Without empty sections it is
// exactly the raw list in raw order; with them it iterates the catalog in
// rank order and attaches the raw index where one exists. Catalog order is
// the correctness requirement: never alphabetical, never feed order.
func (e *Engine) buildSections(includeEmpty bool) []DisplaySection {
	raw := e.feed.Sections()

	if !includeEmpty {
		out := make([]DisplaySection, 0, len(raw))
		for i, sec := range raw {
			out = append(out, DisplaySection{
				Section:    sec.Key,
				underlying: i,
				hasRows:    true,
				feed:       e.feed,
			})
		}
		return out
	}

	catalog := make([]DisplaySection, 0, 4)
	for _, s := range section.Catalog(e.feed.Mode()) {
		ds := DisplaySection{Section: s, feed: e.feed}
		for i, sec := range raw {
			if sec.Key == s {
				ds.underlying = i
				ds.hasRows = true
				break
			}
		}
		catalog = append(catalog, ds)
	}
	return catalog
}

// displayPathFor translates a raw path into display coordinates against
// the given section list. The row component carries over unchanged.
func displayPathFor(raw store.RawPath, sections []DisplaySection) (IndexPath, bool) {
	for i, ds := range sections {
		if u, ok := ds.UnderlyingIndex(); ok && u == raw.Section {
			return IndexPath{Section: i, Row: raw.Row}, true
		}
	}
	return IndexPath{}, false
}

func (e *Engine) diag(format string, args ...any) {
	if e.Diag != nil {
		e.Diag(fmt.Sprintf(format, args...))
	}
}

// ---- store.Observer ----

func (e *Engine) BeginUpdates() {
	e.oldSections = e.sections
	e.rawInsertedSections = map[int]bool{}
	e.rawDeletedSections = map[int]bool{}
	if e.suspended == 0 {
		e.delegate.BeginUpdates()
	}
}

func (e *Engine) SectionInserted(index int) {
	e.rawInsertedSections[index] = true
	e.Rebuild()

	// While empty sections are shown, the section already exists as a
	// placeholder; the raw change is absorbed.
	if e.suspended > 0 || e.showsEmptySections {
		return
	}
	for i, ds := range e.sections {
		if u, ok := ds.UnderlyingIndex(); ok && u == index {
			e.delegate.SectionInserted(i, ds.Section)
			return
		}
	}
	e.diag("drop section insert: raw section %d not in display list", index)
}

func (e *Engine) SectionDeleted(index int) {
	e.rawDeletedSections[index] = true
	old := e.oldSections
	e.Rebuild()

	// The mirror of the insert case: the section stays on screen as an
	// empty placeholder.
	if e.suspended > 0 || e.showsEmptySections {
		return
	}
	for i, ds := range old {
		if u, ok := ds.UnderlyingIndex(); ok && u == index {
			e.delegate.SectionDeleted(i, ds.Section)
			return
		}
	}
	e.diag("drop section delete: raw section %d not in old display list", index)
}

func (e *Engine) RowInserted(path store.RawPath) {
	e.Rebuild()
	if e.suspended > 0 {
		return
	}
	disp, ok := displayPathFor(path, e.sections)
	if !ok {
		e.diag("drop row insert at raw %v: unresolvable section", path)
		return
	}
	e.delegate.RowInserted(disp)
}

func (e *Engine) RowDeleted(path store.RawPath) {
	e.Rebuild()
	if e.suspended > 0 {
		return
	}
	disp, ok := displayPathFor(path, e.oldSections)
	if !ok {
		e.diag("drop row delete at raw %v: unresolvable section", path)
		return
	}
	e.delegate.RowDeleted(disp)
}

func (e *Engine) RowUpdated(path store.RawPath, item model.Item) {
	e.Rebuild()
	if e.suspended > 0 {
		return
	}
	disp, ok := displayPathFor(path, e.sections)
	if !ok {
		e.diag("drop row update at raw %v: unresolvable section", path)
		return
	}
	e.delegate.RowUpdated(disp, item)
}

func (e *Engine) RowMoved(from, to store.RawPath, item model.Item) {
	e.Rebuild()
	if e.suspended > 0 {
		return
	}
	fromDisp, okFrom := displayPathFor(from, e.oldSections)
	toDisp, okTo := displayPathFor(to, e.sections)
	if !okFrom || !okTo {
		e.diag("drop row move raw %v -> %v: unresolvable section", from, to)
		return
	}

	// A move in or out of a section that appeared or disappeared within
	// this same batch cannot be expressed as a single move against the
	// shifting section list; it degrades to delete + insert.
	if e.rawDeletedSections[from.Section] || e.rawInsertedSections[to.Section] {
		e.delegate.RowDeleted(fromDisp)
		e.delegate.RowInserted(toDisp)
		return
	}
	e.delegate.RowMoved(fromDisp, toDisp, item)
}

func (e *Engine) EndUpdates() {
	if e.suspended == 0 {
		e.delegate.EndUpdates()
	}
	for _, tok := range e.autoRelease {
		tok.Release()
	}
	e.autoRelease = nil
}
