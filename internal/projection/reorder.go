package projection

import (
	"context"
	"fmt"

	"triage-cli/internal/model"
	"triage-cli/internal/mutate"
	"triage-cli/internal/store"
)

// SaveFunc persists the db after a reorder mutated it.
type SaveFunc func(context.Context, *store.DB) error

// Reorder applies a manual drag from source to destination in display
// coordinates. It reassigns the moved item's section state when the drag
// crosses sections, renumbers the manual order of every item so the
// persisted order matches the new display order, saves, and pushes the new
// snapshot through the feed with delegate forwarding suspended (the
// presenter has already moved the row).
//
// On a save failure the in-memory mutations are NOT rolled back: the list
// the caller sees is ahead of storage until the next successful save.
func (e *Engine) Reorder(ctx context.Context, db *store.DB, save SaveFunc, source, destination IndexPath) error {
	if source == destination {
		return nil
	}

	tok := e.SuspendForwarding()

	moved, ok := e.RowAt(source)
	if !ok {
		tok.Release()
		return ErrNotFound
	}

	if source.Section != destination.Section {
		if destination.Section < 0 || destination.Section >= len(e.sections) {
			tok.Release()
			return ErrNotFound
		}
		target := e.sections[destination.Section].Section
		if _, err := mutate.MoveToSection(db, moved.ID, target); err != nil {
			tok.Release()
			return err
		}
	}

	e.renumberForMove(db, moved, source, destination)

	if err := save(ctx, db); err != nil {
		// No batch will arrive to auto-release the token.
		tok.Release()
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	e.feed.SetSnapshot(db.Items, db.Config.Mode)
	return nil
}

// renumberForMove rewrites ManualOrder for every item: the current display
// order with the moved item re-inserted at the destination becomes the new
// total order, numbered count..1 so ordering stays strict with no ties.
func (e *Engine) renumberForMove(db *store.DB, moved model.Item, source, destination IndexPath) {
	sorted := e.feed.Items()
	withoutMoved := make([]model.Item, 0, len(sorted))
	for _, it := range sorted {
		if it.ID != moved.ID {
			withoutMoved = append(withoutMoved, it)
		}
	}

	// Convert the destination to a flat rank. The engine still counts the
	// moved item in its source section, so a destination past the vacated
	// section sits one row too far.
	rank := destination.Row
	for si := 0; si < destination.Section && si < len(e.sections); si++ {
		rank += e.sections[si].NumRows()
		if si == source.Section {
			rank--
		}
	}
	if rank < 0 {
		rank = 0
	}
	if rank > len(withoutMoved) {
		rank = len(withoutMoved)
	}

	reordered := make([]model.Item, 0, len(sorted))
	reordered = append(reordered, withoutMoved[:rank]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, withoutMoved[rank:]...)

	count := len(reordered)
	for i, it := range reordered {
		if live, ok := db.FindItem(it.ID); ok {
			live.ManualOrder = count - i
		}
	}
}
