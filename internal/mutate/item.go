// Package mutate holds the single entry points for changing items. Every
// function here that touches done, priority or mode also recomputes the
// affected items' derived section keys, so the persisted key can never go
// stale. Callers are responsible for saving the db afterwards.
package mutate

import (
	"errors"
	"strings"
	"time"

	"triage-cli/internal/model"
	"triage-cli/internal/section"
	"triage-cli/internal/store"
)

var ErrEmptyTitle = errors.New("empty title")
var ErrInvalidPriority = errors.New("invalid priority")
var ErrInvalidMode = errors.New("invalid mode")

// Create appends a new not-done item. The new item takes a manual order
// strictly above the current maximum so it shows first in its section.
func Create(db *store.DB, title string, priority model.Priority) (model.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Item{}, ErrEmptyTitle
	}
	if !priority.IsValid() {
		return model.Item{}, ErrInvalidPriority
	}

	now := time.Now().UTC()
	it := model.Item{
		ID:          store.NextItemID(db),
		Title:       title,
		Done:        false,
		Priority:    priority,
		ManualOrder: db.MaxManualOrder() + 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	it.SectionKey = string(section.For(it.Done, it.Priority, db.Config.Mode))
	db.Items = append(db.Items, it)
	return it, nil
}

// SetTitle renames an item.
func SetTitle(db *store.DB, id, title string) (model.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Item{}, ErrEmptyTitle
	}
	it, ok := db.FindItem(id)
	if !ok {
		return model.Item{}, NotFoundError{Kind: "item", ID: id}
	}
	it.Title = title
	it.UpdatedAt = time.Now().UTC()
	return *it, nil
}

// SetDone sets the done flag and recomputes the section key.
func SetDone(db *store.DB, id string, done bool) (model.Item, error) {
	it, ok := db.FindItem(id)
	if !ok {
		return model.Item{}, NotFoundError{Kind: "item", ID: id}
	}
	it.Done = done
	it.SectionKey = string(section.For(it.Done, it.Priority, db.Config.Mode))
	it.UpdatedAt = time.Now().UTC()
	return *it, nil
}

// ToggleDone flips the done flag and recomputes the section key.
func ToggleDone(db *store.DB, id string) (model.Item, error) {
	it, ok := db.FindItem(id)
	if !ok {
		return model.Item{}, NotFoundError{Kind: "item", ID: id}
	}
	return SetDone(db, id, !it.Done)
}

// SetPriority changes an item's priority and recomputes the section key.
func SetPriority(db *store.DB, id string, priority model.Priority) (model.Item, error) {
	if !priority.IsValid() {
		return model.Item{}, ErrInvalidPriority
	}
	it, ok := db.FindItem(id)
	if !ok {
		return model.Item{}, NotFoundError{Kind: "item", ID: id}
	}
	it.Priority = priority
	it.SectionKey = string(section.For(it.Done, it.Priority, db.Config.Mode))
	it.UpdatedAt = time.Now().UTC()
	return *it, nil
}

// MoveToSection reassigns an item's state to the canonical state of the
// target section. Used by drag reorder when the destination lies in a
// different section than the source.
func MoveToSection(db *store.DB, id string, target section.Section) (model.Item, error) {
	it, ok := db.FindItem(id)
	if !ok {
		return model.Item{}, NotFoundError{Kind: "item", ID: id}
	}
	it.Done, it.Priority = target.CanonicalState(it.Priority)
	it.SectionKey = string(section.For(it.Done, it.Priority, db.Config.Mode))
	it.UpdatedAt = time.Now().UTC()
	return *it, nil
}

// Delete removes an item.
func Delete(db *store.DB, id string) error {
	for i := range db.Items {
		if db.Items[i].ID == id {
			db.Items = append(db.Items[:i], db.Items[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "item", ID: id}
}
