package cli

import (
	"triage-cli/internal/model"
	"triage-cli/internal/projection"
	"triage-cli/internal/section"
	"triage-cli/internal/store"
)

// silentDelegate discards display events; CLI commands only need the
// engine's section structure, not its change stream.
type silentDelegate struct{}

func (silentDelegate) BeginUpdates()                                    {}
func (silentDelegate) SectionInserted(int, section.Section)             {}
func (silentDelegate) SectionDeleted(int, section.Section)              {}
func (silentDelegate) RowInserted(projection.IndexPath)                 {}
func (silentDelegate) RowDeleted(projection.IndexPath)                  {}
func (silentDelegate) RowUpdated(projection.IndexPath, model.Item)      {}
func (silentDelegate) RowMoved(_, _ projection.IndexPath, _ model.Item) {}
func (silentDelegate) EndUpdates()                                      {}

func buildEngine(db *store.DB) (*projection.Engine, *store.Feed) {
	feed := store.NewFeed()
	e := projection.NewEngine(feed, silentDelegate{})
	e.Reload(db.Items, db.Config.Mode)
	return e, feed
}

func displayPath(sec, row int) projection.IndexPath {
	return projection.IndexPath{Section: sec, Row: row}
}
