package tui

import (
	"fmt"

	"triage-cli/internal/model"
	"triage-cli/internal/projection"
	"triage-cli/internal/section"
)

// presenter is the display side of the projection engine: it receives
// batches in display coordinates and keeps a short description of the
// last batch for the status line. The view itself always re-renders from
// the engine's current sections, so the events only drive feedback, not
// layout.
type presenter struct {
	inBatch    bool
	batchNotes []string
	lastBatch  string
}

func (p *presenter) BeginUpdates() {
	p.inBatch = true
	p.batchNotes = nil
}

func (p *presenter) SectionInserted(index int, sec section.Section) {
	p.batchNotes = append(p.batchNotes, fmt.Sprintf("+%s", sec.Title()))
}

func (p *presenter) SectionDeleted(index int, sec section.Section) {
	p.batchNotes = append(p.batchNotes, fmt.Sprintf("-%s", sec.Title()))
}

func (p *presenter) RowInserted(path projection.IndexPath) {
	p.batchNotes = append(p.batchNotes, "+row")
}

func (p *presenter) RowDeleted(path projection.IndexPath) {
	p.batchNotes = append(p.batchNotes, "-row")
}

func (p *presenter) RowUpdated(path projection.IndexPath, item model.Item) {
	p.batchNotes = append(p.batchNotes, "~"+item.Title)
}

func (p *presenter) RowMoved(from, to projection.IndexPath, item model.Item) {
	p.batchNotes = append(p.batchNotes, "moved "+item.Title)
}

func (p *presenter) EndUpdates() {
	p.inBatch = false
	if len(p.batchNotes) == 0 {
		p.lastBatch = ""
		return
	}
	note := p.batchNotes[0]
	if extra := len(p.batchNotes) - 1; extra > 0 {
		note = fmt.Sprintf("%s (+%d more)", note, extra)
	}
	p.lastBatch = note
}
