package tui

import (
	"context"
	"fmt"
	"strings"

	"triage-cli/internal/model"
	"triage-cli/internal/mutate"
	"triage-cli/internal/projection"
	"triage-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	store store.Store
	db    *store.DB

	feed      *store.Feed
	engine    *projection.Engine
	presenter *presenter

	cursor projection.IndexPath

	// moveMode turns empty sections on and lets J/K drag the selected
	// row through the list, persisting each step.
	moveMode bool

	adding bool
	input  textinput.Model

	width  int
	height int
	status string
}

func newAppModel(s store.Store, db *store.DB) appModel {
	p := &presenter{}
	feed := store.NewFeed()
	e := projection.NewEngine(feed, p)
	e.Reload(db.Items, db.Config.Mode)

	in := textinput.New()
	in.Placeholder = "New to-do title"
	in.CharLimit = 200

	return appModel{
		store:     s,
		db:        db,
		feed:      feed,
		engine:    e,
		presenter: p,
		input:     in,
	}
}

// Run starts the interactive TUI over an already-loaded db.
func Run(s store.Store, db *store.DB) error {
	m := newAppModel(s, db)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m appModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		if title == "" {
			return m, nil
		}
		if _, err := mutate.Create(m.db, title, model.PriorityMedium); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.persist()
		m.cursor = projection.IndexPath{}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "j", "down":
		m.cursor = m.nextPath(m.cursor)
		return m, nil
	case "k", "up":
		m.cursor = m.prevPath(m.cursor)
		return m, nil

	case "a":
		m.adding = true
		m.input.Focus()
		return m, nil

	case " ", "enter":
		if it, ok := m.engine.RowAt(m.cursor); ok {
			if _, err := mutate.ToggleDone(m.db, it.ID); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.persist()
			m.clampCursor()
		}
		return m, nil

	case "p":
		if it, ok := m.engine.RowAt(m.cursor); ok {
			if _, err := mutate.SetPriority(m.db, it.ID, nextPriority(it.Priority)); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.persist()
			m.clampCursor()
		}
		return m, nil

	case "d":
		if it, ok := m.engine.RowAt(m.cursor); ok {
			if err := mutate.Delete(m.db, it.ID); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.persist()
			m.clampCursor()
		}
		return m, nil

	case "m":
		next := model.ModePrioritized
		if m.db.Config.Mode == model.ModePrioritized {
			next = model.ModeSimple
		}
		if _, err := mutate.SetMode(m.db, next); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.persist()
		m.clampCursor()
		return m, nil

	case "e":
		m.moveMode = !m.moveMode
		m.engine.SetShowsEmptySections(m.moveMode)
		m.clampCursor()
		return m, nil

	case "J", "shift+down":
		if m.moveMode {
			m.dragCursor(+1)
		}
		return m, nil
	case "K", "shift+up":
		if m.moveMode {
			m.dragCursor(-1)
		}
		return m, nil
	}
	return m, nil
}

// persist saves the db and pushes the new snapshot through the feed so
// the engine and presenter see the change as one batch.
func (m *appModel) persist() {
	if err := m.store.Save(context.Background(), m.db); err != nil {
		m.status = err.Error()
		return
	}
	m.feed.SetSnapshot(m.db.Items, m.db.Config.Mode)
	m.status = m.presenter.lastBatch
}

// dragCursor moves the selected row one display position in the given
// direction, crossing section boundaries, and persists the reorder.
func (m *appModel) dragCursor(dir int) {
	dest, ok := m.adjacentPath(m.cursor, dir)
	if !ok {
		return
	}
	save := func(ctx context.Context, db *store.DB) error {
		return m.store.Save(ctx, db)
	}
	if err := m.engine.Reorder(context.Background(), m.db, save, m.cursor, dest); err != nil {
		m.status = err.Error()
		return
	}
	m.cursor = dest
	m.clampCursor()
}

// adjacentPath computes the drop target one step away from path.
// Moving down past the last row drops at row 0 of the next section;
// moving up past row 0 drops at the end of the previous section.
func (m *appModel) adjacentPath(path projection.IndexPath, dir int) (projection.IndexPath, bool) {
	sections := m.engine.DisplaySections()
	if path.Section < 0 || path.Section >= len(sections) {
		return path, false
	}
	if dir > 0 {
		if path.Row+1 < sections[path.Section].NumRows() {
			return projection.IndexPath{Section: path.Section, Row: path.Row + 1}, true
		}
		if path.Section+1 < len(sections) {
			return projection.IndexPath{Section: path.Section + 1, Row: 0}, true
		}
		return path, false
	}
	if path.Row > 0 {
		return projection.IndexPath{Section: path.Section, Row: path.Row - 1}, true
	}
	if path.Section > 0 {
		prev := path.Section - 1
		return projection.IndexPath{Section: prev, Row: sections[prev].NumRows()}, true
	}
	return path, false
}

// nextPath advances the cursor to the next row, skipping empty sections.
func (m *appModel) nextPath(path projection.IndexPath) projection.IndexPath {
	sections := m.engine.DisplaySections()
	if len(sections) == 0 {
		return projection.IndexPath{}
	}
	sec, row := path.Section, path.Row+1
	for sec < len(sections) {
		if row < sections[sec].NumRows() {
			return projection.IndexPath{Section: sec, Row: row}
		}
		sec++
		row = 0
	}
	return path
}

func (m *appModel) prevPath(path projection.IndexPath) projection.IndexPath {
	sections := m.engine.DisplaySections()
	if len(sections) == 0 {
		return projection.IndexPath{}
	}
	sec, row := path.Section, path.Row-1
	for sec >= 0 {
		if sec < len(sections) && row >= 0 && row < sections[sec].NumRows() {
			return projection.IndexPath{Section: sec, Row: row}
		}
		sec--
		if sec >= 0 {
			row = sections[sec].NumRows() - 1
		}
	}
	return path
}

// clampCursor keeps the cursor on a real row after the list changed
// underneath it.
func (m *appModel) clampCursor() {
	sections := m.engine.DisplaySections()
	if len(sections) == 0 {
		m.cursor = projection.IndexPath{}
		return
	}
	if m.cursor.Section >= len(sections) {
		m.cursor.Section = len(sections) - 1
		m.cursor.Row = 0
	}
	if m.cursor.Section < 0 {
		m.cursor.Section = 0
	}
	rows := sections[m.cursor.Section].NumRows()
	if m.cursor.Row >= rows {
		if rows > 0 {
			m.cursor.Row = rows - 1
		} else {
			m.cursor.Row = 0
		}
	}
	// If the cursor sits in an empty section, walk to the nearest row.
	if _, ok := m.engine.RowAt(m.cursor); !ok {
		if next := m.nextPath(projection.IndexPath{Section: m.cursor.Section, Row: -1}); next != m.cursor {
			if _, ok := m.engine.RowAt(next); ok {
				m.cursor = next
				return
			}
		}
		m.cursor = m.prevPath(m.cursor)
	}
}

func nextPriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityLow:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityHigh
	default:
		return model.PriorityLow
	}
}

func (m appModel) View() string {
	var b strings.Builder

	mode := m.db.Config.Mode.String()
	title := fmt.Sprintf("triage — %s mode", mode)
	if m.moveMode {
		title += " (move)"
	}
	b.WriteString(styleHeader.Render(title))
	b.WriteString("\n\n")

	for si, ds := range m.engine.DisplaySections() {
		header := fmt.Sprintf("%s %s", ds.Title(), styleCount.Render(fmt.Sprintf("(%d)", ds.NumRows())))
		b.WriteString(styleHeader.Render(header))
		b.WriteString("\n")

		for ri := 0; ri < ds.NumRows(); ri++ {
			it, ok := m.engine.RowAt(projection.IndexPath{Section: si, Row: ri})
			if !ok {
				continue
			}
			b.WriteString(m.renderRow(it, si, ri))
			b.WriteString("\n")
		}
		if ds.NumRows() == 0 {
			b.WriteString(faintIfDark(styleCount).Render("  (empty)"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(styleStatus.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(styleStatus.Render(m.helpLine()))
	return b.String()
}

func (m appModel) renderRow(it model.Item, si, ri int) string {
	check := "[ ]"
	if it.Done {
		check = "[x]"
	}
	prio := " "
	if !it.Done && it.Priority == model.PriorityHigh {
		prio = styleHigh.Render("!")
	}

	line := fmt.Sprintf("  %s %s %s", check, prio, it.Title)
	if it.Done {
		line = styleDone.Render(line)
	}
	if m.cursor.Section == si && m.cursor.Row == ri {
		return styleCursor.Render(line)
	}
	return line
}

func (m appModel) helpLine() string {
	if m.moveMode {
		return "J/K move row · e done moving · q quit"
	}
	return "j/k navigate · space toggle · a add · d delete · p priority · m mode · e move · q quit"
}
