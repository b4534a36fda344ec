package cli

import (
	"context"
	"fmt"
	"strings"

	"triage-cli/internal/mutate"
	"triage-cli/internal/projection"
	"triage-cli/internal/store"

	"github.com/spf13/cobra"
)

func newMoveCmd(app *App) *cobra.Command {
	var toSection string
	var toRow int

	cmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "Move an item to a display position (section title or index, plus row)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			e, _ := buildEngine(db)
			// Show empty sections so any catalog section is a valid target.
			e.SetShowsEmptySections(true)

			id := strings.TrimSpace(args[0])
			source, ok := findDisplayPath(e, id)
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "item", ID: id})
			}

			destSection, ok := resolveSectionArg(e, toSection)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown section: %s", toSection))
			}
			destination := displayPath(destSection, toRow)

			save := func(ctx context.Context, db *store.DB) error {
				return s.Save(ctx, db)
			}
			if err := e.Reorder(context.Background(), db, save, source, destination); err != nil {
				return writeErr(cmd, err)
			}

			it, _ := db.FindItem(id)
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}

	cmd.Flags().StringVar(&toSection, "section", "", "Destination section title (e.g. \"Done\") or index")
	cmd.Flags().IntVar(&toRow, "row", 0, "Destination row within the section")
	_ = cmd.MarkFlagRequired("section")
	return cmd
}

func findDisplayPath(e *projection.Engine, id string) (projection.IndexPath, bool) {
	for si, ds := range e.DisplaySections() {
		for ri := 0; ri < ds.NumRows(); ri++ {
			if it, ok := e.RowAt(displayPath(si, ri)); ok && it.ID == id {
				return displayPath(si, ri), true
			}
		}
	}
	return projection.IndexPath{}, false
}

func resolveSectionArg(e *projection.Engine, arg string) (int, bool) {
	arg = strings.TrimSpace(arg)
	for i, ds := range e.DisplaySections() {
		if strings.EqualFold(ds.Title(), arg) {
			return i, true
		}
	}
	var idx int
	if _, err := fmt.Sscanf(arg, "%d", &idx); err == nil && idx >= 0 && idx < len(e.DisplaySections()) {
		return idx, true
	}
	return 0, false
}
