package cli

import (
	"context"
	"strings"

	"triage-cli/internal/model"
	"triage-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a to-do item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			prio := model.PriorityMedium
			if priority != "" {
				p, ok := model.ParsePriority(priority)
				if !ok {
					return writeErr(cmd, mutate.ErrInvalidPriority)
				}
				prio = p
			}

			it, err := mutate.Create(db, strings.Join(args, " "), prio)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(context.Background(), db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority: low, medium, high")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var showEmpty bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items grouped by section",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			e, _ := buildEngine(db)
			if showEmpty {
				e.SetShowsEmptySections(true)
			}

			type sectionOut struct {
				Title string       `json:"title"`
				Items []model.Item `json:"items"`
			}
			var out []sectionOut
			for si, ds := range e.DisplaySections() {
				sec := sectionOut{Title: ds.Title(), Items: []model.Item{}}
				for ri := 0; ri < ds.NumRows(); ri++ {
					if it, ok := e.RowAt(displayPath(si, ri)); ok {
						sec.Items = append(sec.Items, it)
					}
				}
				out = append(out, sec)
			}
			return writeOut(cmd, app, map[string]any{
				"mode":     db.Config.Mode.String(),
				"sections": out,
			})
		},
	}

	cmd.Flags().BoolVar(&showEmpty, "empty", false, "Include empty sections")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <item-id>",
		Short: "Mark an item done",
		Args:  cobra.ExactArgs(1),
		RunE:  setDoneRunE(app, true),
	}
}

func newUndoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undone <item-id>",
		Short: "Mark an item not done",
		Args:  cobra.ExactArgs(1),
		RunE:  setDoneRunE(app, false),
	}
}

func setDoneRunE(app *App, done bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, s, err := loadDB(app)
		if err != nil {
			return writeErr(cmd, err)
		}
		it, err := mutate.SetDone(db, strings.TrimSpace(args[0]), done)
		if err != nil {
			return writeErr(cmd, err)
		}
		if err := s.Save(context.Background(), db); err != nil {
			return writeErr(cmd, err)
		}
		return writeOut(cmd, app, map[string]any{"data": it})
	}
}

func newPriorityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prio <item-id> <low|medium|high>",
		Short: "Set an item's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, ok := model.ParsePriority(strings.TrimSpace(args[1]))
			if !ok {
				return writeErr(cmd, mutate.ErrInvalidPriority)
			}
			it, err := mutate.SetPriority(db, strings.TrimSpace(args[0]), p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(context.Background(), db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if err := mutate.Delete(db, id); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(context.Background(), db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": id}})
		},
	}
}
