package cli

import (
	"context"
	"strings"

	"triage-cli/internal/model"
	"triage-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newModeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mode [simple|prioritized]",
		Short: "Show or switch the list mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"mode": db.Config.Mode.String()})
			}

			m, ok := model.ParseMode(strings.TrimSpace(args[0]))
			if !ok {
				return writeErr(cmd, mutate.ErrInvalidMode)
			}
			changed, err := mutate.SetMode(db, m)
			if err != nil {
				return writeErr(cmd, err)
			}
			if changed {
				if err := s.Save(context.Background(), db); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"mode": db.Config.Mode.String(), "changed": changed})
		},
	}
}
