package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gurisko/tak/internal/ui"
	"github.com/gurisko/tak/internal/watch"
)

func new_list_cmd(app *App) *cobra.Command {
	var as_json, watch_mode bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the main checkout and every occupied slot",
		Long: `Show one row per worktree: the main checkout first, then each occupied
slot with its branch, port, database, and whether something is listening
on the port. Slots that fail to resolve a detail degrade to "unknown"
instead of aborting the listing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(); err != nil {
				return err
			}
			if watch_mode {
				return watch.Run(app.Config.App, app.Reg)
			}
			return app.run_list(as_json)
		},
	}

	cmd.Flags().BoolVar(&as_json, "json", false, "print the slots as JSON")
	cmd.Flags().BoolVar(&watch_mode, "watch", false, "live dashboard, refreshed every few seconds")
	cmd.MarkFlagsMutuallyExclusive("json", "watch")
	return cmd
}

func (a *App) run_list(as_json bool) error {
	slots := a.Reg.Snapshot()

	if as_json {
		data, err := json.MarshalIndent(slots, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode slots: %w", err)
		}
		fmt.Fprintln(a.Stdout, string(data))
		return nil
	}

	fmt.Fprintln(a.Stdout, ui.RenderSlotTable(slots, a.Reg.FreeNames()))
	return nil
}
