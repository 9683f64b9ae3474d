package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gurisko/tak/internal/doctor"
	"github.com/gurisko/tak/internal/ui"
)

func new_doctor_cmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the tools and configuration tak depends on",
		Long: `Check that every external tool tak shells out to is on PATH and that
the configuration parses. Problems are reported with a hint each;
doctor always exits 0 so it can run before anything is set up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}
			return app.run_doctor(cwd)
		},
	}
}

func (a *App) run_doctor(start_dir string) error {
	checks := doctor.RunChecks(a.Run, start_dir)

	failed := 0
	for _, c := range checks {
		fmt.Fprintln(a.Stdout, ui.RenderCheck(c.Name, c.OK, c.Detail))
		if !c.OK {
			failed++
			if c.Hint != "" {
				fmt.Fprintln(a.Stdout, ui.RenderCheckHint(c.Hint))
			}
		}
	}

	fmt.Fprintln(a.Stdout)
	if failed == 0 {
		fmt.Fprintln(a.Stdout, ui.Success("everything tak needs is in place"))
	} else {
		fmt.Fprintln(a.Stdout, ui.Hint(fmt.Sprintf("%d of %d checks need attention", failed, len(checks))))
	}
	return nil
}
