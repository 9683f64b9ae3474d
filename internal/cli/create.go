package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gurisko/tak/internal/db"
	"github.com/gurisko/tak/internal/git"
	"github.com/gurisko/tak/internal/ui"
)

func new_create_cmd(app *App) *cobra.Command {
	var with_db, no_db bool

	cmd := &cobra.Command{
		Use:   "create <branch> [slot]",
		Short: "Create a worktree for a branch in a free slot",
		Long: `Create a git worktree for a branch in the first free slot, or in the
named slot when one is given. The branch is created if it does not
exist yet.

The slot decides everything else: its directory under the trees dir,
its port, and its database name. After the worktree is added, tak
appends the port and database to config/dev.exs, creates the database,
and runs the setup command inside the new tree. Database and setup
failures are reported but never roll the worktree back.

EXAMPLES:
  tak create feature/login            # first free slot
  tak create feature/login collins    # a specific slot
  tak create hotfix/crash --no-db     # skip the database for this one`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(); err != nil {
				return err
			}
			requested := ""
			if len(args) == 2 {
				requested = args[1]
			}

			create_db := app.Config.CreateDB
			if with_db {
				create_db = true
			}
			if no_db {
				create_db = false
			}
			return app.run_create(args[0], requested, create_db)
		},
	}

	cmd.Flags().BoolVar(&with_db, "db", false, "create the slot database even when create_db is off")
	cmd.Flags().BoolVar(&no_db, "no-db", false, "skip database creation for this worktree")
	cmd.MarkFlagsMutuallyExclusive("db", "no-db")
	return cmd
}

func (a *App) run_create(branch, requested string, create_db bool) error {
	cfg := a.Config

	// validate the slot before touching anything
	name, err := a.Reg.SelectSlot(requested)
	if err != nil {
		return err
	}

	path := cfg.SlotPath(name)
	port := a.Reg.ResolvePort(name)
	database := ""
	if create_db {
		database = a.Reg.DatabaseFor(name)
	}

	log.Debug("creating worktree", "slot", name, "branch", branch, "path", path, "port", port)

	if err := git.AddWorktree(a.Run, cfg.RepoRoot, path, branch); err != nil {
		return fmt.Errorf("failed to create worktree: %w", err)
	}

	if err := a.Reg.AppendManagedConfig(path, port, database); err != nil {
		log.Warn("failed to write dev config", "path", path, "err", err)
	}

	if database != "" {
		if err := db.Create(a.Run, database); err != nil {
			log.Warn("failed to create database", "database", database, "err", err)
		}
	}

	if r := a.Run.Run(path, "sh", "-c", cfg.Setup); !r.Ok() {
		log.Warn("setup command failed", "cmd", cfg.Setup, "detail", r.Failure())
	}

	fmt.Fprintln(a.Stdout, ui.Success(fmt.Sprintf("parked %s in slot %q", branch, name)))
	fmt.Fprintln(a.Stdout, ui.Field("path", path))
	fmt.Fprintln(a.Stdout, ui.Field("port", strconv.Itoa(port)))
	if database != "" {
		fmt.Fprintln(a.Stdout, ui.Field("database", database))
	}
	fmt.Fprintln(a.Stdout)
	fmt.Fprintln(a.Stdout, ui.Hint("next steps:"))
	fmt.Fprintln(a.Stdout, ui.Dim("  cd "+path))
	fmt.Fprintln(a.Stdout, ui.Dim(fmt.Sprintf("  mix phx.server    # http://localhost:%d", port)))
	return nil
}
