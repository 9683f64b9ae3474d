// Package cli wires tak's commands to the slot registry.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gurisko/tak/internal/config"
	"github.com/gurisko/tak/internal/execx"
	"github.com/gurisko/tak/internal/git"
	"github.com/gurisko/tak/internal/worktree"
)

// App carries the dependencies every command shares. Tests swap Run and
// Stdout; commands never reach for globals.
type App struct {
	Version string
	Config  *config.Config
	Run     execx.Runner
	Reg     *worktree.Registry
	Stdout  io.Writer
}

// Execute parses arguments and runs the selected command.
func Execute(version string) error {
	setup_logging()

	app := &App{
		Version: version,
		Run:     execx.New(),
		Stdout:  os.Stdout,
	}
	return new_root_cmd(app).Execute()
}

func setup_logging() {
	log.SetReportTimestamp(false)
	log.SetLevel(log.WarnLevel)
	if os.Getenv("TAK_DEBUG") == "1" {
		log.SetLevel(log.DebugLevel)
	}
}

func new_root_cmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tak",
		Short: "Named git worktree slots with stable ports and databases",
		Long: `Tak parks branches in a fixed list of named slots, each with its own
worktree directory, port, and database. A branch parked in the same slot
always comes back on the same port, so editor sessions, bookmarks, and
database contents survive switching.

Slots live as sibling directories of the main checkout. Creating a slot
adds a git worktree, wires the port and database into config/dev.exs,
and runs the project's setup command.`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		new_create_cmd(app),
		new_list_cmd(app),
		new_remove_cmd(app),
		new_doctor_cmd(app),
	)
	return root
}

// load resolves the repository and configuration once per process. Doctor
// skips this so it can diagnose the very problems load would fail on.
func (a *App) load() error {
	if a.Config != nil {
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	root, err := git.RepoRoot(a.Run, cwd)
	if err != nil {
		return fmt.Errorf("not inside a git repository (try `tak doctor`)")
	}

	cfg, err := config.Load(cwd, root)
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Reg = worktree.NewRegistry(cfg, a.Run)
	log.Debug("loaded config", "app", cfg.App, "repo", cfg.RepoRoot, "trees", cfg.TreesDirAbs)
	return nil
}
