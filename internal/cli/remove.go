package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gurisko/tak/internal/db"
	"github.com/gurisko/tak/internal/git"
	"github.com/gurisko/tak/internal/ui"
)

func new_remove_cmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "remove <slot>",
		Aliases: []string{"rm"},
		Short:   "Tear down a slot: process, worktree, branch, database",
		Long: `Tear down everything a slot owns: kill whatever listens on its port,
remove the git worktree, delete the branch, and drop the database when
it was created by tak.

Git refuses to remove a worktree with uncommitted changes; pass --force
to discard them. Every step after the worktree removal is best-effort:
failures are reported and the teardown continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(); err != nil {
				return err
			}
			return app.run_remove(args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "remove even with uncommitted changes; forces branch deletion too")
	return cmd
}

func (a *App) run_remove(name string, force bool) error {
	cfg := a.Config

	// a slot name must resolve to a direct child of the trees dir
	path := cfg.SlotPath(name)
	if filepath.Dir(path) != cfg.TreesDirAbs || filepath.Base(path) != name {
		return fmt.Errorf("invalid slot name %q: slots live directly under %s", name, cfg.TreesDirAbs)
	}
	if !dir_exists(path) {
		removable := a.removable_names()
		if len(removable) == 0 {
			return fmt.Errorf("no worktree at %s and nothing to remove", path)
		}
		return fmt.Errorf("no worktree at %s (removable: %s)", path, strings.Join(removable, ", "))
	}

	// gather everything we need before the first destructive step
	branch := a.Reg.ReadBranchFromWorktree(path)
	port := a.Reg.ResolvePort(name)
	if port == 0 {
		port = a.Reg.ReadPortFromWorktree(path)
	}
	database := a.Reg.DatabaseFor(name)
	managed := a.Reg.HasDatabaseConfig(path)

	log.Debug("removing slot", "slot", name, "branch", branch, "port", port, "managed_db", managed)

	if port > 0 {
		if err := a.Reg.KillPort(port); err != nil {
			log.Warn("failed to kill port owner", "port", port, "err", err)
		}
	}

	if err := git.RemoveWorktree(a.Run, cfg.RepoRoot, path, force); err != nil {
		if !force {
			return fmt.Errorf("%w\n  use `tak remove %s --force` to remove it anyway", err, name)
		}
		log.Warn("forced worktree removal failed, cleaning up files directly", "err", err)
	}

	if dir_exists(path) {
		if err := os.RemoveAll(path); err != nil {
			log.Warn("failed to delete leftover files", "path", path, "err", err)
		}
	}
	if err := git.PruneWorktrees(a.Run, cfg.RepoRoot); err != nil {
		log.Warn("failed to prune worktree metadata", "err", err)
	}

	if branch != "" && branch != "unknown" {
		if err := git.DeleteBranch(a.Run, cfg.RepoRoot, branch, force); err != nil {
			log.Warn("failed to delete branch", "branch", branch, "err", err)
		}
	}

	if managed {
		if err := db.Drop(a.Run, database); err != nil {
			log.Warn("failed to drop database", "database", database, "err", err)
		}
	}

	fmt.Fprintln(a.Stdout, ui.Success(fmt.Sprintf("removed slot %q", name)))
	if branch != "" && branch != "unknown" {
		fmt.Fprintln(a.Stdout, ui.Field("branch", branch))
	}
	if port > 0 {
		fmt.Fprintln(a.Stdout, ui.Field("port", strconv.Itoa(port)+" freed"))
	}
	if managed {
		fmt.Fprintln(a.Stdout, ui.Field("database", database+" dropped"))
	}
	return nil
}

// removable_names lists the directories under the trees dir, so the error
// for a bad name shows what could have been removed instead.
func (a *App) removable_names() []string {
	entries, err := os.ReadDir(a.Config.TreesDirAbs)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

func dir_exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
