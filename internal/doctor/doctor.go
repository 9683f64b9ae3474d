// Package doctor probes the host for everything tak shells out to.
package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/gurisko/tak/internal/config"
	"github.com/gurisko/tak/internal/execx"
	"github.com/gurisko/tak/internal/git"
)

// Check is one probe result. A failed check carries a hint on how to fix it.
type Check struct {
	Name   string
	OK     bool
	Detail string
	Hint   string
}

// RunChecks inspects the tools and files tak depends on. Problems never
// abort the run: each one becomes a failed check with a hint.
func RunChecks(run execx.Runner, start_dir string) []Check {
	checks := []Check{check_git(run)}

	repo, repo_check := check_repo(run, start_dir)
	checks = append(checks, repo_check)

	cfg, cfg_check := check_config(start_dir, repo)
	checks = append(checks, cfg_check)

	checks = append(checks, check_tool("lsof", lsof_hint()))

	if cfg != nil && !cfg.CreateDB {
		checks = append(checks, Check{Name: "createdb", OK: true, Detail: "not needed (create_db: false)"})
	} else {
		checks = append(checks, check_tool("createdb", postgres_hint()))
	}
	// remove still drops tak-managed databases even when create_db is off
	checks = append(checks, check_tool("dropdb", postgres_hint()))

	if cfg != nil {
		checks = append(checks, check_setup(cfg), check_trees_dir(cfg))
	}

	return checks
}

func check_git(run execx.Runner) Check {
	if _, err := exec.LookPath("git"); err != nil {
		return Check{Name: "git", Detail: "not found on PATH", Hint: install_hint("git")}
	}
	detail := "found"
	if r := run.Run("", "git", "--version"); r.Ok() {
		detail = r.Out()
	}
	return Check{Name: "git", OK: true, Detail: detail}
}

func check_repo(run execx.Runner, start_dir string) (string, Check) {
	root, err := git.RepoRoot(run, start_dir)
	if err != nil {
		return "", Check{
			Name:   "repository",
			Detail: "not inside a git repository",
			Hint:   "cd into the repository you want to manage",
		}
	}
	return root, Check{Name: "repository", OK: true, Detail: root}
}

func check_config(start_dir, repo_root string) (*config.Config, Check) {
	if repo_root == "" {
		return nil, Check{Name: "config", OK: true, Detail: "skipped (no repository)"}
	}

	cfg, err := config.Load(start_dir, repo_root)
	if err != nil {
		return nil, Check{
			Name:   "config",
			Detail: err.Error(),
			Hint:   "fix " + config.ConfigFilename + " and run tak doctor again",
		}
	}

	detail := "built-in defaults"
	if cfg.ConfigPath != "" {
		detail = cfg.ConfigPath
	}
	return cfg, Check{Name: "config", OK: true, Detail: detail}
}

func check_tool(name, hint string) Check {
	path, err := exec.LookPath(name)
	if err != nil {
		return Check{Name: name, Detail: "not found on PATH", Hint: hint}
	}
	return Check{Name: name, OK: true, Detail: path}
}

// check_setup verifies the first word of the setup command resolves so a
// tak create won't trip over a missing tool after the worktree exists.
func check_setup(cfg *config.Config) Check {
	fields := strings.Fields(cfg.Setup)
	if len(fields) == 0 {
		return Check{Name: "setup", Detail: "setup command is empty", Hint: "set setup in " + config.ConfigFilename}
	}

	bin := fields[0]
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{
			Name:   "setup",
			Detail: fmt.Sprintf("%q not found on PATH", bin),
			Hint:   fmt.Sprintf("install %s or change setup in %s", bin, config.ConfigFilename),
		}
	}
	return Check{Name: "setup", OK: true, Detail: path}
}

func check_trees_dir(cfg *config.Config) Check {
	info, err := os.Stat(cfg.TreesDirAbs)
	if os.IsNotExist(err) {
		return Check{Name: "trees dir", OK: true, Detail: cfg.TreesDirAbs + " (created on first create)"}
	}
	if err != nil {
		return Check{Name: "trees dir", Detail: err.Error()}
	}
	if !info.IsDir() {
		return Check{
			Name:   "trees dir",
			Detail: cfg.TreesDirAbs + " exists but is not a directory",
			Hint:   "move it aside or change trees_dir in " + config.ConfigFilename,
		}
	}

	entries, _ := os.ReadDir(cfg.TreesDirAbs)
	return Check{Name: "trees dir", OK: true, Detail: fmt.Sprintf("%s (%d entries)", cfg.TreesDirAbs, len(entries))}
}

func lsof_hint() string {
	switch runtime.GOOS {
	case "darwin":
		return "lsof ships with macOS; check your PATH"
	case "linux":
		return "install with: sudo apt install lsof (Debian/Ubuntu) or sudo dnf install lsof (Fedora)"
	default:
		return "install lsof and ensure it is on your PATH"
	}
}

func postgres_hint() string {
	switch runtime.GOOS {
	case "darwin":
		return "install with: brew install postgresql"
	case "linux":
		return "install with: sudo apt install postgresql-client (Debian/Ubuntu) or sudo dnf install postgresql (Fedora)"
	default:
		return "install the PostgreSQL client tools"
	}
}

func install_hint(tool string) string {
	switch runtime.GOOS {
	case "darwin":
		return "install with: brew install " + tool
	case "linux":
		return "install with: sudo apt install " + tool + " (Debian/Ubuntu) or sudo dnf install " + tool + " (Fedora)"
	default:
		return "install " + tool + " and ensure it is on your PATH"
	}
}
