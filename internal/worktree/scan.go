package worktree

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/gurisko/tak/internal/git"
)

// The three places a worktree's port can live, newest format first: the
// per-environment config tak writes today, the .tak.toml session file older
// releases wrote, and the original dotenv convention.
const (
	DevConfigRel  = "config/dev.exs"
	LegacyTomlRel = ".tak.toml"
	LegacyEnvRel  = ".env"
)

var (
	http_port_re   = regexp.MustCompile(`http:\s*\[[^\]]*?port:\s*(\d+)`)
	toml_port_re   = regexp.MustCompile(`(?m)^\s*PORT\s*=\s*"(\d+)"`)
	dotenv_port_re = regexp.MustCompile(`(?m)^PORT=(\d+)`)
)

// ReadPortFromWorktree extracts the port a worktree was provisioned with.
// First match wins across the three sources; 0 when none has one. This is
// text extraction, not parsing: partial or malformed files simply fall
// through to the next source.
func (r *Registry) ReadPortFromWorktree(path string) int {
	sources := []struct {
		rel string
		re  *regexp.Regexp
	}{
		{DevConfigRel, http_port_re},
		{LegacyTomlRel, toml_port_re},
		{LegacyEnvRel, dotenv_port_re},
	}
	for _, src := range sources {
		data, err := os.ReadFile(filepath.Join(path, src.rel))
		if err != nil {
			continue
		}
		if m := src.re.FindSubmatch(data); m != nil {
			if port, err := strconv.Atoi(string(m[1])); err == nil {
				return port
			}
		}
	}
	return 0
}

// ReadBranchFromWorktree asks git which branch a worktree has checked out.
// The porcelain listing reports absolute paths, so the match runs on
// canonical paths. "unknown" on any failure.
func (r *Registry) ReadBranchFromWorktree(path string) string {
	infos, err := git.Worktrees(r.run, r.cfg.RepoRoot)
	if err != nil {
		return "unknown"
	}
	want := canonical_path(path)
	for _, info := range infos {
		if canonical_path(info.Path) == want {
			if info.Branch == "" {
				return "unknown"
			}
			return info.Branch
		}
	}
	return "unknown"
}

// canonical_path makes paths comparable: absolute, with symlinks resolved
// when the path exists (macOS tmp dirs live behind /private).
func canonical_path(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
