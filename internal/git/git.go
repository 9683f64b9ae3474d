// Package git wraps the git invocations tak needs. Every call goes through
// the execx runner so tests can fake git entirely.
package git

import (
	"fmt"
	"strings"

	"github.com/gurisko/tak/internal/execx"
)

// WorktreeInfo is one block of `git worktree list --porcelain` output.
type WorktreeInfo struct {
	Path     string
	Branch   string // short branch name, "" when detached or bare
	Detached bool
}

// RepoRoot returns the toplevel directory of the repository containing dir.
func RepoRoot(run execx.Runner, dir string) (string, error) {
	r := run.Run(dir, "git", "rev-parse", "--show-toplevel")
	if !r.Ok() {
		return "", fmt.Errorf("not inside a git repository: %s", r.Failure())
	}
	return r.Out(), nil
}

// Worktrees lists every worktree of the repository rooted at root, the main
// checkout first (git's own ordering).
func Worktrees(run execx.Runner, root string) ([]WorktreeInfo, error) {
	r := run.Run(root, "git", "worktree", "list", "--porcelain")
	if !r.Ok() {
		return nil, fmt.Errorf("failed to list worktrees: %s", r.Failure())
	}
	return parse_worktree_list(r.Stdout), nil
}

// parse_worktree_list splits porcelain output into blank-line delimited
// blocks, one per worktree, and keeps the fields tak cares about.
func parse_worktree_list(out string) []WorktreeInfo {
	var (
		infos []WorktreeInfo
		cur   *WorktreeInfo
	)
	flush := func() {
		if cur != nil && cur.Path != "" {
			infos = append(infos, *cur)
		}
		cur = nil
	}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if cur == nil {
			cur = &WorktreeInfo{}
		}
		switch {
		case strings.HasPrefix(line, "worktree "):
			cur.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "branch "):
			cur.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "detached":
			cur.Detached = true
		}
	}
	flush()
	return infos
}

// BranchExists reports whether a local branch exists.
func BranchExists(run execx.Runner, root string, branch string) bool {
	return run.Run(root, "git", "rev-parse", "--verify", "--quiet", "refs/heads/"+branch).Ok()
}

// AddWorktree checks out branch into a new worktree at path, creating the
// branch when it does not exist yet.
func AddWorktree(run execx.Runner, root string, path string, branch string) error {
	var r execx.Result
	if BranchExists(run, root, branch) {
		r = run.Run(root, "git", "worktree", "add", path, branch)
	} else {
		r = run.Run(root, "git", "worktree", "add", "-b", branch, path)
	}
	if !r.Ok() {
		return fmt.Errorf("failed to add worktree: %s", r.Failure())
	}
	return nil
}

// RemoveWorktree removes the worktree at path. Without force, git refuses
// when the tree holds uncommitted or untracked work; the refusal text is
// passed through for the caller to surface.
func RemoveWorktree(run execx.Runner, root string, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	if r := run.Run(root, "git", args...); !r.Ok() {
		return fmt.Errorf("%s", r.Failure())
	}
	return nil
}

// PruneWorktrees drops stale worktree records once a directory is gone.
func PruneWorktrees(run execx.Runner, root string) error {
	if r := run.Run(root, "git", "worktree", "prune"); !r.Ok() {
		return fmt.Errorf("failed to prune worktrees: %s", r.Failure())
	}
	return nil
}

// DeleteBranch deletes a local branch; force switches -d to -D so unmerged
// work can be dropped.
func DeleteBranch(run execx.Runner, root string, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if r := run.Run(root, "git", "branch", flag, branch); !r.Ok() {
		return fmt.Errorf("failed to delete branch %s: %s", branch, r.Failure())
	}
	return nil
}
