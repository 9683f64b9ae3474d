package doctor

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gurisko/tak/internal/config"
	"github.com/gurisko/tak/internal/execx"
)

func find_check(t *testing.T, checks []Check, name string) Check {
	t.Helper()
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no check named %q in %+v", name, checks)
	return Check{}
}

func TestCheckToolCrossChecksPath(t *testing.T) {
	// git may or may not be installed; the check must agree with LookPath
	c := check_tool("git", "install git")
	if _, err := exec.LookPath("git"); err != nil {
		if c.OK {
			t.Errorf("Expected failed check when git is missing, got %+v", c)
		}
	} else {
		if !c.OK {
			t.Errorf("Expected passing check when git is present, got %+v", c)
		}
	}
}

func TestCheckToolMissingBinary(t *testing.T) {
	c := check_tool("tak-no-such-binary", "install it")
	if c.OK {
		t.Errorf("Expected failed check for missing binary, got %+v", c)
	}
	if c.Hint != "install it" {
		t.Errorf("Expected hint to pass through, got %q", c.Hint)
	}
}

func TestRunChecksOutsideRepository(t *testing.T) {
	run := execx.RunnerFunc(func(dir, name string, args ...string) execx.Result {
		return execx.Result{Stderr: "fatal: not a git repository", Code: 128}
	})

	checks := RunChecks(run, t.TempDir())

	repo := find_check(t, checks, "repository")
	if repo.OK {
		t.Errorf("Expected repository check to fail outside a repo, got %+v", repo)
	}
	if repo.Hint == "" {
		t.Errorf("Expected a hint on the failed repository check")
	}

	cfg := find_check(t, checks, "config")
	if !cfg.OK || !strings.Contains(cfg.Detail, "skipped") {
		t.Errorf("Expected config check to be skipped without a repo, got %+v", cfg)
	}
}

func TestDropdbCheckedWithoutCreateDB(t *testing.T) {
	dir := t.TempDir()
	conf := "app: myapp\ncreate_db: false\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFilename), []byte(conf), 0644); err != nil {
		t.Fatal(err)
	}
	run := execx.RunnerFunc(func(d, name string, args ...string) execx.Result {
		return execx.Result{Stdout: dir + "\n"}
	})

	checks := RunChecks(run, dir)

	createdb := find_check(t, checks, "createdb")
	if !createdb.OK || !strings.Contains(createdb.Detail, "not needed") {
		t.Errorf("Expected createdb to be waved through with create_db: false, got %+v", createdb)
	}

	// dropdb runs on remove for tak-managed worktrees regardless of create_db,
	// so it must stay a real PATH check
	dropdb := find_check(t, checks, "dropdb")
	if _, err := exec.LookPath("dropdb"); err != nil {
		if dropdb.OK {
			t.Errorf("Expected failed dropdb check when the binary is missing, got %+v", dropdb)
		}
	} else if !dropdb.OK {
		t.Errorf("Expected passing dropdb check when the binary is present, got %+v", dropdb)
	}
}

func TestCheckConfigReportsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	bad := "app: myapp\nnames:\n  - a\n  - a\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFilename), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, c := check_config(dir, dir)
	if cfg != nil {
		t.Errorf("Expected nil config for invalid file, got %+v", cfg)
	}
	if c.OK {
		t.Errorf("Expected failed config check, got %+v", c)
	}
	if !strings.Contains(c.Hint, config.ConfigFilename) {
		t.Errorf("Expected hint to name the config file, got %q", c.Hint)
	}
}

func TestCheckConfigDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, c := check_config(dir, dir)
	if cfg == nil {
		t.Fatalf("Expected defaults to load without a config file")
	}
	if !c.OK || c.Detail != "built-in defaults" {
		t.Errorf("Expected passing defaults check, got %+v", c)
	}
}

func TestCheckTreesDir(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{TreesDirAbs: filepath.Join(dir, "missing-trees")}
	if c := check_trees_dir(cfg); !c.OK || !strings.Contains(c.Detail, "created on first create") {
		t.Errorf("Expected missing trees dir to pass with a note, got %+v", c)
	}

	file_path := filepath.Join(dir, "trees-file")
	if err := os.WriteFile(file_path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg = &config.Config{TreesDirAbs: file_path}
	if c := check_trees_dir(cfg); c.OK {
		t.Errorf("Expected failed check when trees dir is a file, got %+v", c)
	}

	trees := filepath.Join(dir, "trees")
	if err := os.MkdirAll(filepath.Join(trees, "armstrong"), 0755); err != nil {
		t.Fatal(err)
	}
	cfg = &config.Config{TreesDirAbs: trees}
	if c := check_trees_dir(cfg); !c.OK || !strings.Contains(c.Detail, "1 entries") {
		t.Errorf("Expected entry count in detail, got %+v", c)
	}
}

func TestCheckSetup(t *testing.T) {
	cfg := &config.Config{Setup: "tak-no-such-binary deps.get"}
	if c := check_setup(cfg); c.OK || !strings.Contains(c.Hint, "install tak-no-such-binary") {
		t.Errorf("Expected failed setup check with install hint, got %+v", c)
	}

	cfg = &config.Config{Setup: "sh -c true"}
	if c := check_setup(cfg); !c.OK {
		t.Errorf("Expected sh to resolve on PATH, got %+v", c)
	}
}
