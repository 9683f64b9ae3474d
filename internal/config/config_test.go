package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write_config(t *testing.T, dir string, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFilename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	parent := t.TempDir()
	repo := filepath.Join(parent, "phoenix_app")
	if err := os.MkdirAll(repo, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, err := Load(repo, repo)
	if err != nil {
		t.Fatalf("expected defaults to load, got error: %v", err)
	}
	if cfg.App != "phoenix_app" {
		t.Errorf("expected app %q, got %q", "phoenix_app", cfg.App)
	}
	if len(cfg.Names) != len(DefaultNames) {
		t.Fatalf("expected %d default names, got %d", len(DefaultNames), len(cfg.Names))
	}
	if cfg.Names[0] != "armstrong" || cfg.Names[5] != "glenn" {
		t.Errorf("expected default name order armstrong..glenn, got %v", cfg.Names)
	}
	if cfg.BasePort != 4000 {
		t.Errorf("expected base port 4000, got %d", cfg.BasePort)
	}
	if !cfg.CreateDB {
		t.Error("expected create_db to default to true")
	}
	if cfg.Setup != DefaultSetup {
		t.Errorf("expected setup %q, got %q", DefaultSetup, cfg.Setup)
	}
	want_trees := filepath.Join(parent, "phoenix_app-trees")
	if cfg.TreesDirAbs != want_trees {
		t.Errorf("expected trees dir %q, got %q", want_trees, cfg.TreesDirAbs)
	}
	if cfg.ConfigPath != "" {
		t.Errorf("expected no config path, got %q", cfg.ConfigPath)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	repo := t.TempDir()
	write_config(t, repo, `
app: shop
names: [alpha, beta]
base_port: 5000
trees_dir: worktrees
create_db: false
setup: make deps
`)

	cfg, err := Load(repo, repo)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App != "shop" {
		t.Errorf("expected app shop, got %q", cfg.App)
	}
	if len(cfg.Names) != 2 || cfg.Names[0] != "alpha" || cfg.Names[1] != "beta" {
		t.Errorf("expected names [alpha beta], got %v", cfg.Names)
	}
	if cfg.BasePort != 5000 {
		t.Errorf("expected base port 5000, got %d", cfg.BasePort)
	}
	if cfg.CreateDB {
		t.Error("expected create_db false from config")
	}
	if cfg.Setup != "make deps" {
		t.Errorf("expected setup %q, got %q", "make deps", cfg.Setup)
	}
	want_trees := filepath.Join(repo, "worktrees")
	if cfg.TreesDirAbs != want_trees {
		t.Errorf("expected trees dir %q, got %q", want_trees, cfg.TreesDirAbs)
	}
	if cfg.ConfigPath == "" {
		t.Error("expected config path to be recorded")
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	repo := t.TempDir()
	write_config(t, repo, "base_port: 6000\n")

	cfg, err := Load(repo, repo)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BasePort != 6000 {
		t.Errorf("expected base port 6000, got %d", cfg.BasePort)
	}
	if len(cfg.Names) != len(DefaultNames) {
		t.Errorf("expected default names to survive partial config, got %v", cfg.Names)
	}
	if !cfg.CreateDB {
		t.Error("expected create_db default true to survive partial config")
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := write_config(t, root, "app: deep\n")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got := FindConfig(nested)
	if got != want {
		t.Errorf("expected config at %q, got %q", want, got)
	}
}

func TestLoadRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"duplicate names", "names: [a, b, a]\n", "duplicate"},
		{"empty name list", "names: []\napp: x\n", "at least one"},
		{"name with space", "names: [\"a b\"]\n", "spaces"},
		{"dot name", "names: [\".\"]\n", "plain directory name"},
		{"dotdot name", "names: [\"..\"]\n", "plain directory name"},
		{"port overflow", "base_port: 65530\n", "no room"},
		{"blank setup", "setup: \"  \"\n", "blank"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := t.TempDir()
			write_config(t, repo, tc.yaml)
			_, err := Load(repo, repo)
			if err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error to mention %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	repo := t.TempDir()
	write_config(t, repo, "names: [unclosed\n")
	_, err := Load(repo, repo)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"My-App.2":    "my_app_2",
		"shop":        "shop",
		"Shop Star":   "shop_star",
		"under_score": "under_score",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestSlotPath(t *testing.T) {
	cfg := &Config{TreesDirAbs: filepath.Join("/work", "app-trees")}
	want := filepath.Join("/work", "app-trees", "lovell")
	if got := cfg.SlotPath("lovell"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
