// Package config loads the .tak.yml project configuration.
//
// Every setting has a built-in default so tak works in a plain Phoenix repo
// with no config file at all. The loaded Config is built once at process
// start and passed explicitly to everything that needs it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const ConfigFilename = ".tak.yml"

// DefaultNames is the reserved slot list. Order matters: it fixes each
// slot's port (base_port + (index+1)*10).
var DefaultNames = []string{"armstrong", "aldrin", "collins", "lovell", "shepard", "glenn"}

const (
	DefaultBasePort = 4000
	DefaultSetup    = "mix deps.get"
)

// Config is the full tak configuration for one host project.
type Config struct {
	App      string   `yaml:"app"`
	Names    []string `yaml:"names"`
	BasePort int      `yaml:"base_port"`
	TreesDir string   `yaml:"trees_dir"`
	CreateDB bool     `yaml:"create_db"`
	Setup    string   `yaml:"setup"`

	// Resolved by Load, not read from YAML.
	RepoRoot    string `yaml:"-"`
	ConfigPath  string `yaml:"-"`
	TreesDirAbs string `yaml:"-"`
}

// ── Finding the config ──────────────────────────────────────────────────

// FindConfig walks upward from start_dir looking for .tak.yml (or .tak.yaml).
// Returns the config path, or "" if no parent directory has one.
func FindConfig(start_dir string) string {
	dir, err := filepath.Abs(start_dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range []string{ConfigFilename, ".tak.yaml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // hit filesystem root
		}
		dir = parent
	}

	return ""
}

// ── Loading the config ──────────────────────────────────────────────────

// Load builds the effective configuration: built-in defaults, overridden by
// the first .tak.yml found walking up from start_dir (if any), with derived
// values and paths resolved against repo_root.
func Load(start_dir string, repo_root string) (*Config, error) {
	cfg := defaults()
	cfg.RepoRoot = repo_root

	if config_path := FindConfig(start_dir); config_path != "" {
		data, err := os.ReadFile(config_path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", config_path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", config_path, err)
		}
		cfg.ConfigPath = config_path
	}

	cfg.applyDefaults()
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults returns a Config pre-seeded with every static default, so that a
// partial .tak.yml only overrides the keys it mentions.
func defaults() *Config {
	names := make([]string, len(DefaultNames))
	copy(names, DefaultNames)
	return &Config{
		Names:    names,
		BasePort: DefaultBasePort,
		CreateDB: true,
		Setup:    DefaultSetup,
	}
}

// applyDefaults fills in values derived from the repo that can't be static.
func (c *Config) applyDefaults() {
	if c.App == "" && c.RepoRoot != "" {
		c.App = SanitizeName(filepath.Base(c.RepoRoot))
	}
	if c.TreesDir == "" {
		c.TreesDir = fmt.Sprintf("../%s-trees", c.App)
	}
}

// resolvePaths converts the trees dir to an absolute path anchored at the
// repo root.
func (c *Config) resolvePaths() {
	c.TreesDirAbs = resolve_path(c.RepoRoot, expand_tilde(c.TreesDir))
}

// Validate rejects configurations the commands cannot safely run with.
func (c *Config) Validate() error {
	if c.App == "" {
		return fmt.Errorf("%s: \"app\" is required when run outside a repository", ConfigFilename)
	}
	if len(c.Names) == 0 {
		return fmt.Errorf("%s: \"names\" must list at least one slot name", ConfigFilename)
	}
	seen := make(map[string]bool, len(c.Names))
	for _, name := range c.Names {
		if name == "" {
			return fmt.Errorf("%s: empty slot name in \"names\"", ConfigFilename)
		}
		if strings.ContainsAny(name, "/\\ \t") {
			return fmt.Errorf("%s: slot name %q must not contain spaces or path separators", ConfigFilename, name)
		}
		if name == "." || name == ".." {
			return fmt.Errorf("%s: slot name %q must be a plain directory name", ConfigFilename, name)
		}
		if seen[name] {
			return fmt.Errorf("%s: duplicate slot name %q", ConfigFilename, name)
		}
		seen[name] = true
	}
	if c.BasePort < 1 || c.BasePort+len(c.Names)*10 > 65535 {
		return fmt.Errorf("%s: base_port %d leaves no room for %d slots", ConfigFilename, c.BasePort, len(c.Names))
	}
	if strings.TrimSpace(c.Setup) == "" {
		return fmt.Errorf("%s: \"setup\" must not be blank (omit it for the default)", ConfigFilename)
	}
	return nil
}

// ── Derived value helpers ───────────────────────────────────────────────

// SlotPath returns the worktree directory for a slot name.
func (c *Config) SlotPath(name string) string {
	return filepath.Join(c.TreesDirAbs, name)
}

// SanitizeName lowercases s and squashes anything outside [a-z0-9_] to an
// underscore, producing a string safe for database and app identifiers.
func SanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, s)
}

// ── Utilities ───────────────────────────────────────────────────────────

func resolve_path(base string, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(base, rel)
}

func expand_tilde(p string) string {
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[2:])
	}
	return p
}
