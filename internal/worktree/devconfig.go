package worktree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManagedMarker opens every config block tak appends. Its presence is how
// later commands tell a tak-managed database from a hand-written one.
const ManagedMarker = "# tak:managed"

// HasDatabaseConfig reports whether tak previously appended a managed
// database block to the worktree's dev config. All three markers must be
// present together: a port-only managed block or a hand-written Repo block
// does not count, so remove never drops a database tak did not create.
func (r *Registry) HasDatabaseConfig(path string) bool {
	data, err := os.ReadFile(filepath.Join(path, DevConfigRel))
	if err != nil {
		return false
	}
	content := string(data)
	return strings.Contains(content, ManagedMarker) &&
		strings.Contains(content, ".Repo,") &&
		strings.Contains(content, "database:")
}

// AppendManagedConfig appends the managed block to the worktree's dev
// config: the endpoint port, plus the Repo database section when database
// is non-empty. The file is created if the checkout doesn't have one.
func (r *Registry) AppendManagedConfig(path string, port int, database string) error {
	cfg_path := filepath.Join(path, DevConfigRel)
	if err := os.MkdirAll(filepath.Dir(cfg_path), 0755); err != nil {
		return fmt.Errorf("failed to prepare %s: %w", filepath.Dir(cfg_path), err)
	}
	f, err := os.OpenFile(cfg_path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", cfg_path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(r.render_managed_block(port, database)); err != nil {
		return fmt.Errorf("failed to append managed config: %w", err)
	}
	return nil
}

func (r *Registry) render_managed_block(port int, database string) string {
	app := r.cfg.App
	mod := elixir_module(app)
	var b strings.Builder
	b.WriteString("\n" + ManagedMarker + "\n")
	fmt.Fprintf(&b, "config :%s, %sWeb.Endpoint,\n  http: [ip: {127, 0, 0, 1}, port: %d]\n", app, mod, port)
	if database != "" {
		fmt.Fprintf(&b, "\nconfig :%s, %s.Repo,\n  database: %q\n", app, mod, database)
	}
	return b.String()
}

// elixir_module camelizes a snake_case app name: my_app -> MyApp.
func elixir_module(app string) string {
	var b strings.Builder
	for _, part := range strings.Split(app, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
