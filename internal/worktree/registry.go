// Package worktree resolves tak's slot names to ports, databases, and git
// worktree state. Nothing is cached: every question is answered from the
// filesystem, git, and lsof at call time.
package worktree

import (
	"fmt"
	"os"

	"github.com/gurisko/tak/internal/config"
	"github.com/gurisko/tak/internal/execx"
	"github.com/gurisko/tak/internal/ports"
)

// Registry answers every slot question the commands have. It holds no
// state beyond the configuration and the runner it shells out through.
type Registry struct {
	cfg *config.Config
	run execx.Runner
}

func NewRegistry(cfg *config.Config, run execx.Runner) *Registry {
	return &Registry{cfg: cfg, run: run}
}

// ResolvePort returns the fixed port for a configured slot name: the list
// is the authority, base_port + (index+1)*10. 0 when the name is not
// configured.
func (r *Registry) ResolvePort(name string) int {
	for i, n := range r.cfg.Names {
		if n == name {
			return r.cfg.BasePort + (i+1)*10
		}
	}
	return 0
}

// DatabaseFor returns the slot's database name: {app}_dev_{name}.
func (r *Registry) DatabaseFor(name string) string {
	return fmt.Sprintf("%s_dev_%s", r.cfg.App, config.SanitizeName(name))
}

// MainDatabase is the main checkout's conventional dev database.
func (r *Registry) MainDatabase() string {
	return fmt.Sprintf("%s_dev", r.cfg.App)
}

// SlotPath returns the directory a slot's worktree lives at.
func (r *Registry) SlotPath(name string) string {
	return r.cfg.SlotPath(name)
}

// Occupied reports whether the slot currently has a worktree directory.
func (r *Registry) Occupied(name string) bool {
	return dir_exists(r.SlotPath(name))
}

// PickFreeSlot returns the first configured name with no worktree
// directory, strictly in list order.
func (r *Registry) PickFreeSlot() (string, error) {
	for _, name := range r.cfg.Names {
		if !r.Occupied(name) {
			return name, nil
		}
	}
	return "", ErrAllSlotsOccupied
}

// SelectSlot validates a requested name, or picks the first free one when
// the request is empty. This runs before any mutation so create can abort
// without side effects.
func (r *Registry) SelectSlot(requested string) (string, error) {
	if requested == "" {
		return r.PickFreeSlot()
	}
	if r.ResolvePort(requested) == 0 {
		return "", &InvalidNameError{Name: requested, Valid: r.cfg.Names}
	}
	if r.Occupied(requested) {
		return "", &SlotOccupiedError{Name: requested, Path: r.SlotPath(requested)}
	}
	return requested, nil
}

// OccupiedNames returns the configured names that currently have a tree.
func (r *Registry) OccupiedNames() []string {
	var names []string
	for _, name := range r.cfg.Names {
		if r.Occupied(name) {
			names = append(names, name)
		}
	}
	return names
}

// FreeNames returns the configured names with no tree, in list order.
func (r *Registry) FreeNames() []string {
	var names []string
	for _, name := range r.cfg.Names {
		if !r.Occupied(name) {
			names = append(names, name)
		}
	}
	return names
}

// PortInUse reports whether the port is bound right now.
func (r *Registry) PortInUse(port int) bool { return ports.InUse(r.run, port) }

// PidOnPort returns the owning pid, 0 when the port is free.
func (r *Registry) PidOnPort(port int) int { return ports.PidOn(r.run, port) }

// KillPort unconditionally kills the port's owner; a free port is a no-op.
func (r *Registry) KillPort(port int) error { return ports.Kill(r.run, port) }

// Snapshot returns the main checkout plus one row per occupied slot. Each
// row is resolved independently; an unresolvable field degrades ("unknown"
// branch, zero port) instead of failing the listing.
func (r *Registry) Snapshot() []Slot {
	rows := []Slot{r.main_row()}
	for _, name := range r.cfg.Names {
		if !r.Occupied(name) {
			continue
		}
		rows = append(rows, r.slot_row(name))
	}
	return rows
}

func (r *Registry) slot_row(name string) Slot {
	path := r.SlotPath(name)
	port := r.ResolvePort(name)
	s := Slot{
		Name:     name,
		Path:     path,
		Branch:   r.ReadBranchFromWorktree(path),
		Port:     port,
		Database: r.DatabaseFor(name),
		Managed:  r.HasDatabaseConfig(path),
	}
	if port > 0 {
		s.Pid = ports.PidOn(r.run, port)
		s.Running = s.Pid != 0
	}
	return s
}

func (r *Registry) main_row() Slot {
	root := r.cfg.RepoRoot
	s := Slot{
		Name:     "main",
		Path:     root,
		Branch:   r.ReadBranchFromWorktree(root),
		Port:     r.ReadPortFromWorktree(root),
		Database: r.MainDatabase(),
		Main:     true,
	}
	if s.Port > 0 {
		s.Pid = ports.PidOn(r.run, s.Port)
		s.Running = s.Pid != 0
	}
	return s
}

func dir_exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
