package worktree

import (
	"errors"
	"fmt"
	"strings"
)

// Slot is one row of tak's world: a reserved name plus whatever the
// filesystem, git, and lsof say about it right now. Computed fresh on every
// command, never persisted.
type Slot struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Branch   string `json:"branch"`
	Port     int    `json:"port,omitempty"`
	Database string `json:"database,omitempty"`
	Running  bool   `json:"running"`
	Pid      int    `json:"pid,omitempty"`
	Managed  bool   `json:"managed_db"`
	Main     bool   `json:"main,omitempty"`
}

// ErrAllSlotsOccupied means every configured name already has a worktree.
var ErrAllSlotsOccupied = errors.New("all slots are occupied")

// InvalidNameError rejects a slot name outside the configured list.
type InvalidNameError struct {
	Name  string
	Valid []string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("%q is not a configured slot name (valid: %s)", e.Name, strings.Join(e.Valid, ", "))
}

// SlotOccupiedError rejects creating into a slot that already has a tree.
type SlotOccupiedError struct {
	Name string
	Path string
}

func (e *SlotOccupiedError) Error() string {
	return fmt.Sprintf("slot %q already has a worktree at %s", e.Name, e.Path)
}
