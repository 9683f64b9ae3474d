// Package ports answers "who owns this TCP port" through lsof and kill.
package ports

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gurisko/tak/internal/execx"
)

// InUse reports whether some process has port bound.
func InUse(run execx.Runner, port int) bool {
	return PidOn(run, port) != 0
}

// PidOn returns the pid bound to port, or 0 when the port is free or lsof
// is unavailable. With several owners (pre-fork servers) the first pid wins.
func PidOn(run execx.Runner, port int) int {
	r := run.Run("", "lsof", "-ti", fmt.Sprintf("tcp:%d", port))
	if !r.Ok() {
		return 0 // lsof exits nonzero when nothing matches
	}
	line, _, _ := strings.Cut(r.Out(), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0
	}
	return pid
}

// Kill terminates whatever owns port with an unconditional KILL signal.
// A free port is a successful no-op.
func Kill(run execx.Runner, port int) error {
	pid := PidOn(run, port)
	if pid == 0 {
		return nil
	}
	if r := run.Run("", "kill", "-9", strconv.Itoa(pid)); !r.Ok() {
		return fmt.Errorf("failed to kill pid %d on port %d: %s", pid, port, r.Failure())
	}
	return nil
}
