// Package execx runs external commands behind a narrow Runner interface so
// tests can substitute a fake instead of invoking real git/lsof/db tools.
package execx

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Result is the captured outcome of one subprocess invocation.
type Result struct {
	Stdout string
	Stderr string
	Code   int
	Err    error // start failure (binary missing etc), nil on a normal exit
}

// Ok reports whether the command started and exited zero.
func (r Result) Ok() bool { return r.Err == nil && r.Code == 0 }

// Out returns stdout with surrounding whitespace trimmed.
func (r Result) Out() string { return strings.TrimSpace(r.Stdout) }

// Failure returns the most useful failure text: stderr if present, the start
// error otherwise, the exit code as a last resort.
func (r Result) Failure() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return fmt.Sprintf("exit status %d", r.Code)
}

// Runner executes name with args in dir ("" means inherit the current
// directory) and blocks until the program exits.
type Runner interface {
	Run(dir, name string, args ...string) Result
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(dir, name string, args ...string) Result

func (f RunnerFunc) Run(dir, name string, args ...string) Result {
	return f(dir, name, args...)
}

// System is the real Runner backed by os/exec.
type System struct{}

func New() System { return System{} }

func (System) Run(dir, name string, args ...string) Result {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	switch e := err.(type) {
	case nil:
	case *exec.ExitError:
		res.Code = e.ExitCode()
	default:
		res.Code = -1
		res.Err = err
	}
	log.Debug("exec", "cmd", name+" "+strings.Join(args, " "), "dir", dir, "code", res.Code)
	return res
}
