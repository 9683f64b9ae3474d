package db

import (
	"fmt"

	"github.com/gurisko/tak/internal/execx"
)

// Create makes a database through createdb. Callers treat failures
// (database exists, server down) as best-effort and report them.
func Create(run execx.Runner, name string) error {
	if r := run.Run("", "createdb", name); !r.Ok() {
		return fmt.Errorf("failed to create database %s: %s", name, r.Failure())
	}
	return nil
}

// Drop removes a database through dropdb. A missing database comes back as
// an error on purpose so the caller can report it.
func Drop(run execx.Runner, name string) error {
	if r := run.Run("", "dropdb", name); !r.Ok() {
		return fmt.Errorf("failed to drop database %s: %s", name, r.Failure())
	}
	return nil
}
