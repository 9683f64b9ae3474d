package db

import (
	"strings"
	"testing"

	"github.com/gurisko/tak/internal/execx"
)

func TestCreateInvokesCreatedb(t *testing.T) {
	var call string
	run := execx.RunnerFunc(func(dir, name string, args ...string) execx.Result {
		call = name + " " + strings.Join(args, " ")
		return execx.Result{}
	})
	if err := Create(run, "shop_dev_aldrin"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if call != "createdb shop_dev_aldrin" {
		t.Errorf("expected createdb invocation, got %q", call)
	}
}

func TestDropSurfacesMissingDatabase(t *testing.T) {
	run := execx.RunnerFunc(func(dir, name string, args ...string) execx.Result {
		return execx.Result{Code: 1, Stderr: `dropdb: error: database "shop_dev_aldrin" does not exist`}
	})
	err := Drop(run, "shop_dev_aldrin")
	if err == nil {
		t.Fatal("expected error for missing database")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("expected dropdb's message, got %q", err.Error())
	}
}
