package scheduler_test

import (
	"context"

	"github.com/bubu-hpc/bubu/internal/scheduler"
)

// fakeRunner answers every command with the same result and remembers what
// it was asked to run.
type fakeRunner struct {
	result scheduler.Result
	err    error
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, argv []string) (scheduler.Result, error) {
	f.calls = append(f.calls, append([]string(nil), argv...))
	return f.result, f.err
}

func stdout(out string) *fakeRunner {
	return &fakeRunner{result: scheduler.Result{Stdout: out}}
}
