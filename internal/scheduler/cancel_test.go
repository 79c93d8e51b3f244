package scheduler_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bubu-hpc/bubu/internal/scheduler"
)

func known(ids ...string) scheduler.IDSet {
	set := scheduler.IDSet{}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestCanceller_Validation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "empty id", id: "", wantErr: scheduler.ErrEmptyJobID},
		{name: "blank id", id: "   ", wantErr: scheduler.ErrEmptyJobID},
		{name: "unknown id", id: "103", wantErr: scheduler.ErrUnknownJobID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			c := scheduler.NewCanceller(runner, scheduler.MustParseTemplate(scheduler.DefaultCancelCommand))

			err := c.Cancel(context.Background(), tt.id, known("101", "102"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.True(t, scheduler.IsValidation(err))
			assert.Empty(t, runner.calls, "no command may run for an invalid id")
		})
	}
}

func TestCanceller_ExitStatus(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		wantErr  bool
	}{
		{name: "exit 0 succeeds", exitCode: 0},
		{name: "exit 1 fails", exitCode: 1, wantErr: true},
		{name: "exit 255 fails", exitCode: 255, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{result: scheduler.Result{ExitCode: tt.exitCode}}
			c := scheduler.NewCanceller(runner, scheduler.MustParseTemplate(scheduler.DefaultCancelCommand))

			err := c.Cancel(context.Background(), " 101 ", known("101", "102"))
			require.Len(t, runner.calls, 1)
			assert.Equal(t, []string{"scancel", "101"}, runner.calls[0])
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, scheduler.ErrCancelRejected))
			assert.False(t, scheduler.IsValidation(err))
		})
	}
}

func TestCanceller_TemplateWithoutPlaceholderGetsIDAppended(t *testing.T) {
	runner := &fakeRunner{}
	c := scheduler.NewCanceller(runner, scheduler.MustParseTemplate("scancel --signal=TERM"))

	require.NoError(t, c.Cancel(context.Background(), "101", known("101")))
	assert.Equal(t, []string{"scancel", "--signal=TERM", "101"}, runner.calls[0])
}

func TestCanceller_RunnerErrorPropagates(t *testing.T) {
	runErr := &scheduler.ExternalCommandError{Command: "scancel 101", ExitCode: -1, Err: scheduler.ErrCommandStart}
	c := scheduler.NewCanceller(&fakeRunner{err: runErr}, scheduler.MustParseTemplate(scheduler.DefaultCancelCommand))

	err := c.Cancel(context.Background(), "101", known("101"))
	assert.True(t, errors.Is(err, scheduler.ErrCommandStart))
}
