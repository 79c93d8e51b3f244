package scheduler_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bubu-hpc/bubu/internal/scheduler"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
}

func TestExecRunner_CapturesOutputAndExitCode(t *testing.T) {
	skipOnWindows(t)
	r := scheduler.NewExecRunner(5*time.Second, zaptest.NewLogger(t).Sugar())

	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2; exit 3"})
	require.NoError(t, err, "a non-zero exit is a result, not an error")
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 3, res.ExitCode)
}

func TestExecRunner_Success(t *testing.T) {
	skipOnWindows(t)
	r := scheduler.NewExecRunner(5*time.Second, nil)

	res, err := r.Run(context.Background(), []string{"sh", "-c", "printf '101;alice;RUNNING;1:00;1:00;1;1G;1'"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	jobs, skipped := scheduler.ParseListing(res.Stdout)
	assert.Empty(t, skipped)
	assert.Len(t, jobs, 1)
}

func TestExecRunner_Timeout(t *testing.T) {
	skipOnWindows(t)
	r := scheduler.NewExecRunner(100*time.Millisecond, zaptest.NewLogger(t).Sugar())

	start := time.Now()
	_, err := r.Run(context.Background(), []string{"sleep", "5"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
	assert.True(t, scheduler.IsTimeout(err))
	assert.False(t, errors.Is(err, scheduler.ErrCommandStart), "a timeout is distinct from a start failure")

	var cmdErr *scheduler.ExternalCommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "sleep 5", cmdErr.Command)
}

func TestExecRunner_StartFailure(t *testing.T) {
	r := scheduler.NewExecRunner(time.Second, nil)

	_, err := r.Run(context.Background(), []string{"bubu-no-such-binary-for-tests"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, scheduler.ErrCommandStart))
	assert.False(t, scheduler.IsTimeout(err))
	assert.Contains(t, errors.FlattenHints(err), "on your PATH")
}

func TestExecRunner_EmptyCommand(t *testing.T) {
	_, err := scheduler.NewExecRunner(time.Second, nil).Run(context.Background(), nil)
	assert.Error(t, err)
}
