package scheduler_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bubu-hpc/bubu/internal/scheduler"
)

func TestRequest_Args(t *testing.T) {
	tests := []struct {
		name string
		req  scheduler.Request
		want []string
	}{
		{
			name: "without email",
			req:  scheduler.Request{CPUs: 4, MemoryGB: 32, Hours: 2, Minutes: 4, Script: "run.sh"},
			want: []string{"--cpus-per-task=4", "--mem=32G", "--time=2:04:00", "run.sh"},
		},
		{
			name: "with email",
			req:  scheduler.Request{CPUs: 1, MemoryGB: 4, Hours: 30, Minutes: 0, Email: "a@b.org", Script: "/home/a/job.sh"},
			want: []string{"--cpus-per-task=1", "--mem=4G", "--time=30:00:00", "--mail-user=a@b.org", "--mail-type=ALL", "/home/a/job.sh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Args())
		})
	}
}

func TestSubmitter_Submit(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		wantID string
	}{
		{name: "plain id", stdout: "32760913\n", wantID: "32760913"},
		{name: "id with cluster", stdout: "32760913;cedar\n", wantID: "32760913"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := stdout(tt.stdout)
			s := scheduler.NewSubmitter(runner, scheduler.MustParseTemplate(scheduler.DefaultSubmitCommand))

			id, err := s.Submit(context.Background(), scheduler.Request{CPUs: 4, MemoryGB: 32, Hours: 2, Minutes: 4, Script: "run.sh"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			require.Len(t, runner.calls, 1)
			assert.Equal(t, []string{"sbatch", "--parsable", "--cpus-per-task=4", "--mem=32G", "--time=2:04:00", "run.sh"}, runner.calls[0])
		})
	}
}

func TestSubmitter_Failures(t *testing.T) {
	req := scheduler.Request{CPUs: 4, MemoryGB: 32, Hours: 2, Script: "run.sh"}

	t.Run("rejected", func(t *testing.T) {
		runner := &fakeRunner{result: scheduler.Result{ExitCode: 1, Stderr: "sbatch: error: Batch job submission failed: Invalid account\n"}}
		s := scheduler.NewSubmitter(runner, scheduler.MustParseTemplate(scheduler.DefaultSubmitCommand))
		_, err := s.Submit(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, scheduler.ErrCommandFailed))
		assert.Contains(t, err.Error(), "Invalid account")
	})

	t.Run("no id printed", func(t *testing.T) {
		s := scheduler.NewSubmitter(stdout("\n"), scheduler.MustParseTemplate(scheduler.DefaultSubmitCommand))
		_, err := s.Submit(context.Background(), req)
		assert.ErrorContains(t, err, "printed no job id")
	})

	t.Run("missing script", func(t *testing.T) {
		runner := &fakeRunner{}
		s := scheduler.NewSubmitter(runner, scheduler.MustParseTemplate(scheduler.DefaultSubmitCommand))
		_, err := s.Submit(context.Background(), scheduler.Request{CPUs: 1})
		assert.Error(t, err)
		assert.Empty(t, runner.calls)
	})
}
