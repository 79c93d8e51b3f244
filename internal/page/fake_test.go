package page

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bubu-hpc/bubu/internal/config"
	"github.com/bubu-hpc/bubu/internal/nav"
	"github.com/bubu-hpc/bubu/internal/scheduler"
	"github.com/bubu-hpc/bubu/internal/ui"
)

// slurm plays squeue, scancel and sbatch. Every squeue call returns the
// next listing; the last one repeats.
type slurm struct {
	listings []string
	listErr  error
	cancel   scheduler.Result
	submit   scheduler.Result
	calls    [][]string
}

func (f *slurm) Run(_ context.Context, argv []string) (scheduler.Result, error) {
	f.calls = append(f.calls, argv)
	switch argv[0] {
	case "squeue":
		if f.listErr != nil {
			return scheduler.Result{}, f.listErr
		}
		out := ""
		if len(f.listings) > 0 {
			out = f.listings[0]
			if len(f.listings) > 1 {
				f.listings = f.listings[1:]
			}
		}
		return scheduler.Result{Stdout: out}, nil
	case "scancel":
		return f.cancel, nil
	default:
		return f.submit, nil
	}
}

func (f *slurm) count(program string) int {
	n := 0
	for _, call := range f.calls {
		if call[0] == program {
			n++
		}
	}
	return n
}

func (f *slurm) last(program string) []string {
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i][0] == program {
			return f.calls[i]
		}
	}
	return nil
}

func listing(ids ...string) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id + ";alice;RUNNING;1:00;1:00:00;1;4G;4\n")
	}
	return b.String()
}

func newClient(t *testing.T, f *slurm) *scheduler.Client {
	t.Helper()
	client, err := scheduler.NewClient(f, scheduler.DefaultCommands(), "alice")
	require.NoError(t, err)
	return client
}

func newSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(config.Environment{}, ui.NewStyles(), zaptest.NewLogger(t).Sugar())
}

func texts(msgs []nav.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

type passthrough struct{}

func (passthrough) Render(md string) string { return md }
