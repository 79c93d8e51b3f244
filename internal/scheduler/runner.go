package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every scheduler command unless configured otherwise.
const DefaultTimeout = 10 * time.Second

// Result is what a finished command produced. A non-zero ExitCode is not an
// error at this level; callers decide what it means.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes one command and waits for it.
type Runner interface {
	Run(ctx context.Context, argv []string) (Result, error)
}

// ExecRunner runs commands directly (no shell) with a per-call timeout.
type ExecRunner struct {
	Timeout time.Duration
	log     *zap.SugaredLogger
}

func NewExecRunner(timeout time.Duration, log *zap.SugaredLogger) *ExecRunner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ExecRunner{Timeout: timeout, log: log}
}

func (r *ExecRunner) Run(ctx context.Context, argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{ExitCode: -1}, errors.New("empty command")
	}
	display := shellquote.Join(argv...)

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Children that inherit the pipes must not keep Wait blocked after a kill.
	cmd.WaitDelay = time.Second

	r.log.Debugw("running command", "command", display)
	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		r.log.Warnw("command timed out", "command", display, "timeout", r.Timeout)
		return res, &ExternalCommandError{
			Command:  display,
			ExitCode: -1,
			Err: errors.WithHint(
				errors.Wrapf(ErrCommandTimeout, "no answer after %s", r.Timeout),
				"the scheduler may be overloaded; try again in a moment",
			),
		}
	case ctx.Err() != nil:
		return res, &ExternalCommandError{Command: display, ExitCode: -1, Err: ctx.Err()}
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			break
		}
		r.log.Errorw("command failed to start", "command", display, "error", err)
		return res, &ExternalCommandError{
			Command:  display,
			ExitCode: -1,
			Err: errors.WithHint(
				errors.Wrapf(ErrCommandStart, "%v", err),
				fmt.Sprintf("is %s installed and on your PATH?", argv[0]),
			),
		}
	}

	r.log.Infow("command finished",
		"command", display,
		"exit_code", res.ExitCode,
		"duration", res.Duration)
	return res, nil
}
