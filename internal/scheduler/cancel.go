package scheduler

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
)

type Canceller struct {
	runner  Runner
	command Template
}

func NewCanceller(runner Runner, command Template) *Canceller {
	return &Canceller{runner: runner, command: command}
}

// Cancel asks the scheduler to cancel id. The id must belong to known, the
// snapshot the user is looking at; otherwise no command is run.
func (c *Canceller) Cancel(ctx context.Context, id string, known IDSet) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyJobID
	}
	if !known.Has(id) {
		return errors.Wrapf(ErrUnknownJobID, "job %s", id)
	}

	argv := c.command.Expand(map[string]string{"id": id})
	if !c.command.Has("id") {
		argv = append(argv, id)
	}
	res, err := c.runner.Run(ctx, argv)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ExternalCommandError{
			Command:  shellquote.Join(argv...),
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
			Err:      ErrCancelRejected,
		}
	}
	return nil
}
