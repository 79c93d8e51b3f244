package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
)

// Request holds the resources collected by the new job wizard.
type Request struct {
	CPUs     int
	MemoryGB int
	Hours    int
	Minutes  int
	Email    string
	Script   string
}

// Walltime formats the time limit the way sbatch --time expects it.
func (r Request) Walltime() string {
	return fmt.Sprintf("%d:%02d:00", r.Hours, r.Minutes)
}

// Args are the sbatch options followed by the script path.
func (r Request) Args() []string {
	args := []string{
		fmt.Sprintf("--cpus-per-task=%d", r.CPUs),
		fmt.Sprintf("--mem=%dG", r.MemoryGB),
		"--time=" + r.Walltime(),
	}
	if email := strings.TrimSpace(r.Email); email != "" {
		args = append(args, "--mail-user="+email, "--mail-type=ALL")
	}
	return append(args, r.Script)
}

type Submitter struct {
	runner  Runner
	command Template
}

func NewSubmitter(runner Runner, command Template) *Submitter {
	return &Submitter{runner: runner, command: command}
}

// Submit queues the batch script and returns the id the scheduler assigned.
func (s *Submitter) Submit(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Script) == "" {
		return "", errors.New("no batch script given")
	}
	argv := append(s.command.Expand(nil), req.Args()...)
	res, err := s.runner.Run(ctx, argv)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &ExternalCommandError{
			Command:  shellquote.Join(argv...),
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
			Err:      ErrCommandFailed,
		}
	}
	// --parsable prints "jobid" or "jobid;cluster".
	id, _, _ := strings.Cut(firstLine(res.Stdout), ";")
	if id == "" {
		return "", errors.Newf("%s printed no job id", s.command.Program())
	}
	return id, nil
}
