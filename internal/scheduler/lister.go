package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
)

// FieldCount is the number of ';'-separated fields in one listing line.
const FieldCount = 8

type Lister struct {
	runner  Runner
	command Template
	user    string
	now     func() time.Time
}

func NewLister(runner Runner, command Template, user string) *Lister {
	return &Lister{runner: runner, command: command, user: user, now: time.Now}
}

// List fetches the user's jobs. Malformed lines are left out of Jobs and
// reported in Skipped; only a command failure makes List fail.
func (l *Lister) List(ctx context.Context) (Snapshot, error) {
	argv := l.command.Expand(map[string]string{"user": l.user})
	res, err := l.runner.Run(ctx, argv)
	if err != nil {
		return Snapshot{}, err
	}
	if res.ExitCode != 0 {
		return Snapshot{}, &ExternalCommandError{
			Command:  shellquote.Join(argv...),
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
			Err:      ErrCommandFailed,
		}
	}
	jobs, skipped := ParseListing(res.Stdout)
	return Snapshot{Jobs: jobs, Skipped: skipped, FetchedAt: l.now()}, nil
}

// ParseListing turns listing output into jobs, one per non-blank line.
func ParseListing(out string) ([]Job, []*ParseError) {
	jobs := []Job{}
	var skipped []*ParseError
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		job, err := parseLine(i+1, line)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, skipped
}

func parseLine(n int, line string) (Job, *ParseError) {
	fields := strings.Split(line, ";")
	if len(fields) != FieldCount {
		return Job{}, &ParseError{
			Line:   n,
			Text:   line,
			Reason: fmt.Sprintf("expected %d fields, got %d", FieldCount, len(fields)),
		}
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if fields[0] == "" {
		return Job{}, &ParseError{Line: n, Text: line, Reason: "empty job id"}
	}
	nodes, err := parseCount(fields[5])
	if err != nil {
		return Job{}, &ParseError{Line: n, Text: line, Reason: "node count " + err.Error()}
	}
	cpus, err := parseCount(fields[7])
	if err != nil {
		return Job{}, &ParseError{Line: n, Text: line, Reason: "cpu count " + err.Error()}
	}
	return Job{
		ID:       fields[0],
		Owner:    fields[1],
		State:    State(fields[2]),
		TimeUsed: fields[3],
		TimeLeft: fields[4],
		Nodes:    nodes,
		Memory:   fields[6],
		CPUs:     cpus,
	}, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Newf("%q is not a number", s)
	}
	if n < 0 {
		return 0, errors.Newf("%d is negative", n)
	}
	return n, nil
}
