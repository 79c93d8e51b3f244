package scheduler

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Validation failures. No command is run when one of these is returned.
var (
	ErrEmptyJobID   = errors.New("job id is empty")
	ErrUnknownJobID = errors.New("job id is not in the current job list")
)

// Causes carried by ExternalCommandError.
var (
	ErrCommandStart   = errors.New("command failed to start")
	ErrCommandTimeout = errors.New("command timed out")
	ErrCommandFailed  = errors.New("command exited with non-zero status")
	ErrCancelRejected = errors.New("scheduler refused to cancel the job")
)

// ExternalCommandError reports a scheduler command that could not start, did
// not finish in time, or exited non-zero.
type ExternalCommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalCommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Command, e.Err)
	if e.ExitCode > 0 {
		msg = fmt.Sprintf("%s (exit status %d)", msg, e.ExitCode)
	}
	if stderr := firstLine(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ExternalCommandError) Unwrap() error {
	return e.Err
}

// ParseError describes one listing line that was skipped.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// IsValidation reports whether err was raised before any command ran.
func IsValidation(err error) bool {
	return errors.IsAny(err, ErrEmptyJobID, ErrUnknownJobID)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrCommandTimeout)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
