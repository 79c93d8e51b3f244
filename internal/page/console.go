package page

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/bubu-hpc/bubu/internal/ui"
)

type readResult struct {
	line string
	err  error
}

// Run drives flow over plain line-based terminal I/O until the user exits,
// input ends, or ctx is cancelled. End of input is a normal exit.
func Run(ctx context.Context, flow *Flow, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	st := flow.Session().Styles
	lines := readLines(ctx, in)
	for !flow.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame := flow.Cycle(ctx)
		if err := ui.ClearScreen(out); err != nil {
			flow.Session().Log.Debugw("clear screen failed", "error", err)
		}
		if _, err := io.WriteString(out, frame.Render(st)+frame.Prompt); err != nil {
			return errors.Wrap(err, "write frame")
		}

		var r readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case r = <-lines:
		}
		if r.err != nil && !errors.Is(r.err, io.EOF) {
			return errors.Wrap(r.err, "read input")
		}
		if r.line != "" {
			flow.Submit(ctx, r.line)
		}
		if r.err != nil {
			fmt.Fprintln(out)
			return nil
		}
	}
	return nil
}

// readLines reads in on its own goroutine so a blocked read never holds up
// cancellation. The channel yields one result per line and ends after the
// first error.
func readLines(ctx context.Context, in io.Reader) <-chan readResult {
	lines := make(chan readResult)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			select {
			case lines <- readResult{line: line, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

// ConsoleBusy returns a Session.Busy func that prints a notice while an
// external command runs.
func ConsoleBusy(out io.Writer, st ui.Styles) func(string) func() {
	return func(label string) func() {
		fmt.Fprintf(out, "\n%s %s\n", st.Hint.Render("Hang on! Bubu is working ..."), st.Hint.Render("("+label+")"))
		return func() {}
	}
}
