package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/bubu-hpc/bubu/internal/scheduler"
	"github.com/bubu-hpc/bubu/internal/ui"
)

const (
	JobsTitle   = "Running Jobs"
	CancelTitle = "Cancel a job"
)

type jobsState int

const (
	stateListing jobsState = iota
	stateCancelPrompt
)

func (s jobsState) String() string {
	if s == stateCancelPrompt {
		return "cancel-prompt"
	}
	return "listing"
}

// JobsPage lists the user's jobs and cancels them. The list is fetched
// again at the start of every cycle and never edited in place.
type JobsPage struct {
	sched    Scheduler
	state    jobsState
	snapshot scheduler.Snapshot
}

func NewJobsPage(sched Scheduler) *JobsPage {
	return &JobsPage{sched: sched}
}

func (p *JobsPage) Title() string { return JobsTitle }

func (p *JobsPage) Load(ctx context.Context, s *Session) {
	done := s.working("Fetching jobs")
	snap, err := p.sched.List(ctx)
	done()
	if err != nil {
		s.Log.Warnw("listing jobs failed", "error", err)
		s.Messages.Error("Couldn't list jobs: %s", describe(err))
		// Stale ids must not pass cancel validation, so nothing is kept.
		p.snapshot = scheduler.Snapshot{}
		return
	}
	for _, skipped := range snap.Skipped {
		s.Log.Warnw("skipped malformed listing line", "line", skipped.Line, "text", skipped.Text, "reason", skipped.Reason)
		s.Messages.Error("Skipped malformed scheduler line %d: %s", skipped.Line, skipped.Reason)
	}
	p.snapshot = snap
}

func (p *JobsPage) View(s *Session) string {
	st := s.Styles
	var b strings.Builder
	b.WriteString(ui.JobTable(p.snapshot.Jobs, st))
	b.WriteString("\n")
	b.WriteString(st.ExitItem("1", "Go Back") + "\n")
	if p.state == stateListing {
		b.WriteString(st.MenuItem("2", "Refresh jobs list") + "\n")
		b.WriteString(st.MenuItem("3", "Cancel a job") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (p *JobsPage) Prompt(s *Session) string {
	if p.state == stateCancelPrompt {
		return "Please enter a job ID to cancel: "
	}
	return fmt.Sprintf("Select one of the menu numbers for %s: ", brandPrompt(s.Styles))
}

func (p *JobsPage) Handle(ctx context.Context, s *Session, input string) Transition {
	if p.state == stateCancelPrompt {
		if input == "1" {
			s.Nav.Pop()
			p.state = stateListing
			return stay()
		}
		if p.cancel(ctx, s, input) {
			s.Messages.Success("Job %s cancelled successfully", input)
		} else {
			s.Messages.Error("Couldn't cancel job ID %s", input)
		}
		return stay()
	}

	switch input {
	case "1":
		return back()
	case "2":
		return stay()
	case "3":
		s.Nav.Push(CancelTitle)
		p.state = stateCancelPrompt
		return stay()
	default:
		s.Messages.Error(wrongInput)
		return stay()
	}
}

// cancel validates id against the snapshot shown this cycle and asks the
// scheduler to cancel it. The reason for a failure is queued as a message.
func (p *JobsPage) cancel(ctx context.Context, s *Session, id string) bool {
	done := s.working("Cancelling job " + id)
	err := p.sched.Cancel(ctx, id, p.snapshot.IDs())
	done()

	switch {
	case err == nil:
		s.Log.Infow("job cancelled", "job_id", id)
		return true
	case errors.Is(err, scheduler.ErrEmptyJobID):
		s.Messages.Error("Job ID is empty or not valid!")
	case errors.Is(err, scheduler.ErrUnknownJobID):
		s.Messages.Error("Job ID does not exist!")
	default:
		s.Log.Warnw("cancel failed", "job_id", id, "error", err)
		s.Messages.Error("%s", describe(err))
	}
	return false
}
