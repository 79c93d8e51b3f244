package page

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bubu-hpc/bubu/internal/scheduler"
)

const NewJobTitle = "New Job"

// JobWizard asks for one Field per cycle, then for confirmation, then
// submits. Q leaves at any point; Z steps back one field.
type JobWizard struct {
	sched     Scheduler
	clipboard func(string) error
	fields    []Field
	step      int
	values    map[string]string
}

func NewJobWizard(sched Scheduler, clipboard func(string) error) *JobWizard {
	return &JobWizard{
		sched:     sched,
		clipboard: clipboard,
		fields:    JobFields(),
		values:    make(map[string]string),
	}
}

func (w *JobWizard) Title() string { return NewJobTitle }

func (w *JobWizard) Load(context.Context, *Session) {}

func (w *JobWizard) confirming() bool {
	return w.step >= len(w.fields)
}

func (w *JobWizard) View(s *Session) string {
	st := s.Styles
	var b strings.Builder
	fmt.Fprintf(&b, "Enter %s at any step to go back to the main menu\n", st.Error.Render("Q"))
	fmt.Fprintf(&b, "Enter %s to go to previous step\n\n", st.Hint.Render("Z"))

	for i := 0; i < w.step && i < len(w.fields); i++ {
		f := w.fields[i]
		value := w.values[f.Key]
		switch {
		case value == "":
			value = st.Hint.Render("(none)")
		case f.Unit != "":
			value += " " + f.Unit
		}
		fmt.Fprintf(&b, "%s%s %s: %s\n", "  ", st.Done.Render("✓"), f.Title, value)
	}

	if w.confirming() {
		req := w.request()
		fmt.Fprintf(&b, "\nWalltime %s. Ready to submit %s.\n\n", req.Walltime(), st.Emphasis.Render(req.Script))
	} else {
		f := w.fields[w.step]
		fmt.Fprintf(&b, "\nStep %d of %d: %s\n\n", w.step+1, len(w.fields), st.Emphasis.Render(f.Title))
	}
	return b.String()
}

func (w *JobWizard) Prompt(s *Session) string {
	st := s.Styles
	if w.confirming() {
		return "Submit this job? [Y/n]: "
	}
	f := w.fields[w.step]
	switch {
	case f.Default != "":
		return fmt.Sprintf("%s (%s): ", f.Prompt, st.Hint.Render("default is "+f.Default))
	case f.Optional:
		return fmt.Sprintf("%s (%s): ", f.Prompt, st.Hint.Render("leave empty to ignore"))
	default:
		return f.Prompt + ": "
	}
}

func (w *JobWizard) Handle(ctx context.Context, s *Session, input string) Transition {
	switch strings.ToLower(input) {
	case "q":
		return back()
	case "z":
		w.stepBack(s)
		return stay()
	}

	if w.confirming() {
		return w.confirm(ctx, s, input)
	}

	f := w.fields[w.step]
	if input == "" {
		switch {
		case f.Default != "":
			input = f.Default
		case f.Optional:
			w.values[f.Key] = ""
			w.step++
			return stay()
		default:
			s.Messages.Error("%s is required.", f.Title)
			return stay()
		}
	}
	value, err := f.Validate(input)
	if err != nil {
		s.Messages.Error("Invalid input. %s", upperFirst(err.Error()))
		return stay()
	}
	w.values[f.Key] = value
	w.step++
	return stay()
}

func (w *JobWizard) stepBack(s *Session) {
	if w.step == 0 {
		s.Messages.Info("Already at the first step.")
		return
	}
	w.step--
	delete(w.values, w.fields[w.step].Key)
}

func (w *JobWizard) confirm(ctx context.Context, s *Session, input string) Transition {
	switch strings.ToLower(input) {
	case "", "y", "yes":
	case "n", "no":
		s.Messages.Info("Job submission discarded.")
		return back()
	default:
		s.Messages.Error("Please answer Y or N.")
		return stay()
	}

	req := w.request()
	if req.Hours == 0 && req.Minutes == 0 {
		s.Messages.Error("The job needs at least one minute of walltime.")
		w.rewindTo(KeyHours)
		return stay()
	}

	done := s.working("Submitting job")
	id, err := w.sched.Submit(ctx, req)
	done()
	if err != nil {
		s.Log.Warnw("submit failed", "script", req.Script, "error", err)
		s.Messages.Error("Couldn't submit the job: %s", describe(err))
		return stay()
	}

	s.Log.Infow("job submitted", "job_id", id, "script", req.Script)
	if w.clipboard != nil && w.clipboard(id) == nil {
		s.Messages.Success("Job %s submitted successfully (ID copied to clipboard)", id)
	} else {
		s.Messages.Success("Job %s submitted successfully", id)
	}
	return back()
}

// rewindTo moves back to the field with key, forgetting it and every later answer.
func (w *JobWizard) rewindTo(key string) {
	for i, f := range w.fields {
		if f.Key != key {
			continue
		}
		for _, later := range w.fields[i:] {
			delete(w.values, later.Key)
		}
		w.step = i
		return
	}
}

func (w *JobWizard) request() scheduler.Request {
	num := func(key string) int {
		n, _ := strconv.Atoi(w.values[key])
		return n
	}
	return scheduler.Request{
		CPUs:     num(KeyCPUs),
		MemoryGB: num(KeyMemory),
		Hours:    num(KeyHours),
		Minutes:  num(KeyMinutes),
		Email:    w.values[KeyEmail],
		Script:   w.values[KeyScript],
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
