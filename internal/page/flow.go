package page

import (
	"context"
	"strings"

	"github.com/bubu-hpc/bubu/internal/nav"
	"github.com/bubu-hpc/bubu/internal/ui"
)

// Frame is everything shown for one cycle.
type Frame struct {
	Breadcrumb string
	Body       string
	Messages   []nav.Message
	Prompt     string
}

// Render lays the frame out: breadcrumb, rule, body, then the messages
// drained for this cycle. The prompt is left to the caller.
func (f Frame) Render(st ui.Styles) string {
	var b strings.Builder
	b.WriteString(f.Breadcrumb)
	b.WriteByte('\n')
	b.WriteString(st.RuleLine(80))
	b.WriteByte('\n')
	b.WriteString(f.Body)
	if !strings.HasSuffix(f.Body, "\n") {
		b.WriteByte('\n')
	}
	for _, msg := range f.Messages {
		b.WriteString(st.Brand.Render(RootLabel))
		b.WriteString(": ")
		b.WriteString(st.Message(msg.Level).Render(msg.Text))
		b.WriteByte('\n')
	}
	return b.String()
}

// Flow keeps the stack of open pages in step with the breadcrumb.
type Flow struct {
	s     *Session
	pages []Page
}

func NewFlow(s *Session, root Page) *Flow {
	return &Flow{s: s, pages: []Page{root}}
}

func (f *Flow) Session() *Session {
	return f.s
}

// Current is the page on top, or nil once the flow has ended.
func (f *Flow) Current() Page {
	if len(f.pages) == 0 {
		return nil
	}
	return f.pages[len(f.pages)-1]
}

func (f *Flow) Done() bool {
	return len(f.pages) == 0
}

// Cycle loads the current page and builds its frame. The message queue is
// drained here, so every message is shown in exactly one frame.
func (f *Flow) Cycle(ctx context.Context) Frame {
	p := f.Current()
	if p == nil {
		return Frame{}
	}
	p.Load(ctx, f.s)
	st := f.s.Styles
	return Frame{
		Breadcrumb: f.s.Nav.Breadcrumb(st.CrumbSep.Render(" ≫ "), func(label string) string {
			if label == RootLabel {
				return st.BrandBold.Render(label)
			}
			return st.Crumb.Render(label)
		}),
		Body:     p.View(f.s),
		Messages: f.s.Messages.Drain(),
		Prompt:   p.Prompt(f.s),
	}
}

// Submit hands one line of input to the current page and applies the
// transition it returns. It reports whether the flow has ended.
func (f *Flow) Submit(ctx context.Context, line string) bool {
	p := f.Current()
	if p == nil {
		return true
	}
	input := strings.TrimSpace(line)
	t := p.Handle(ctx, f.s, input)
	f.s.Log.Debugw("page input", "page", p.Title(), "action", t.Action.String())

	switch t.Action {
	case Open:
		f.s.Nav.Push(t.Next.Title())
		f.pages = append(f.pages, t.Next)
	case Back:
		f.pages = f.pages[:len(f.pages)-1]
		if len(f.pages) > 0 {
			f.s.Nav.Pop()
		}
	case Quit:
		f.pages = nil
	}
	return f.Done()
}
