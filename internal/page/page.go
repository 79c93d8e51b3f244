// Package page implements the menu's screens. Each page runs the same cycle:
// load, render, read one line, act. Flow owns the stack of open pages and is
// driven by either the line console (Run) or the bubbletea program.
package page

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/bubu-hpc/bubu/internal/config"
	"github.com/bubu-hpc/bubu/internal/nav"
	"github.com/bubu-hpc/bubu/internal/scheduler"
	"github.com/bubu-hpc/bubu/internal/ui"
)

// RootLabel is the first breadcrumb entry.
const RootLabel = "Bubu"

// Page is one interactive screen.
type Page interface {
	// Title is pushed onto the breadcrumb when the page is opened.
	Title() string
	// Load runs at the start of every cycle, before the frame is built.
	Load(ctx context.Context, s *Session)
	View(s *Session) string
	Prompt(s *Session) string
	Handle(ctx context.Context, s *Session, input string) Transition
}

type Action int

const (
	Stay Action = iota
	Open
	Back
	Quit
)

func (a Action) String() string {
	switch a {
	case Open:
		return "open"
	case Back:
		return "back"
	case Quit:
		return "quit"
	default:
		return "stay"
	}
}

type Transition struct {
	Action Action
	Next   Page
}

func stay() Transition          { return Transition{Action: Stay} }
func back() Transition          { return Transition{Action: Back} }
func open(next Page) Transition { return Transition{Action: Open, Next: next} }

// Session is the state shared by every page for one run of the menu.
type Session struct {
	Nav      *nav.Stack
	Messages *nav.Queue
	Styles   ui.Styles
	Env      config.Environment
	Log      *zap.SugaredLogger
	// Busy, when set, is called before an external command runs; the
	// returned func is called once it has finished.
	Busy func(label string) (done func())
}

func NewSession(env config.Environment, styles ui.Styles, log *zap.SugaredLogger) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{
		Nav:      nav.NewStack(RootLabel),
		Messages: nav.NewQueue(),
		Styles:   styles,
		Env:      env,
		Log:      log,
	}
}

func (s *Session) working(label string) func() {
	if s.Busy == nil {
		return func() {}
	}
	return s.Busy(label)
}

// describe turns an error into one message line, hints included.
func describe(err error) string {
	msg := err.Error()
	if hint := errors.FlattenHints(err); hint != "" {
		msg += " (" + hint + ")"
	}
	return msg
}

// Scheduler is what the pages need from the Slurm client.
type Scheduler interface {
	List(ctx context.Context) (scheduler.Snapshot, error)
	Cancel(ctx context.Context, id string, known scheduler.IDSet) error
	Submit(ctx context.Context, req scheduler.Request) (string, error)
}

// Renderer turns markdown into terminal text.
type Renderer interface {
	Render(markdown string) string
}
