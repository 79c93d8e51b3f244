// Package tui drives the page flow from a bubbletea program: one text input
// for the answer and a spinner while scheduler commands run.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/bubu-hpc/bubu/internal/page"
	"github.com/bubu-hpc/bubu/internal/ui"
)

type frameMsg struct {
	Frame page.Frame
}

type flowDoneMsg struct{}

type keyMap struct {
	submit key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "answer"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

type model struct {
	ctx    context.Context
	flow   *page.Flow
	styles ui.Styles
	keys   keyMap
	tasks  *taskRunner

	input   textinput.Model
	spinner spinner.Model

	frame    page.Frame
	busy     string
	width    int
	quitting bool
}

func newModel(ctx context.Context, flow *page.Flow, st ui.Styles) *model {
	m := &model{
		ctx:    ctx,
		flow:   flow,
		styles: st,
		keys:   newKeyMap(),
		tasks:  newTaskRunner(),
	}
	m.input = textinput.New()
	m.input.CharLimit = 256
	m.input.Focus()
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.spinner.Style = st.Spinner

	flow.Session().Busy = func(label string) func() {
		m.tasks.Notify(label)
		return func() {}
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink, m.tasks.Enqueue(m.cycleTask()))
}

func (m *model) cycleTask() taskRequest {
	return taskRequest{label: "cycle", run: func() tea.Msg {
		return frameMsg{Frame: m.flow.Cycle(m.ctx)}
	}}
}

func (m *model) submitTask(line string) taskRequest {
	return taskRequest{label: "submit", run: func() tea.Msg {
		if m.flow.Submit(m.ctx, line) {
			return flowDoneMsg{}
		}
		return frameMsg{Frame: m.flow.Cycle(m.ctx)}
	}}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch message := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(message)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = message.Width
		return m, nil

	case taskMsg:
		return m, m.handleTask(message)

	case tea.KeyMsg:
		if key.Matches(message, m.keys.quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.tasks.Busy() {
			return m, nil
		}
		if key.Matches(message, m.keys.submit) {
			line := m.input.Value()
			m.input.Reset()
			return m, m.tasks.Enqueue(m.submitTask(line))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) handleTask(msg taskMsg) tea.Cmd {
	switch message := msg.(type) {
	case taskStartedMsg:
		m.busy = ""
	case taskBusyMsg:
		m.busy = message.Label
	case taskFinishedMsg:
		m.busy = ""
		switch result := message.Result.(type) {
		case flowDoneMsg:
			m.tasks.Handle(msg)
			m.quitting = true
			return tea.Quit
		case frameMsg:
			m.frame = result.Frame
			m.input.Prompt = result.Frame.Prompt
		}
	}
	return m.tasks.Handle(msg)
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.frame.Render(m.styles))
	switch {
	case m.busy != "":
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.styles.Hint.Render("Hang on! Bubu is working ... (" + m.busy + ")"))
	case m.tasks.Busy():
		b.WriteString(m.spinner.View())
	default:
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	return b.String()
}

// Run shows flow in a full screen bubbletea program until the user exits.
func Run(ctx context.Context, flow *page.Flow, st ui.Styles, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(newModel(ctx, flow, st), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
