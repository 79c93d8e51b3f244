package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

type taskMsg interface {
	isTask()
	taskID() int
}

type taskStartedMsg struct {
	Label string
	ID    int
}

func (taskStartedMsg) isTask()         {}
func (msg taskStartedMsg) taskID() int { return msg.ID }

// taskBusyMsg is sent while a task waits on an external command.
type taskBusyMsg struct {
	Label string
	ID    int
}

func (taskBusyMsg) isTask()         {}
func (msg taskBusyMsg) taskID() int { return msg.ID }

type taskFinishedMsg struct {
	Label  string
	Result tea.Msg
	ID     int
}

func (taskFinishedMsg) isTask()         {}
func (msg taskFinishedMsg) taskID() int { return msg.ID }

type taskChannelClosedMsg struct {
	ID int
}

func (taskChannelClosedMsg) isTask()         {}
func (msg taskChannelClosedMsg) taskID() int { return msg.ID }

type taskRequest struct {
	label string
	run   func() tea.Msg
}

// taskRunner runs page work off the update loop, one task at a time, so the
// flow is never touched by two goroutines at once.
type taskRunner struct {
	queue   []taskRequest
	current *taskRequest
	running bool
	nextID  int
	ch      chan taskMsg

	// active is read by Notify from the task goroutine.
	mu     sync.Mutex
	active chan taskMsg
	id     int
}

func newTaskRunner() *taskRunner {
	return &taskRunner{}
}

func (tr *taskRunner) Busy() bool {
	return tr.running || len(tr.queue) > 0
}

func (tr *taskRunner) Enqueue(req taskRequest) tea.Cmd {
	tr.queue = append(tr.queue, req)
	return tr.nextCmd()
}

// Handle advances the runner and returns the command that waits for the
// next message of the running task, if any.
func (tr *taskRunner) Handle(msg taskMsg) tea.Cmd {
	switch msg.(type) {
	case taskStartedMsg, taskBusyMsg:
		return tr.wait()
	case taskFinishedMsg, taskChannelClosedMsg:
		tr.running = false
		tr.current = nil
		tr.ch = nil
		return tr.nextCmd()
	}
	return nil
}

// Notify reports label on the running task's channel. It is called from the
// task goroutine and does nothing when no task is running.
func (tr *taskRunner) Notify(label string) {
	tr.mu.Lock()
	ch, id := tr.active, tr.id
	tr.mu.Unlock()
	if ch != nil {
		ch <- taskBusyMsg{Label: label, ID: id}
	}
}

func (tr *taskRunner) nextCmd() tea.Cmd {
	if tr.running {
		return nil
	}
	if len(tr.queue) == 0 {
		return nil
	}
	req := tr.queue[0]
	tr.queue = tr.queue[1:]
	tr.current = &req
	tr.running = true
	tr.nextID++

	ch := make(chan taskMsg)
	tr.ch = ch
	tr.mu.Lock()
	tr.active = ch
	tr.id = tr.nextID
	tr.mu.Unlock()

	go tr.runTask(tr.nextID, req, ch)
	return waitForTaskMsg(ch)
}

func (tr *taskRunner) runTask(id int, req taskRequest, ch chan taskMsg) {
	defer close(ch)

	ch <- taskStartedMsg{Label: req.label, ID: id}
	result := req.run()

	tr.mu.Lock()
	if tr.id == id {
		tr.active = nil
	}
	tr.mu.Unlock()
	ch <- taskFinishedMsg{Label: req.label, Result: result, ID: id}
}

func (tr *taskRunner) wait() tea.Cmd {
	if tr.ch == nil {
		return nil
	}
	return waitForTaskMsg(tr.ch)
}

func waitForTaskMsg(ch <-chan taskMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return taskChannelClosedMsg{}
		}
		return msg
	}
}
