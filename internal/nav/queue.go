package nav

import "fmt"

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Message is one user-facing notice.
type Message struct {
	Level Level
	Text  string
}

// Queue collects notices between two render cycles. Drain hands every queued
// message out exactly once, in insertion order.
type Queue struct {
	items []Message
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(level Level, text string) {
	if text == "" {
		return
	}
	q.items = append(q.items, Message{Level: level, Text: text})
}

func (q *Queue) Info(format string, args ...any) {
	q.Push(LevelInfo, fmt.Sprintf(format, args...))
}

func (q *Queue) Success(format string, args ...any) {
	q.Push(LevelSuccess, fmt.Sprintf(format, args...))
}

func (q *Queue) Error(format string, args ...any) {
	q.Push(LevelError, fmt.Sprintf(format, args...))
}

func (q *Queue) Len() int {
	return len(q.items)
}

// Drain returns the queued messages and empties the queue.
func (q *Queue) Drain() []Message {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
