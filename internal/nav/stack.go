// Package nav holds the breadcrumb stack and the message queue shared by
// every page of the menu.
package nav

import "strings"

// Stack is the trail of page labels the user has drilled into. The root
// label pushed by NewStack is never popped.
type Stack struct {
	labels []string
}

func NewStack(root string) *Stack {
	return &Stack{labels: []string{root}}
}

func (s *Stack) Push(label string) {
	s.labels = append(s.labels, label)
}

// Pop removes and returns the top label. On a stack holding only the root it
// returns false and leaves the stack unchanged.
func (s *Stack) Pop() (string, bool) {
	if len(s.labels) <= 1 {
		return "", false
	}
	top := s.labels[len(s.labels)-1]
	s.labels = s.labels[:len(s.labels)-1]
	return top, true
}

func (s *Stack) Peek() string {
	return s.labels[len(s.labels)-1]
}

func (s *Stack) Len() int {
	return len(s.labels)
}

// Labels returns a copy of the trail, root first.
func (s *Stack) Labels() []string {
	return append([]string(nil), s.labels...)
}

// Breadcrumb joins the trail with sep after applying style to every label.
func (s *Stack) Breadcrumb(sep string, style func(string) string) string {
	parts := make([]string, len(s.labels))
	for i, label := range s.labels {
		if style != nil {
			label = style(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, sep)
}
