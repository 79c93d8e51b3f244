// Package ui renders the menu's text: colors, the job table, the help page
// and the screen clearing between frames.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bubu-hpc/bubu/internal/nav"
	"github.com/bubu-hpc/bubu/internal/scheduler"
)

// xterm palette indices.
var (
	colorRed    = lipgloss.Color("1")
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
	colorBlue   = lipgloss.Color("4")
	colorWhite  = lipgloss.Color("7")
)

type Styles struct {
	Brand, BrandBold        lipgloss.Style
	Crumb, CrumbSep, Rule   lipgloss.Style
	MenuNumber, MenuExit    lipgloss.Style
	Info, Success, Error    lipgloss.Style
	TableHeader, TableCell  lipgloss.Style
	Running, Pending, Other lipgloss.Style
	Hint, Emphasis, Done    lipgloss.Style
	Spinner                 lipgloss.Style
}

func NewStyles() Styles {
	base := lipgloss.NewStyle()
	green := base.Copy().Foreground(colorGreen)

	return Styles{
		Brand:       green,
		BrandBold:   green.Copy().Bold(true),
		Crumb:       green,
		CrumbSep:    base.Copy().Foreground(colorBlue),
		Rule:        base.Copy().Foreground(colorYellow),
		MenuNumber:  base.Copy().Foreground(colorYellow).Bold(true),
		MenuExit:    base.Copy().Foreground(colorRed),
		Info:        base.Copy().Foreground(colorWhite),
		Success:     green,
		Error:       base.Copy().Foreground(colorRed),
		TableHeader: base.Copy().Bold(true),
		TableCell:   base,
		Running:     green,
		Pending:     base.Copy().Foreground(colorYellow),
		Other:       base,
		Hint:        base.Copy().Foreground(colorYellow),
		Emphasis:    green.Copy().Bold(true),
		Done:        green,
		Spinner:     green.Copy().Bold(true),
	}
}

func (s Styles) Message(level nav.Level) lipgloss.Style {
	switch level {
	case nav.LevelSuccess:
		return s.Success
	case nav.LevelError:
		return s.Error
	default:
		return s.Info
	}
}

func (s Styles) State(state scheduler.State) lipgloss.Style {
	switch {
	case state.IsRunning():
		return s.Running
	case state.IsPending():
		return s.Pending
	default:
		return s.Other
	}
}

// Tab indents by n levels of two spaces.
func Tab(n int) string {
	if n < 1 {
		return ""
	}
	return strings.Repeat("  ", n)
}

// MenuItem renders one numbered entry, e.g. "  1. Refresh jobs list".
func (s Styles) MenuItem(number, label string) string {
	return Tab(1) + s.MenuNumber.Render(number+". ") + label
}

// ExitItem renders the red "go back"/"exit" entry.
func (s Styles) ExitItem(number, label string) string {
	return Tab(1) + s.MenuExit.Render(number+". "+label)
}

// RuleLine is the yellow line printed under the breadcrumb.
func (s Styles) RuleLine(width int) string {
	if width <= 0 {
		width = 80
	}
	return s.Rule.Render(strings.Repeat("-", width))
}
