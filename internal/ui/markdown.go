package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/cockroachdb/errors"
)

type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
	// ThemeNone renders markdown as plain text. Used when output is not a terminal.
	ThemeNone Theme = "none"
)

// ParseTheme accepts auto, dark, light or none, case-insensitively.
func ParseTheme(value string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return ThemeAuto, nil
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	case "none", "notty":
		return ThemeNone, nil
	default:
		return ThemeAuto, errors.Newf("unknown theme %q", value)
	}
}

func (t Theme) String() string {
	if t == "" {
		return string(ThemeAuto)
	}
	return string(t)
}

// Markdown renders help text through glamour. The renderer is built lazily
// and reused; when it cannot be built the raw markdown is returned.
type Markdown struct {
	mu       sync.Mutex
	theme    Theme
	wordWrap int
	renderer *glamour.TermRenderer
	err      error
}

func NewMarkdown(theme Theme, wordWrap int) *Markdown {
	return &Markdown{theme: theme, wordWrap: wordWrap}
}

func (m *Markdown) Render(content string) string {
	if m == nil || m.theme == ThemeNone {
		return content
	}
	renderer := m.ensureRenderer()
	if renderer == nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func (m *Markdown) ensureRenderer() *glamour.TermRenderer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renderer != nil || m.err != nil {
		return m.renderer
	}
	wrap := m.wordWrap
	if wrap < 0 {
		wrap = 0
	}
	options := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	switch m.theme {
	case ThemeDark:
		options = append(options, glamour.WithStandardStyle("dark"))
	case ThemeLight:
		options = append(options, glamour.WithStandardStyle("light"))
	default:
		options = append(options, glamour.WithAutoStyle())
	}
	m.renderer, m.err = glamour.NewTermRenderer(options...)
	if m.err != nil {
		m.renderer = nil
	}
	return m.renderer
}
