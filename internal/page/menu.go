package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/bubu-hpc/bubu/internal/ui"
)

const wrongInput = "Wrong input! Please select one of the above numbers."

// Services are the collaborators the main menu hands to the pages it opens.
type Services struct {
	Scheduler Scheduler
	Markdown  Renderer
	DocsURL   string
	// Clipboard receives a submitted job id; nil disables copying.
	Clipboard func(text string) error
}

// MainMenu is the root page.
type MainMenu struct {
	svc Services
}

func NewMainMenu(svc Services) *MainMenu {
	return &MainMenu{svc: svc}
}

func (m *MainMenu) Title() string { return RootLabel }

func (m *MainMenu) Load(context.Context, *Session) {}

func (m *MainMenu) View(s *Session) string {
	st := s.Styles
	var b strings.Builder
	b.WriteString(welcome(s))
	b.WriteString("\n\n")
	b.WriteString(st.MenuItem("1", "Current running jobs") + "\n")
	b.WriteString(st.MenuItem("2", "Submit a job") + "\n")
	b.WriteString(st.MenuItem("3", "Need more help?") + "\n")
	b.WriteString(st.ExitItem("4", "Exit") + "\n")
	b.WriteString("\n")
	return b.String()
}

func welcome(s *Session) string {
	brand := s.Styles.BrandBold.Render(RootLabel)
	if s.Env.ComputeCanada {
		return fmt.Sprintf("Welcome to %s on Compute Canada(%s node)", brand, s.Env.Cluster)
	}
	return fmt.Sprintf("Welcome to %s", brand)
}

func (m *MainMenu) Prompt(*Session) string {
	return "Select one of the menu numbers: "
}

func (m *MainMenu) Handle(_ context.Context, s *Session, input string) Transition {
	switch input {
	case "1":
		return open(NewJobsPage(m.svc.Scheduler))
	case "2":
		return open(NewJobWizard(m.svc.Scheduler, m.svc.Clipboard))
	case "3":
		return open(NewHelpPage(m.svc.Markdown, m.svc.DocsURL))
	case "4":
		return Transition{Action: Quit}
	default:
		s.Messages.Error(wrongInput)
		return stay()
	}
}

// brandPrompt is the prompt suffix used on the inner pages.
func brandPrompt(st ui.Styles) string {
	return st.Brand.Render(RootLabel)
}
