package page

import (
	"context"
	"fmt"
)

const HelpTitle = "Help"

const helpText = `# Getting around

Every screen shows a numbered menu. Type a number and press **Enter**.

| Screen | What it does |
|---|---|
| Current running jobs | Lists your jobs from %[1]s. Refresh re-reads the queue, cancel asks for a job ID. |
| Submit a job | Asks for cores, memory, time and a batch script, then submits it. |

In the submission steps, **Q** returns to the main menu and **Z** goes back one step.

For more help, visit %[2]s
`

type HelpPage struct {
	md      Renderer
	docsURL string
}

func NewHelpPage(md Renderer, docsURL string) *HelpPage {
	return &HelpPage{md: md, docsURL: docsURL}
}

func (p *HelpPage) Title() string { return HelpTitle }

func (p *HelpPage) Load(context.Context, *Session) {}

func (p *HelpPage) View(*Session) string {
	text := fmt.Sprintf(helpText, "`squeue`", p.docsURL)
	if p.md == nil {
		return text
	}
	return p.md.Render(text)
}

func (p *HelpPage) Prompt(*Session) string {
	return "Press Enter to go back "
}

func (p *HelpPage) Handle(context.Context, *Session, string) Transition {
	return back()
}
