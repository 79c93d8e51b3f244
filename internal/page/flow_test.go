package page

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bubu-hpc/bubu/internal/config"
	"github.com/bubu-hpc/bubu/internal/nav"
)

func newMenuFlow(t *testing.T) *Flow {
	t.Helper()
	return NewFlow(newSession(t), NewMainMenu(Services{
		Scheduler: newClient(t, &slurm{}),
		Markdown:  passthrough{},
		DocsURL:   "https://docs.example.org",
	}))
}

func TestMainMenuFrame(t *testing.T) {
	flow := newMenuFlow(t)
	frame := flow.Cycle(context.Background())

	assert.Equal(t, RootLabel, frame.Breadcrumb)
	assert.Contains(t, frame.Body, "Welcome to Bubu\n")
	for _, item := range []string{"1. Current running jobs", "2. Submit a job", "3. Need more help?", "4. Exit"} {
		assert.Contains(t, frame.Body, item)
	}
	assert.Equal(t, "Select one of the menu numbers: ", frame.Prompt)
	assert.Empty(t, frame.Messages)
}

func TestMainMenuWelcomeOnComputeCanada(t *testing.T) {
	flow := newMenuFlow(t)
	flow.Session().Env = config.Environment{ComputeCanada: true, Cluster: "cedar"}
	frame := flow.Cycle(context.Background())
	assert.Contains(t, frame.Body, "Welcome to Bubu on Compute Canada(cedar node)")
}

func TestMainMenuWrongInput(t *testing.T) {
	ctx := context.Background()
	flow := newMenuFlow(t)
	for _, in := range []string{"", "0", "5", "jobs"} {
		flow.Cycle(ctx)
		assert.False(t, flow.Submit(ctx, in))
		frame := flow.Cycle(ctx)
		assert.Equal(t, []string{wrongInput}, texts(frame.Messages), "input %q", in)
		assert.IsType(t, &MainMenu{}, flow.Current())
	}
}

func TestMainMenuExit(t *testing.T) {
	flow := newMenuFlow(t)
	flow.Cycle(context.Background())
	assert.True(t, flow.Submit(context.Background(), " 4 "))
	assert.True(t, flow.Done())
	assert.Nil(t, flow.Current())
	assert.Equal(t, Frame{}, flow.Cycle(context.Background()))
}

func TestHelpPage(t *testing.T) {
	ctx := context.Background()
	flow := newMenuFlow(t)
	flow.Cycle(ctx)
	flow.Submit(ctx, "3")

	frame := flow.Cycle(ctx)
	assert.Equal(t, "Bubu ≫ Help", frame.Breadcrumb)
	assert.Contains(t, frame.Body, "For more help, visit https://docs.example.org")
	assert.Equal(t, "Press Enter to go back ", frame.Prompt)

	flow.Submit(ctx, "")
	assert.IsType(t, &MainMenu{}, flow.Current())
	assert.Equal(t, []string{RootLabel}, flow.Session().Nav.Labels())
}

func TestFrameRender(t *testing.T) {
	st := newSession(t).Styles
	frame := Frame{
		Breadcrumb: "Bubu",
		Body:       "body",
		Messages: []nav.Message{
			{Level: nav.LevelError, Text: "first"},
			{Level: nav.LevelSuccess, Text: "second"},
		},
		Prompt: "> ",
	}
	want := "Bubu\n" + strings.Repeat("-", 80) + "\nbody\nBubu: first\nBubu: second\n"
	assert.Equal(t, want, frame.Render(st))
}

func TestRunConsole(t *testing.T) {
	flow := newMenuFlow(t)
	var out bytes.Buffer
	err := Run(context.Background(), flow, strings.NewReader("9\n3\n\n4\n"), &out)
	require.NoError(t, err)
	assert.True(t, flow.Done())

	text := out.String()
	assert.Contains(t, text, "Bubu: "+wrongInput)
	assert.Contains(t, text, "Press Enter to go back ")
	assert.Equal(t, 3, strings.Count(text, "Select one of the menu numbers: "))
}

func TestRunConsoleEndOfInput(t *testing.T) {
	flow := newMenuFlow(t)
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), flow, strings.NewReader("1"), &out))
	assert.IsType(t, &JobsPage{}, flow.Current())
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestRunConsoleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, newMenuFlow(t), strings.NewReader("4\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsoleBusy(t *testing.T) {
	var out bytes.Buffer
	done := ConsoleBusy(&out, newSession(t).Styles)("Fetching jobs")
	done()
	assert.Contains(t, out.String(), "Hang on! Bubu is working ...")
	assert.Contains(t, out.String(), "Fetching jobs")
}
