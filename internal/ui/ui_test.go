package ui_test

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bubu-hpc/bubu/internal/scheduler"
	"github.com/bubu-hpc/bubu/internal/ui"
)

func TestJobTable_ColumnsAlign(t *testing.T) {
	jobs := []scheduler.Job{
		{ID: "32760913", Owner: "trmshk", State: "RUNNING", TimeUsed: "42:55", TimeLeft: "4:17:05", Nodes: 1, Memory: "64G", CPUs: 12},
		{ID: "7", Owner: "a", State: "PENDING", TimeUsed: "0:00", TimeLeft: "UNLIMITED", Nodes: 10, Memory: "1G", CPUs: 1},
	}

	out := ui.JobTable(jobs, ui.NewStyles())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "JobID    | User   | State   | TimeUsed | TimeLeft  | Nodes | Memory | CPUs"), lines[0])
	assert.Equal(t, strings.Repeat("-", len(strings.TrimRight(lines[0], " "))), lines[1])
	assert.Equal(t, "32760913 | trmshk | RUNNING | 42:55    | 4:17:05   | 1     | 64G    | 12", lines[2])
	assert.Equal(t, "7        | a      | PENDING | 0:00     | UNLIMITED | 10    | 1G     | 1", lines[3])
}

func TestJobTable_Empty(t *testing.T) {
	out := ui.JobTable(nil, ui.NewStyles())
	assert.Contains(t, out, "JobID | User | State | TimeUsed | TimeLeft | Nodes | Memory | CPUs")
	assert.Contains(t, out, "No jobs in the queue.")
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    ui.Theme
		wantErr bool
	}{
		{in: "", want: ui.ThemeAuto},
		{in: "Auto", want: ui.ThemeAuto},
		{in: " dark ", want: ui.ThemeDark},
		{in: "LIGHT", want: ui.ThemeLight},
		{in: "none", want: ui.ThemeNone},
		{in: "solarized", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ui.ParseTheme(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkdown_NoneThemeIsPassthrough(t *testing.T) {
	md := ui.NewMarkdown(ui.ThemeNone, 80)
	assert.Equal(t, "# Help\n", md.Render("# Help\n"))
}

func TestMarkdown_RendersText(t *testing.T) {
	md := ui.NewMarkdown(ui.ThemeDark, 80)
	out := md.Render("# Help\n\nVisit the docs.\n")
	assert.Contains(t, out, "docs")
}

func TestClearScreen(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("cls writes to the console directly")
	}
	var buf bytes.Buffer
	require.NoError(t, ui.ClearScreen(&buf))
	assert.Contains(t, buf.String(), "\x1b[2J")
}

func TestTab(t *testing.T) {
	assert.Equal(t, "", ui.Tab(0))
	assert.Equal(t, "    ", ui.Tab(2))
}
