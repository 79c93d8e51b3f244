package ui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/bubu-hpc/bubu/internal/scheduler"
)

var jobHeaders = []string{"JobID", "User", "State", "TimeUsed", "TimeLeft", "Nodes", "Memory", "CPUs"}

const (
	columnSep = " | "
	stateCol  = 2
)

func jobCells(job scheduler.Job) []string {
	return []string{
		job.ID,
		job.Owner,
		string(job.State),
		job.TimeUsed,
		job.TimeLeft,
		strconv.Itoa(job.Nodes),
		job.Memory,
		strconv.Itoa(job.CPUs),
	}
}

// JobTable lays the jobs out in left-aligned columns sized to the widest
// cell. Widths are measured before styling so escape codes do not count.
func JobTable(jobs []scheduler.Job, st Styles) string {
	widths := make([]int, len(jobHeaders))
	for i, h := range jobHeaders {
		widths[i] = runewidth.StringWidth(h)
	}
	rows := make([][]string, len(jobs))
	for r, job := range jobs {
		rows[r] = jobCells(job)
		for i, cell := range rows[r] {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	header := make([]string, len(jobHeaders))
	for i, h := range jobHeaders {
		header[i] = runewidth.FillRight(h, widths[i])
	}
	headerRow := strings.Join(header, columnSep)

	var b strings.Builder
	b.WriteString(st.TableHeader.Render(headerRow))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", runewidth.StringWidth(headerRow)))
	b.WriteByte('\n')
	for r, job := range jobs {
		cells := make([]string, len(rows[r]))
		for i, cell := range rows[r] {
			padded := runewidth.FillRight(cell, widths[i])
			if i == stateCol {
				cells[i] = st.State(job.State).Render(padded)
			} else {
				cells[i] = st.TableCell.Render(padded)
			}
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, columnSep), " "))
		b.WriteByte('\n')
	}
	if len(jobs) == 0 {
		b.WriteString(Tab(1) + st.Hint.Render("No jobs in the queue."))
		b.WriteByte('\n')
	}
	return b.String()
}
