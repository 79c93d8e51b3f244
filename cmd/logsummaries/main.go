package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

// commandRun is one scheduler command recorded in the bubu log.
type commandRun struct {
	Timestamp time.Time
	Session   string
	Program   string
	ExitCode  int
	Duration  time.Duration
	TimedOut  bool
	NoStart   bool
	Line      int
}

type commandStats struct {
	Program     string   `json:"program"`
	Runs        int      `json:"runs"`
	Failures    int      `json:"failures"`
	Timeouts    int      `json:"timeouts"`
	StartErrors int      `json:"start_errors"`
	MedianMs    float64  `json:"median_ms"`
	MaxMs       float64  `json:"max_ms"`
	Anomalies   []string `json:"anomalies,omitempty"`
}

type sessionSummary struct {
	Session   string         `json:"session"`
	StartLine int            `json:"start_line"`
	EndLine   int            `json:"end_line"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	Commands  []commandStats `json:"commands"`
}

type logReport struct {
	RunID        string           `json:"run_id"`
	Source       string           `json:"source"`
	Sessions     []sessionSummary `json:"sessions"`
	FinalSummary []commandStats   `json:"final_summary"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "logsummaries: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		slow       time.Duration
	)
	cmd := &cobra.Command{
		Use:           "logsummaries",
		Short:         "Summarize scheduler command runs from a bubu log file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if slow <= 0 {
				return errors.New("--slow must be positive")
			}
			runs, err := parseLogFile(inputPath)
			if err != nil {
				return errors.Wrap(err, "parse log")
			}
			report := buildReport(inputPath, runs, slow)

			encoded, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return errors.Wrap(err, "encode report")
			}
			if outputPath == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return err
			}
			return errors.Wrap(os.WriteFile(outputPath, append(encoded, '\n'), 0o644), "write output")
		},
	}
	cmd.Flags().StringVar(&inputPath, "in", "", "input log file path (required)")
	cmd.Flags().StringVar(&outputPath, "out", "", "output JSON path (optional, defaults to stdout)")
	cmd.Flags().DurationVar(&slow, "slow", 5*time.Second, "runs slower than this are reported as anomalies")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func parseLogFile(path string) ([]commandRun, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseLog(file)
}

// logEntry holds the fields the exec runner writes.
type logEntry struct {
	Timestamp string  `json:"ts"`
	Message   string  `json:"msg"`
	Session   string  `json:"session"`
	Command   string  `json:"command"`
	ExitCode  *int    `json:"exit_code"`
	Duration  float64 `json:"duration"`
}

// parseLog picks the command outcome entries out of a JSON lines log.
// Lines that are not JSON are ignored.
func parseLog(r io.Reader) ([]commandRun, error) {
	var (
		scanner = bufio.NewScanner(r)
		lineNo  = 0
		runs    []commandRun
	)
	scanner.Buffer(make([]byte, 0, 256*1024), 16*1024*1024)

	for scanner.Scan() {
		lineNo++
		var entry logEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		run := commandRun{
			Timestamp: parseTimestamp(entry.Timestamp),
			Session:   entry.Session,
			Program:   programOf(entry.Command),
			Line:      lineNo,
		}
		switch entry.Message {
		case "command finished":
			if entry.ExitCode != nil {
				run.ExitCode = *entry.ExitCode
			}
			// zap writes durations as float seconds.
			run.Duration = time.Duration(entry.Duration * float64(time.Second))
		case "command timed out":
			run.TimedOut = true
			run.ExitCode = -1
		case "command failed to start":
			run.NoStart = true
			run.ExitCode = -1
		default:
			continue
		}
		runs = append(runs, run)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

func programOf(command string) string {
	words, err := shellquote.Split(command)
	if err != nil || len(words) == 0 {
		return "unknown"
	}
	return filepath.Base(words[0])
}

func parseTimestamp(raw string) time.Time {
	candidates := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.000Z0700",
		time.RFC3339,
	}
	value := strings.TrimSpace(raw)
	for _, layout := range candidates {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func buildReport(path string, runs []commandRun, slow time.Duration) logReport {
	report := logReport{
		RunID:  deriveRunID(path),
		Source: path,
	}
	if len(runs) == 0 {
		return report
	}

	var order []string
	bySession := make(map[string][]commandRun)
	for _, run := range runs {
		if _, ok := bySession[run.Session]; !ok {
			order = append(order, run.Session)
		}
		bySession[run.Session] = append(bySession[run.Session], run)
	}

	for _, session := range order {
		segment := bySession[session]
		start, end := segment[0], segment[len(segment)-1]
		report.Sessions = append(report.Sessions, sessionSummary{
			Session:   session,
			StartLine: start.Line,
			EndLine:   end.Line,
			StartTime: start.Timestamp,
			EndTime:   end.Timestamp,
			Commands:  aggregate(segment, slow),
		})
	}
	report.FinalSummary = aggregate(runs, slow)
	return report
}

func deriveRunID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// aggregate groups runs per program, sorted by program name.
func aggregate(runs []commandRun, slow time.Duration) []commandStats {
	grouped := make(map[string][]commandRun)
	for _, run := range runs {
		grouped[run.Program] = append(grouped[run.Program], run)
	}
	programs := make([]string, 0, len(grouped))
	for program := range grouped {
		programs = append(programs, program)
	}
	sort.Strings(programs)

	out := make([]commandStats, 0, len(programs))
	for _, program := range programs {
		stats := commandStats{Program: program}
		var latency []float64
		for _, run := range grouped[program] {
			stats.Runs++
			switch {
			case run.TimedOut:
				stats.Timeouts++
			case run.NoStart:
				stats.StartErrors++
			default:
				if run.ExitCode != 0 {
					stats.Failures++
				}
				latency = append(latency, float64(run.Duration.Milliseconds()))
			}
		}
		stats.MedianMs = computeMedian(latency)
		for _, v := range latency {
			if v > stats.MaxMs {
				stats.MaxMs = v
			}
		}
		stats.Anomalies = detectAnomalies(stats, slow)
		out = append(out, stats)
	}
	return out
}

func computeMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func detectAnomalies(stats commandStats, slow time.Duration) []string {
	var out []string
	if stats.MaxMs > float64(slow.Milliseconds()) {
		out = append(out, fmt.Sprintf("slow run %.0fms", stats.MaxMs))
	}
	if stats.Timeouts > 0 {
		out = append(out, fmt.Sprintf("%d timed out", stats.Timeouts))
	}
	if stats.StartErrors > 0 {
		out = append(out, fmt.Sprintf("%s did not start %d times", stats.Program, stats.StartErrors))
	}
	return out
}
