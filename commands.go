package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bubu-hpc/bubu/internal/scheduler"
	"github.com/bubu-hpc/bubu/internal/ui"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "bubu",
		Short: "Bubu - a menu for your Slurm jobs",
		Long: `Bubu lists, cancels and submits your Slurm jobs from a numbered menu.

Run without arguments for the interactive menu. The subcommands do one
thing and exit, which suits scripts.

Examples:
  bubu                     # interactive menu
  bubu --plain             # line-by-line menu, no full screen
  bubu jobs --format json  # print your jobs as JSON
  bubu cancel 4242         # cancel job 4242`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			return a.runMenu(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is <config dir>/bubu/config.yaml)")
	flags.StringVar(&opts.theme, "theme", "", "help page theme: auto, dark, light or none")
	flags.BoolVar(&opts.plain, "plain", false, "use the line-by-line menu even on a terminal")
	flags.CountVarP(&opts.verbose, "verbose", "v", "log debug details to the log file")

	cmd.AddCommand(newJobsCmd(opts), newCancelCmd(opts), newVersionCmd())
	return cmd
}

func newJobsCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Print your current jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			snap, err := a.client.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, skipped := range snap.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %v\n", skipped)
			}
			return writeSnapshot(cmd.OutOrStdout(), snap, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	return cmd
}

func writeSnapshot(w io.Writer, snap scheduler.Snapshot, format string) error {
	switch strings.ToLower(format) {
	case "table", "":
		_, err := io.WriteString(w, ui.JobTable(snap.Jobs, ui.NewStyles()))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.WithHint(
			errors.Newf("unknown format %q", format),
			"use table, json or yaml",
		)
	}
}

func newCancelCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <job-id>",
		Short: "Cancel one of your jobs",
		Long:  "Cancel a job. The id must appear in a fresh listing of your jobs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			snap, err := a.client.List(cmd.Context())
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[0])
			if err := a.client.Cancel(cmd.Context(), id, snap.IDs()); err != nil {
				a.log.Warnw("cancel failed", "job_id", id, "error", err)
				return err
			}
			a.log.Infow("job cancelled", "job_id", id)
			fmt.Fprintf(cmd.OutOrStdout(), "Job %s cancelled successfully\n", id)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show bubu version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildInfo()
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bubu %s\n", info.Version)
			if info.Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", info.Commit)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s\nGo: %s\n", info.Platform, info.GoVersion)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "output version info as JSON")
	return cmd
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Platform  string `json:"platform"`
	GoVersion string `json:"go_version"`
}

func buildInfo() versionInfo {
	info := versionInfo{
		Version:   version,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.Commit = s.Value
			}
		}
	}
	return info
}
