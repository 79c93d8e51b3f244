package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/bubu-hpc/bubu/internal/config"
	"github.com/bubu-hpc/bubu/internal/logger"
	"github.com/bubu-hpc/bubu/internal/page"
	"github.com/bubu-hpc/bubu/internal/scheduler"
	"github.com/bubu-hpc/bubu/internal/tui"
	"github.com/bubu-hpc/bubu/internal/ui"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	theme      string
	plain      bool
	verbose    int
}

// app is everything one invocation needs, built from config and flags.
type app struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	client *scheduler.Client
	env    config.Environment
	theme  ui.Theme
}

func newApp(opts *globalOptions, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.theme != "" {
		cfg.UI.Theme = opts.theme
	}
	if opts.plain {
		cfg.UI.Plain = true
	}
	theme, err := ui.ParseTheme(cfg.UI.Theme)
	if err != nil {
		return nil, errors.Wrap(err, "--theme")
	}

	level := cfg.Log.Level
	if opts.verbose > 0 {
		level = "debug"
	}
	log, logErr := logger.NewOrNop(cfg.Log.File, level)
	if logErr != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", logErr)
	}

	runner := scheduler.NewExecRunner(cfg.Scheduler.Timeout, log)
	client, err := scheduler.NewClient(runner, cfg.Commands(), cfg.Scheduler.User)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		log:    log,
		client: client,
		env:    config.DetectEnvironment(os.Getenv, cfg.Cluster.Name),
		theme:  theme,
	}
	log.Debugw("starting",
		"user", cfg.Scheduler.User,
		"cluster", a.env.Cluster,
		"timeout", cfg.Scheduler.Timeout,
		"plain", cfg.UI.Plain)
	return a, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// runMenu shows the interactive menu. A terminal on both ends gets the
// bubbletea program; pipes and --plain get the line console.
func (a *app) runMenu(ctx context.Context, in io.Reader, out io.Writer) error {
	st := ui.NewStyles()
	session := page.NewSession(a.env, st, a.log)
	flow := page.NewFlow(session, page.NewMainMenu(page.Services{
		Scheduler: a.client,
		Markdown:  ui.NewMarkdown(a.theme, 80),
		DocsURL:   a.cfg.UI.DocsURL,
		Clipboard: copyToClipboard,
	}))

	if !a.cfg.UI.Plain && isTerminal(in) && isTerminal(out) {
		a.log.Debugw("using full screen frontend")
		return tui.Run(ctx, flow, st, tea.WithInput(in), tea.WithOutput(out))
	}
	session.Busy = page.ConsoleBusy(out, st)
	return page.Run(ctx, flow, in, out)
}

func copyToClipboard(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported")
	}
	return clipboard.WriteAll(text)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
