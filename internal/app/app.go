package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/kobzarvs/hexview/internal/buffer"
	"github.com/kobzarvs/hexview/internal/bytesource"
	"github.com/kobzarvs/hexview/internal/config"
	"github.com/kobzarvs/hexview/internal/logger"
	"github.com/kobzarvs/hexview/internal/render"
	"github.com/kobzarvs/hexview/internal/tui"
	"github.com/kobzarvs/hexview/internal/viewer"
)

const Version = "0.1.0"

// App is the top-level runtime for hexview.
type App struct {
	args   []string
	stdout io.Writer
	stderr io.Writer

	isTerminal func() bool
}

func New(args []string) *App {
	return &App{
		args:   args,
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

func (a *App) Run() error {
	opts, err := parseArgs(a.args)
	if err != nil {
		return fmt.Errorf("%w\n%s", err, usage)
	}
	if opts.help {
		fmt.Fprint(a.stdout, usage)
		return nil
	}
	if opts.version {
		fmt.Fprintln(a.stdout, "hexview", Version)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(opts.debug); err != nil {
		// Logging is optional; the helpers are no-ops without it.
		fmt.Fprintln(a.stderr, "hexview: logging disabled:", err)
	}
	defer logger.Close()

	path := opts.path
	if path == "" {
		if path, err = os.Executable(); err != nil {
			return fmt.Errorf("no file given and cannot locate own executable: %w", err)
		}
	}

	src := bytesource.NewFileSource(bytesource.Options{
		Unlimited:   cfg.Viewer.UnlimitedFileSize,
		ChunkSize:   cfg.Viewer.ChunkSize,
		MaxFileSize: cfg.Viewer.MaxFileSize,
		RowWidth:    cfg.Viewer.RowWidth,
		PageHeight:  cfg.Viewer.PageHeight,
	})
	buf, err := src.Load(path)
	if err != nil {
		return err
	}

	settings := viewer.SettingsFromConfig(cfg.Viewer)
	settings.Raw = opts.raw
	if !a.isTerminal() {
		// Piped output gets plain rows.
		settings.Raw = true
		settings.Colorize = false
	}
	theme := render.NewTheme(cfg.Theme)
	layout := render.LayoutFromConfig(cfg.Viewer)
	logger.Info("starting", "path", path, "bytes", buf.Len(), "raw", settings.Raw)

	if settings.Raw {
		v := viewer.New(buf, src, settings)
		return viewer.Dump(v, render.NewText(a.stdout, theme, layout))
	}
	return a.runInteractive(buf, src, settings, theme, layout)
}

func (a *App) runInteractive(buf *buffer.Buffer, src bytesource.Source, settings viewer.Settings, theme render.Theme, layout render.Layout) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen := render.NewScreen(s, theme, layout)
	t := tui.New(s, screen)
	v := viewer.New(buf, src, settings, viewer.WithConfirm(func(prompt string) bool {
		return t.Confirm(ctx, prompt)
	}))
	t.SetRedraw(func() { _ = screen.Render(v.Snapshot()) })
	t.SetStyles(func() (tcell.Style, tcell.Style) {
		colorize := v.Settings().Colorize
		return theme.Style(render.RoleCommand, colorize), theme.Style(render.RoleAlert, colorize)
	})

	err = viewer.NewSession(v, screen, t).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
