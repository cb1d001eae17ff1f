package viewer

import (
	"context"
	"errors"
	"io"

	"github.com/kobzarvs/hexview/internal/command"
	"github.com/kobzarvs/hexview/internal/logger"
)

// Renderer draws the current view state.
type Renderer interface {
	Render(snap Snapshot) error
}

// Terminal is the interactive side of a session: it reads command lines,
// shows the help screen and rings the bell. ReadLine returns io.EOF when the
// user closes the input.
type Terminal interface {
	ReadLine(ctx context.Context) (string, error)
	Help(ctx context.Context, lines []string) error
	Bell()
}

// Dumper writes every row of a buffer in one go, without interaction.
type Dumper interface {
	Dump(snap Snapshot) error
}

// Session runs the read, execute, render cycle until quit or end of input.
type Session struct {
	viewer   *Viewer
	renderer Renderer
	term     Terminal
}

func NewSession(v *Viewer, r Renderer, t Terminal) *Session {
	return &Session{viewer: v, renderer: r, term: t}
}

func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.renderer.Render(s.viewer.Snapshot()); err != nil {
			return err
		}
		line, err := s.term.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			logger.Debug("input closed")
			return nil
		}
		if err != nil {
			return err
		}
		out := s.viewer.Execute(line)
		if out.Quit {
			return nil
		}
		if out.Alert {
			s.term.Bell()
		}
		if out.Help {
			if err := s.term.Help(ctx, command.HelpLines()); err != nil {
				return err
			}
		}
	}
}

// Dump renders the whole buffer once, as raw mode does.
func Dump(v *Viewer, d Dumper) error {
	snap := v.Snapshot()
	logger.Debug("raw dump", "name", snap.Buffer.Name(), "rows", snap.Buffer.RowCount())
	return d.Dump(snap)
}
