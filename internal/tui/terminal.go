// Package tui reads command lines and answers from a tcell screen.
package tui

import (
	"context"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/hexview/internal/logger"
)

// Anchor reports where the command input starts on screen.
type Anchor interface {
	InputPos() (x, y int)
}

// Terminal is the interactive input side of a session.
type Terminal struct {
	s      tcell.Screen
	anchor Anchor
	line   *lineEditor
	redraw func()
	styles func() (input, alert tcell.Style)
}

func New(s tcell.Screen, anchor Anchor) *Terminal {
	return &Terminal{
		s:      s,
		anchor: anchor,
		line:   newLineEditor(),
	}
}

// SetRedraw installs the callback used to repaint the page after a resize.
func (t *Terminal) SetRedraw(fn func()) { t.redraw = fn }

// SetStyles installs the lookup for the input and alert styles. It is
// consulted on every draw so colour toggles apply at once.
func (t *Terminal) SetStyles(fn func() (input, alert tcell.Style)) { t.styles = fn }

func (t *Terminal) currentStyles() (input, alert tcell.Style) {
	if t.styles == nil {
		return tcell.StyleDefault, tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
	return t.styles()
}

// History returns the lines entered so far, oldest first.
func (t *Terminal) History() []string {
	return append([]string(nil), t.line.history...)
}

// ReadLine edits one line at the anchor and returns it on Enter. Ctrl-C, and
// Ctrl-D on an empty line, close the input with io.EOF.
func (t *Terminal) ReadLine(ctx context.Context) (string, error) {
	stop := t.interruptOnDone(ctx)
	defer stop()

	t.line.reset()
	t.drawInput()
	for {
		ev := t.s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return "", io.EOF
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return "", err
			}
		case *tcell.EventResize:
			t.s.Sync()
			if t.redraw != nil {
				t.redraw()
			}
			t.drawInput()
		case *tcell.EventKey:
			switch t.line.handleKey(ev) {
			case actionSubmit:
				line := t.line.String()
				logger.Debug("command entered", "line", line)
				return line, nil
			case actionClose:
				return "", io.EOF
			}
			t.drawInput()
		}
	}
}

// Confirm shows prompt on the line below the input and waits for one key.
// Only y or Y answers yes. A cancelled ctx declines.
func (t *Terminal) Confirm(ctx context.Context, prompt string) bool {
	stop := t.interruptOnDone(ctx)
	defer stop()

	_, y := t.anchor.InputPos()
	_, alert := t.currentStyles()
	t.clearLine(0, y+1)
	end := t.drawText(0, y+1, prompt, alert)
	t.s.ShowCursor(end, y+1)
	t.s.Show()
	for {
		switch ev := t.s.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				logger.Debug("confirm cancelled", "prompt", prompt)
				return false
			}
		case *tcell.EventResize:
			t.s.Sync()
		case *tcell.EventKey:
			ok := ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y')
			logger.Debug("confirm", "prompt", prompt, "answer", ok)
			return ok
		}
	}
}

// Help shows lines on a cleared screen until a key is pressed or ctx ends.
func (t *Terminal) Help(ctx context.Context, lines []string) error {
	stop := t.interruptOnDone(ctx)
	defer stop()

	draw := func() {
		_, alert := t.currentStyles()
		t.s.Clear()
		t.s.HideCursor()
		_, h := t.s.Size()
		y := 0
		for _, l := range lines {
			if y >= h-1 {
				break
			}
			t.drawText(0, y, l, tcell.StyleDefault)
			y++
		}
		t.drawText(0, h-1, "Press any key to continue...", alert)
		t.s.Show()
	}
	draw()
	for {
		switch t.s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
		case *tcell.EventResize:
			t.s.Sync()
			draw()
		case *tcell.EventKey:
			return nil
		}
	}
}

func (t *Terminal) Bell() {
	if err := t.s.Beep(); err != nil {
		logger.Debug("beep failed", "error", err)
	}
}

func (t *Terminal) interruptOnDone(ctx context.Context) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = t.s.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
		case <-done:
		}
	}()
	return func() { close(done) }
}

func (t *Terminal) drawInput() {
	x0, y := t.anchor.InputPos()
	w, _ := t.s.Size()
	avail := w - x0
	if avail < 1 {
		avail = 1
	}
	runes := t.line.buf
	cursor := t.line.cursor
	start := 0
	if cursor > avail-1 {
		start = cursor - avail + 1
	}
	input, _ := t.currentStyles()
	t.clearLine(x0, y)
	x := x0
	for _, ru := range runes[start:] {
		if x >= w {
			break
		}
		t.s.SetContent(x, y, ru, nil, input)
		x += cellWidth(ru)
	}
	cx := x0
	for _, ru := range runes[start:cursor] {
		cx += cellWidth(ru)
	}
	if cx >= w {
		cx = w - 1
	}
	t.s.ShowCursor(cx, y)
	t.s.Show()
}

func (t *Terminal) clearLine(x, y int) {
	w, _ := t.s.Size()
	for ; x < w; x++ {
		t.s.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) int {
	w, _ := t.s.Size()
	for _, ru := range text {
		if x >= w {
			break
		}
		t.s.SetContent(x, y, ru, nil, style)
		x += cellWidth(ru)
	}
	return x
}

func cellWidth(ru rune) int {
	if w := runewidth.RuneWidth(ru); w > 0 {
		return w
	}
	return 1
}
