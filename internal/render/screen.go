package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/hexview/internal/viewer"
)

// chromeLines counts the header, prompt and status lines around the page.
const chromeLines = 5

// Screen draws snapshots on a tcell screen. The command input belongs at
// InputPos, right after the second prompt line.
type Screen struct {
	s      tcell.Screen
	theme  Theme
	layout Layout

	inputX, inputY int
}

func NewScreen(s tcell.Screen, theme Theme, layout Layout) *Screen {
	return &Screen{s: s, theme: theme, layout: layout.normalized()}
}

func (r *Screen) Render(snap viewer.Snapshot) error {
	colorize := snap.Settings.Colorize
	r.s.SetStyle(r.theme.Style(RoleText, colorize))
	r.s.Clear()
	_, h := r.s.Size()

	y := 0
	for _, line := range HeaderLines(snap, r.layout) {
		r.drawLine(0, y, line, colorize)
		y++
	}
	// Small terminals show fewer rows than a page.
	rows := snap.Buffer.PageHeight()
	if avail := h - chromeLines; avail < rows {
		rows = avail
	}
	if rows < 0 {
		rows = 0
	}
	for _, line := range PageLines(snap, r.layout, rows) {
		r.drawLine(0, y, line, colorize)
		y++
	}
	prompt := PromptLines(snap, r.layout)
	r.drawLine(0, y, prompt[0], colorize)
	y++
	r.inputX = r.drawLine(0, y, prompt[1], colorize)
	r.inputY = y
	y++
	r.drawLine(0, y, StatusLine(snap), colorize)

	r.s.Show()
	return nil
}

// InputPos is where the command line starts, as of the last Render.
func (r *Screen) InputPos() (int, int) {
	return r.inputX, r.inputY
}

func (r *Screen) drawLine(x, y int, line Line, colorize bool) int {
	w, h := r.s.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, seg := range line {
		style := r.theme.Style(seg.Role, colorize)
		for _, ru := range seg.Text {
			if x >= w {
				return x
			}
			r.s.SetContent(x, y, ru, nil, style)
			cw := runewidth.RuneWidth(ru)
			if cw <= 0 {
				cw = 1
			}
			x += cw
		}
	}
	return x
}
