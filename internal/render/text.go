package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kobzarvs/hexview/internal/viewer"
)

// Text writes rows to a plain writer, as used by raw mode.
type Text struct {
	w      io.Writer
	theme  Theme
	layout Layout
}

func NewText(w io.Writer, theme Theme, layout Layout) *Text {
	return &Text{w: w, theme: theme, layout: layout.normalized()}
}

// Dump writes every row of the buffer without header, prompt or cursor marks.
// Colour escapes are emitted only when the snapshot asks for colours.
func (t *Text) Dump(snap viewer.Snapshot) error {
	colorize := snap.Settings.Colorize
	profile := termenv.Ascii
	if colorize {
		profile = termenv.TrueColor
	}
	lr := lipgloss.NewRenderer(t.w, termenv.WithProfile(profile))
	lr.SetColorProfile(profile)

	styles := make(map[Role]lipgloss.Style)
	style := func(role Role) lipgloss.Style {
		s, ok := styles[role]
		if !ok {
			s = t.theme.Lipgloss(lr, role, colorize)
			styles[role] = s
		}
		return s
	}

	snap.Cursor = -1
	bw := bufio.NewWriter(t.w)
	var sb strings.Builder
	for row := 0; row < snap.Buffer.RowCount(); row++ {
		sb.Reset()
		for _, seg := range RowLine(snap, row, t.layout) {
			if seg.Role == RoleText {
				sb.WriteString(seg.Text)
				continue
			}
			sb.WriteString(style(seg.Role).Render(seg.Text))
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
