// Package render formats buffer pages, headers and prompts, and draws them on
// a tcell screen or a plain writer.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/charmap"

	"github.com/kobzarvs/hexview/internal/config"
	"github.com/kobzarvs/hexview/internal/viewer"
)

// Role tags a piece of text with its meaning so each renderer can pick a style.
type Role int

const (
	RoleText Role = iota
	RoleOffset
	RoleCurrent
	RolePrintable
	RoleNonPrintable
	RoleZero
	RoleFilename
	RolePage
	RoleCharset
	RoleValue
	RoleRow
	RoleCommand
	RoleEmphasis
	RoleAlert
)

type Segment struct {
	Text string
	Role Role
}

type Line []Segment

func (l Line) String() string {
	var b strings.Builder
	for _, seg := range l {
		b.WriteString(seg.Text)
	}
	return b.String()
}

func (l *Line) add(role Role, format string, args ...interface{}) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	*l = append(*l, Segment{Text: text, Role: role})
}

const (
	DefaultGroupSize     = 4
	DefaultFilenameWidth = 11
)

// Layout holds the formatting knobs that do not affect navigation.
type Layout struct {
	GroupSize     int
	FilenameWidth int
}

func LayoutFromConfig(opts config.ViewerOptions) Layout {
	return Layout{GroupSize: opts.GroupSize, FilenameWidth: opts.FilenameWidth}.normalized()
}

func (l Layout) normalized() Layout {
	if l.GroupSize <= 0 {
		l.GroupSize = DefaultGroupSize
	}
	if l.FilenameWidth <= 0 {
		l.FilenameWidth = DefaultFilenameWidth
	}
	return l
}

func (l Layout) groupGap(i int) bool {
	return i != 0 && i%l.GroupSize == 0
}

// hexWidth is the width of the grouped hex column for a full row.
func (l Layout) hexWidth(rowWidth int) int {
	return 3*rowWidth + (rowWidth-1)/l.GroupSize
}

// HeaderLines returns the column index line and the separator line.
func HeaderLines(snap viewer.Snapshot, lay Layout) []Line {
	lay = lay.normalized()
	width := snap.Buffer.RowWidth()
	curCol := -1
	if snap.Cursor >= 0 {
		curCol = snap.Cursor % width
	}

	var idx Line
	idx.add(RoleOffset, " %-8s ", "OFFSET")
	for i := 0; i < width; i++ {
		if lay.groupGap(i) {
			idx.add(RoleText, " ")
		}
		if i == curCol {
			idx.add(RoleCurrent, "%X* ", i)
		} else {
			idx.add(RoleOffset, "%-2X ", i)
		}
	}
	idx.add(RoleText, " ")
	for i := 0; i < width; i++ {
		if i == curCol {
			idx.add(RoleCurrent, "*")
		} else {
			idx.add(RoleOffset, "%X", i)
		}
	}

	var sep Line
	sep.add(RoleText, " ")
	sep.add(RoleOffset, strings.Repeat("-", lay.hexWidth(width)+8))
	sep.add(RoleText, "  ")
	sep.add(RoleOffset, strings.Repeat("-", width))
	return []Line{idx, sep}
}

// RowLine formats one buffer row. A negative cursor marks nothing.
func RowLine(snap viewer.Snapshot, row int, lay Layout) Line {
	lay = lay.normalized()
	b := snap.Buffer
	width := b.RowWidth()
	data := b.Row(row)
	start := row * width
	current := snap.Cursor >= 0 && !b.Empty() && row == b.RowOfByte(snap.Cursor)

	var line Line
	if current {
		line.add(RoleCurrent, "*%08X ", start)
	} else {
		line.add(RoleOffset, " %08X ", start)
	}
	for i := 0; i < width; i++ {
		if lay.groupGap(i) {
			line.add(RoleText, " ")
		}
		if i >= len(data) {
			line.add(RoleText, "   ")
			continue
		}
		line.add(byteRole(data[i], snap.Settings.Charset, start+i == snap.Cursor), "%02X ", data[i])
	}
	line.add(RoleText, " ")
	for i, c := range data {
		line.add(byteRole(c, snap.Settings.Charset, start+i == snap.Cursor), "%c", CharOf(c, snap.Settings.Charset))
	}
	return line
}

// PageLines formats height rows starting at the cursor row, padding with
// blank lines past the end of the buffer.
func PageLines(snap viewer.Snapshot, lay Layout, height int) []Line {
	b := snap.Buffer
	lines := make([]Line, 0, height)
	first := 0
	if !b.Empty() {
		first = b.RowOfByte(snap.Cursor)
	}
	for row := first; row < b.RowCount() && len(lines) < height; row++ {
		lines = append(lines, RowLine(snap, row, lay))
	}
	for len(lines) < height {
		lines = append(lines, nil)
	}
	return lines
}

// PromptLines returns the file summary line and the cursor detail line.
// The detail line ends where the command input starts.
func PromptLines(snap viewer.Snapshot, lay Layout) []Line {
	lay = lay.normalized()
	b := snap.Buffer

	var info Line
	info.add(RoleFilename, " %s ", TruncateName(b.Name(), lay.FilenameWidth))
	info.add(RoleText, ":")
	info.add(RoleFilename, " %s :", SizeMb(b.Len()))
	info.add(RoleFilename, " %d rows ", b.RowCount())
	info.add(RoleText, "|")
	if b.Empty() {
		info.add(RolePage, " Pg:0/0 ")
	} else {
		info.add(RolePage, " Pg:%d/%d ", 1+b.PageOfRow(b.RowOfByte(snap.Cursor)), b.PageCount())
	}
	info.add(RoleText, "|")
	info.add(RoleCharset, " %s ", snap.Settings.Charset)

	var detail Line
	if b.Empty() {
		detail.add(RoleValue, " empty file ")
	} else {
		bt := snap.Cursor
		c := b.At(bt)
		detail.add(RoleValue, " %d=%x/%X ", bt, bt, b.Len()-1)
		detail.add(RoleRow, "[%x] ", b.RowOfByte(bt))
		detail.add(RoleText, "|")
		detail.add(RoleValue, " d:%d %d ", c, int8(c))
		detail.add(RoleText, "|")
		detail.add(RoleValue, " o:%o ", c)
		detail.add(RoleText, "|")
		detail.add(RoleValue, " %s ", Bitstring(c))
	}
	detail.add(RoleText, "|")
	detail.add(RoleCommand, " %s ", snap.PrevCommand)
	detail.add(RoleEmphasis, ": ")
	return []Line{info, detail}
}

// StatusLine is empty when there is nothing to report.
func StatusLine(snap viewer.Snapshot) Line {
	if snap.Status == "" {
		return nil
	}
	return Line{{Text: " " + snap.Status, Role: RoleAlert}}
}

// Printable reports whether c is shown as itself in the character column.
// The extended set covers everything above the control range except DEL.
func Printable(c byte, cs viewer.Charset) bool {
	if cs == viewer.CharsetExtended {
		return c > 0x1f && c != 0x7f
	}
	return c >= 0x20 && c < 0x7f
}

// CharOf maps a byte to its glyph, using code page 437 for the upper half of
// the extended set and '.' for anything not printable.
func CharOf(c byte, cs viewer.Charset) rune {
	if !Printable(c, cs) {
		return '.'
	}
	if c >= 0x80 {
		return charmap.CodePage437.DecodeByte(c)
	}
	return rune(c)
}

func byteRole(c byte, cs viewer.Charset, current bool) Role {
	switch {
	case current:
		return RoleCurrent
	case Printable(c, cs):
		return RolePrintable
	case c == 0:
		return RoleZero
	default:
		return RoleNonPrintable
	}
}

func Bitstring(c byte) string {
	return fmt.Sprintf("%08b", c)
}

func SizeMb(n int) string {
	return fmt.Sprintf("%.3f Mb", float64(n)/(1024*1024))
}

// TruncateName keeps the last width display cells of name and marks the cut
// with a leading "...".
func TruncateName(name string, width int) string {
	if width <= 0 || runewidth.StringWidth(name) <= width {
		return name
	}
	runes := []rune(name)
	cells := 0
	i := len(runes)
	for i > 0 {
		w := runewidth.RuneWidth(runes[i-1])
		if cells+w > width {
			break
		}
		cells += w
		i--
	}
	return "..." + string(runes[i:])
}
