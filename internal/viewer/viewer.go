// Package viewer applies commands to the cursor and settings of a viewing
// session and drives the read/execute/render loop.
package viewer

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/atotto/clipboard"

	"github.com/kobzarvs/hexview/internal/buffer"
	"github.com/kobzarvs/hexview/internal/bytesource"
	"github.com/kobzarvs/hexview/internal/command"
	"github.com/kobzarvs/hexview/internal/logger"
	"github.com/kobzarvs/hexview/internal/search"
)

// ConfirmPrompt is asked before the current file is replaced by a load.
const ConfirmPrompt = "Current file will be closed, are you sure (y/N)? "

var ErrMissingFilename = errors.New("f must be followed by a filename")

// Outcome tells the session loop what to do after a command.
type Outcome struct {
	Quit   bool
	Help   bool
	Alert  bool
	Status string
	Err    error
}

// Snapshot is the read-only view state handed to renderers.
type Snapshot struct {
	Buffer      *buffer.Buffer
	Cursor      int
	Settings    Settings
	PrevCommand string
	Status      string
}

type Option func(*Viewer)

// WithConfirm installs the yes/no question asked before a load replaces the
// current file. Without it loads proceed unasked.
func WithConfirm(fn func(prompt string) bool) Option {
	return func(v *Viewer) { v.confirm = fn }
}

// WithClipboard replaces the system clipboard writer used by the copy command.
func WithClipboard(fn func(text string) error) Option {
	return func(v *Viewer) { v.copyText = fn }
}

// Viewer owns the buffer, cursor, settings and command history of a session.
type Viewer struct {
	buf      *buffer.Buffer
	cursor   int
	settings Settings
	prev     string
	status   string

	source   bytesource.Source
	confirm  func(prompt string) bool
	copyText func(text string) error
}

func New(buf *buffer.Buffer, source bytesource.Source, settings Settings, opts ...Option) *Viewer {
	if buf == nil {
		buf = buffer.New("", nil, 0, 0)
	}
	v := &Viewer{
		buf:      buf,
		settings: settings,
		source:   source,
		copyText: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Viewer) Buffer() *buffer.Buffer { return v.buf }
func (v *Viewer) Cursor() int            { return v.cursor }
func (v *Viewer) Settings() Settings     { return v.settings }
func (v *Viewer) PrevCommand() string    { return v.prev }
func (v *Viewer) Status() string         { return v.status }

func (v *Viewer) Snapshot() Snapshot {
	return Snapshot{
		Buffer:      v.buf,
		Cursor:      v.cursor,
		Settings:    v.settings,
		PrevCommand: v.prev,
		Status:      v.status,
	}
}

// Execute runs one command line. Empty input repeats the previous command,
// and a command identical to the previous one counts as a repeat for searches.
func (v *Viewer) Execute(line string) Outcome {
	repeat := false
	if line == "" {
		if v.prev == "" {
			v.status = ""
			return Outcome{}
		}
		line = v.prev
		repeat = true
	} else if line == v.prev {
		repeat = true
	}

	op := command.Parse(line)
	logger.Debug("execute", "command", op.Kind.String(), "line", line, "repeat", repeat, "cursor", v.cursor)
	out := v.apply(op, repeat)
	v.prev = line
	v.status = out.Status
	if out.Err != nil {
		logger.Warn("command failed", "line", line, "error", out.Err)
	}
	return out
}

func (v *Viewer) apply(op command.Operation, repeat bool) Outcome {
	switch op.Kind {
	case command.KindEmpty:
		return Outcome{}
	case command.KindUnknown:
		return Outcome{Status: "unknown command"}
	case command.KindHelp:
		return Outcome{Help: true}
	case command.KindQuit:
		return Outcome{Quit: true}
	case command.KindLoad:
		return v.load(op.Text)
	case command.KindToggleColor:
		v.settings.Colorize = !v.settings.Colorize
		return Outcome{Status: "colorize " + onOff(v.settings.Colorize)}
	case command.KindToggleCharset:
		v.settings.Charset = v.settings.Charset.toggle()
		return Outcome{Status: "charset " + v.settings.Charset.String()}
	case command.KindCopyOffset:
		return v.copyOffset()
	case command.KindFindText, command.KindFindTextBack, command.KindFindSeq, command.KindFindSeqBack:
		return v.find(op, repeat)
	}

	// Everything left moves the cursor.
	if v.buf.Empty() || op.Err != nil {
		return Outcome{}
	}
	v.cursor = v.move(op)
	return Outcome{}
}

func (v *Viewer) move(op command.Operation) int {
	b := v.buf
	last := int64(b.Len() - 1)
	row := b.RowOfByte(v.cursor)
	col := v.cursor - b.ByteOfRow(row)

	switch op.Kind {
	case command.KindByteBack:
		return v.clamp(int64(v.cursor) - op.N)
	case command.KindByteForward:
		return v.clamp(addSat(int64(v.cursor), op.N))
	case command.KindRowStart:
		return b.ByteOfRow(row)
	case command.KindRowEnd:
		return b.RowEnd(row)
	case command.KindRowUp:
		return v.toRow(int64(row)-op.N, col)
	case command.KindRowDown:
		return v.toRow(addSat(int64(row), op.N), col)
	case command.KindPageUp:
		return v.toRow(int64(row)-mulSat(op.N, int64(b.PageHeight())), col)
	case command.KindPageDown:
		return v.toRow(addSat(int64(row), mulSat(op.N, int64(b.PageHeight()))), col)
	case command.KindTop:
		return 0
	case command.KindBottom:
		return int(last)
	case command.KindGotoByte:
		return v.clamp(op.N)
	case command.KindGotoRow:
		return v.toRow(op.N, col)
	case command.KindGotoPage:
		var page int64
		if op.N > 1 {
			page = op.N - 1
		}
		if limit := int64(b.PageCount() - 1); page > limit {
			page = limit
		}
		return v.toRow(int64(b.RowOfPage(int(page))), col)
	}
	return v.cursor
}

// toRow places the cursor at col within row, both clamped to the buffer.
func (v *Viewer) toRow(row int64, col int) int {
	if row < 0 {
		row = 0
	}
	if limit := int64(v.buf.RowCount() - 1); row > limit {
		row = limit
	}
	return v.buf.ClampByte(v.buf.ByteOfRow(int(row)) + col)
}

func (v *Viewer) clamp(n int64) int {
	if n < 0 {
		return 0
	}
	if last := int64(v.buf.Len() - 1); n > last {
		return int(last)
	}
	return int(n)
}

func (v *Viewer) find(op command.Operation, repeat bool) Outcome {
	var res search.Result
	data := v.buf.Bytes()
	switch op.Kind {
	case command.KindFindText:
		res = search.Text(data, v.cursor, op.Text, search.Forward, repeat)
	case command.KindFindTextBack:
		res = search.Text(data, v.cursor, op.Text, search.Backward, repeat)
	case command.KindFindSeq:
		res = search.Sequence(data, v.cursor, op.Text, search.Forward, repeat)
	case command.KindFindSeqBack:
		res = search.Sequence(data, v.cursor, op.Text, search.Backward, repeat)
	}
	if !res.Found {
		return Outcome{Alert: true, Status: fmt.Sprintf("%q not found", op.Text)}
	}
	v.cursor = res.Offset
	return Outcome{}
}

func (v *Viewer) load(path string) Outcome {
	if path == "" {
		return Outcome{Status: ErrMissingFilename.Error() + "!", Err: ErrMissingFilename}
	}
	if v.source == nil || !v.source.Exists(path) {
		err := fmt.Errorf("%s: %w", path, bytesource.ErrFileNotFound)
		return Outcome{Status: "No such file, keeping current one!", Err: err}
	}
	if v.confirm != nil && !v.confirm(ConfirmPrompt) {
		return Outcome{}
	}
	nb, err := v.source.Load(path)
	if err != nil {
		return Outcome{Status: err.Error() + ", keeping current file", Err: err}
	}
	v.buf = nb
	v.cursor = 0
	logger.Info("buffer replaced", "path", path, "size", nb.Len())
	return Outcome{Status: fmt.Sprintf("loaded %s (%d bytes)", path, nb.Len())}
}

func (v *Viewer) copyOffset() Outcome {
	text := strconv.Itoa(v.cursor)
	if err := v.copyText(text); err != nil {
		return Outcome{Status: "clipboard: " + err.Error(), Err: err}
	}
	return Outcome{Status: "copied offset " + text}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func addSat(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func mulSat(a, b int64) int64 {
	if a != 0 && b > math.MaxInt64/a {
		return math.MaxInt64
	}
	return a * b
}
