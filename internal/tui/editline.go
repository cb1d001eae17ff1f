package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// lineAction is what a key did to the line being edited.
type lineAction int

const (
	actionNone lineAction = iota
	actionSubmit
	actionClose
)

// lineEditor is a single-line readline-style editor with in-memory history.
type lineEditor struct {
	buf    []rune
	cursor int

	history    []string
	histIndex  int // -1 when not browsing
	histPrefix string
}

func newLineEditor() *lineEditor {
	return &lineEditor{histIndex: -1}
}

func (e *lineEditor) String() string { return string(e.buf) }

func (e *lineEditor) reset() {
	e.buf = e.buf[:0]
	e.cursor = 0
	e.histIndex = -1
}

func (e *lineEditor) handleKey(ev *tcell.EventKey) lineAction {
	switch ev.Key() {
	case tcell.KeyEnter:
		line := string(e.buf)
		if line != "" && (len(e.history) == 0 || e.history[len(e.history)-1] != line) {
			e.history = append(e.history, line)
		}
		e.histIndex = -1
		return actionSubmit
	case tcell.KeyCtrlC:
		return actionClose
	case tcell.KeyCtrlD:
		if len(e.buf) == 0 {
			return actionClose
		}
		if e.cursor < len(e.buf) {
			e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
			e.histIndex = -1
		}
	case tcell.KeyEscape:
		e.reset()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.cursor > 0 {
			e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
			e.cursor--
			e.histIndex = -1
		}
	case tcell.KeyDelete:
		if e.cursor < len(e.buf) {
			e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
			e.histIndex = -1
		}
	case tcell.KeyLeft, tcell.KeyCtrlB:
		if e.cursor > 0 {
			e.cursor--
		}
	case tcell.KeyRight, tcell.KeyCtrlF:
		if e.cursor < len(e.buf) {
			e.cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		e.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		e.cursor = len(e.buf)
	case tcell.KeyUp, tcell.KeyCtrlP:
		e.historyUp()
	case tcell.KeyDown, tcell.KeyCtrlN:
		e.historyDown()
	case tcell.KeyCtrlU:
		e.buf = e.buf[:0]
		e.cursor = 0
		e.histIndex = -1
	case tcell.KeyCtrlK:
		e.buf = e.buf[:e.cursor]
		e.histIndex = -1
	case tcell.KeyCtrlW:
		if e.cursor > 0 {
			i := e.cursor - 1
			for i > 0 && e.buf[i-1] == ' ' {
				i--
			}
			for i > 0 && e.buf[i-1] != ' ' {
				i--
			}
			e.buf = append(e.buf[:i], e.buf[e.cursor:]...)
			e.cursor = i
			e.histIndex = -1
		}
	case tcell.KeyRune:
		e.buf = append(e.buf[:e.cursor], append([]rune{ev.Rune()}, e.buf[e.cursor:]...)...)
		e.cursor++
		e.histIndex = -1
	}
	return actionNone
}

// historyUp recalls the previous entry starting with what was typed before
// browsing began.
func (e *lineEditor) historyUp() {
	if len(e.history) == 0 {
		return
	}
	if e.histIndex == -1 {
		e.histPrefix = string(e.buf)
		e.histIndex = len(e.history)
	}
	for i := e.histIndex - 1; i >= 0; i-- {
		if strings.HasPrefix(e.history[i], e.histPrefix) {
			e.histIndex = i
			e.setLine(e.history[i])
			return
		}
	}
}

func (e *lineEditor) historyDown() {
	if e.histIndex == -1 {
		return
	}
	for i := e.histIndex + 1; i < len(e.history); i++ {
		if strings.HasPrefix(e.history[i], e.histPrefix) {
			e.histIndex = i
			e.setLine(e.history[i])
			return
		}
	}
	e.histIndex = -1
	e.setLine(e.histPrefix)
}

func (e *lineEditor) setLine(s string) {
	e.buf = []rune(s)
	e.cursor = len(e.buf)
}
