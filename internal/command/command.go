// Package command decodes single-line viewer commands into operations.
package command

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Kind int

const (
	KindEmpty Kind = iota
	KindUnknown
	KindHelp
	KindQuit
	KindLoad
	KindToggleColor
	KindToggleCharset
	KindByteBack
	KindByteForward
	KindRowStart
	KindRowEnd
	KindRowUp
	KindRowDown
	KindPageUp
	KindPageDown
	KindTop
	KindBottom
	KindGotoByte
	KindGotoRow
	KindGotoPage
	KindFindText
	KindFindTextBack
	KindFindSeq
	KindFindSeqBack
	KindCopyOffset
)

var kindNames = map[Kind]string{
	KindEmpty:         "empty",
	KindUnknown:       "unknown",
	KindHelp:          "help",
	KindQuit:          "quit",
	KindLoad:          "load",
	KindToggleColor:   "toggle_color",
	KindToggleCharset: "toggle_charset",
	KindByteBack:      "byte_back",
	KindByteForward:   "byte_forward",
	KindRowStart:      "row_start",
	KindRowEnd:        "row_end",
	KindRowUp:         "row_up",
	KindRowDown:       "row_down",
	KindPageUp:        "page_up",
	KindPageDown:      "page_down",
	KindTop:           "top",
	KindBottom:        "bottom",
	KindGotoByte:      "goto_byte",
	KindGotoRow:       "goto_row",
	KindGotoPage:      "goto_page",
	KindFindText:      "find_text",
	KindFindTextBack:  "find_text_backward",
	KindFindSeq:       "find_sequence",
	KindFindSeqBack:   "find_sequence_backward",
	KindCopyOffset:    "copy_offset",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ArgKind describes how the text after the command key is interpreted.
type ArgKind int

const (
	ArgNone    ArgKind = iota
	ArgCount           // optional signed decimal, magnitude used, default 1
	ArgInteger         // decimal, 0x hex or 0 octal
	ArgPage            // decimal, 1-based
	ArgText            // literal text
	ArgHex             // hex byte pairs
	ArgPath            // file name
)

// Spec is one entry of the command table.
type Spec struct {
	Key         rune
	Kind        Kind
	Arg         ArgKind
	Usage       string
	Description string
}

// Specs lists every command in help order. Blank Usage entries separate groups.
var Specs = []Spec{
	{Key: 'h', Kind: KindHelp, Usage: "h", Description: "This help screen"},
	{Key: 'q', Kind: KindQuit, Usage: "q", Description: "Quit the program"},
	{Kind: KindEmpty, Usage: "ENTER", Description: "Repeat last command"},
	{Key: 'f', Kind: KindLoad, Arg: ArgPath, Usage: "ffilename", Description: "Load a new file (no blanks between f and filename)"},
	{Key: 'c', Kind: KindToggleColor, Usage: "c", Description: "Toggle colorization (on/off)"},
	{Key: 't', Kind: KindToggleCharset, Usage: "t", Description: "Toggle ASCII character set (plain/extended)"},
	{Key: 'y', Kind: KindCopyOffset, Usage: "y", Description: "Copy current offset to the clipboard"},
	{},
	{Key: '{', Kind: KindTop, Usage: "{", Description: "Start of file"},
	{Key: '}', Kind: KindBottom, Usage: "}", Description: "End of file"},
	{Key: '(', Kind: KindRowStart, Usage: "(", Description: "Start of row"},
	{Key: ')', Kind: KindRowEnd, Usage: ")", Description: "End of row"},
	{Key: '<', Kind: KindByteBack, Arg: ArgCount, Usage: "< n", Description: "Move n bytes back (1 if no n)"},
	{Key: '>', Kind: KindByteForward, Arg: ArgCount, Usage: "> n", Description: "Move n bytes forward (1 if no n)"},
	{Key: ',', Kind: KindRowUp, Arg: ArgCount, Usage: ", n", Description: "Move n rows up (1 if no n)"},
	{Key: '.', Kind: KindRowDown, Arg: ArgCount, Usage: ". n", Description: "Move n rows down (1 if no n)"},
	{Key: '[', Kind: KindPageUp, Arg: ArgCount, Usage: "[ n", Description: "Move n pages up (1 if no n)"},
	{Key: ']', Kind: KindPageDown, Arg: ArgCount, Usage: "] n", Description: "Move n pages down (1 if no n)"},
	{Key: 'b', Kind: KindGotoByte, Arg: ArgInteger, Usage: "b n", Description: "Goto n'th byte (0xn for hex, 0n for oct)"},
	{Key: 'r', Kind: KindGotoRow, Arg: ArgInteger, Usage: "r n", Description: "Goto n'th row (0xn for hex, 0n for oct)"},
	{Key: 'p', Kind: KindGotoPage, Arg: ArgPage, Usage: "p n", Description: "Goto n'th page"},
	{},
	{Key: '/', Kind: KindFindText, Arg: ArgText, Usage: "/string", Description: "Search ahead for a text-string (case sensitive)"},
	{Key: '\\', Kind: KindFindTextBack, Arg: ArgText, Usage: "\\string", Description: "Search backwards for a text-string"},
	{Key: ';', Kind: KindFindSeq, Arg: ArgHex, Usage: ";sequence", Description: "Search ahead for a byte-sequence (hex pairs)"},
	{Key: ':', Kind: KindFindSeqBack, Arg: ArgHex, Usage: ":sequence", Description: "Search backwards for a byte-sequence"},
}

var byKey = func() map[rune]Spec {
	m := make(map[rune]Spec, len(Specs))
	for _, s := range Specs {
		if s.Key != 0 {
			m[s.Key] = s
		}
	}
	return m
}()

// Operation is a decoded command line. Only the payload matching Kind's
// argument kind is set: N for numeric arguments, Text for the rest.
type Operation struct {
	Kind Kind
	Line string
	Key  rune
	Text string
	N    int64
	// Err is ErrMalformedArgument when a numeric argument could not be read.
	Err error
}

// Parse decodes a command line. The key is case-insensitive and the argument
// follows it directly.
func Parse(line string) Operation {
	if line == "" {
		return Operation{Kind: KindEmpty}
	}
	key, size := utf8.DecodeRuneInString(line)
	key = unicode.ToLower(key)
	arg := line[size:]
	op := Operation{Kind: KindUnknown, Line: line, Key: key}

	spec, ok := byKey[key]
	if !ok {
		return op
	}
	op.Kind = spec.Kind
	switch spec.Arg {
	case ArgCount:
		op.N, op.Err = ParseCount(arg)
	case ArgInteger:
		op.N, op.Err = ParseInteger(arg)
	case ArgPage:
		op.N, op.Err = ParsePage(arg)
	case ArgText, ArgHex:
		op.Text = arg
	case ArgPath:
		op.Text = strings.TrimSpace(arg)
	}
	return op
}

// HelpLines renders the command table for the help screen.
func HelpLines() []string {
	lines := []string{
		"Commands are NOT case-sensitive but require you to press ENTER at the end.",
		"",
	}
	for _, s := range Specs {
		if s.Usage == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12s %s", s.Usage, s.Description))
	}
	return lines
}
