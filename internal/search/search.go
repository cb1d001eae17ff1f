// Package search finds literal text and byte sequences in a loaded buffer.
package search

import "bytes"

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Result is the outcome of one search. Offset is meaningful only when Found.
type Result struct {
	Found  bool
	Offset int
}

var notFound = Result{}

// Text searches for the bytes of text starting around cursor. When repeat is
// set the scan skips the match under the cursor.
func Text(data []byte, cursor int, text string, dir Direction, repeat bool) Result {
	return Find(data, cursor, []byte(text), dir, repeat)
}

// Sequence searches for the byte sequence encoded as hex pairs in hex.
func Sequence(data []byte, cursor int, hex string, dir Direction, repeat bool) Result {
	return Find(data, cursor, ParseHex(hex), dir, repeat)
}

// Find runs a literal search for pattern in the given direction.
func Find(data []byte, cursor int, pattern []byte, dir Direction, repeat bool) Result {
	start := cursor
	if dir == Backward {
		if repeat {
			start--
		}
		if start < 0 {
			start = 0
		}
		return FindBackward(data, start, pattern)
	}
	if repeat {
		start++
	}
	return FindForward(data, start, pattern)
}

// FindForward returns the first match at an offset in [start, len-len(pattern)].
func FindForward(data []byte, start int, pattern []byte) Result {
	if len(pattern) == 0 || len(pattern) > len(data) {
		return notFound
	}
	if start < 0 {
		start = 0
	}
	if start > len(data)-len(pattern) {
		return notFound
	}
	idx := bytes.Index(data[start:], pattern)
	if idx < 0 {
		return notFound
	}
	return Result{Found: true, Offset: start + idx}
}

// FindBackward returns the last match at an offset in [0, start]. Offset 0 is
// always a candidate.
func FindBackward(data []byte, start int, pattern []byte) Result {
	if len(pattern) == 0 || len(pattern) > len(data) || start < 0 {
		return notFound
	}
	if last := len(data) - len(pattern); start > last {
		start = last
	}
	idx := bytes.LastIndex(data[:start+len(pattern)], pattern)
	if idx < 0 {
		return notFound
	}
	return Result{Found: true, Offset: idx}
}
