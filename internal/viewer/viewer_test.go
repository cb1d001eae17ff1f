package viewer

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/kobzarvs/hexview/internal/bytesource"
)

func newTestViewer(t *testing.T, data []byte, opts bytesource.Options, vopts ...Option) *Viewer {
	t.Helper()
	fsys := fstest.MapFS{
		"data.bin":  {Data: data},
		"other.bin": {Data: []byte("other file")},
		"big.bin":   {Data: make([]byte, 64)},
	}
	src := bytesource.NewFSSource(fsys, opts)
	buf, err := src.Load("data.bin")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return New(buf, src, Settings{Colorize: true}, vopts...)
}

func seq(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func run(t *testing.T, v *Viewer, lines ...string) Outcome {
	t.Helper()
	var out Outcome
	for _, line := range lines {
		out = v.Execute(line)
	}
	return out
}

func TestGotoByteClamps(t *testing.T) {
	v := newTestViewer(t, seq(10), bytesource.Options{})
	cases := []struct {
		line string
		want int
	}{
		{"b0x0", 0},
		{"b9", 9},
		{"b100", 9},
		{"b5", 5},
		{"b-5", 0},
		{"b011", 9},
		{"b0x3", 3},
		{"bxyz", 3},
		{"B99999999999999999999999", 9},
	}
	for _, tc := range cases {
		v.Execute(tc.line)
		if v.Cursor() != tc.want {
			t.Fatalf("%s: cursor = %d, want %d", tc.line, v.Cursor(), tc.want)
		}
	}
}

func TestMovementStaysInRange(t *testing.T) {
	v := newTestViewer(t, seq(100), bytesource.Options{RowWidth: 16, PageHeight: 3})
	keys := []string{"<", ">", ",", ".", "[", "]", "b", "r", "p", "(", ")", "{", "}"}
	args := []string{"", "0", "1", "-3", "7", "abc", "99999999999999999999", "9223372036854775807", "-9223372036854775808", "0x7fffffffffffffff"}
	for _, start := range []string{"b0", "b50", "b99"} {
		for _, k := range keys {
			for _, a := range args {
				v.Execute(start)
				v.Execute(k + a)
				if c := v.Cursor(); c < 0 || c > 99 {
					t.Fatalf("%s then %s%s: cursor = %d out of range", start, k, a, c)
				}
			}
		}
	}
}

func TestByteMoves(t *testing.T) {
	v := newTestViewer(t, seq(10), bytesource.Options{})
	run(t, v, ">")
	if v.Cursor() != 1 {
		t.Fatalf("> cursor = %d, want 1", v.Cursor())
	}
	run(t, v, ">0")
	if v.Cursor() != 2 {
		t.Fatalf(">0 cursor = %d, want 2", v.Cursor())
	}
	run(t, v, ">-4")
	if v.Cursor() != 6 {
		t.Fatalf(">-4 cursor = %d, want 6", v.Cursor())
	}
	run(t, v, "<2")
	if v.Cursor() != 4 {
		t.Fatalf("<2 cursor = %d, want 4", v.Cursor())
	}
	run(t, v, "<x")
	if v.Cursor() != 4 {
		t.Fatalf("<x cursor = %d, want 4", v.Cursor())
	}
	run(t, v, "<100")
	if v.Cursor() != 0 {
		t.Fatalf("<100 cursor = %d, want 0", v.Cursor())
	}
	run(t, v, ">100")
	if v.Cursor() != 9 {
		t.Fatalf(">100 cursor = %d, want 9", v.Cursor())
	}
}

func TestRowMovesKeepColumn(t *testing.T) {
	v := newTestViewer(t, seq(40), bytesource.Options{RowWidth: 16})
	run(t, v, "b5", ".")
	if v.Cursor() != 21 {
		t.Fatalf(". cursor = %d, want 21", v.Cursor())
	}
	run(t, v, ".")
	if v.Cursor() != 37 {
		t.Fatalf(". cursor = %d, want 37", v.Cursor())
	}
	run(t, v, ".")
	if v.Cursor() != 37 {
		t.Fatalf(". on last row cursor = %d, want 37", v.Cursor())
	}
	run(t, v, ",2")
	if v.Cursor() != 5 {
		t.Fatalf(",2 cursor = %d, want 5", v.Cursor())
	}
	// Column 10 does not exist on the partial last row.
	run(t, v, "b26", ".")
	if v.Cursor() != 39 {
		t.Fatalf(". into partial row cursor = %d, want 39", v.Cursor())
	}
}

func TestRowStartAndEnd(t *testing.T) {
	v := newTestViewer(t, seq(40), bytesource.Options{RowWidth: 16})
	run(t, v, "b35", "(")
	if v.Cursor() != 32 {
		t.Fatalf("( cursor = %d, want 32", v.Cursor())
	}
	run(t, v, ")")
	if v.Cursor() != 39 {
		t.Fatalf(") on partial row cursor = %d, want 39", v.Cursor())
	}
	run(t, v, "b3", ")")
	if v.Cursor() != 15 {
		t.Fatalf(") cursor = %d, want 15", v.Cursor())
	}
}

func TestPageMoves(t *testing.T) {
	// 10 rows of 4 bytes, 2 rows per page.
	v := newTestViewer(t, seq(40), bytesource.Options{RowWidth: 4, PageHeight: 2})
	run(t, v, "b1", "]")
	if v.Cursor() != 9 {
		t.Fatalf("] cursor = %d, want 9", v.Cursor())
	}
	run(t, v, "]3")
	if v.Cursor() != 33 {
		t.Fatalf("]3 cursor = %d, want 33", v.Cursor())
	}
	run(t, v, "]")
	if v.Cursor() != 37 {
		t.Fatalf("] past end cursor = %d, want 37", v.Cursor())
	}
	run(t, v, "[100")
	if v.Cursor() != 1 {
		t.Fatalf("[100 cursor = %d, want 1", v.Cursor())
	}
}

func TestGotoRowAndPage(t *testing.T) {
	v := newTestViewer(t, seq(40), bytesource.Options{RowWidth: 4, PageHeight: 2})
	cases := []struct {
		line string
		want int
	}{
		{"b1", 1},
		{"r3", 13},
		{"r0x2", 9},
		{"r-1", 1},
		{"r1000", 37},
		{"rzz", 37},
		{"p3", 17},
		{"p0", 1},
		{"p1", 1},
		{"p99", 33},
		{"p", 33},
		{"p010", 33},
	}
	for _, tc := range cases {
		v.Execute(tc.line)
		if v.Cursor() != tc.want {
			t.Fatalf("%s: cursor = %d, want %d", tc.line, v.Cursor(), tc.want)
		}
	}
}

func TestTopAndBottom(t *testing.T) {
	v := newTestViewer(t, seq(33), bytesource.Options{})
	run(t, v, "}")
	if v.Cursor() != 32 {
		t.Fatalf("} cursor = %d, want 32", v.Cursor())
	}
	run(t, v, "{")
	if v.Cursor() != 0 {
		t.Fatalf("{ cursor = %d, want 0", v.Cursor())
	}
}

func TestTextSearchRepeats(t *testing.T) {
	v := newTestViewer(t, []byte{0x41, 0x42, 0x00, 0x41, 0x42}, bytesource.Options{})
	out := v.Execute("/AB")
	if out.Alert || v.Cursor() != 0 {
		t.Fatalf("/AB cursor = %d alert = %v, want 0", v.Cursor(), out.Alert)
	}
	out = v.Execute("")
	if out.Alert || v.Cursor() != 3 {
		t.Fatalf("repeat cursor = %d alert = %v, want 3", v.Cursor(), out.Alert)
	}
	out = v.Execute("/AB")
	if !out.Alert || v.Cursor() != 3 {
		t.Fatalf("third search cursor = %d alert = %v, want alert at 3", v.Cursor(), out.Alert)
	}
	if v.Status() == "" {
		t.Fatalf("missing not-found status")
	}
}

func TestSequenceSearchBackward(t *testing.T) {
	v := newTestViewer(t, []byte{0x41, 0x42, 0x00, 0x41, 0x42}, bytesource.Options{})
	run(t, v, "b4", ":4142")
	if v.Cursor() != 3 {
		t.Fatalf(":4142 cursor = %d, want 3", v.Cursor())
	}
	run(t, v, "")
	if v.Cursor() != 0 {
		t.Fatalf("repeated :4142 cursor = %d, want 0", v.Cursor())
	}
	run(t, v, ";0041")
	if v.Cursor() != 2 {
		t.Fatalf(";0041 cursor = %d, want 2", v.Cursor())
	}
	out := run(t, v, "\\zz")
	if !out.Alert || v.Cursor() != 2 {
		t.Fatalf("\\zz cursor = %d alert = %v, want alert at 2", v.Cursor(), out.Alert)
	}
}

func TestReloadMissingFileKeepsState(t *testing.T) {
	v := newTestViewer(t, seq(10), bytesource.Options{})
	run(t, v, "b5")
	before := v.Buffer()
	out := v.Execute("fnope.bin")
	if !errors.Is(out.Err, bytesource.ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", out.Err)
	}
	if v.Buffer() != before || v.Cursor() != 5 {
		t.Fatalf("state changed: cursor = %d", v.Cursor())
	}
	if v.Status() == "" {
		t.Fatalf("missing status for failed load")
	}
}

func TestReloadFailureKeepsState(t *testing.T) {
	v := newTestViewer(t, seq(10), bytesource.Options{MaxFileSize: 32})
	run(t, v, "b7")
	before := v.Buffer()
	out := v.Execute("fbig.bin")
	if !errors.Is(out.Err, bytesource.ErrAllocation) {
		t.Fatalf("err = %v, want ErrAllocation", out.Err)
	}
	if v.Buffer() != before || v.Cursor() != 7 {
		t.Fatalf("state changed: cursor = %d", v.Cursor())
	}
}

func TestReloadReplacesBuffer(t *testing.T) {
	var asked string
	confirm := func(prompt string) bool {
		asked = prompt
		return true
	}
	v := newTestViewer(t, seq(10), bytesource.Options{}, WithConfirm(confirm))
	run(t, v, "b5")
	out := v.Execute("f other.bin ")
	if out.Err != nil {
		t.Fatalf("load err = %v", out.Err)
	}
	if asked != ConfirmPrompt {
		t.Fatalf("prompt = %q, want %q", asked, ConfirmPrompt)
	}
	if v.Buffer().Name() != "other.bin" || v.Cursor() != 0 {
		t.Fatalf("buffer = %q cursor = %d", v.Buffer().Name(), v.Cursor())
	}
}

func TestReloadDeclined(t *testing.T) {
	v := newTestViewer(t, seq(10), bytesource.Options{}, WithConfirm(func(string) bool { return false }))
	run(t, v, "b5")
	before := v.Buffer()
	if out := v.Execute("fother.bin"); out.Err != nil {
		t.Fatalf("declined load err = %v", out.Err)
	}
	if v.Buffer() != before || v.Cursor() != 5 {
		t.Fatalf("declined load changed state")
	}
}

func TestLoadWithoutFilename(t *testing.T) {
	v := newTestViewer(t, seq(10), bytesource.Options{})
	out := v.Execute("f")
	if !errors.Is(out.Err, ErrMissingFilename) {
		t.Fatalf("err = %v, want ErrMissingFilename", out.Err)
	}
}

func TestEmptyBuffer(t *testing.T) {
	v := newTestViewer(t, nil, bytesource.Options{})
	if v.Buffer().RowCount() != 0 || v.Buffer().PageCount() != 0 {
		t.Fatalf("counts = %d/%d, want 0/0", v.Buffer().RowCount(), v.Buffer().PageCount())
	}
	for _, line := range []string{"<", ">5", ",", ".", "[", "]", "(", ")", "{", "}", "b3", "r2", "p2"} {
		out := v.Execute(line)
		if out.Err != nil || v.Cursor() != 0 {
			t.Fatalf("%s on empty buffer: cursor = %d err = %v", line, v.Cursor(), out.Err)
		}
	}
	if out := v.Execute("/A"); !out.Alert {
		t.Fatalf("search on empty buffer should alert")
	}
}

func TestToggles(t *testing.T) {
	v := newTestViewer(t, seq(4), bytesource.Options{})
	run(t, v, "C")
	if v.Settings().Colorize {
		t.Fatalf("colorize still on")
	}
	run(t, v, "t")
	if v.Settings().Charset != CharsetExtended {
		t.Fatalf("charset = %s, want xASCII", v.Settings().Charset)
	}
	run(t, v, "")
	if v.Settings().Charset != CharsetASCII {
		t.Fatalf("repeated t: charset = %s, want ASCII", v.Settings().Charset)
	}
}

func TestUnknownAndEmptyInput(t *testing.T) {
	v := newTestViewer(t, seq(4), bytesource.Options{})
	if out := v.Execute(""); out != (Outcome{}) || v.PrevCommand() != "" {
		t.Fatalf("empty input without history = %+v", out)
	}
	out := v.Execute("z")
	if out.Status != "unknown command" || v.Cursor() != 0 {
		t.Fatalf("z = %+v", out)
	}
	if v.PrevCommand() != "z" {
		t.Fatalf("prev = %q, want z", v.PrevCommand())
	}
	if out := v.Execute("Q"); !out.Quit {
		t.Fatalf("Q did not quit")
	}
	if out := v.Execute("h"); !out.Help {
		t.Fatalf("h did not request help")
	}
}

func TestCopyOffset(t *testing.T) {
	var copied string
	v := newTestViewer(t, seq(300), bytesource.Options{}, WithClipboard(func(s string) error {
		copied = s
		return nil
	}))
	run(t, v, "b0x100", "y")
	if copied != "256" {
		t.Fatalf("copied = %q, want 256", copied)
	}

	failing := errors.New("no clipboard")
	v = newTestViewer(t, seq(3), bytesource.Options{}, WithClipboard(func(string) error { return failing }))
	if out := v.Execute("y"); !errors.Is(out.Err, failing) {
		t.Fatalf("err = %v, want %v", out.Err, failing)
	}
}
