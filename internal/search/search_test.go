package search

import (
	"bytes"
	"testing"
)

var abData = []byte{0x41, 0x42, 0x00, 0x41, 0x42}

func TestTextForwardRepeat(t *testing.T) {
	cursor := 0
	res := Text(abData, cursor, "AB", Forward, false)
	if !res.Found || res.Offset != 0 {
		t.Fatalf("first search = %+v, want Found(0)", res)
	}
	cursor = res.Offset

	res = Text(abData, cursor, "AB", Forward, true)
	if !res.Found || res.Offset != 3 {
		t.Fatalf("repeat search = %+v, want Found(3)", res)
	}
	cursor = res.Offset

	res = Text(abData, cursor, "AB", Forward, true)
	if res.Found {
		t.Fatalf("third search = %+v, want NotFound", res)
	}
}

func TestSequenceBackward(t *testing.T) {
	res := Sequence(abData, 4, "4142", Backward, false)
	if !res.Found || res.Offset != 3 {
		t.Fatalf("backward sequence = %+v, want Found(3)", res)
	}
	res = Sequence(abData, 3, "4142", Backward, true)
	if !res.Found || res.Offset != 0 {
		t.Fatalf("repeated backward sequence = %+v, want Found(0)", res)
	}
	res = Sequence(abData, 0, "4142", Backward, true)
	if !res.Found || res.Offset != 0 {
		t.Fatalf("backward from 0 = %+v, want Found(0)", res)
	}
}

func TestBackwardMatchesOffsetZero(t *testing.T) {
	data := []byte("xyzabc")
	res := FindBackward(data, 5, []byte("xy"))
	if !res.Found || res.Offset != 0 {
		t.Fatalf("FindBackward = %+v, want Found(0)", res)
	}
	res = FindBackward(data, 0, []byte("yz"))
	if res.Found {
		t.Fatalf("FindBackward from 0 = %+v, want NotFound", res)
	}
}

func TestForwardStopsBeforeTail(t *testing.T) {
	data := []byte("abcab")
	if res := FindForward(data, 4, []byte("ab")); res.Found {
		t.Fatalf("FindForward past last candidate = %+v, want NotFound", res)
	}
	if res := FindForward(data, 3, []byte("ab")); !res.Found || res.Offset != 3 {
		t.Fatalf("FindForward = %+v, want Found(3)", res)
	}
	if res := FindForward(data, -4, []byte("ca")); !res.Found || res.Offset != 2 {
		t.Fatalf("FindForward negative start = %+v, want Found(2)", res)
	}
}

func TestEmptyAndOversizedPatterns(t *testing.T) {
	for _, dir := range []Direction{Forward, Backward} {
		if res := Text(abData, 2, "", dir, false); res.Found {
			t.Fatalf("%s empty text = %+v, want NotFound", dir, res)
		}
		if res := Sequence(abData, 2, "zz", dir, false); res.Found {
			t.Fatalf("%s invalid hex = %+v, want NotFound", dir, res)
		}
		if res := Text(abData, 0, "ABCDEFG", dir, false); res.Found {
			t.Fatalf("%s long pattern = %+v, want NotFound", dir, res)
		}
		if res := Text(nil, 0, "A", dir, false); res.Found {
			t.Fatalf("%s empty data = %+v, want NotFound", dir, res)
		}
	}
}

func TestTextIsCaseSensitive(t *testing.T) {
	if res := Text(abData, 0, "ab", Forward, false); res.Found {
		t.Fatalf("lowercase search = %+v, want NotFound", res)
	}
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want []byte
	}{
		{"4142", []byte{0x41, 0x42}},
		{"ff00Aa", []byte{0xff, 0x00, 0xaa}},
		{"414", []byte{0x41}},
		{"41zz42", []byte{0x41}},
		{"4 42", []byte{}},
		{"", []byte{}},
	}
	for _, tc := range cases {
		got := ParseHex(tc.in)
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("ParseHex(%q) = %x, want %x", tc.in, got, tc.want)
		}
	}
}

func TestFindMatchesLinearScan(t *testing.T) {
	data := []byte("abababa\x00aba")
	pattern := []byte("aba")
	for start := 0; start < len(data); start++ {
		want := Result{}
		for i := start; i <= len(data)-len(pattern); i++ {
			if bytes.Equal(data[i:i+len(pattern)], pattern) {
				want = Result{Found: true, Offset: i}
				break
			}
		}
		if got := FindForward(data, start, pattern); got != want {
			t.Fatalf("FindForward(start=%d) = %+v, want %+v", start, got, want)
		}

		want = Result{}
		from := start
		if from > len(data)-len(pattern) {
			from = len(data) - len(pattern)
		}
		for i := from; i >= 0; i-- {
			if bytes.Equal(data[i:i+len(pattern)], pattern) {
				want = Result{Found: true, Offset: i}
				break
			}
		}
		if got := FindBackward(data, start, pattern); got != want {
			t.Fatalf("FindBackward(start=%d) = %+v, want %+v", start, got, want)
		}
	}
}
