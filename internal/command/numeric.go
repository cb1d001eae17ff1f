package command

import (
	"errors"
	"math"
	"strings"
)

// ErrMalformedArgument reports a numeric argument with no readable digits or
// a count that does not fit in an int64.
var ErrMalformedArgument = errors.New("malformed argument")

// ParseCount reads a relative step. An empty argument and zero both mean 1,
// the sign is ignored and anything after the leading number is ignored.
func ParseCount(arg string) (int64, error) {
	if strings.TrimSpace(arg) == "" {
		return 1, nil
	}
	v, ok, overflow := scanInt(arg, 10)
	if !ok || overflow || v == math.MinInt64 {
		return 0, ErrMalformedArgument
	}
	if v < 0 {
		v = -v
	}
	if v == 0 {
		v = 1
	}
	return v, nil
}

// ParseInteger reads an absolute position written in decimal, 0x-prefixed hex
// or 0-prefixed octal. Values beyond int64 saturate.
func ParseInteger(arg string) (int64, error) {
	v, ok, _ := scanInt(arg, 0)
	if !ok {
		return 0, ErrMalformedArgument
	}
	return v, nil
}

// ParsePage reads a 1-based decimal page number. Values beyond int64 saturate.
func ParsePage(arg string) (int64, error) {
	v, ok, _ := scanInt(arg, 10)
	if !ok {
		return 0, ErrMalformedArgument
	}
	return v, nil
}

// scanInt parses the longest integer prefix of s after leading blanks, like
// strtoll. Base 0 picks 16 for 0x, 8 for a leading 0, and 10 otherwise.
// On overflow the result saturates and overflow is set.
func scanInt(s string, base int) (v int64, ok bool, overflow bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	if base == 0 {
		switch {
		case i+1 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X'):
			if i+2 < len(s) && digitValue(s[i+2]) < 16 {
				base = 16
				i += 2
			} else {
				// "0x" without hex digits reads as the 0 alone.
				return 0, true, false
			}
		case i < len(s) && s[i] == '0':
			base = 8
		default:
			base = 10
		}
	}

	var mag uint64
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	digits := 0
	for ; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= base {
			break
		}
		digits++
		if overflow {
			continue
		}
		if mag > (limit-uint64(d))/uint64(base) {
			overflow = true
			continue
		}
		mag = mag*uint64(base) + uint64(d)
	}
	if digits == 0 {
		return 0, false, false
	}
	if overflow {
		if neg {
			return math.MinInt64, true, true
		}
		return math.MaxInt64, true, true
	}
	if neg {
		return -int64(mag), true, false
	}
	return int64(mag), true, false
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 99
	}
}
