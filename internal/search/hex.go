package search

// ParseHex decodes consecutive pairs of hex digits. Parsing stops silently at
// the first pair that is not two hex digits, so a trailing nibble is dropped.
func ParseHex(s string) []byte {
	out := make([]byte, 0, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		hi, ok := hexNibble(s[i])
		if !ok {
			break
		}
		lo, ok := hexNibble(s[i+1])
		if !ok {
			break
		}
		out = append(out, hi<<4|lo)
	}
	return out
}

func hexNibble(ch byte) (byte, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	default:
		return 0, false
	}
}
