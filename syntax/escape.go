package syntax

import "bytes"

// Escape returns s with every character that is special in a pattern
// escaped, so the result matches s literally. It agrees with the way the
// writer renders a literal node holding s.
func Escape(s string) string {
	buf := &bytes.Buffer{}
	for _, ch := range s {
		writeRune(buf, ch, literalSpecials, Python)
	}
	return buf.String()
}
