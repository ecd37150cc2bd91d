package locator

import (
	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/source"
)

// locateBrace handles brace-delimited bodies (C family, Rust, Go, JVM
// languages, JS/TS and the rest of the brace set).
func locateBrace(buf source.Buffer, p lang.Profile, name string) (int, int, bool) {
	header, ok := findHeader(buf, p, name)
	if !ok {
		return 0, 0, false
	}
	return header, braceEnd(buf, header), true
}

// braceEnd counts braces character by character from the header line. The
// block ends the moment depth returns to zero after the first opening
// brace; a block that never closes runs to the end of the buffer. Braces
// inside strings and comments are counted too, an accepted limitation of
// the heuristic.
func braceEnd(buf source.Buffer, header int) int {
	depth := 0
	foundOpen := false
	for i := header; i < buf.Len(); i++ {
		for _, ch := range buf.Line(i) {
			switch ch {
			case '{':
				depth++
				foundOpen = true
			case '}':
				depth--
				if foundOpen && depth == 0 {
					return i + 1
				}
			}
		}
	}
	return buf.Len()
}
