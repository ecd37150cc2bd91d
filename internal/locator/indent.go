package locator

import (
	"strings"

	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/source"
)

// locateIndent handles indentation-delimited bodies (Python, Nim). The body
// runs while non-blank lines are indented deeper than the header; interior
// blanks stay in, trailing blanks are trimmed off the span.
func locateIndent(buf source.Buffer, p lang.Profile, name string) (int, int, bool) {
	header, ok := findHeader(buf, p, name)
	if !ok {
		return 0, 0, false
	}

	headerIndent := indentOf(buf.Line(header))
	end := header + 1
	for end < buf.Len() {
		line := buf.Line(end)
		if strings.TrimSpace(line) == "" {
			end++
			continue
		}
		if indentOf(line) <= headerIndent {
			break
		}
		end++
	}
	for end > header+1 && strings.TrimSpace(buf.Line(end-1)) == "" {
		end--
	}
	return header, end, true
}
