package locator

import (
	"regexp"
	"strings"

	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/source"
)

var (
	endKeywordRe = regexp.MustCompile(`^end\b`)
	trailingDoRe = regexp.MustCompile(`\bdo\s*(?:\|[^|]*\|)?\s*$`)
)

// locateEndKeyword handles end-terminated bodies (Ruby, Crystal, Elixir,
// Lua, Julia). Depth starts at 1 after the header; a line-initial block
// keyword opens a nested block, a line whose first token is "end" closes
// one. Ruby and Crystal additionally open on a trailing block-form "do".
func locateEndKeyword(buf source.Buffer, p lang.Profile, name string) (int, int, bool) {
	header, ok := findHeader(buf, p, name)
	if !ok {
		return 0, 0, false
	}

	end := header + 1
	depth := 1
	for end < buf.Len() && depth > 0 {
		stripped := strings.TrimSpace(buf.Line(end))
		if opensBlock(stripped, p) {
			depth++
		}
		if endKeywordRe.MatchString(stripped) {
			depth--
		}
		end++
	}
	return header, end, true
}

func opensBlock(stripped string, p lang.Profile) bool {
	for _, kw := range p.BlockOpeners {
		if startsWithWord(stripped, kw) {
			return true
		}
	}
	return p.TrailingDo && trailingDoRe.MatchString(stripped)
}

// startsWithWord reports whether s begins with kw as a whole word.
func startsWithWord(s, kw string) bool {
	if !strings.HasPrefix(s, kw) {
		return false
	}
	if len(s) == len(kw) {
		return true
	}
	return !isWordByte(s[len(kw)])
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}
