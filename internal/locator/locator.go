// Package locator finds the line boundaries of named definitions in source
// text. Each language family gets one structural algorithm driven by the
// profile table; languages with a registered parser-backed locator resolve
// through it first and fall back to the family heuristic.
package locator

import (
	"strings"

	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/source"
)

// Span is a located definition: a half-open [Start, End) line interval plus
// the extracted text.
type Span struct {
	Start int    `json:"start_line"`
	End   int    `json:"end_line"`
	Text  string `json:"text"`
}

// Definition is one named definition reported by a SyntaxLocator.
type Definition struct {
	Name  string
	Start int
	End   int
}

// SyntaxLocator finds definition boundaries with a real parser. Line
// numbers are 0-based and End is exclusive, same as the heuristic path.
type SyntaxLocator interface {
	LocateDefinition(src []byte, name string) (start, end int, ok bool)
	ListDefinitions(src []byte) []Definition
}

// Locator resolves definition boundaries per structural family.
type Locator struct {
	syntax map[string]SyntaxLocator
}

func New() *Locator {
	return &Locator{syntax: make(map[string]SyntaxLocator)}
}

// RegisterSyntax attaches a parser-backed locator for one extension. The
// heuristic remains the fallback when the parser finds nothing.
func (l *Locator) RegisterSyntax(ext string, sl SyntaxLocator) {
	l.syntax[strings.ToLower(ext)] = sl
}

// Syntax returns the registered parser-backed locator for ext, if any.
func (l *Locator) Syntax(ext string) (SyntaxLocator, bool) {
	sl, ok := l.syntax[strings.ToLower(ext)]
	return sl, ok
}

// Locate finds the definition of name. The returned span includes the
// prologue lines (decorators, attributes, comments) directly above the
// header. The second return is false when no header matches.
func (l *Locator) Locate(buf source.Buffer, p lang.Profile, name string) (Span, bool) {
	if sl, ok := l.syntax[p.Ext]; ok {
		if start, end, found := sl.LocateDefinition([]byte(buf.Text()), name); found {
			return makeSpan(buf, walkPrologue(buf, p, start), end), true
		}
	}

	var header, end int
	var found bool
	switch p.Family {
	case lang.FamilyIndent:
		header, end, found = locateIndent(buf, p, name)
	case lang.FamilyBrace:
		header, end, found = locateBrace(buf, p, name)
	case lang.FamilyEndKeyword:
		header, end, found = locateEndKeyword(buf, p, name)
	case lang.FamilyAdHoc:
		header, end, found = locateAdHoc(buf, p, name)
	}
	if !found {
		return Span{}, false
	}
	return makeSpan(buf, walkPrologue(buf, p, header), end), true
}

func makeSpan(buf source.Buffer, start, end int) Span {
	return Span{
		Start: start,
		End:   end,
		Text:  strings.Join(buf.Slice(start, end), "\n"),
	}
}

// findHeader returns the first line matching a definition pattern. The scan
// is pattern-major: earlier patterns win over earlier lines, so a real
// function header beats a same-named variable binding further up.
func findHeader(buf source.Buffer, p lang.Profile, name string) (int, bool) {
	for _, re := range p.DefinitionRegexps(name) {
		for i := 0; i < buf.Len(); i++ {
			if re.MatchString(buf.Line(i)) {
				return i, true
			}
		}
	}
	return 0, false
}

// walkPrologue extends start upward over contiguous decorator, attribute
// and comment lines. A blank line stops the walk.
func walkPrologue(buf source.Buffer, p lang.Profile, start int) int {
	for start > 0 {
		prev := strings.TrimSpace(buf.Line(start - 1))
		if !hasAnyPrefix(prev, p.Prologue) {
			break
		}
		start--
	}
	return start
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
