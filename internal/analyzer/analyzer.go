// Package analyzer discovers the definitions in a source file. The tools
// command lists what it finds: the same spans the patch pipeline operates
// on, presented with signature and leading documentation.
package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/locator"
	"github.com/toolpatch/cli/internal/source"
)

// Tool is one discovered definition. Lines are 1-based and include the
// prologue, matching what a removal would take out.
type Tool struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Doc       string `json:"doc,omitempty"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// listingIdent widens the header name slot for discovery. The trailing
// class covers Ruby's ?, ! and = method suffixes.
const listingIdent = `([A-Za-z_]\w*[?!=]?)`

// controlKeywords are header-shaped false positives in the curly-brace
// languages ("else if (x) {" scans like a definition of "if").
var controlKeywords = map[string]bool{
	"if":        true,
	"for":       true,
	"while":     true,
	"switch":    true,
	"return":    true,
	"catch":     true,
	"class":     true,
	"interface": true,
	"new":       true,
}

// Analyzer enumerates definitions per language profile.
type Analyzer struct {
	registry *lang.Registry
	locator  *locator.Locator
}

func New(registry *lang.Registry, loc *locator.Locator) *Analyzer {
	return &Analyzer{registry: registry, locator: loc}
}

// List returns every definition in code, ordered by position. Languages
// with a parser-backed locator enumerate through it; the rest are scanned
// with the profile's header patterns. Duplicate names keep their first
// occurrence.
func (a *Analyzer) List(code, ext string) ([]Tool, error) {
	p, ok := a.registry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", ext)
	}
	buf := source.NewBuffer(code)

	var tools []Tool
	seen := make(map[string]bool)
	for _, name := range a.names(buf, p, code) {
		if seen[name] {
			continue
		}
		seen[name] = true
		span, ok := a.locator.Locate(buf, p, name)
		if !ok {
			continue
		}
		header := headerLine(buf, p, span, name)
		tools = append(tools, Tool{
			Name:      name,
			Signature: strings.TrimSpace(buf.Line(header)),
			Doc:       docText(buf, p, span.Start, header),
			StartLine: span.Start + 1,
			EndLine:   span.End,
		})
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].StartLine < tools[j].StartLine })
	return tools, nil
}

// names collects candidate definition names in document order.
func (a *Analyzer) names(buf source.Buffer, p lang.Profile, code string) []string {
	if sl, ok := a.locator.Syntax(p.Ext); ok {
		defs := sl.ListDefinitions([]byte(code))
		if len(defs) > 0 {
			sort.Slice(defs, func(i, j int) bool { return defs[i].Start < defs[j].Start })
			names := make([]string, 0, len(defs))
			for _, d := range defs {
				names = append(names, d.Name)
			}
			return names
		}
	}

	res := make([]*regexp.Regexp, 0, len(p.Definition))
	for _, pat := range p.Definition {
		res = append(res, regexp.MustCompile(strings.ReplaceAll(pat, "%s", listingIdent)))
	}
	var names []string
	for i := 0; i < buf.Len(); i++ {
		line := buf.Line(i)
		for _, re := range res {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if !controlKeywords[m[1]] {
				names = append(names, m[1])
			}
			break
		}
	}
	return names
}

// headerLine finds the definition header inside a span, skipping the
// prologue lines above it.
func headerLine(buf source.Buffer, p lang.Profile, span locator.Span, name string) int {
	for i := span.Start; i < span.End; i++ {
		for _, re := range p.DefinitionRegexps(name) {
			if re.MatchString(buf.Line(i)) {
				return i
			}
		}
	}
	return span.Start
}

// docText joins the comment lines between the span start and the header.
// Decorators and attributes stay out; only comment-marker lines count as
// documentation.
func docText(buf source.Buffer, p lang.Profile, start, header int) string {
	var parts []string
	for i := start; i < header; i++ {
		line := strings.TrimSpace(buf.Line(i))
		if !strings.HasPrefix(line, p.Comment) {
			continue
		}
		text := strings.TrimPrefix(line, p.Comment)
		// Doc-comment variants repeat the last marker char (///, ##).
		text = strings.TrimLeft(text, p.Comment[len(p.Comment)-1:])
		if p.CommentClose != "" {
			text = strings.TrimSuffix(strings.TrimSpace(text), strings.TrimSpace(p.CommentClose))
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}
