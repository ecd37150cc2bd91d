// Package imports detects and splices import statements across the
// supported languages. It is data-driven on the profile table: each profile
// carries regexes for its import statement forms and for the anchor lines
// new imports insert after.
package imports

import (
	"strings"

	"github.com/toolpatch/cli/internal/lang"
)

// Service answers which imports a candidate needs that a source file lacks,
// and splices them in.
type Service struct {
	registry *lang.Registry
}

func NewService(registry *lang.Registry) *Service {
	return &Service{registry: registry}
}

// Extract returns the import/require/use statements in code, in order of
// appearance per pattern. Unknown extensions yield nil.
func (s *Service) Extract(code, ext string) []string {
	p, ok := s.registry.Get(ext)
	if !ok {
		return nil
	}

	var out []string
	for _, re := range p.ImportRegexps() {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			stmt := m[0]
			if len(m) > 1 && m[1] != "" {
				stmt = m[1]
			}
			out = append(out, strings.TrimSpace(stmt))
		}
	}
	if p.Ext == ".go" {
		out = append(out, goBlockImports(code)...)
	}
	return out
}

// Missing returns the candidate's imports absent from source, in the
// candidate's order.
func (s *Service) Missing(source, candidate, ext string) []string {
	have := make(map[string]bool)
	for _, stmt := range s.Extract(source, ext) {
		have[stmt] = true
	}

	var missing []string
	for _, stmt := range s.Extract(candidate, ext) {
		if !have[stmt] {
			missing = append(missing, stmt)
		}
	}
	return missing
}

// Inject inserts the statements as one block after the last line matching
// an import anchor, or at the top of the file when none matches. The rest
// of the source is untouched.
func (s *Service) Inject(source string, stmts []string, ext string) string {
	if len(stmts) == 0 {
		return source
	}
	p, ok := s.registry.Get(ext)
	if !ok {
		return source
	}

	lines := strings.Split(source, "\n")
	pos := 0
	for i, line := range lines {
		for _, re := range p.ImportAnchorRegexps() {
			if re.MatchString(line) {
				pos = i + 1
				break
			}
		}
	}

	out := make([]string, 0, len(lines)+len(stmts))
	out = append(out, lines[:pos]...)
	out = append(out, stmts...)
	out = append(out, lines[pos:]...)
	return strings.Join(out, "\n")
}

// goBlockImports expands a grouped import ( ... ) block into one statement
// per package so block and single-line forms compare equal.
func goBlockImports(code string) []string {
	var out []string
	rest := code
	for {
		start := strings.Index(rest, "import (")
		if start < 0 {
			break
		}
		body := rest[start+len("import ("):]
		end := strings.Index(body, ")")
		if end < 0 {
			break
		}
		for _, line := range strings.Split(body[:end], "\n") {
			entry := strings.TrimSpace(line)
			if entry == "" || strings.HasPrefix(entry, "//") {
				continue
			}
			out = append(out, "import "+entry)
		}
		rest = body[end:]
	}
	return out
}
