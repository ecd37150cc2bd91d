package locator

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/python"
)

// treeSitterLocator resolves definitions through a real grammar. A fresh
// parser is built per call; sitter parsers are not safe for concurrent use
// and are cheap to construct.
type treeSitterLocator struct {
	language *sitter.Language
	query    string
}

// NewGoSyntax returns a parser-backed locator for Go sources. It sees
// functions and methods; the brace heuristic remains the fallback.
func NewGoSyntax() SyntaxLocator {
	return &treeSitterLocator{
		language: golang.GetLanguage(),
		query: `
(function_declaration name: (identifier) @name) @definition
(method_declaration name: (field_identifier) @name) @definition
`,
	}
}

// NewPythonSyntax returns a parser-backed locator for Python sources. It
// sees functions and classes; decorators above a definition are joined by
// the caller's prologue walk.
func NewPythonSyntax() SyntaxLocator {
	return &treeSitterLocator{
		language: python.GetLanguage(),
		query: `
(function_definition name: (identifier) @name) @definition
(class_definition name: (identifier) @name) @definition
`,
	}
}

func (t *treeSitterLocator) LocateDefinition(src []byte, name string) (int, int, bool) {
	for _, d := range t.ListDefinitions(src) {
		if d.Name == name {
			return d.Start, d.End, true
		}
	}
	return 0, 0, false
}

func (t *treeSitterLocator) ListDefinitions(src []byte) []Definition {
	parser := sitter.NewParser()
	parser.SetLanguage(t.language)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil
	}
	defer tree.Close()

	q, err := sitter.NewQuery([]byte(t.query), t.language)
	if err != nil {
		return nil
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var defs []Definition
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}

		var name string
		var node *sitter.Node
		for _, c := range m.Captures {
			switch q.CaptureNameForId(c.Index) {
			case "name":
				name = c.Node.Content(src)
			case "definition":
				node = c.Node
			}
		}
		if name == "" || node == nil {
			continue
		}

		defs = append(defs, Definition{
			Name:  name,
			Start: int(node.StartPoint().Row),
			End:   int(node.EndPoint().Row) + 1,
		})
	}
	return defs
}
