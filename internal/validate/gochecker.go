package validate

import (
	"context"
	"go/parser"
	"go/token"
	"regexp"
)

var packageClauseRe = regexp.MustCompile(`(?m)^package\s+\w+`)

// GoChecker validates Go syntax in process with go/parser. It is always
// available and needs no toolchain on PATH. Lone declaration snippets are
// parsed under a synthetic package clause, so a candidate does not need to
// be a complete file.
type GoChecker struct{}

func NewGoChecker() GoChecker { return GoChecker{} }

func (GoChecker) Check(_ context.Context, code string) Result {
	src := code
	if !packageClauseRe.MatchString(src) {
		src = "package tools\n\n" + src
	}
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "tool.go", src, 0); err != nil {
		return Result{
			Status:      StatusSyntaxError,
			Diagnostics: "Go syntax error: " + err.Error(),
		}
	}
	return Result{Status: StatusValid}
}
