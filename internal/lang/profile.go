package lang

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Family is the structural strategy used to find definition boundaries.
type Family string

const (
	FamilyIndent     Family = "indentation"
	FamilyBrace      Family = "brace"
	FamilyEndKeyword Family = "end-keyword"
	FamilyAdHoc      Family = "ad-hoc"
)

// Toolchain describes how to run an external compiler or interpreter in
// syntax-only mode against a candidate file. Candidates are tried in order:
// a missing binary moves to the next candidate, a non-zero exit does not.
// The file is written as FileName inside a fresh temp directory together
// with any Aux files, and every command runs with that directory as its
// working directory. "{file}" tokens expand to the file name actually used.
type Toolchain struct {
	Candidates [][]string
	Timeout    time.Duration
	FileName   string

	// NamePattern, when set, renames the candidate file: the first capture
	// of its first match in the code becomes the base name. Java needs this
	// because javac requires the file name to match the public class.
	NamePattern string

	Aux  map[string]string
	Hint string
}

// Profile is the structured configuration for one supported extension.
// Entries are data only; the family algorithms in the locator and the
// validator tiers interpret them.
type Profile struct {
	// Ext is the extension id including the leading dot, e.g. ".py".
	Ext  string
	Name string

	Family Family

	// Definition holds header-line patterns with a %s slot for the target
	// name. The locator tries them in order against each line.
	Definition []string

	// Prologue lists prefixes (after stripping indentation) of decorator,
	// attribute and comment lines that the locator walks backward over to
	// join them to a located span.
	Prologue []string

	// Comment is the marker used for the injected provenance comment;
	// CommentClose is non-empty for block-comment languages.
	Comment      string
	CommentClose string

	// BlockOpeners lists the keywords that open a nested end-terminated
	// block (end-keyword family only). TrailingDo additionally counts a
	// block-form trailing "do" as an opener.
	BlockOpeners []string
	TrailingDo   bool

	// Existence holds the over-matching declaration patterns (%s slot)
	// probed before an injection.
	Existence []string

	// Toolchain is the optional Tier-2 command spec. Nil means no external
	// validator; a native checker may still be registered for the
	// extension.
	Toolchain *Toolchain

	// Imports holds regexes matching one import/require/use statement
	// each. A pattern with a capture group contributes its first group,
	// otherwise the whole match; matches are trimmed. ImportAnchor
	// patterns mark existing import lines; injected imports go after the
	// last anchored line.
	Imports      []string
	ImportAnchor []string

	// NeedsCompile marks languages where a persisted patch requires a
	// separate build step (advisory only).
	NeedsCompile bool
}

// identAny generalizes a name slot to any identifier for Tier-1 checks.
const identAny = `[A-Za-z_]\w*`

// DefinitionRegexps compiles the header patterns for a concrete name.
func (p Profile) DefinitionRegexps(name string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(p.Definition))
	for _, pat := range p.Definition {
		res = append(res, regexp.MustCompile(fmt.Sprintf(pat, regexp.QuoteMeta(name))))
	}
	return res
}

// Exists reports whether name already appears as a declaration in source.
// Patterns are matched against the whole text with line anchors enabled and
// deliberately over-match: a false positive blocks an injection, which is
// the safe direction.
func (p Profile) Exists(source, name string) bool {
	for _, pat := range p.Existence {
		re := regexp.MustCompile("(?m)" + fmt.Sprintf(pat, regexp.QuoteMeta(name)))
		if re.MatchString(source) {
			return true
		}
	}
	return false
}

// Tier1Regexps returns the definition patterns with the name slot widened
// to any identifier, used as the always-available syntax floor.
func (p Profile) Tier1Regexps() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(p.Definition))
	for _, pat := range p.Definition {
		res = append(res, regexp.MustCompile("(?m)"+strings.ReplaceAll(pat, "%s", identAny)))
	}
	return res
}

// ImportRegexps compiles the import statement patterns with line anchors
// enabled.
func (p Profile) ImportRegexps() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(p.Imports))
	for _, pat := range p.Imports {
		res = append(res, regexp.MustCompile("(?m)"+pat))
	}
	return res
}

// ImportAnchorRegexps compiles the patterns marking existing import lines.
func (p Profile) ImportAnchorRegexps() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(p.ImportAnchor))
	for _, pat := range p.ImportAnchor {
		res = append(res, regexp.MustCompile(pat))
	}
	return res
}

// ProvenanceComment renders text as a comment in this language.
func (p Profile) ProvenanceComment(text string) string {
	return p.Comment + " " + text + p.CommentClose
}
