// Package patch holds the pure buffer transformations behind inject,
// remove and replace. Nothing here touches storage or runs validators; the
// dispatcher sequences preconditions and the caller persists results.
package patch

import (
	"strings"

	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/source"
)

// provenance is the marker written above every injected definition.
const provenance = "Tool injected by toolpatch"

// Inject appends the candidate to the buffer: two newlines of separation, a
// provenance comment in the language's comment style, the candidate, and a
// trailing newline. The original bytes are untouched.
func Inject(buf source.Buffer, p lang.Profile, candidate string) source.Buffer {
	var b strings.Builder
	b.WriteString(buf.Text())
	b.WriteString("\n\n")
	b.WriteString(p.ProvenanceComment(provenance))
	b.WriteString("\n")
	b.WriteString(candidate)
	b.WriteString("\n")
	return source.NewBuffer(b.String())
}

// Remove drops the lines in [start, end) and collapses any run of three or
// more blank lines left behind to two. Lines outside the span survive
// byte for byte.
func Remove(buf source.Buffer, start, end int) source.Buffer {
	lines := append(buf.Slice(0, start), buf.Slice(end, buf.Len())...)
	return source.NewBuffer(collapseBlankRuns(strings.Join(lines, "\n")))
}

// Replace swaps the lines in [start, end) for the candidate's lines. No
// blank collapsing: the candidate lands exactly where the old definition
// was.
func Replace(buf source.Buffer, start, end int, candidate string) source.Buffer {
	lines := buf.Slice(0, start)
	lines = append(lines, strings.Split(strings.TrimSuffix(candidate, "\n"), "\n")...)
	lines = append(lines, buf.Slice(end, buf.Len())...)
	return source.FromLines(lines)
}

// collapseBlankRuns rewrites runs of 3+ blank lines down to 2.
func collapseBlankRuns(text string) string {
	for strings.Contains(text, "\n\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n\n", "\n\n\n")
	}
	return text
}
