package source

import "strings"

// Buffer is one file's content as an ordered, 0-indexed sequence of lines.
// A Buffer is never mutated in place; every transformation builds a new one.
//
// Splitting is on "\n" and the fragment after the final newline is kept as
// its own element, so Text returns the original bytes exactly. CR bytes in
// CRLF files stay attached to their line and survive untouched.
type Buffer struct {
	lines []string
}

// NewBuffer splits text into a line buffer.
func NewBuffer(text string) Buffer {
	return Buffer{lines: strings.Split(text, "\n")}
}

// FromLines builds a buffer from a line slice. The slice is copied.
func FromLines(lines []string) Buffer {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return Buffer{lines: cp}
}

// Len returns the number of lines, counting the fragment after a trailing
// newline (empty for files that end in "\n").
func (b Buffer) Len() int { return len(b.lines) }

// Line returns line i without its newline.
func (b Buffer) Line(i int) string { return b.lines[i] }

// Lines returns a copy of all lines.
func (b Buffer) Lines() []string {
	cp := make([]string, len(b.lines))
	copy(cp, b.lines)
	return cp
}

// Slice returns a copy of lines in the half-open range [start, end).
func (b Buffer) Slice(start, end int) []string {
	cp := make([]string, end-start)
	copy(cp, b.lines[start:end])
	return cp
}

// Text joins the lines back into the file content.
func (b Buffer) Text() string { return strings.Join(b.lines, "\n") }
