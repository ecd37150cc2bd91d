package patch

import (
	"strings"
	"testing"

	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/locator"
	"github.com/toolpatch/cli/internal/source"
)

func profileFor(t *testing.T, ext string) lang.Profile {
	t.Helper()
	p, ok := lang.NewRegistry().Get(ext)
	if !ok {
		t.Fatalf("profile %s not registered", ext)
	}
	return p
}

func TestInjectAppendFormat(t *testing.T) {
	t.Parallel()

	src := "def a():\n    return 1\n"
	candidate := "def b():\n    return 2"

	got := Inject(source.NewBuffer(src), profileFor(t, ".py"), candidate).Text()
	want := src + "\n\n# Tool injected by toolpatch\ndef b():\n    return 2\n"
	if got != want {
		t.Errorf("Expected:\n%q\ngot:\n%q", want, got)
	}
	if !strings.HasPrefix(got, src) {
		t.Error("Expected original bytes to survive as a prefix")
	}
}

func TestInjectBlockCommentLanguage(t *testing.T) {
	t.Parallel()

	src := "int main(void) { return 0; }\n"
	got := Inject(source.NewBuffer(src), profileFor(t, ".c"), "void tool(void) {}").Text()
	if !strings.Contains(got, "/* Tool injected by toolpatch */") {
		t.Errorf("Expected closed block comment marker, got:\n%q", got)
	}
}

func TestRemoveKeepsSurroundingLines(t *testing.T) {
	t.Parallel()

	buf := source.NewBuffer("alpha\nbravo\ncharlie\ndelta\necho\n")
	got := Remove(buf, 1, 3).Text()
	want := "alpha\ndelta\necho\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRemoveCollapsesBlankRuns(t *testing.T) {
	t.Parallel()

	// Dropping the middle definition leaves four blank lines; the result
	// must keep at most two.
	buf := source.NewBuffer("top\n\n\nmiddle\n\n\nbottom\n")
	got := Remove(buf, 3, 4).Text()
	want := "top\n\n\nbottom\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestReplaceSwapsSpanExactly(t *testing.T) {
	t.Parallel()

	buf := source.NewBuffer("keep1\nold1\nold2\nkeep2\n")
	got := Replace(buf, 1, 3, "new1\nnew2\nnew3").Text()
	want := "keep1\nnew1\nnew2\nnew3\nkeep2\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestReplaceTrailingNewlineCandidate(t *testing.T) {
	t.Parallel()

	// A candidate ending in a newline must not smuggle an extra blank line
	// into the buffer.
	buf := source.NewBuffer("keep1\nold\nkeep2\n")
	got := Replace(buf, 1, 2, "new\n").Text()
	want := "keep1\nnew\nkeep2\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestInjectThenRemoveRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		ext         string
		src         string
		name        string
		candidate   string
		description string
	}{
		{
			ext:         ".py",
			src:         "import os\n\ndef existing():\n    return 1\n",
			name:        "added",
			candidate:   "def added():\n    return 2",
			description: "python indentation family",
		},
		{
			ext:         ".go",
			src:         "package main\n\nfunc existing() int {\n\treturn 1\n}\n",
			name:        "added",
			candidate:   "func added() int {\n\treturn 2\n}",
			description: "go brace family",
		},
		{
			ext:         ".rb",
			src:         "def existing\n  1\nend\n",
			name:        "added",
			candidate:   "def added\n  2\nend",
			description: "ruby end-keyword family",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			p := profileFor(t, tc.ext)
			loc := locator.New()

			injected := Inject(source.NewBuffer(tc.src), p, tc.candidate)
			span, ok := loc.Locate(injected, p, tc.name)
			if !ok {
				t.Fatalf("expected to locate %q after inject in:\n%s", tc.name, injected.Text())
			}
			// The provenance comment joins the span, so removal takes it
			// back out too.
			if !strings.Contains(span.Text, "Tool injected by toolpatch") {
				t.Errorf("Expected provenance comment inside span, got:\n%q", span.Text)
			}

			restored := Remove(injected, span.Start, span.End).Text()
			if strings.Contains(restored, "\n\n\n\n") {
				t.Errorf("Expected blank runs collapsed, got:\n%q", restored)
			}
			if strings.TrimRight(restored, "\n") != strings.TrimRight(tc.src, "\n") {
				t.Errorf("Expected round trip back to original, got:\n%q\nwant:\n%q", restored, tc.src)
			}
		})
	}
}
