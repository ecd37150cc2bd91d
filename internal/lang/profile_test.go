package lang

import (
	"strings"
	"testing"
)

func mustProfile(t *testing.T, ext string) Profile {
	t.Helper()
	p, ok := NewRegistry().Get(ext)
	if !ok {
		t.Fatalf("profile %s not registered", ext)
	}
	return p
}

func TestExists(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		ext         string
		source      string
		name        string
		want        bool
		description string
	}{
		{
			ext: ".py",
			source: `@mcp.tool("add")
def add(a, b):
    return a + b
`,
			name:        "add",
			want:        true,
			description: "python decorated tool",
		},
		{
			ext: ".py",
			source: `def add(a, b):
    return a + b
`,
			name:        "add",
			want:        true,
			description: "python plain function",
		},
		{
			ext: ".py",
			source: `def addify(a, b):
    return a + b
`,
			name:        "add",
			want:        false,
			description: "python prefix does not collide",
		},
		{
			ext:         ".go",
			source:      "package tools\n\nfunc Add(a, b int) int { return a + b }\n",
			name:        "Add",
			want:        true,
			description: "go function",
		},
		{
			ext:         ".go",
			source:      "package tools\n\nvar add = 1\n",
			name:        "add",
			want:        true,
			description: "go var declaration",
		},
		{
			ext:         ".js",
			source:      "server.tool('add', handler);\n",
			name:        "add",
			want:        true,
			description: "javascript tool registration",
		},
		{
			ext:         ".js",
			source:      "const add = (a, b) => a + b;\n",
			name:        "add",
			want:        true,
			description: "javascript const binding",
		},
		{
			ext:         ".rs",
			source:      "#[mcp::tool(name = \"add\")]\nfn add(a: i32, b: i32) -> i32 { a + b }\n",
			name:        "add",
			want:        true,
			description: "rust attribute",
		},
		{
			ext:         ".rb",
			source:      "def add(a, b)\n  a + b\nend\n",
			name:        "add",
			want:        true,
			description: "ruby method",
		},
		{
			ext:         ".hs",
			source:      "add :: Int -> Int -> Int\nadd a b = a + b\n",
			name:        "add",
			want:        true,
			description: "haskell signature at line start",
		},
		{
			ext:         ".hs",
			source:      "sum3 a b c = a + b + c\n  where helper = 0\n",
			name:        "add",
			want:        false,
			description: "haskell absent name",
		},
		{
			ext:         ".py",
			source:      "x = 1\ny = 2\n",
			name:        "add",
			want:        false,
			description: "python absent name",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			p := mustProfile(t, tc.ext)
			if got := p.Exists(tc.source, tc.name); got != tc.want {
				t.Errorf("Expected Exists(%s, %q) = %v, got %v", tc.ext, tc.name, tc.want, got)
			}
		})
	}
}

func TestDefinitionRegexpsQuotesName(t *testing.T) {
	t.Parallel()

	p := mustProfile(t, ".py")

	// A metacharacter in the name must be treated literally, never as
	// pattern syntax.
	res := p.DefinitionRegexps("add.item")
	if len(res) == 0 {
		t.Fatal("expected compiled definition patterns")
	}
	if res[0].MatchString("def addxitem(a):") {
		t.Error("dot in name matched as a wildcard")
	}
	if !res[0].MatchString("def add.item(a):") {
		t.Error("literal name did not match")
	}
}

func TestTier1Regexps(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		ext         string
		code        string
		want        bool
		description string
	}{
		{".py", "def anything(x):\n    return x\n", true, "python definition shape"},
		{".py", "x = 1\n", false, "python non-definition"},
		{".go", "func Handle(w http.ResponseWriter, r *http.Request) {}\n", true, "go plain func"},
		{".go", "func (s *Server) Handle(w, r) {}\n", true, "go method receiver"},
		{".rb", "def run\n  puts 1\nend\n", true, "ruby paren-less header"},
		{".rs", "pub async fn fetch(url: &str) {}\n", true, "rust pub async fn"},
		{".hs", "main :: IO ()\nmain = putStrLn \"hi\"\n", true, "haskell signature"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			p := mustProfile(t, tc.ext)
			matched := false
			for _, re := range p.Tier1Regexps() {
				if re.MatchString(tc.code) {
					matched = true
					break
				}
			}
			if matched != tc.want {
				t.Errorf("Expected tier-1 match=%v for %s code %q, got %v", tc.want, tc.ext, tc.code, matched)
			}
		})
	}
}

func TestProvenanceComment(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		ext  string
		want string
	}{
		{".py", "# Tool injected by toolpatch"},
		{".go", "// Tool injected by toolpatch"},
		{".c", "/* Tool injected by toolpatch */"},
		{".ml", "(* Tool injected by toolpatch *)"},
		{".lua", "-- Tool injected by toolpatch"},
	}

	for _, tc := range testCases {
		p := mustProfile(t, tc.ext)
		got := p.ProvenanceComment("Tool injected by toolpatch")
		if got != tc.want {
			t.Errorf("Expected %s provenance %q, got %q", tc.ext, tc.want, got)
		}
		if strings.Contains(got, "\n") {
			t.Errorf("provenance comment for %s spans lines: %q", tc.ext, got)
		}
	}
}
