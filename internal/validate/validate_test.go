package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/toolpatch/cli/internal/commander"
	"github.com/toolpatch/cli/internal/lang"
)

func profileFor(t *testing.T, ext string) lang.Profile {
	t.Helper()
	p, ok := lang.NewRegistry().Get(ext)
	if !ok {
		t.Fatalf("profile %s not registered", ext)
	}
	return p
}

func TestTier1(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		ext         string
		code        string
		wantValid   bool
		description string
	}{
		{".py", "def add(a, b):\n    return a + b\n", true, "python definition"},
		{".py", "def broken(:\n", true, "tier1 cannot see malformed params"},
		{".py", "print('hello')\n", false, "python statement is not a definition"},
		{".go", "func Add(a, b int) int { return a + b }\n", true, "go function"},
		{".go", "x := 1\n", false, "go statement is not a definition"},
		{".rb", "def run\n  1\nend\n", true, "ruby definition"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			v := NewValidator(commander.NewMock())
			r := v.Tier1(profileFor(t, tc.ext), tc.code)
			if r.Valid() != tc.wantValid {
				t.Errorf("Expected valid=%v, got %v (%+v)", tc.wantValid, r.Valid(), r)
			}
			if !tc.wantValid && r.Diagnostics == "" {
				t.Error("Expected diagnostics on a tier-1 rejection")
			}
		})
	}
}

func TestCheckRejectsPythonSyntaxError(t *testing.T) {
	t.Parallel()

	mock := commander.NewMock()
	mock.Commands["python3"] = true
	mock.Results["python3"] = commander.MockResult{
		Stderr: "  File \"tool.py\", line 1\n    def foo(:\n            ^\nSyntaxError: invalid syntax",
		Err:    errors.New("exit status 1"),
	}

	v := NewValidator(mock)
	r := v.Check(context.Background(), profileFor(t, ".py"), "def foo(:")

	if r.Status != StatusSyntaxError {
		t.Fatalf("Expected SyntaxError, got %s", r.Status)
	}
	if r.Diagnostics == "" {
		t.Fatal("Expected a non-empty diagnostic")
	}
	if !strings.HasPrefix(r.Diagnostics, "Python syntax error:") {
		t.Errorf("Expected language-prefixed diagnostic, got %q", r.Diagnostics)
	}
}

func TestCheckTier1ShortCircuits(t *testing.T) {
	t.Parallel()

	// Nothing definition-shaped: the toolchain must never be consulted.
	mock := commander.NewMock()
	mock.Commands["python3"] = true

	v := NewValidator(mock)
	r := v.Check(context.Background(), profileFor(t, ".py"), "just some prose\n")

	if r.Status != StatusSyntaxError {
		t.Fatalf("Expected SyntaxError, got %s", r.Status)
	}
	if len(mock.RecordedCalls) != 0 {
		t.Errorf("Expected no toolchain calls, got %v", mock.RecordedCalls)
	}
}

func TestTier2ToolchainUnavailable(t *testing.T) {
	t.Parallel()

	v := NewValidator(commander.NewMock())
	r := v.Tier2(context.Background(), profileFor(t, ".js"), "function f() {}\n")

	if r.Status != StatusToolchainUnavailable {
		t.Fatalf("Expected ToolchainUnavailable, got %s", r.Status)
	}
	if !strings.Contains(r.Hint, "Node.js") {
		t.Errorf("Expected install hint to name Node.js, got %q", r.Hint)
	}
}

func TestTier2DisabledByConfig(t *testing.T) {
	t.Parallel()

	mock := commander.NewMock()
	mock.Commands["python3"] = true

	v := NewValidator(mock)
	v.DisableToolchain()
	r := v.Tier2(context.Background(), profileFor(t, ".py"), "def f():\n    pass\n")

	if r.Status != StatusToolchainUnavailable {
		t.Fatalf("Expected ToolchainUnavailable, got %s", r.Status)
	}
	if len(mock.RecordedCalls) != 0 {
		t.Errorf("Expected no toolchain calls when disabled, got %v", mock.RecordedCalls)
	}
}

func TestTier2NativeCheckerTakesPrecedence(t *testing.T) {
	t.Parallel()

	mock := commander.NewMock()
	v := NewValidator(mock)
	v.Register(".go", NewGoChecker())

	r := v.Tier2(context.Background(), profileFor(t, ".go"), "func Add(a, b int) int { return a + b }\n")
	if !r.Valid() {
		t.Fatalf("Expected native checker pass, got %+v", r)
	}
	if len(mock.RecordedCalls) != 0 {
		t.Errorf("Expected no external calls for .go, got %v", mock.RecordedCalls)
	}
}

func TestGoChecker(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		code        string
		wantValid   bool
		description string
	}{
		{"func Add(a, b int) int { return a + b }\n", true, "lone function snippet"},
		{"package main\n\nfunc main() {}\n", true, "complete file"},
		{"func broken( {\n", false, "malformed parameter list"},
		{"func f() { if }\n", false, "malformed body"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			r := NewGoChecker().Check(context.Background(), tc.code)
			if r.Valid() != tc.wantValid {
				t.Errorf("Expected valid=%v, got %+v", tc.wantValid, r)
			}
			if !tc.wantValid && !strings.HasPrefix(r.Diagnostics, "Go syntax error:") {
				t.Errorf("Expected Go-prefixed diagnostic, got %q", r.Diagnostics)
			}
		})
	}
}
