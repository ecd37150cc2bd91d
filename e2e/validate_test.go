package e2e

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestValidateCommand uses Go candidates because the built-in parser makes
// the verdict identical on every machine, toolchain installed or not.
func TestValidateCommand(t *testing.T) {
	t.Parallel()

	_, binaryPath := buildCLIBinary(t)

	home := t.TempDir()
	workDir := t.TempDir()
	env := cliEnv(home, workDir)

	// Valid Go code passes both tiers
	out, code := runCLI(t, binaryPath, workDir, env, "", "--no-ui", "validate",
		"--ext", ".go", "--code", "package x\n\nfunc ok() int {\n\treturn 1\n}\n")
	if code != 0 {
		t.Fatalf("validate exited %d: %s", code, out)
	}
	if !strings.Contains(out, "No syntax errors found") {
		t.Errorf("Expected a clean verdict, got: %s", out)
	}

	// Broken Go code fails through the built-in parser
	out, code = runCLI(t, binaryPath, workDir, env, "", "--no-ui", "validate",
		"--ext", ".go", "--code", "package x\n\nfunc broken( {\n")
	if code != 1 {
		t.Fatalf("Expected exit code 1 for broken code, got %d: %s", code, out)
	}
	if !strings.Contains(out, "Code is not valid") {
		t.Errorf("Expected a failure verdict, got: %s", out)
	}

	// Code with no definition shape at all fails tier 1
	out, code = runCLI(t, binaryPath, workDir, env, "", "--no-ui", "validate",
		"--ext", ".py", "--code", "this is not a definition")
	if code != 1 {
		t.Fatalf("Expected exit code 1 for a tier-1 failure, got %d: %s", code, out)
	}

	// Candidate code can come from stdin
	out, code = runCLI(t, binaryPath, workDir, env, "package x\n\nfunc piped() {}\n",
		"--no-ui", "validate", "--ext", ".go")
	if code != 0 {
		t.Fatalf("validate from stdin exited %d: %s", code, out)
	}

	// A file argument validates the file's own contents
	target := writeFixture(t, workDir, "main.go", "package main\n\nfunc main() {}\n")
	out, code = runCLI(t, binaryPath, workDir, env, "", "--no-ui", "validate", target)
	if code != 0 {
		t.Fatalf("validate file exited %d: %s", code, out)
	}

	// An unsupported extension is refused
	out, code = runCLI(t, binaryPath, workDir, env, "", "--no-ui", "validate",
		"--ext", ".xyz", "--code", "anything")
	if code != 1 {
		t.Fatalf("Expected exit code 1 for an unsupported language, got %d: %s", code, out)
	}
	if !strings.Contains(out, "Unsupported language") {
		t.Errorf("Expected an unsupported-language message, got: %s", out)
	}
}

// TestLanguagesCommand lists the profile table in both formats.
func TestLanguagesCommand(t *testing.T) {
	t.Parallel()

	_, binaryPath := buildCLIBinary(t)

	home := t.TempDir()
	workDir := t.TempDir()
	env := cliEnv(home, workDir)

	out, code := runCLI(t, binaryPath, workDir, env, "", "--no-ui", "languages")
	if code != 0 {
		t.Fatalf("languages exited %d: %s", code, out)
	}
	for _, want := range []string{".py", ".go", ".rb", "built-in parser"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected languages output to contain %q, got: %s", want, out)
		}
	}

	out, code = runCLI(t, binaryPath, workDir, env, "", "--no-ui", "languages", "--output", "json")
	if code != 0 {
		t.Fatalf("languages --output json exited %d: %s", code, out)
	}
	var infos []struct {
		Ext    string `json:"ext"`
		Family string `json:"family"`
		Check  string `json:"check"`
	}
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("failed to parse languages output: %v\n%s", err, out)
	}
	if len(infos) < 25 {
		t.Errorf("Expected at least 25 supported extensions, got %d", len(infos))
	}
	byExt := map[string]string{}
	for _, info := range infos {
		byExt[info.Ext] = info.Check
	}
	if byExt[".go"] != "built-in parser" {
		t.Errorf("Expected .go to use the built-in parser, got %q", byExt[".go"])
	}
	if byExt[".py"] != "python3" {
		t.Errorf("Expected .py to validate with python3, got %q", byExt[".py"])
	}
}
