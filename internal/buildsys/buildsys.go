// Package buildsys detects a project's build system so the CLI can print
// a rebuild advisory after patching a compiled language. Detection only
// reads marker files; nothing here runs a build.
package buildsys

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Info describes the detected build system. The zero value means nothing
// matched.
type Info struct {
	System       string   `json:"system,omitempty"`
	Command      string   `json:"command,omitempty"`
	Args         []string `json:"args,omitempty"`
	NeedsCompile bool     `json:"needs_compile"`
	ProjectPath  string   `json:"project_path,omitempty"`
}

// CommandLine renders the build invocation for display.
func (i Info) CommandLine() string {
	if i.Command == "" {
		return ""
	}
	return strings.Join(append([]string{i.Command}, i.Args...), " ")
}

// indicators are the marker files ProjectRoot probes while walking up from
// a source file.
var indicators = []string{
	"Cargo.toml",
	"go.mod",
	"package.json",
	"Makefile",
	"makefile",
	"CMakeLists.txt",
	"meson.build",
	"build.zig",
	".git",
}

// Detect probes dir for a known build system. The probe order is fixed so
// a repo carrying several marker files resolves deterministically.
func Detect(dir string) Info {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	switch {
	case exists(filepath.Join(abs, "Cargo.toml")):
		return Info{System: "cargo", Command: "cargo", Args: []string{"build", "--release"}, NeedsCompile: true, ProjectPath: abs}
	case exists(filepath.Join(abs, "Makefile")) || exists(filepath.Join(abs, "makefile")):
		return Info{System: "make", Command: "make", NeedsCompile: true, ProjectPath: abs}
	case exists(filepath.Join(abs, "CMakeLists.txt")):
		return Info{System: "cmake", Command: "cmake", Args: []string{"--build", "."}, NeedsCompile: true, ProjectPath: abs}
	case exists(filepath.Join(abs, "go.mod")):
		return Info{System: "go", Command: "go", Args: []string{"build"}, NeedsCompile: true, ProjectPath: abs}
	}
	if info, ok := detectTypeScript(abs); ok {
		return info
	}
	switch {
	case exists(filepath.Join(abs, "meson.build")):
		return Info{System: "meson", Command: "meson", Args: []string{"compile", "-C", "build"}, NeedsCompile: true, ProjectPath: abs}
	case exists(filepath.Join(abs, "build.zig")):
		return Info{System: "zig", Command: "zig", Args: []string{"build"}, NeedsCompile: true, ProjectPath: abs}
	}
	return Info{}
}

// ProjectRoot walks up from a source file looking for a build indicator,
// twenty levels at most. The file's own directory is the fallback when
// nothing is found.
func ProjectRoot(sourceFile string) string {
	start, err := filepath.Abs(sourceFile)
	if err != nil {
		start = sourceFile
	}
	dir := filepath.Dir(start)
	current := dir
	for i := 0; i < 20; i++ {
		for _, ind := range indicators {
			if exists(filepath.Join(current, ind)) {
				return current
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return dir
}

// detectTypeScript reports a TypeScript project: package.json declaring
// the typescript package, or a tsconfig.json next to it. A "build" script
// wins over plain tsc.
func detectTypeScript(dir string) (Info, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return Info{}, false
	}
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
		Scripts         map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return Info{}, false
	}
	_, inDeps := pkg.Dependencies["typescript"]
	_, inDev := pkg.DevDependencies["typescript"]
	if !inDeps && !inDev && !exists(filepath.Join(dir, "tsconfig.json")) {
		return Info{}, false
	}
	info := Info{System: "typescript", NeedsCompile: true, ProjectPath: dir}
	if _, ok := pkg.Scripts["build"]; ok {
		info.Command = "npm"
		info.Args = []string{"run", "build"}
	} else {
		info.Command = "tsc"
	}
	return info, true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
