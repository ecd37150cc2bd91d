package lang

import "time"

// bracePrologue covers the comment and attribute forms that precede
// definitions across the brace-family languages.
var bracePrologue = []string{"//", "#[", "/*", "///"}

// builtinProfiles returns the full supported-language table. One entry per
// extension; aliased extensions share a profile body.
func builtinProfiles() []Profile {
	alias := func(p Profile, ext string) Profile {
		p.Ext = ext
		return p
	}

	python := Profile{
		Ext:        ".py",
		Name:       "Python",
		Family:     FamilyIndent,
		Definition: []string{`def\s+%s\s*\(`},
		Prologue:   []string{"@", "#"},
		Comment:    "#",
		Existence: []string{
			`@\w+\.tool\(\s*["']?%s["']?`,
			`@\w+\.tool\(\)\s*\n\s*def\s+%s\s*\(`,
			`def\s+%s\s*\(`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"python3", "-m", "py_compile", "{file}"}},
			Timeout:    5 * time.Second,
			FileName:   "tool.py",
			Hint:       "python3 not found. Install Python 3 to validate Python code.",
		},
		Imports:      []string{`^(?:import\s+.+|from\s+.+\s+import\s+.+)$`},
		ImportAnchor: []string{`^\s*(?:import\s|from\s)`},
	}

	javascript := Profile{
		Ext:    ".js",
		Name:   "JavaScript",
		Family: FamilyBrace,
		Definition: []string{
			`(?:export\s+)?(?:async\s+)?function\s+%s\s*\(`,
			`(?:const|let|var)\s+%s\s*=`,
		},
		Prologue: []string{"//", "/*"},
		Comment:  "//",
		Existence: []string{
			`\.tool\(["']?%s["']?`,
			`name:\s*["']%s["']`,
			`function\s+%s\s*\(`,
			`const\s+%s\s*=`,
			`async\s+function\s+%s\s*\(`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"node", "--check", "{file}"}},
			Timeout:    5 * time.Second,
			FileName:   "tool.js",
			Hint:       "Node.js not found. Please install Node.js to validate JavaScript code.",
		},
		Imports:      []string{`^(import\s+.+?|const\s+\w+\s*=\s*require\(.+?\));?\s*$`},
		ImportAnchor: []string{`^\s*(?:import\s|const\s+\w+\s*=\s*require)`},
	}

	typescript := javascript
	typescript.Ext = ".ts"
	typescript.Name = "TypeScript"
	typescript.NeedsCompile = true
	typescript.Existence = []string{
		`\.tool\(["']?%s["']?`,
		`name:\s*["']%s["']`,
		`function\s+%s\s*\(`,
		`const\s+%s\s*[:=]`,
		`async\s+function\s+%s\s*\(`,
		`export\s+function\s+%s\s*\(`,
	}
	typescript.Toolchain = &Toolchain{
		Candidates: [][]string{{"tsc", "--noEmit", "{file}"}},
		Timeout:    10 * time.Second,
		FileName:   "tool.ts",
		Aux: map[string]string{
			"tsconfig.json": `{"compilerOptions": {"noEmit": true, "skipLibCheck": true}}`,
		},
		Hint: "tsc not found. Install TypeScript (npm install -g typescript) to validate TypeScript code.",
	}

	rust := Profile{
		Ext:        ".rs",
		Name:       "Rust",
		Family:     FamilyBrace,
		Definition: []string{`(?:pub\s+)?(?:async\s+)?fn\s+%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`#\[mcp::tool\(name\s*=\s*["']%s["']`,
			`pub\s+fn\s+%s\s*\(`,
			`async\s+fn\s+%s\s*\(`,
			`fn\s+%s\s*\(`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"rustc", "--check", "{file}"}},
			Timeout:    10 * time.Second,
			FileName:   "tool.rs",
			Hint:       "rustc not found. Install Rust toolchain to validate Rust code.",
		},
		Imports:      []string{`^use\s+.+;`},
		ImportAnchor: []string{`^\s*use\s`},
		NeedsCompile: true,
	}

	c := Profile{
		Ext:          ".c",
		Name:         "C",
		Family:       FamilyBrace,
		Definition:   []string{`(?:\w+\s+)+%s\s*\(`},
		Prologue:     bracePrologue,
		Comment:      "/*",
		CommentClose: " */",
		Existence: []string{
			`void\s+%s\s*\(`,
			`int\s+%s\s*\(`,
			`static\s+.*\s+%s\s*\(`,
			`%s\s*\(`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{
				{"gcc", "-fsyntax-only", "{file}"},
				{"clang", "-fsyntax-only", "{file}"},
			},
			Timeout:  10 * time.Second,
			FileName: "tool.c",
			Hint:     "Neither gcc nor clang found. Install a C compiler to validate C code.",
		},
		Imports:      []string{`^#include\s+[<"].+[>"]`},
		ImportAnchor: []string{`^\s*#include`},
		NeedsCompile: true,
	}

	cpp := Profile{
		Ext:        ".cpp",
		Name:       "C++",
		Family:     FamilyBrace,
		Definition: []string{`(?:\w+\s+)+%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`void\s+%s\s*\(`,
			`int\s+%s\s*\(`,
			`auto\s+%s\s*\(`,
			`std::.*\s+%s\s*\(`,
			`class\s+%s`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{
				{"g++", "-fsyntax-only", "-std=c++17", "{file}"},
				{"clang++", "-fsyntax-only", "-std=c++17", "{file}"},
			},
			Timeout:  10 * time.Second,
			FileName: "tool.cpp",
			Hint:     "Neither g++ nor clang++ found. Install a C++ compiler to validate C++ code.",
		},
		Imports:      []string{`^#include\s+[<"].+[>"]`},
		ImportAnchor: []string{`^\s*#include`},
		NeedsCompile: true,
	}

	golang := Profile{
		Ext:        ".go",
		Name:       "Go",
		Family:     FamilyBrace,
		Definition: []string{`func\s+(?:\([^)]*\)\s+)?%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`func\s+%s\s*\(`,
			`func\s+\(.*\)\s+%s\s*\(`,
			`var\s+%s\s*=`,
			`const\s+%s\s*=`,
		},
		// Tier-2 runs in process through the native parser; no external
		// toolchain spec.
		Imports:      []string{`^import\s+"[^"]+"`},
		ImportAnchor: []string{`^\s*import\b`},
		NeedsCompile: true,
	}

	zig := Profile{
		Ext:        ".zig",
		Name:       "Zig",
		Family:     FamilyBrace,
		Definition: []string{`(?:pub\s+)?fn\s+%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`pub\s+fn\s+%s\s*\(`,
			`fn\s+%s\s*\(`,
			`const\s+%s\s*=`,
			`var\s+%s\s*=`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"zig", "ast-check", "{file}"}},
			Timeout:    10 * time.Second,
			FileName:   "tool.zig",
			Hint:       "zig not found. Install Zig (https://ziglang.org/download/) to validate Zig code.",
		},
		Imports:      []string{`^const\s+\w+\s*=\s*@import\(.+\)\s*;`},
		ImportAnchor: []string{`@import\(`},
		NeedsCompile: true,
	}

	java := Profile{
		Ext:        ".java",
		Name:       "Java",
		Family:     FamilyBrace,
		Definition: []string{`(?:(?:public|private|protected)\s+)?(?:static\s+)?(?:\w+\s+)%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`(?:public|private|protected)\s+.*\s+%s\s*\(`,
			`static\s+.*\s+%s\s*\(`,
			`class\s+%s\s`,
			`interface\s+%s\s`,
		},
		Toolchain: &Toolchain{
			Candidates:  [][]string{{"javac", "-d", ".", "{file}"}},
			Timeout:     15 * time.Second,
			FileName:    "Tool.java",
			NamePattern: `public\s+class\s+(\w+)`,
			Hint:        "javac not found. Install a JDK to validate Java code.",
		},
		Imports:      []string{`^import\s+(?:static\s+)?.+;`},
		ImportAnchor: []string{`^\s*import\s`},
		NeedsCompile: true,
	}

	ruby := Profile{
		Ext:          ".rb",
		Name:         "Ruby",
		Family:       FamilyEndKeyword,
		Definition:   []string{`def\s+(?:self\.)?%s\s*(?:\(|$)`},
		Prologue:     []string{"#"},
		Comment:      "#",
		BlockOpeners: []string{"def", "class", "module", "if", "unless", "case", "while", "until", "begin", "for"},
		TrailingDo:   true,
		Existence: []string{
			`def\s+%s\s*[(\n]`,
			`def\s+self\.%s\s*[(\n]`,
			`class\s+%s\s`,
			`module\s+%s\s`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"ruby", "-c", "{file}"}},
			Timeout:    10 * time.Second,
			FileName:   "tool.rb",
			Hint:       "ruby not found. Install Ruby to validate Ruby code.",
		},
		Imports:      []string{`^require(?:_relative)?\s+.+`},
		ImportAnchor: []string{`^\s*require(?:_relative)?\s`},
	}

	kotlin := Profile{
		Ext:        ".kt",
		Name:       "Kotlin",
		Family:     FamilyBrace,
		Definition: []string{`fun\s+%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`fun\s+%s\s*\(`,
			`class\s+%s\s`,
			`val\s+%s\s*[=:]`,
			`var\s+%s\s*[=:]`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"kotlinc", "-script", "{file}"}},
			Timeout:    15 * time.Second,
			FileName:   "tool.kt",
			Hint:       "kotlinc not found. Install Kotlin to validate Kotlin code.",
		},
		Imports:      []string{`^import\s+.+`},
		ImportAnchor: []string{`^\s*import\s`},
		NeedsCompile: true,
	}

	swift := Profile{
		Ext:        ".swift",
		Name:       "Swift",
		Family:     FamilyBrace,
		Definition: []string{`func\s+%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`func\s+%s\s*\(`,
			`class\s+%s\s`,
			`struct\s+%s\s`,
			`let\s+%s\s*[=:]`,
			`var\s+%s\s*[=:]`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"swiftc", "-parse", "{file}"}},
			Timeout:    15 * time.Second,
			FileName:   "tool.swift",
			Hint:       "swiftc not found. Install Swift to validate Swift code.",
		},
		Imports:      []string{`^(?:@testable\s+)?import\s+\w+`},
		ImportAnchor: []string{`^\s*(?:@testable\s+)?import\s`},
		NeedsCompile: true,
	}

	csharp := Profile{
		Ext:        ".cs",
		Name:       "C#",
		Family:     FamilyBrace,
		Definition: []string{`(?:(?:public|private|protected|internal)\s+)?(?:static\s+)?(?:\w+\s+)%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`(?:public|private|protected|internal)\s+.*\s+%s\s*\(`,
			`static\s+.*\s+%s\s*\(`,
			`class\s+%s\s`,
			`interface\s+%s\s`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{
				{"dotnet", "build"},
				{"csc", "/nologo", "/t:library", "{file}"},
			},
			Timeout:  15 * time.Second,
			FileName: "Tool.cs",
			Hint:     "Neither dotnet nor csc found. Install .NET SDK to validate C# code.",
		},
		Imports:      []string{`^using\s+(?:static\s+)?.+;`},
		ImportAnchor: []string{`^\s*using\s`},
		NeedsCompile: true,
	}

	php := Profile{
		Ext:        ".php",
		Name:       "PHP",
		Family:     FamilyBrace,
		Definition: []string{`function\s+%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`function\s+%s\s*\(`,
			`class\s+%s\s`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"php", "-l", "{file}"}},
			Timeout:    10 * time.Second,
			FileName:   "tool.php",
			Hint:       "php not found. Install PHP to validate PHP code.",
		},
		Imports: []string{
			`^(?:require|require_once|include|include_once)\s+.+;`,
			`^use\s+.+;`,
		},
		ImportAnchor: []string{`^\s*(?:use\s|require|include)`},
	}

	lua := Profile{
		Ext:    ".lua",
		Name:   "Lua",
		Family: FamilyEndKeyword,
		Definition: []string{
			`function\s+%s\s*\(`,
			`local\s+function\s+%s\s*\(`,
		},
		Prologue:     []string{"--"},
		Comment:      "--",
		BlockOpeners: []string{"function", "if", "for", "while", "do"},
		Existence: []string{
			`function\s+%s\s*\(`,
			`local\s+function\s+%s\s*\(`,
			`%s\s*=\s*function\s*\(`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"luac", "-p", "{file}"}},
			Timeout:    10 * time.Second,
			FileName:   "tool.lua",
			Hint:       "luac not found. Install Lua to validate Lua code.",
		},
		Imports:      []string{`^(?:local\s+\w+\s*=\s*)?require\s*[("].+[)"]`},
		ImportAnchor: []string{`require`},
	}

	scala := Profile{
		Ext:        ".scala",
		Name:       "Scala",
		Family:     FamilyBrace,
		Definition: []string{`def\s+%s\s*[(\[]`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`def\s+%s\s*[(\[]`,
			`class\s+%s\s`,
			`object\s+%s\s`,
			`val\s+%s\s*[=:]`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"scalac", "{file}"}},
			Timeout:    30 * time.Second,
			FileName:   "tool.scala",
			Hint:       "scalac not found. Install Scala to validate Scala code.",
		},
		Imports:      []string{`^import\s+.+`},
		ImportAnchor: []string{`^\s*import\s`},
		NeedsCompile: true,
	}

	elixir := Profile{
		Ext:          ".ex",
		Name:         "Elixir",
		Family:       FamilyEndKeyword,
		Definition:   []string{`def[p]?\s+%s\s*[(,\s]`},
		Prologue:     []string{"#", "@"},
		Comment:      "#",
		BlockOpeners: []string{"def", "defp", "defmodule", "if", "case", "cond", "fn"},
		Existence: []string{
			`def\s+%s\s*[(,]`,
			`def\s+%s\s+do`,
			`defp\s+%s\s*[(,]`,
			`defmodule\s+%s\s`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"elixir", "-e", `Code.compile_file("{file}")`}},
			Timeout:    15 * time.Second,
			FileName:   "tool.exs",
			Hint:       "elixir not found. Install Elixir to validate Elixir code.",
		},
		Imports:      []string{`^(?:alias|require|import|use)\s+.+`},
		ImportAnchor: []string{`^\s*(?:alias|require|import|use)\s`},
		NeedsCompile: true,
	}

	dart := Profile{
		Ext:        ".dart",
		Name:       "Dart",
		Family:     FamilyBrace,
		Definition: []string{`\w+\s+%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`\w+\s+%s\s*\(`,
			`class\s+%s\s`,
			`var\s+%s\s*=`,
			`final\s+%s\s*=`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"dart", "analyze", "--no-fatal-infos", "{file}"}},
			Timeout:    15 * time.Second,
			FileName:   "tool.dart",
			Hint:       "dart not found. Install Dart SDK to validate Dart code.",
		},
		Imports:      []string{`^import\s+.+;`},
		ImportAnchor: []string{`^\s*import\s`},
		NeedsCompile: true,
	}

	haskell := Profile{
		Ext:    ".hs",
		Name:   "Haskell",
		Family: FamilyAdHoc,
		Definition: []string{
			`^%s\s+::`,
			`^%s\s+`,
		},
		Prologue: []string{"--"},
		Comment:  "--",
		Existence: []string{
			`^%s\s+::\s+`,
			`^%s\s+`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"ghc", "-fno-code", "{file}"}},
			Timeout:    15 * time.Second,
			FileName:   "tool.hs",
			Hint:       "ghc not found. Install GHC to validate Haskell code.",
		},
		Imports:      []string{`^import\s+(?:qualified\s+)?\w+.*`},
		ImportAnchor: []string{`^\s*import\s`},
		NeedsCompile: true,
	}

	ocaml := Profile{
		Ext:          ".ml",
		Name:         "OCaml",
		Family:       FamilyAdHoc,
		Definition:   []string{`let\s+%s\s`},
		Prologue:     []string{"(*"},
		Comment:      "(*",
		CommentClose: " *)",
		Existence: []string{
			`let\s+%s\s`,
			`module\s+%s\s`,
			`val\s+%s\s*:`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"ocamlc", "-c", "{file}"}},
			Timeout:    15 * time.Second,
			FileName:   "tool.ml",
			Hint:       "ocamlc not found. Install OCaml to validate OCaml code.",
		},
		Imports:      []string{`^open\s+\w+`},
		ImportAnchor: []string{`^\s*open\s`},
		NeedsCompile: true,
	}

	nim := Profile{
		Ext:        ".nim",
		Name:       "Nim",
		Family:     FamilyIndent,
		Definition: []string{`(?:proc|func)\s+%s\s*[(*]`},
		Prologue:   []string{"#"},
		Comment:    "#",
		Existence: []string{
			`proc\s+%s\s*[(*]`,
			`func\s+%s\s*[(*]`,
			`type\s+%s\s`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"nim", "check", "{file}"}},
			Timeout:    15 * time.Second,
			FileName:   "tool.nim",
			Hint:       "nim not found. Install Nim to validate Nim code.",
		},
		Imports:      []string{`^(?:import|from)\s+.+`},
		ImportAnchor: []string{`^\s*(?:import|from)\s`},
		NeedsCompile: true,
	}

	dlang := Profile{
		Ext:        ".d",
		Name:       "D",
		Family:     FamilyBrace,
		Definition: []string{`\w+\s+%s\s*\(`},
		Prologue:   bracePrologue,
		Comment:    "//",
		Existence: []string{
			`\w+\s+%s\s*\(`,
			`class\s+%s\s`,
			`struct\s+%s\s`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"dmd", "-o-", "{file}"}},
			Timeout:    15 * time.Second,
			FileName:   "tool.d",
			Hint:       "dmd not found. Install D compiler to validate D code.",
		},
		Imports:      []string{`^import\s+.+;`},
		ImportAnchor: []string{`^\s*import\s`},
		NeedsCompile: true,
	}

	crystal := Profile{
		Ext:          ".cr",
		Name:         "Crystal",
		Family:       FamilyEndKeyword,
		Definition:   []string{`def\s+(?:self\.)?%s\s*(?:\(|$)`},
		Prologue:     []string{"#"},
		Comment:      "#",
		BlockOpeners: []string{"def", "class", "module", "if", "unless", "case", "while", "until", "begin", "for"},
		TrailingDo:   true,
		Existence: []string{
			`def\s+%s\s*[(\n]`,
			`class\s+%s\s`,
			`module\s+%s\s`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"crystal", "tool", "format", "--check", "{file}"}},
			Timeout:    15 * time.Second,
			FileName:   "tool.cr",
			Hint:       "crystal not found. Install Crystal to validate Crystal code.",
		},
		Imports:      []string{`^require\s+.+`},
		ImportAnchor: []string{`^\s*require\s`},
		NeedsCompile: true,
	}

	raku := Profile{
		Ext:        ".raku",
		Name:       "Raku",
		Family:     FamilyBrace,
		Definition: []string{`(?:sub|method)\s+%s\s*[(\s]`},
		Prologue:   bracePrologue,
		Comment:    "#",
		Existence: []string{
			`sub\s+%s\s*[(\s]`,
			`method\s+%s\s*[(\s]`,
			`class\s+%s\s`,
			`module\s+%s\s`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"raku", "-c", "{file}"}},
			Timeout:    15 * time.Second,
			FileName:   "tool.raku",
			Hint:       "raku not found. Install Raku to validate Raku code.",
		},
		Imports:      []string{`^(?:use|need)\s+.+;`},
		ImportAnchor: []string{`^\s*(?:use|need)\s`},
	}

	julia := Profile{
		Ext:          ".jl",
		Name:         "Julia",
		Family:       FamilyEndKeyword,
		Definition:   []string{`function\s+%s\s*(?:\(|$)`},
		Prologue:     []string{"#"},
		Comment:      "#",
		BlockOpeners: []string{"function", "if", "for", "while", "begin", "let", "try"},
		Existence: []string{
			`function\s+%s\s*[(\n]`,
			`%s\s*\([^)]*\)\s*=`,
			`struct\s+%s\s`,
			`module\s+%s\s`,
		},
		Toolchain: &Toolchain{
			Candidates: [][]string{{"julia", "--startup-file=no", "-e", `include("{file}")`}},
			Timeout:    30 * time.Second,
			FileName:   "tool.jl",
			Hint:       "julia not found. Install Julia to validate Julia code.",
		},
		Imports:      []string{`^(?:using|import)\s+.+`},
		ImportAnchor: []string{`^\s*(?:using|import)\s`},
	}

	return []Profile{
		python,
		javascript,
		typescript,
		rust,
		c,
		cpp,
		alias(cpp, ".cc"),
		alias(cpp, ".cxx"),
		golang,
		zig,
		java,
		ruby,
		kotlin,
		alias(kotlin, ".kts"),
		swift,
		csharp,
		php,
		lua,
		scala,
		elixir,
		alias(elixir, ".exs"),
		dart,
		haskell,
		ocaml,
		alias(ocaml, ".mli"),
		nim,
		dlang,
		crystal,
		raku,
		alias(raku, ".rakumod"),
		alias(raku, ".pm6"),
		julia,
	}
}
