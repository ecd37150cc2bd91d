package imports

import (
	"reflect"
	"strings"
	"testing"

	"github.com/toolpatch/cli/internal/lang"
)

func newService() *Service {
	return NewService(lang.NewRegistry())
}

func TestExtract(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		ext         string
		code        string
		want        []string
		description string
	}{
		{
			ext:         ".py",
			code:        "import os\nfrom pathlib import Path\n\ndef main():\n    pass\n",
			want:        []string{"import os", "from pathlib import Path"},
			description: "python import and from forms",
		},
		{
			ext:         ".js",
			code:        "import fs from 'fs';\nconst path = require('path');\n",
			want:        []string{"import fs from 'fs'", "const path = require('path')"},
			description: "js forms lose the trailing semicolon",
		},
		{
			ext:         ".go",
			code:        "package main\n\nimport \"fmt\"\n\nimport (\n\t\"os\"\n\t\"strings\"\n)\n",
			want:        []string{`import "fmt"`, `import "os"`, `import "strings"`},
			description: "go single-line and block forms",
		},
		{
			ext:         ".rs",
			code:        "use std::fs;\nuse std::io::Read;\n",
			want:        []string{"use std::fs;", "use std::io::Read;"},
			description: "rust use statements keep the semicolon",
		},
		{
			ext:         ".rb",
			code:        "require 'json'\nrequire_relative 'helper'\n",
			want:        []string{"require 'json'", "require_relative 'helper'"},
			description: "ruby require forms",
		},
		{
			ext:         ".xyz",
			code:        "import whatever\n",
			want:        nil,
			description: "unknown extension yields nothing",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			got := newService().Extract(tc.code, tc.ext)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMissing(t *testing.T) {
	t.Parallel()

	source := "import os\nimport json\n\ndef main():\n    pass\n"
	candidate := "import os\nimport hashlib\nfrom pathlib import Path\n\ndef tool():\n    pass\n"

	got := newService().Missing(source, candidate, ".py")
	want := []string{"import hashlib", "from pathlib import Path"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestMissingNoneWhenCovered(t *testing.T) {
	t.Parallel()

	source := "import os\n"
	candidate := "import os\n\ndef tool():\n    pass\n"
	if got := newService().Missing(source, candidate, ".py"); got != nil {
		t.Errorf("Expected no missing imports, got %v", got)
	}
}

func TestInject(t *testing.T) {
	t.Parallel()

	t.Run("after the last existing import", func(t *testing.T) {
		t.Parallel()

		source := "import os\nimport json\n\ndef main():\n    pass\n"
		got := newService().Inject(source, []string{"import hashlib"}, ".py")
		want := "import os\nimport json\nimport hashlib\n\ndef main():\n    pass\n"
		if got != want {
			t.Errorf("Expected:\n%q\ngot:\n%q", want, got)
		}
	})

	t.Run("top of file when no anchor", func(t *testing.T) {
		t.Parallel()

		source := "def main():\n    pass\n"
		got := newService().Inject(source, []string{"import os"}, ".py")
		if !strings.HasPrefix(got, "import os\ndef main():") {
			t.Errorf("Expected import at top, got:\n%q", got)
		}
	})

	t.Run("no statements leaves source untouched", func(t *testing.T) {
		t.Parallel()

		source := "import os\n"
		if got := newService().Inject(source, nil, ".py"); got != source {
			t.Errorf("Expected unchanged source, got %q", got)
		}
	})

	t.Run("c includes insert after the last include", func(t *testing.T) {
		t.Parallel()

		source := "#include <stdio.h>\n\nint main(void) { return 0; }\n"
		got := newService().Inject(source, []string{"#include <string.h>"}, ".c")
		want := "#include <stdio.h>\n#include <string.h>\n\nint main(void) { return 0; }\n"
		if got != want {
			t.Errorf("Expected:\n%q\ngot:\n%q", want, got)
		}
	})
}
