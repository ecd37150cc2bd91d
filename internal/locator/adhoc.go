package locator

import (
	"strings"

	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/source"
)

// locateAdHoc covers the two languages with no bracketing structure at all.
// Haskell definitions are a column-0 signature or binding plus continuation
// lines; OCaml let bindings run to the next let or a blank line.
func locateAdHoc(buf source.Buffer, p lang.Profile, name string) (int, int, bool) {
	switch p.Ext {
	case ".hs":
		return locateHaskell(buf, p, name)
	case ".ml", ".mli":
		return locateOCaml(buf, p, name)
	}
	return 0, 0, false
}

func locateHaskell(buf source.Buffer, p lang.Profile, name string) (int, int, bool) {
	header, ok := findHeader(buf, p, name)
	if !ok {
		return 0, 0, false
	}

	end := header + 1
	for end < buf.Len() {
		line := buf.Line(end)
		if strings.TrimSpace(line) == "" {
			break
		}
		// A new top-level name ends the definition; indented continuation
		// lines and further equations of the same name belong to it.
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") && !strings.HasPrefix(line, name) {
			break
		}
		end++
	}
	return header, end, true
}

func locateOCaml(buf source.Buffer, p lang.Profile, name string) (int, int, bool) {
	header, ok := findHeader(buf, p, name)
	if !ok {
		return 0, 0, false
	}

	end := header + 1
	for end < buf.Len() {
		stripped := strings.TrimSpace(buf.Line(end))
		if stripped == "" {
			break
		}
		if strings.HasPrefix(stripped, "let ") && !strings.HasPrefix(stripped, "let "+name) {
			break
		}
		end++
	}
	return header, end, true
}
