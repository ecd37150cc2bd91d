package lang

import (
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Registry maps file extensions to language profiles. It is built once via
// NewRegistry and injected where needed; there is no package-level table.
type Registry struct {
	byExt map[string]Profile
	exts  []string
}

// NewRegistry builds the registry over the built-in profile table.
func NewRegistry() *Registry {
	profiles := builtinProfiles()
	r := &Registry{byExt: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		r.byExt[p.Ext] = p
		r.exts = append(r.exts, p.Ext)
	}
	sort.Strings(r.exts)
	return r
}

// Get returns the profile for an extension (".py", case-insensitive).
func (r *Registry) Get(ext string) (Profile, bool) {
	p, ok := r.byExt[strings.ToLower(ext)]
	return p, ok
}

// Supported returns the sorted list of supported extensions.
func (r *Registry) Supported() []string {
	cp := make([]string, len(r.exts))
	copy(cp, r.exts)
	return cp
}

// Profiles returns all profiles ordered by extension.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(r.exts))
	for _, ext := range r.exts {
		out = append(out, r.byExt[ext])
	}
	return out
}

// DetectName names the language of a file for display purposes. Content
// classification settles ambiguous extensions; the profile display name is
// the fallback when classification comes up empty.
func DetectName(path string, content []byte, fallback string) string {
	if name := enry.GetLanguage(path, content); name != "" && name != enry.OtherLanguage {
		return name
	}
	return fallback
}
