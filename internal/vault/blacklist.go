package vault

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// Blacklist excludes vault paths from enumeration. Patterns containing '*' are
// globs over the slash-separated relative path; other patterns match by prefix
// or by equality with any single path component.
type Blacklist struct {
	patterns []string
	globs    []glob.Glob
}

// NewBlacklist compiles patterns. Empty patterns are dropped.
func NewBlacklist(patterns []string) (*Blacklist, error) {
	b := &Blacklist{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		var g glob.Glob
		if strings.Contains(p, "*") {
			compiled, err := glob.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("%w: blacklist pattern %q: %v", ErrInvalidArguments, p, err)
			}
			g = compiled
		}

		b.patterns = append(b.patterns, p)
		b.globs = append(b.globs, g)
	}
	return b, nil
}

// Match reports whether relPath is excluded.
func (b *Blacklist) Match(relPath string) bool {
	if b == nil {
		return false
	}

	rel := path.Clean(strings.ReplaceAll(relPath, `\`, "/"))
	components := strings.Split(rel, "/")

	for i, p := range b.patterns {
		if g := b.globs[i]; g != nil {
			if g.Match(rel) {
				return true
			}
			continue
		}

		if strings.HasPrefix(rel, p) || strings.HasPrefix(rel+"/", p) {
			return true
		}
		name := strings.TrimRight(p, "/")
		for _, c := range components {
			if c == name {
				return true
			}
		}
	}
	return false
}

// Patterns returns the patterns in effect.
func (b *Blacklist) Patterns() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.patterns))
	copy(out, b.patterns)
	return out
}
