package skills

import (
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// FilterByAllowlist keeps skills whose names match one of the glob patterns
// (e.g. "workflows-*"). If the allowlist is empty, all skills are returned.
// Catalog order is preserved. Patterns that fail to compile match literally.
func FilterByAllowlist(catalog Catalog, allowed []string) Catalog {
	if len(allowed) == 0 {
		return catalog
	}

	compiled := make([]glob.Glob, 0, len(allowed))
	for _, pattern := range allowed {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			g = glob.MustCompile(glob.QuoteMeta(pattern), '/')
		}
		compiled = append(compiled, g)
	}
	return filterCompiled(catalog, compiled)
}

func compileAllowlist(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid allowlist pattern %q", pattern)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func filterCompiled(catalog Catalog, allowlist []glob.Glob) Catalog {
	filtered := make(Catalog, 0, len(catalog))
	for _, skill := range catalog {
		for _, g := range allowlist {
			if g.Match(skill.Name) {
				filtered = append(filtered, skill)
				break
			}
		}
	}
	return filtered
}
