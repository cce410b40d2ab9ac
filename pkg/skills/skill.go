// Package skills supplies the catalog of skills the advisor ranks.
// Skills are packaged as directories containing a SKILL.md file with
// YAML frontmatter describing the skill's name and purpose.
package skills

import "context"

// DefaultWeight is applied when a skill does not declare one
const DefaultWeight = 1.0

// Skill represents a discovered skill with its metadata
type Skill struct {
	Name        string  // Unique name from frontmatter
	Description string  // Free text matched against requests
	Weight      float64 // Multiplier in [0, 1] applied to confidence
	Directory   string  // Full path to the skill directory, empty for built-ins
	Content     string  // Body of SKILL.md (not frontmatter)
}

// Metadata represents the YAML frontmatter in SKILL.md files
type Metadata struct {
	Name        string   `mapstructure:"name"`
	Description string   `mapstructure:"description"`
	Weight      *float64 `mapstructure:"weight"`
}

// CatalogProvider supplies the skills for one analysis
type CatalogProvider interface {
	Catalog(ctx context.Context) (Catalog, error)
}

// Catalog is an ordered list of skills with unique names.
// Its order is the tie-break order when recommendations are ranked.
type Catalog []Skill

// Names returns the skill names in catalog order
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, s := range c {
		names = append(names, s.Name)
	}
	return names
}

// Lookup finds a skill by name
func (c Catalog) Lookup(name string) (Skill, bool) {
	for _, s := range c {
		if s.Name == name {
			return s, true
		}
	}
	return Skill{}, false
}

// With returns a copy of c with skill added. A skill of the same name is
// replaced in place, otherwise it is appended.
func (c Catalog) With(skill Skill) Catalog {
	out := make(Catalog, len(c), len(c)+1)
	copy(out, c)
	for i := range out {
		if out[i].Name == skill.Name {
			out[i] = skill
			return out
		}
	}
	return append(out, skill)
}

// StaticCatalog is a CatalogProvider over a fixed list
type StaticCatalog Catalog

// NewStaticCatalog builds a provider from skills. A zero weight is read as
// unset and becomes DefaultWeight; use NewWeightedStaticCatalog to keep it.
func NewStaticCatalog(skills ...Skill) StaticCatalog {
	return staticCatalog(skills, true)
}

// NewWeightedStaticCatalog builds a provider that keeps every weight as
// given, including zero.
func NewWeightedStaticCatalog(skills ...Skill) StaticCatalog {
	return staticCatalog(skills, false)
}

func staticCatalog(skills []Skill, defaultZeroWeight bool) StaticCatalog {
	c := Catalog{}
	for _, s := range skills {
		if s.Name == "" {
			continue
		}
		if defaultZeroWeight && s.Weight == 0 {
			s.Weight = DefaultWeight
		}
		c = c.With(s)
	}
	return StaticCatalog(c)
}

// Catalog implements CatalogProvider
func (s StaticCatalog) Catalog(_ context.Context) (Catalog, error) {
	return Catalog(s), nil
}
