package skills

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
	"github.com/hashicorp/go-multierror"
	"github.com/jingkaihe/skill-advisor/pkg/logger"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

const skillFileName = "SKILL.md"

// Discovery builds a Catalog from skill directories on disk
type Discovery struct {
	skillDirs  []string
	pluginDirs []pluginDirConfig
	allowlist  []glob.Glob
	builtins   bool
}

// pluginDirConfig represents a plugin directory with its prefix
type pluginDirConfig struct {
	dir    string
	prefix string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithSkillDirs sets the skill directories. Each entry may be a doublestar
// pattern such as "vendor/**/skills".
func WithSkillDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		for _, dir := range dirs {
			if !doublestar.ValidatePathPattern(dir) {
				return errors.Errorf("invalid skill directory pattern %q", dir)
			}
		}
		d.skillDirs = dirs
		return nil
	}
}

// WithPluginDirs scans plugin roots for nested <plugin>/skills directories.
// Skills found there are named "<plugin>/<skill>".
func WithPluginDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		for _, dir := range dirs {
			d.addPluginDirs(expandHome(dir))
		}
		return nil
	}
}

// WithDefaultDirs initializes with default skill directories
func WithDefaultDirs() Option {
	return func(d *Discovery) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		d.skillDirs = []string{
			"./.opencode/skills",                          // Repo-local (highest precedence)
			filepath.Join(homeDir, ".opencode", "skills"), // User-global
		}

		d.pluginDirs = []pluginDirConfig{}
		d.addPluginDirs("./.opencode/plugins")
		d.addPluginDirs(filepath.Join(homeDir, ".opencode", "plugins"))

		return nil
	}
}

// WithAllowlist restricts the catalog to names matching one of the glob
// patterns. An empty list allows everything.
func WithAllowlist(patterns ...string) Option {
	return func(d *Discovery) error {
		compiled, err := compileAllowlist(patterns)
		if err != nil {
			return err
		}
		d.allowlist = compiled
		return nil
	}
}

// WithBuiltins controls whether the built-in command bridges are appended
func WithBuiltins(enabled bool) Option {
	return func(d *Discovery) error {
		d.builtins = enabled
		return nil
	}
}

// addPluginDirs scans a plugins directory and adds all plugin skill directories
// Supports nested org/repo directory structure
func (d *Discovery) addPluginDirs(pluginsDir string) {
	_ = filepath.Walk(pluginsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}

		skillsDir := filepath.Join(path, "skills")
		if _, err := os.Stat(skillsDir); err != nil {
			return nil
		}

		relPath, err := filepath.Rel(pluginsDir, path)
		if err != nil {
			return nil
		}

		pluginName := filepath.ToSlash(relPath)
		d.pluginDirs = append(d.pluginDirs, pluginDirConfig{
			dir:    skillsDir,
			prefix: pluginName + "/",
		})

		return filepath.SkipDir
	})
}

// NewDiscovery creates a new skill discovery instance. Without options the
// default directories are used and built-ins are enabled.
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{builtins: true}

	if len(opts) == 0 {
		opts = []Option{WithDefaultDirs()}
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Catalog implements CatalogProvider. It rereads the directories on every call.
func (d *Discovery) Catalog(ctx context.Context) (Catalog, error) {
	var catalog Catalog
	seen := make(map[string]struct{})

	for _, dir := range d.resolvedSkillDirs(ctx) {
		catalog = d.discoverSkillsFromDir(ctx, dir, "", catalog, seen)
	}
	for _, pluginDir := range d.pluginDirs {
		catalog = d.discoverSkillsFromDir(ctx, pluginDir.dir, pluginDir.prefix, catalog, seen)
	}

	if d.builtins {
		for _, b := range Builtins() {
			catalog = catalog.With(b)
		}
	}

	if len(d.allowlist) > 0 {
		catalog = filterCompiled(catalog, d.allowlist)
	}

	return catalog, nil
}

// resolvedSkillDirs expands patterns in the configured directories,
// preserving precedence order
func (d *Discovery) resolvedSkillDirs(ctx context.Context) []string {
	var dirs []string
	for _, pattern := range d.skillDirs {
		pattern = expandHome(pattern)
		if !hasMeta(pattern) {
			dirs = append(dirs, pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("pattern", pattern).Debug("failed to expand skill directory pattern")
			continue
		}
		dirs = append(dirs, matches...)
	}
	return dirs
}

// discoverSkillsFromDir discovers skills from a directory with optional name prefix
func (d *Discovery) discoverSkillsFromDir(ctx context.Context, dir, prefix string, catalog Catalog, seen map[string]struct{}) Catalog {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return catalog
	}

	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())

		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		skillPath := filepath.Join(entryPath, skillFileName)
		skill, err := d.loadSkill(skillPath)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("path", skillPath).Debug("skipping skill")
			continue
		}

		skillName := skill.Name
		if prefix != "" {
			skillName = prefix + skill.Name
		}

		if _, exists := seen[skillName]; !exists {
			seen[skillName] = struct{}{}
			skill.Name = skillName
			skill.Directory = entryPath
			catalog = append(catalog, *skill)
		}
	}
	return catalog
}

// Validate loads every SKILL.md under the configured directories and
// reports all that fail to parse. Directories without a SKILL.md are ignored.
func (d *Discovery) Validate(ctx context.Context) error {
	var result *multierror.Error

	dirs := d.resolvedSkillDirs(ctx)
	for _, p := range d.pluginDirs {
		dirs = append(dirs, p.dir)
	}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			skillPath := filepath.Join(dir, entry.Name(), skillFileName)
			if _, err := os.Stat(skillPath); err != nil {
				continue
			}
			if _, err := d.loadSkill(skillPath); err != nil {
				result = multierror.Append(result, errors.Wrap(err, skillPath))
			}
		}
	}

	return result.ErrorOrNil()
}

// GetSkill returns a specific skill by name
func (d *Discovery) GetSkill(ctx context.Context, name string) (Skill, error) {
	catalog, err := d.Catalog(ctx)
	if err != nil {
		return Skill{}, err
	}

	skill, exists := catalog.Lookup(name)
	if !exists {
		return Skill{}, errors.Errorf("skill '%s' not found", name)
	}

	return skill, nil
}

// ListSkillNames returns the names of all available skills in catalog order
func (d *Discovery) ListSkillNames(ctx context.Context) ([]string, error) {
	catalog, err := d.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Names(), nil
}

// loadSkill loads a single skill from its SKILL.md file
func (d *Discovery) loadSkill(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData, err := meta.TryGet(pctx)
	if err != nil {
		return nil, errors.Wrap(err, "invalid frontmatter")
	}
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	metadata, err := decodeMetadata(metaData)
	if err != nil {
		return nil, err
	}

	if metadata.Name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if metadata.Description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	weight := DefaultWeight
	if metadata.Weight != nil {
		weight = *metadata.Weight
	}
	if weight < 0 {
		return nil, errors.Errorf("skill weight must not be negative, got %v", weight)
	}

	return &Skill{
		Name:        metadata.Name,
		Description: strings.TrimSpace(metadata.Description),
		Weight:      weight,
		Content:     extractBodyContent(string(content)),
	}, nil
}

// decodeMetadata converts parsed frontmatter into Metadata, accepting
// quoted numbers for weight
func decodeMetadata(raw map[string]interface{}) (Metadata, error) {
	var md Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return md, errors.Wrap(err, "failed to create metadata decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return md, errors.Wrap(err, "failed to decode frontmatter")
	}
	return md, nil
}

// extractBodyContent removes YAML frontmatter and returns the body
func extractBodyContent(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
