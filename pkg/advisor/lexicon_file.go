package advisor

import (
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LexiconFile is the on-disk form of a lexicon overlay
type LexiconFile struct {
	StopWords          []string            `yaml:"stop_words"`
	Synonyms           map[string][]string `yaml:"synonyms"`
	IntentBoosters     map[string]Boost    `yaml:"intent_boosters"`
	MultiSkillBoosters map[string][]Boost  `yaml:"multi_skill_boosters"`
}

// LoadLexicon reads a YAML overlay and validates it. The returned lexicon
// only contains the overlay entries; combine it with DefaultLexicon().Extend.
func LoadLexicon(path string) (*Lexicon, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read lexicon file")
	}

	lex, err := ParseLexicon(content)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid lexicon file %s", path)
	}
	lex.description = path
	return lex, nil
}

// ParseLexicon decodes a YAML overlay
func ParseLexicon(content []byte) (*Lexicon, error) {
	var file LexiconFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse lexicon yaml")
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}

	lex := &Lexicon{
		stopWords:   make(map[string]struct{}, len(file.StopWords)),
		synonyms:    make(map[string][]string, len(file.Synonyms)),
		intent:      make(map[string]Boost, len(file.IntentBoosters)),
		multiSkill:  make(map[string][]Boost, len(file.MultiSkillBoosters)),
		description: "overlay",
	}
	for _, w := range file.StopWords {
		lex.stopWords[normalizeKey(w)] = struct{}{}
	}
	for k, v := range file.Synonyms {
		terms := make([]string, 0, len(v))
		for _, t := range v {
			terms = append(terms, normalizeKey(t))
		}
		lex.synonyms[normalizeKey(k)] = terms
	}
	for k, v := range file.IntentBoosters {
		lex.intent[normalizeKey(k)] = v
	}
	for k, v := range file.MultiSkillBoosters {
		lex.multiSkill[normalizeKey(k)] = append([]Boost(nil), v...)
	}
	return lex, nil
}

// Validate checks every booster entry and reports all problems at once
func (f *LexiconFile) Validate() error {
	var result *multierror.Error

	for keyword, b := range f.IntentBoosters {
		if err := validateBoost(b); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "intent booster %q", keyword))
		}
	}
	for keyword, boosts := range f.MultiSkillBoosters {
		if len(boosts) == 0 {
			result = multierror.Append(result, errors.Errorf("multi-skill booster %q has no skills", keyword))
		}
		for i, b := range boosts {
			if err := validateBoost(b); err != nil {
				result = multierror.Append(result, errors.Wrapf(err, "multi-skill booster %q[%d]", keyword, i))
			}
		}
	}

	return result.ErrorOrNil()
}

func validateBoost(b Boost) error {
	if strings.TrimSpace(b.Skill) == "" {
		return errors.New("skill name is required")
	}
	if b.Amount <= 0 {
		return errors.Errorf("boost amount must be positive, got %v", b.Amount)
	}
	return nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
