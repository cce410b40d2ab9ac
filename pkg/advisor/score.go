package advisor

import (
	"strings"
	"unicode/utf8"

	"github.com/jingkaihe/skill-advisor/pkg/skills"
)

// SkillScore is the raw scoring outcome for one skill
type SkillScore struct {
	Skill   skills.Skill
	Score   float64
	Boost   float64
	Matches []Match
}

// HasIntentBoost reports whether any booster contributed to the score
func (s SkillScore) HasIntentBoost() bool {
	return s.Boost > 0
}

// ScoreSkill starts from the skill's accumulated boost and adds one
// contribution per search term, in priority order: name match, exact
// description match, then fuzzy substring match. Each term counts at most once.
func ScoreSkill(skill skills.Skill, terms []string, boosts Boosts, lex *Lexicon) SkillScore {
	s := SkillScore{
		Skill:   skill,
		Score:   boosts.Amount(skill.Name),
		Boost:   boosts.Amount(skill.Name),
		Matches: append([]Match(nil), boosts.Matches[skill.Name]...),
	}

	nameTokens := toSet(filterTokens(words(skill.Name), lex))
	corpus := newCorpus(skill.Description, lex)

	for _, term := range terms {
		switch {
		case contains(nameTokens, term):
			s.Score += nameMatchScore
			s.Matches = append(s.Matches, Match{Term: term, Kind: MatchName})
		case corpus.has(term):
			s.Score += exactMatchScore
			s.Matches = append(s.Matches, Match{Term: term, Kind: MatchExact})
		case utf8.RuneCountInString(term) >= fuzzyMinLength:
			if corpus.fuzzy(term) {
				s.Score += fuzzyMatchScore
				s.Matches = append(s.Matches, Match{Term: term, Kind: MatchFuzzy})
			}
		}
	}
	return s
}

// corpus is the distinct filtered description vocabulary of a skill
type corpus struct {
	words []string
	set   map[string]struct{}
}

func newCorpus(description string, lex *Lexicon) corpus {
	c := corpus{set: make(map[string]struct{})}
	for _, w := range filterTokens(words(description), lex) {
		if _, ok := c.set[w]; ok {
			continue
		}
		c.set[w] = struct{}{}
		c.words = append(c.words, w)
	}
	return c
}

func (c corpus) has(term string) bool {
	return contains(c.set, term)
}

// fuzzy reports whether term and some corpus word of at least four
// characters contain one another. The first hit wins.
func (c corpus) fuzzy(term string) bool {
	for _, w := range c.words {
		if utf8.RuneCountInString(w) < fuzzyMinLength {
			continue
		}
		if strings.Contains(w, term) || strings.Contains(term, w) {
			return true
		}
	}
	return false
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
