// Package advisor maps a free-text request to a ranked list of skills.
//
// A request is tokenized, boosted by keyword tables, expanded with synonyms
// and matched against each skill's name and description. Each candidate gets
// a confidence and an uncertainty, and a dual-threshold gate decides whether
// the top candidate is safe to route to without asking the user.
//
// Analysis is a pure function of the request and the catalog: no state
// survives between calls and the lexicon is never mutated, so an Advisor
// may be shared across goroutines.
package advisor

import (
	"context"
	"sort"
	"strings"

	"github.com/jingkaihe/skill-advisor/pkg/logger"
	"github.com/jingkaihe/skill-advisor/pkg/skills"
	"github.com/jingkaihe/skill-advisor/pkg/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// maxReasonTerms caps how many annotations a reason lists
const maxReasonTerms = 5

// Recommendation is one ranked skill candidate
type Recommendation struct {
	Skill           string  `json:"skill" jsonschema:"description=Skill name"`
	Confidence      float64 `json:"confidence" jsonschema:"description=Confidence in [0,1] rounded to two decimals,minimum=0,maximum=1"`
	Uncertainty     float64 `json:"uncertainty" jsonschema:"description=Uncertainty in [0,1] rounded to two decimals,minimum=0,maximum=1"`
	Reason          string  `json:"reason" jsonschema:"description=Matched terms that produced the score"`
	PassesThreshold bool    `json:"passes_threshold" jsonschema:"description=Whether confidence and uncertainty both pass the gate"`
}

// Level classifies the recommendation's uncertainty
func (r Recommendation) Level() UncertaintyLevel {
	return LevelOf(r.Uncertainty)
}

// Advisor ranks skills from a catalog provider
type Advisor struct {
	provider   skills.CatalogProvider
	lexicon    *Lexicon
	thresholds Thresholds
}

// Option configures an Advisor
type Option func(*Advisor)

// WithLexicon replaces the built-in lexicon
func WithLexicon(lex *Lexicon) Option {
	return func(a *Advisor) {
		if lex != nil {
			a.lexicon = lex
		}
	}
}

// WithThresholds sets the gate used for PassesThreshold and Route
func WithThresholds(t Thresholds) Option {
	return func(a *Advisor) {
		a.thresholds = t
	}
}

// New creates an Advisor over provider
func New(provider skills.CatalogProvider, opts ...Option) *Advisor {
	a := &Advisor{
		provider:   provider,
		lexicon:    DefaultLexicon(),
		thresholds: DefaultThresholds,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Thresholds returns the configured gate
func (a *Advisor) Thresholds() Thresholds {
	return a.thresholds
}

// Lexicon returns the lexicon in use
func (a *Advisor) Lexicon() *Lexicon {
	return a.lexicon
}

// Catalog fetches the current catalog from the provider
func (a *Advisor) Catalog(ctx context.Context) (skills.Catalog, error) {
	var catalog skills.Catalog
	err := telemetry.WithSpan(ctx, "advisor.catalog", func(ctx context.Context) error {
		var err error
		catalog, err = a.provider.Catalog(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load skill catalog")
	}
	return catalog, nil
}

// Analyze loads the catalog once and ranks it against request.
// The only error source is the catalog provider.
func (a *Advisor) Analyze(ctx context.Context, request string) ([]Recommendation, error) {
	return a.AnalyzeWith(ctx, request, a.thresholds)
}

// AnalyzeWith is Analyze with a per-call gate
func (a *Advisor) AnalyzeWith(ctx context.Context, request string, thresholds Thresholds) ([]Recommendation, error) {
	if strings.TrimSpace(request) == "" {
		return []Recommendation{}, nil
	}

	catalog, err := a.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	var recs []Recommendation
	telemetry.WithSpanFunc(ctx, "advisor.analyze", func(ctx context.Context) {
		recs = AnalyzeRequest(request, catalog, a.lexicon, thresholds)
		telemetry.SetAttributes(ctx, attribute.Int("advisor.recommendations", len(recs)))
	}, attribute.Int("advisor.catalog_size", len(catalog)))

	entry := logger.G(ctx).WithField("candidates", len(recs))
	if len(recs) > 0 {
		entry = entry.WithField("top", recs[0].Skill).WithField("confidence", recs[0].Confidence)
	}
	entry.Debug("analyzed request")

	return recs, nil
}

// Route analyzes request and reports whether the top candidate passes the
// gate. A nil recommendation means nothing matched.
func (a *Advisor) Route(ctx context.Context, request string) (*Recommendation, bool, error) {
	recs, err := a.Analyze(ctx, request)
	if err != nil {
		return nil, false, err
	}
	if len(recs) == 0 {
		return nil, false, nil
	}
	top := recs[0]
	return &top, top.PassesThreshold, nil
}

// AnalyzeRequest ranks catalog against request. Skills with a zero score
// are omitted; the result is sorted by confidence, highest first, with
// catalog order breaking ties. An empty request yields an empty list.
func AnalyzeRequest(request string, catalog skills.Catalog, lex *Lexicon, thresholds Thresholds) []Recommendation {
	recs := []Recommendation{}
	if strings.TrimSpace(request) == "" {
		return recs
	}
	if lex == nil {
		lex = DefaultLexicon()
	}

	tokens := Tokenize(request, lex)
	boosts := ResolveBoosts(tokens.All, lex)
	if len(tokens.Filtered) == 0 && boosts.Empty() {
		return recs
	}
	terms := ExpandQuery(tokens.Filtered, lex)

	for _, skill := range catalog {
		scored := ScoreSkill(skill, terms, boosts, lex)
		if scored.Score <= 0 {
			continue
		}
		recs = append(recs, recommend(scored, thresholds))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return recs
}

func recommend(s SkillScore, thresholds Thresholds) Recommendation {
	confidence := CalculateConfidence(s.Score, s.HasIntentBoost(), s.Skill.Weight)
	uncertainty := UncertaintyForMatches(s.Matches, s.HasIntentBoost())
	return Recommendation{
		Skill:           s.Skill.Name,
		Confidence:      confidence,
		Uncertainty:     uncertainty,
		Reason:          reason(s.Matches),
		PassesThreshold: thresholds.Passes(confidence, uncertainty),
	}
}

// reason lists up to five distinct annotations in first-seen order
func reason(matches []Match) string {
	seen := make(map[string]struct{}, len(matches))
	terms := make([]string, 0, maxReasonTerms)
	for _, m := range matches {
		s := m.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		terms = append(terms, s)
		if len(terms) == maxReasonTerms {
			break
		}
	}
	return "Matched: " + strings.Join(terms, ", ")
}
