package main

import (
	"context"

	"github.com/jingkaihe/skill-advisor/pkg/advisor"
	"github.com/jingkaihe/skill-advisor/pkg/logger"
	"github.com/jingkaihe/skill-advisor/pkg/skills"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// thresholdsFromConfig reads the routing gate from configuration
func thresholdsFromConfig() (advisor.Thresholds, error) {
	t := advisor.Thresholds{
		Confidence:  viper.GetFloat64("thresholds.confidence"),
		Uncertainty: viper.GetFloat64("thresholds.uncertainty"),
	}
	if t.Confidence < 0 || t.Confidence > 1 || t.Uncertainty < 0 || t.Uncertainty > 1 {
		return t, errors.Errorf("thresholds must be within [0, 1], got confidence=%v uncertainty=%v", t.Confidence, t.Uncertainty)
	}
	return t, nil
}

// lexiconFromConfig returns the built-in lexicon, extended by lexicon.file when set
func lexiconFromConfig(ctx context.Context) (*advisor.Lexicon, error) {
	lex := advisor.DefaultLexicon()

	path := viper.GetString("lexicon.file")
	if path == "" {
		return lex, nil
	}

	overlay, err := advisor.LoadLexicon(path)
	if err != nil {
		return nil, err
	}
	logger.G(ctx).WithField("path", path).Debug("loaded lexicon overlay")

	return lex.Extend(overlay), nil
}

// newAdvisor builds an Advisor over the configured skill catalog
func newAdvisor(ctx context.Context) (*advisor.Advisor, error) {
	discovery, err := skills.Initialize(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to configure skill discovery")
	}

	lex, err := lexiconFromConfig(ctx)
	if err != nil {
		return nil, err
	}

	thresholds, err := thresholdsFromConfig()
	if err != nil {
		return nil, err
	}

	return advisor.New(discovery, advisor.WithLexicon(lex), advisor.WithThresholds(thresholds)), nil
}
