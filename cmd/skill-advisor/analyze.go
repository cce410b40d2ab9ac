package main

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/jingkaihe/skill-advisor/pkg/advisor"
	"github.com/jingkaihe/skill-advisor/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// AnalyzeConfig holds output options for the root command
type AnalyzeConfig struct {
	Format string
	Limit  int
}

// NewAnalyzeConfig creates an AnalyzeConfig with default values
func NewAnalyzeConfig() *AnalyzeConfig {
	return &AnalyzeConfig{
		Format: "json",
	}
}

func addAnalyzeFlags(cmd *cobra.Command) {
	defaults := NewAnalyzeConfig()
	cmd.Flags().StringP("format", "f", defaults.Format, "Output format (json or table)")
	cmd.Flags().IntP("limit", "n", defaults.Limit, "Maximum number of recommendations (0 means all)")
}

// getAnalyzeConfigFromFlags extracts output options from command flags
func getAnalyzeConfigFromFlags(cmd *cobra.Command) (*AnalyzeConfig, error) {
	config := NewAnalyzeConfig()

	if format, err := cmd.Flags().GetString("format"); err == nil {
		config.Format = strings.ToLower(format)
	}
	if limit, err := cmd.Flags().GetInt("limit"); err == nil {
		config.Limit = limit
	}

	switch config.Format {
	case "json", "table":
	default:
		return nil, errors.Errorf("unsupported format %q, expected json or table", config.Format)
	}
	if config.Limit < 0 {
		return nil, errors.Errorf("limit must not be negative, got %d", config.Limit)
	}

	return config, nil
}

// runAnalyze ranks the catalog against request and writes the result.
// A blank request prints an empty list without consulting the catalog.
func runAnalyze(ctx context.Context, out io.Writer, request string, config *AnalyzeConfig) error {
	recs := []advisor.Recommendation{}

	if strings.TrimSpace(request) != "" {
		adv, err := newAdvisor(ctx)
		if err != nil {
			return err
		}
		recs, err = adv.Analyze(ctx, request)
		if err != nil {
			return err
		}
	}

	if config.Limit > 0 && len(recs) > config.Limit {
		recs = recs[:config.Limit]
	}

	if config.Format == "table" {
		presenter.NewWithOptions(out, out, presenter.ColorAuto).Recommendations(recs)
		return nil
	}
	return writeJSON(out, recs)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode output")
	}
	return nil
}
