package main

import (
	"github.com/jingkaihe/skill-advisor/pkg/advisor"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// GateOutput is the output of the gate command
type GateOutput struct {
	Confidence           float64                  `json:"confidence"`
	Uncertainty          float64                  `json:"uncertainty"`
	ConfidenceThreshold  float64                  `json:"confidence_threshold"`
	UncertaintyThreshold float64                  `json:"uncertainty_threshold"`
	Passes               bool                     `json:"passes"`
	Level                advisor.UncertaintyLevel `json:"level"`
}

func newGateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Apply the dual-threshold gate to a confidence/uncertainty pair",
		Long: `Check whether confidence is at least the confidence threshold and uncertainty
at most the uncertainty threshold. --readiness uses the task readiness gate
(0.70/0.35) instead of the routing gate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			confidence, _ := cmd.Flags().GetFloat64("confidence")
			uncertainty, _ := cmd.Flags().GetFloat64("uncertainty")
			readiness, _ := cmd.Flags().GetBool("readiness")

			thresholds, err := thresholdsFromConfig()
			if err != nil {
				return err
			}
			if readiness {
				thresholds = advisor.ReadinessThresholds
			}

			return writeJSON(cmd.OutOrStdout(), GateOutput{
				Confidence:           confidence,
				Uncertainty:          uncertainty,
				ConfidenceThreshold:  thresholds.Confidence,
				UncertaintyThreshold: thresholds.Uncertainty,
				Passes:               thresholds.Passes(confidence, uncertainty),
				Level:                advisor.LevelOf(uncertainty),
			})
		},
	}

	cmd.Flags().Float64("confidence", 0, "Confidence in [0, 1]")
	cmd.Flags().Float64("uncertainty", 1, "Uncertainty in [0, 1]")
	cmd.Flags().Bool("readiness", false, "Use the task readiness thresholds")
	cmd.MarkFlagRequired("confidence")
	cmd.MarkFlagRequired("uncertainty")

	return cmd
}

func newUncertaintyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uncertainty",
		Short: "Compute uncertainty from match counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			matches, _ := cmd.Flags().GetInt("matches")
			intent, _ := cmd.Flags().GetBool("intent")
			ambiguous, _ := cmd.Flags().GetInt("ambiguous")

			u := advisor.CalculateUncertainty(matches, intent, ambiguous)
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"uncertainty": u,
				"level":       advisor.LevelOf(u),
			})
		},
	}

	cmd.Flags().Int("matches", 0, "Number of matched terms")
	cmd.Flags().Bool("intent", false, "Whether an intent booster fired")
	cmd.Flags().Int("ambiguous", 0, "Number of ambiguous (multi-skill) matches")

	return cmd
}

func newConfidenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confidence",
		Short: "Compute confidence from a raw score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			score, _ := cmd.Flags().GetFloat64("score")
			intent, _ := cmd.Flags().GetBool("intent")
			weight, _ := cmd.Flags().GetFloat64("weight")

			if weight < 0 {
				return errors.Errorf("weight must not be negative, got %v", weight)
			}

			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"confidence": advisor.CalculateConfidence(score, intent, weight),
			})
		},
	}

	cmd.Flags().Float64("score", 0, "Raw skill score")
	cmd.Flags().Bool("intent", false, "Whether an intent booster fired")
	cmd.Flags().Float64("weight", 1, "Skill weight in [0, 1]")

	return cmd
}
