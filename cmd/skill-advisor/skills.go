package main

import (
	"fmt"

	"github.com/jingkaihe/skill-advisor/pkg/presenter"
	"github.com/jingkaihe/skill-advisor/pkg/skills"
	"github.com/spf13/cobra"
)

func newSkillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Inspect the skill catalog",
	}

	cmd.AddCommand(newSkillsListCmd(), newSkillsValidateCmd())
	return cmd
}

func newSkillsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered skills in ranking tie-break order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			discovery, err := skills.Initialize(ctx)
			if err != nil {
				return err
			}
			catalog, err := discovery.Catalog(ctx)
			if err != nil {
				return err
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				type entry struct {
					Name        string  `json:"name"`
					Description string  `json:"description"`
					Weight      float64 `json:"weight"`
					Directory   string  `json:"directory,omitempty"`
				}
				entries := make([]entry, 0, len(catalog))
				for _, s := range catalog {
					entries = append(entries, entry{s.Name, s.Description, s.Weight, s.Directory})
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			presenter.NewWithOptions(cmd.OutOrStdout(), cmd.ErrOrStderr(), presenter.ColorAuto).Skills(catalog)
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func newSkillsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every SKILL.md in the configured directories parses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			discovery, err := skills.Initialize(ctx)
			if err != nil {
				return err
			}
			if err := discovery.Validate(ctx); err != nil {
				return err
			}

			names, err := discovery.ListSkillNames(ctx)
			if err != nil {
				return err
			}
			p := presenter.NewWithOptions(cmd.OutOrStdout(), cmd.ErrOrStderr(), presenter.ColorAuto)
			p.Success(fmt.Sprintf("%d skills valid", len(names)))
			return nil
		},
	}
}
