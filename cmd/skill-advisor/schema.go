package main

import (
	"github.com/invopop/jsonschema"
	"github.com/jingkaihe/skill-advisor/pkg/advisor"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the recommendation list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), recommendationSchema())
		},
	}
}

func recommendationSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect([]advisor.Recommendation{})
	schema.Title = "skill-advisor recommendations"
	return schema
}
