package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jingkaihe/skill-advisor/pkg/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	initConfig()
}

// initConfig wires environment variables, the optional config file and defaults
func initConfig() {
	viper.SetEnvPrefix("SKILL_ADVISOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skill-advisor")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("thresholds.confidence", 0.80)
	viper.SetDefault("thresholds.uncertainty", 0.35)
	viper.SetDefault("skills.builtins", true)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skill-advisor [request]",
		Short: "Recommend the skill that best matches a request",
		Long: `skill-advisor ranks the available skills against a free-text request and
prints each candidate with a confidence, an uncertainty and whether it passes
the dual-threshold routing gate.

With no request an empty JSON array is printed.

Flags go before the request; everything from the first word of the request on
is request text. Put -- before a request that starts with "-" or that is also
the name of a subcommand:

  skill-advisor -- version control for my notes
  skill-advisor -- "-fix the bug"`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Configure(viper.GetString("log_level"), viper.GetString("log_format")); err != nil {
				return err
			}
			shutdown, err := initTracing(cmd.Context())
			if err != nil {
				logger.G(cmd.Context()).WithError(err).Warn("failed to initialize tracing")
				return nil
			}
			tracingShutdown = shutdown
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := getAnalyzeConfigFromFlags(cmd)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "), config)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text or json)")
	flags.StringSlice("skills-dir", nil, "Skill directories or doublestar patterns (repeatable)")
	flags.StringSlice("plugins-dir", nil, "Plugin roots containing <plugin>/skills directories (repeatable)")
	flags.StringSlice("allow", nil, "Only consider skills matching these glob patterns")
	flags.String("lexicon", "", "YAML lexicon overlay merged over the built-in tables")
	flags.Float64("confidence-threshold", 0.80, "Minimum confidence for automatic routing")
	flags.Float64("uncertainty-threshold", 0.35, "Maximum uncertainty for automatic routing")

	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))
	viper.BindPFlag("skills.dirs", flags.Lookup("skills-dir"))
	viper.BindPFlag("skills.plugin_dirs", flags.Lookup("plugins-dir"))
	viper.BindPFlag("skills.allowed", flags.Lookup("allow"))
	viper.BindPFlag("lexicon.file", flags.Lookup("lexicon"))
	viper.BindPFlag("thresholds.confidence", flags.Lookup("confidence-threshold"))
	viper.BindPFlag("thresholds.uncertainty", flags.Lookup("uncertainty-threshold"))

	addAnalyzeFlags(rootCmd)
	addTracingFlags(rootCmd)

	rootCmd.Flags().SetInterspersed(false)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if cmd != cmd.Root() {
			return err
		}
		return errors.Errorf("%s (put -- before a request that starts with \"-\")", err)
	})

	rootCmd.AddCommand(
		withTracing(newRouteCmd()),
		newGateCmd(),
		newUncertaintyCmd(),
		newConfidenceCmd(),
		newSkillsCmd(),
		withTracing(newServeCmd()),
		newMCPCmd(),
		newSchemaCmd(),
		newVersionCmd(),
	)

	return withTracing(rootCmd)
}

// tracingShutdown flushes spans once the command has finished
var tracingShutdown func(context.Context) error

func main() {
	ctx := context.Background()

	rootCmd := newRootCmd()
	execErr := rootCmd.ExecuteContext(ctx)

	if tracingShutdown != nil {
		if err := tracingShutdown(ctx); err != nil {
			logger.G(ctx).WithError(err).Warn("failed to shut down tracing")
		}
	}

	if execErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", execErr)
		os.Exit(1)
	}
}
