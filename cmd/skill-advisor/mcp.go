package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jingkaihe/skill-advisor/pkg/logger"
	"github.com/jingkaihe/skill-advisor/pkg/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the advisor as MCP tools over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
recommend_skills and check_dual_threshold tools.

Logs go to stderr so they never corrupt the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logger.SetOutput(os.Stderr)

			adv, err := newAdvisor(ctx)
			if err != nil {
				return err
			}
			srv, err := mcpserver.New(adv)
			if err != nil {
				return err
			}

			return srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
