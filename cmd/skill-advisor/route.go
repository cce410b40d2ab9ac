package main

import (
	"strings"

	"github.com/jingkaihe/skill-advisor/pkg/advisor"
	"github.com/spf13/cobra"
)

// RouteResult is the output of the route command
type RouteResult struct {
	Request        string                   `json:"request"`
	Recommendation *advisor.Recommendation  `json:"recommendation"`
	Routed         bool                     `json:"routed"`
	Level          advisor.UncertaintyLevel `json:"level,omitempty"`
	Action         string                   `json:"action"`
}

func newRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <request>",
		Short: "Show the top skill and whether it may be loaded without asking",
		Long: `Analyze the request and report the top recommendation together with the
dual-threshold decision. When the gate fails the suggested action is to ask the
user to confirm or clarify.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			request := strings.Join(args, " ")

			adv, err := newAdvisor(ctx)
			if err != nil {
				return err
			}

			top, routed, err := adv.Route(ctx, request)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), newRouteResult(request, top, routed))
		},
	}
}

func newRouteResult(request string, top *advisor.Recommendation, routed bool) RouteResult {
	result := RouteResult{
		Request:        request,
		Recommendation: top,
		Routed:         routed,
	}

	switch {
	case top == nil:
		result.Action = "no matching skill; proceed without one"
	case routed:
		result.Level = top.Level()
		result.Action = "load " + top.Skill
	default:
		result.Level = top.Level()
		result.Action = actionFor(result.Level, top.Skill)
	}
	return result
}

func actionFor(level advisor.UncertaintyLevel, skill string) string {
	switch level {
	case advisor.UncertaintyLow:
		return "confidence too low; confirm " + skill + " with the user"
	case advisor.UncertaintyMedium:
		return "verify " + skill + " with the user before loading"
	default:
		return "ask the user to clarify the request"
	}
}
