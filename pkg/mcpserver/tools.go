package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/jingkaihe/skill-advisor/pkg/advisor"
	"github.com/jingkaihe/skill-advisor/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
)

// RecommendInput is the argument object of recommend_skills
type RecommendInput struct {
	Request string `json:"request" jsonschema:"description=The user's request in natural language"`
	Limit   int    `json:"limit,omitempty" jsonschema:"description=Maximum number of recommendations to return (0 means all),minimum=0"`
}

// GateInput is the argument object of check_dual_threshold
type GateInput struct {
	Confidence           float64  `json:"confidence" jsonschema:"description=Confidence between 0 and 1,minimum=0,maximum=1"`
	Uncertainty          float64  `json:"uncertainty" jsonschema:"description=Uncertainty between 0 and 1,minimum=0,maximum=1"`
	ConfidenceThreshold  *float64 `json:"confidence_threshold,omitempty" jsonschema:"description=Minimum confidence (default 0.80)"`
	UncertaintyThreshold *float64 `json:"uncertainty_threshold,omitempty" jsonschema:"description=Maximum uncertainty (default 0.35)"`
}

// GateResult is the JSON body returned by check_dual_threshold
type GateResult struct {
	Passes bool                     `json:"passes"`
	Level  advisor.UncertaintyLevel `json:"level"`
}

type tool struct {
	definition func() (mcp.Tool, error)
	handler    server.ToolHandlerFunc
}

func (s *Server) tools() []tool {
	return []tool{
		{
			definition: func() (mcp.Tool, error) {
				schema, err := rawSchema[RecommendInput]()
				if err != nil {
					return mcp.Tool{}, err
				}
				return mcp.NewToolWithRawSchema("recommend_skills",
					"Rank available skills for a request. Each result carries confidence, uncertainty and whether it passes the routing gate.",
					schema), nil
			},
			handler: s.handleRecommend,
		},
		{
			definition: func() (mcp.Tool, error) {
				schema, err := rawSchema[GateInput]()
				if err != nil {
					return mcp.Tool{}, err
				}
				return mcp.NewToolWithRawSchema("check_dual_threshold",
					"Check whether a confidence/uncertainty pair passes the dual-threshold gate and classify the uncertainty level.",
					schema), nil
			},
			handler: s.handleGate,
		},
	}
}

func (s *Server) handleRecommend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArguments[RecommendInput](request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if input.Limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}

	// a blank request yields [] without loading the catalog
	recs, err := s.advisor.Analyze(ctx, input.Request)
	if err != nil {
		logger.G(ctx).WithError(err).Warn("recommend_skills failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	if input.Limit > 0 && len(recs) > input.Limit {
		recs = recs[:input.Limit]
	}

	return jsonResult(recs)
}

func (s *Server) handleGate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArguments[GateInput](request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	thresholds := s.advisor.Thresholds()
	if input.ConfidenceThreshold != nil {
		thresholds.Confidence = *input.ConfidenceThreshold
	}
	if input.UncertaintyThreshold != nil {
		thresholds.Uncertainty = *input.UncertaintyThreshold
	}

	return jsonResult(GateResult{
		Passes: thresholds.Passes(input.Confidence, input.Uncertainty),
		Level:  advisor.LevelOf(input.Uncertainty),
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal tool result")
	}
	return mcp.NewToolResultText(string(b)), nil
}
