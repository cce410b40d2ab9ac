// Package mcpserver exposes the advisor as MCP tools over stdio so that an
// agent can ask which skill to load before acting.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/jingkaihe/skill-advisor/pkg/advisor"
	"github.com/jingkaihe/skill-advisor/pkg/logger"
	"github.com/jingkaihe/skill-advisor/pkg/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
)

const serverName = "skill-advisor"

// Server wraps an MCP server backed by an Advisor
type Server struct {
	advisor *advisor.Advisor
	mcp     *server.MCPServer
}

// New builds the MCP server and registers its tools
func New(adv *advisor.Advisor) (*Server, error) {
	if adv == nil {
		return nil, errors.New("advisor is required")
	}

	s := &Server{
		advisor: adv,
		mcp: server.NewMCPServer(
			serverName,
			version.Get().Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}

	for _, t := range s.tools() {
		tool, err := t.definition()
		if err != nil {
			return nil, err
		}
		s.mcp.AddTool(tool, t.handler)
	}

	return s, nil
}

// MCPServer returns the underlying server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over stdin/stdout until ctx is cancelled or input ends
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.G(ctx).Info("starting MCP stdio server")

	stdio := server.NewStdioServer(s.mcp)
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "mcp server failed")
	}
	return nil
}

// GenerateSchema reflects a flat JSON schema for T
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T

	return reflector.Reflect(v)
}

func rawSchema[T any]() (json.RawMessage, error) {
	b, err := json.Marshal(GenerateSchema[T]())
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal tool schema")
	}
	return b, nil
}

// decodeArguments converts loosely typed tool arguments into T
func decodeArguments[T any](request mcp.CallToolRequest) (T, error) {
	var input T
	raw, err := json.Marshal(request.Params.Arguments)
	if err != nil {
		return input, errors.Wrap(err, "failed to encode arguments")
	}
	if string(raw) == "null" {
		return input, nil
	}
	if err := json.Unmarshal(raw, &input); err != nil {
		return input, errors.Wrap(err, "invalid arguments")
	}
	return input, nil
}
