package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"flowcraft/internal/canvas"
	"flowcraft/internal/service"
)

// Server is the MCP server for the canvas. It exposes tools so AI
// agents can inspect and drive the flow: move screens, wire
// connections, drop notes, trigger generation.
type Server struct {
	mcp     *server.MCPServer
	engine  *canvas.Engine
	flows   *service.FlowService
	emitter service.EventEmitter
}

// Deps holds the dependencies passed from the app layer.
type Deps struct {
	Engine  *canvas.Engine
	Flows   *service.FlowService
	Emitter service.EventEmitter
}

// New creates and configures an MCP server with all canvas tools.
func New(deps Deps) *Server {
	s := &Server{
		engine:  deps.Engine,
		flows:   deps.Flows,
		emitter: deps.Emitter,
	}

	s.mcp = server.NewMCPServer(
		"flowcraft-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerCanvasTools()
	s.registerScreenTools()
	s.registerNoteTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// emitCanvasChanged notifies the frontend that an agent mutated the
// canvas so it re-renders.
func (s *Server) emitCanvasChanged(ctx context.Context) {
	s.emitter.Emit(ctx, service.EventCanvasUpdated, s.engine.Snapshot())
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func boolPtr(b bool) *bool { return &b }

// requireString extracts a required string argument.
func requireString(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// requireNumber extracts a required numeric argument.
func requireNumber(args map[string]any, key string) (float64, error) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return v, nil
}
