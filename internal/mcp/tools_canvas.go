package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"flowcraft/internal/domain"
	"flowcraft/internal/frame"
	"flowcraft/internal/service"
)

func (s *Server) registerCanvasTools() {
	s.mcp.AddTool(mcp.NewTool("get_canvas_state",
		mcp.WithDescription("Get the full canvas state: screens, notes, connections, pan/zoom and the active tool"),
	), s.handleGetCanvasState)

	s.mcp.AddTool(mcp.NewTool("auto_layout",
		mcp.WithDescription("Rearrange all screens into a grid and reset the pan to the origin"),
	), s.handleAutoLayout)

	s.mcp.AddTool(mcp.NewTool("set_tool",
		mcp.WithDescription("Set the active canvas tool: select, hand, wand, eraser or note"),
		mcp.WithString("tool", mcp.Description("Tool name"), mcp.Required()),
	), s.handleSetTool)

	s.mcp.AddTool(mcp.NewTool("connect_screens",
		mcp.WithDescription("Create a directed connection between two screens (self-loops are rejected)"),
		mcp.WithString("fromId", mcp.Description("Source screen ID"), mcp.Required()),
		mcp.WithString("toId", mcp.Description("Target screen ID"), mcp.Required()),
	), s.handleConnectScreens)

	s.mcp.AddTool(mcp.NewTool("list_connections",
		mcp.WithDescription("List all connections between screens"),
	), s.handleListConnections)
}

func (s *Server) handleGetCanvasState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.engine.Snapshot())
}

func (s *Server) handleAutoLayout(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.AutoLayout()
	s.emitCanvasChanged(ctx)
	return textResult("screens arranged into grid"), nil
}

func (s *Server) handleSetTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req.GetArguments(), "tool")
	if err != nil {
		return nil, err
	}
	tool := domain.Tool(name)
	if !tool.Valid() {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	if s.engine.SetTool(tool) {
		// Same event and payload shape the app layer broadcasts, so the
		// frontend and every rendering context handle both sources alike.
		s.emitter.Emit(ctx, service.EventToolChanged, frame.NewToolChange(string(tool)))
	}
	return textResult("tool set to " + name), nil
}

func (s *Server) handleConnectScreens(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	fromID, err := requireString(args, "fromId")
	if err != nil {
		return nil, err
	}
	toID, err := requireString(args, "toId")
	if err != nil {
		return nil, err
	}

	conn, err := s.engine.Connect(fromID, toID)
	if err != nil {
		return nil, err
	}
	s.emitCanvasChanged(ctx)
	return jsonResult(conn)
}

func (s *Server) handleListConnections(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.engine.Connections())
}
