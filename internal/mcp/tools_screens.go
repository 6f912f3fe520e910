package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"flowcraft/internal/frame"
)

func (s *Server) registerScreenTools() {
	s.mcp.AddTool(mcp.NewTool("list_screens",
		mcp.WithDescription("List all screens with their IDs, names, types, positions and generation status"),
	), s.handleListScreens)

	s.mcp.AddTool(mcp.NewTool("add_screen",
		mcp.WithDescription("Add a new draft screen at the viewport center"),
	), s.handleAddScreen)

	s.mcp.AddTool(mcp.NewTool("move_screen",
		mcp.WithDescription("Move a screen to an absolute canvas position"),
		mcp.WithString("screenId", mcp.Description("Screen ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Canvas X coordinate"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Canvas Y coordinate"), mcp.Required()),
	), s.handleMoveScreen)

	s.mcp.AddTool(mcp.NewTool("delete_screen",
		mcp.WithDescription("Delete a screen and every connection attached to it"),
		mcp.WithString("screenId", mcp.Description("Screen ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteScreen)

	s.mcp.AddTool(mcp.NewTool("update_screen_description",
		mcp.WithDescription("Update the description of a screen"),
		mcp.WithString("screenId", mcp.Description("Screen ID"), mcp.Required()),
		mcp.WithString("description", mcp.Description("New description"), mcp.Required()),
	), s.handleUpdateScreenDescription)

	s.mcp.AddTool(mcp.NewTool("list_screen_elements",
		mcp.WithDescription("List the interactive elements (buttons, links, inputs) found in a screen's generated HTML"),
		mcp.WithString("screenId", mcp.Description("Screen ID"), mcp.Required()),
	), s.handleListScreenElements)

	s.mcp.AddTool(mcp.NewTool("generate_screen",
		mcp.WithDescription("Generate (or retry generating) the HTML for a screen using the AI generator"),
		mcp.WithString("screenId", mcp.Description("Screen ID"), mcp.Required()),
	), s.handleGenerateScreen)
}

func (s *Server) handleListScreens(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.engine.Screens())
}

func (s *Server) handleAddScreen(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	screen := s.engine.AddScreen()
	s.emitCanvasChanged(ctx)
	return jsonResult(screen)
}

func (s *Server) handleMoveScreen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "screenId")
	if err != nil {
		return nil, err
	}
	x, err := requireNumber(args, "x")
	if err != nil {
		return nil, err
	}
	y, err := requireNumber(args, "y")
	if err != nil {
		return nil, err
	}

	if !s.engine.MoveScreen(id, x, y) {
		return nil, fmt.Errorf("screen %s not found", id)
	}
	s.emitCanvasChanged(ctx)
	return textResult("screen moved"), nil
}

func (s *Server) handleDeleteScreen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req.GetArguments(), "screenId")
	if err != nil {
		return nil, err
	}
	if !s.engine.DeleteScreen(id) {
		return nil, fmt.Errorf("screen %s not found", id)
	}
	s.emitCanvasChanged(ctx)
	return textResult("screen deleted"), nil
}

func (s *Server) handleUpdateScreenDescription(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "screenId")
	if err != nil {
		return nil, err
	}
	desc, err := requireString(args, "description")
	if err != nil {
		return nil, err
	}

	if !s.engine.UpdateScreenDescription(id, desc) {
		return nil, fmt.Errorf("screen %s not found", id)
	}
	s.emitCanvasChanged(ctx)
	return textResult("description updated"), nil
}

func (s *Server) handleListScreenElements(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req.GetArguments(), "screenId")
	if err != nil {
		return nil, err
	}
	screen, ok := s.engine.Screen(id)
	if !ok {
		return nil, fmt.Errorf("screen %s not found", id)
	}
	if screen.HTML == "" {
		return textResult("screen has no generated HTML yet"), nil
	}

	return jsonResult(frame.InteractiveElements(screen.HTML))
}

func (s *Server) handleGenerateScreen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req.GetArguments(), "screenId")
	if err != nil {
		return nil, err
	}
	if s.flows == nil {
		return nil, fmt.Errorf("generator is not configured")
	}
	if err := s.flows.GenerateScreen(ctx, id); err != nil {
		return nil, err
	}
	return textResult("generation started"), nil
}
