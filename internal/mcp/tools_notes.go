package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerNoteTools() {
	s.mcp.AddTool(mcp.NewTool("list_sticky_notes",
		mcp.WithDescription("List all sticky notes on the canvas"),
	), s.handleListNotes)

	s.mcp.AddTool(mcp.NewTool("add_sticky_note",
		mcp.WithDescription("Add a sticky note at the viewport center"),
	), s.handleAddNote)

	s.mcp.AddTool(mcp.NewTool("update_sticky_note",
		mcp.WithDescription("Replace the text of a sticky note"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithString("text", mcp.Description("New note text"), mcp.Required()),
	), s.handleUpdateNote)

	s.mcp.AddTool(mcp.NewTool("move_sticky_note",
		mcp.WithDescription("Move a sticky note to an absolute canvas position"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Canvas X coordinate"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Canvas Y coordinate"), mcp.Required()),
	), s.handleMoveNote)

	s.mcp.AddTool(mcp.NewTool("delete_sticky_note",
		mcp.WithDescription("Delete a sticky note"),
		mcp.WithString("noteId", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteNote)
}

func (s *Server) handleListNotes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.engine.Notes())
}

func (s *Server) handleAddNote(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note := s.engine.AddNote()
	s.emitCanvasChanged(ctx)
	return jsonResult(note)
}

func (s *Server) handleUpdateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "noteId")
	if err != nil {
		return nil, err
	}
	text, err := requireString(args, "text")
	if err != nil {
		return nil, err
	}

	if !s.engine.UpdateNoteText(id, text) {
		return nil, fmt.Errorf("note %s not found", id)
	}
	s.emitCanvasChanged(ctx)
	return textResult("note updated"), nil
}

func (s *Server) handleMoveNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "noteId")
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

	if !s.engine.MoveNote(id, x, y) {
		return nil, fmt.Errorf("note %s not found", id)
	}
	s.emitCanvasChanged(ctx)
	return textResult("note moved"), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req.GetArguments(), "noteId")
	if err != nil {
		return nil, err
	}
	if !s.engine.DeleteNote(id) {
		return nil, fmt.Errorf("note %s not found", id)
	}
	s.emitCanvasChanged(ctx)
	return textResult("note deleted"), nil
}
