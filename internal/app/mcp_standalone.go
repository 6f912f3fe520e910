package app

import (
	"context"
	"log"
	"os"

	"flowcraft/internal/canvas"
	"flowcraft/internal/generator"
	mcpserver "flowcraft/internal/mcp"
	"flowcraft/internal/secret"
	"flowcraft/internal/service"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the app as a standalone MCP server on stdin/stdout
// with no GUI, driving an in-memory canvas.
func ServeMCP() {
	engine := canvas.NewEngine()
	emitter := noopEmitter{}

	apiKey := os.Getenv("FLOWCRAFT_API_KEY")
	if stored, err := secret.NewKeychainStore().Get(apiKeyName); err == nil && stored != nil {
		apiKey = string(stored)
	}
	client := generator.New(apiKey)
	flows := service.NewFlowService(engine, client, emitter)

	mcpSrv := mcpserver.New(mcpserver.Deps{
		Engine:  engine,
		Flows:   flows,
		Emitter: emitter,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
