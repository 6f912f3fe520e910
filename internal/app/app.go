package app

import (
	"context"
	"os"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"flowcraft/internal/canvas"
	"flowcraft/internal/frame"
	"flowcraft/internal/generator"
	"flowcraft/internal/secret"
	"flowcraft/internal/service"
)

// apiKeyName is the keychain account under which the generator API key
// is stored.
const apiKeyName = "flowcraft:api-key"

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	engine  *canvas.Engine
	frames  *frame.Manager
	client  *generator.Client
	flows   *service.FlowService
	secrets secret.SecretStore
	watcher *screenWatcher
}

// New creates a new App.
func New() *App {
	return &App{}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	a.engine = canvas.NewEngine()
	a.frames = frame.NewManager(string(a.engine.Tool()))
	a.secrets = secret.NewKeychainStore()

	// API key: Keychain first, environment as fallback.
	apiKey := os.Getenv("FLOWCRAFT_API_KEY")
	if stored, err := a.secrets.Get(apiKeyName); err == nil && stored != nil {
		apiKey = string(stored)
	}
	a.client = generator.New(apiKey)
	a.flows = service.NewFlowService(a.engine, a.client, a)

	a.watcher = newScreenWatcher(ctx, a)

	wailsRuntime.LogInfof(ctx, "[Startup] engine ready, api key configured: %v", a.client.HasAPIKey())
}

// Shutdown is called when the app is closing. In-flight generation
// requests get a short grace period to land.
func (a *App) Shutdown(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.flows != nil {
		a.flows.WaitRunning(ctx)
	}
}

// Emit implements service.EventEmitter over the Wails event bridge.
func (a *App) Emit(_ context.Context, event string, data any) {
	wailsRuntime.EventsEmit(a.ctx, event, data)
}

// SetAPIKey stores the generator API key in the Keychain and applies it
// to the running client.
func (a *App) SetAPIKey(key string) error {
	if err := a.secrets.Set(apiKeyName, []byte(key)); err != nil {
		wailsRuntime.LogErrorf(a.ctx, "[SetAPIKey] keychain store failed: %v", err)
		return err
	}
	a.client.SetAPIKey(key)
	return nil
}

// HasAPIKey reports whether the generator client can make requests.
func (a *App) HasAPIKey() bool {
	return a.client.HasAPIKey()
}
