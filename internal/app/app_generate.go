package app

import (
	"fmt"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"flowcraft/internal/domain"
	"flowcraft/internal/frame"
	"flowcraft/internal/generator"
	"flowcraft/internal/service"
)

// ============================================================
// Generation
// ============================================================

// GenerateFlow creates a new flow from the user's idea and populates
// the canvas. The first screens start generating in the background.
func (a *App) GenerateFlow(idea, platform, style string, screenCount int) (*domain.Flow, error) {
	wailsRuntime.LogInfof(a.ctx, "[GenerateFlow] platform=%s style=%s screens=%d", platform, style, screenCount)

	flow, err := a.flows.StartFlow(a.ctx, domain.FlowRequest{
		Idea:        idea,
		Platform:    domain.PlatformType(platform),
		Style:       style,
		ScreenCount: screenCount,
	})
	if err != nil {
		wailsRuntime.LogErrorf(a.ctx, "[GenerateFlow] %v", err)
		return nil, err
	}
	a.frames.Reset(string(a.engine.Tool()))
	return flow, nil
}

// GenerateScreen starts generation for one draft screen.
func (a *App) GenerateScreen(screenID string) error {
	return a.flows.GenerateScreen(a.ctx, screenID)
}

// RegenerateScreen resets a screen to draft so it can be generated
// again from scratch.
func (a *App) RegenerateScreen(screenID string) {
	a.frames.Unmount(screenID)
	a.flows.RegenerateScreen(a.ctx, screenID)
}

// NewFlow discards the whole canvas and returns to the prompt step.
func (a *App) NewFlow() {
	a.watcher.StopAll()
	a.frames.Reset(string(a.engine.Tool()))
	a.flows.NewFlow(a.ctx)
}

// ApplyMagicEdit rewrites the currently marked element per the user's
// request and pushes the replacement into its rendering context.
func (a *App) ApplyMagicEdit(request string) error {
	selection := a.frames.Selection()
	if selection == nil {
		return fmt.Errorf("no element selected")
	}

	newHTML, err := a.flows.MagicEdit(a.ctx, selection.OriginalHTML, request)
	if err != nil {
		wailsRuntime.LogErrorf(a.ctx, "[MagicEdit] %v", err)
		return err
	}

	a.Emit(a.ctx, service.EventMagicApply, map[string]any{
		"screenId": selection.ScreenID,
		"message":  frame.NewMagicEdit(newHTML),
	})
	a.frames.ClearSelection()
	return nil
}

// ClearMagicSelection drops the magic-edit mark without applying.
func (a *App) ClearMagicSelection() {
	a.frames.ClearSelection()
}

// Analyze returns co-pilot insights for the current flow.
func (a *App) Analyze() ([]generator.Insight, error) {
	return a.flows.Analyze(a.ctx)
}

// Research runs user or competitor research for the current flow.
func (a *App) Research(kind string) *generator.ResearchResult {
	return a.flows.Research(a.ctx, generator.ResearchKind(kind))
}

// AppInfo returns the generated flow's name and description.
func (a *App) AppInfo() map[string]string {
	name, description := a.flows.AppInfo()
	return map[string]string{"appName": name, "description": description}
}
