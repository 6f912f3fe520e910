package app

import (
	"fmt"
	"os"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"flowcraft/internal/export"
)

// ExportDocument renders every screen into a single print-ready HTML
// file chosen via the native save dialog. Returns the written path, or
// "" when the user cancels.
func (a *App) ExportDocument() (string, error) {
	screens := a.engine.Screens()
	if len(screens) == 0 {
		return "", fmt.Errorf("nothing to export")
	}

	name, _ := a.flows.AppInfo()
	if name == "" {
		name = "FlowCraft Export"
	}

	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Export Screens",
		DefaultFilename: name + ".html",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "HTML", Pattern: "*.html"},
		},
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil
	}

	doc := export.BuildDocument(name, screens, a.engine.Platform())
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	wailsRuntime.LogInfof(a.ctx, "[Export] wrote %d screens to %s", len(screens), path)
	return path, nil
}
