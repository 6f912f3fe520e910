// Package export renders the canvas to a static, non-interactive HTML
// document: every screen in document order with its stored markup and
// display dimensions. The document is meant for print-to-PDF; nothing
// in it is wired back to the canvas.
package export

import (
	"fmt"
	"strings"

	"flowcraft/internal/domain"
	"flowcraft/internal/frame"
)

const documentStyle = `
@media print {
  @page { size: auto; margin: 0mm; }
  body { -webkit-print-color-adjust: exact; print-color-adjust: exact; background: white; }
  .screen-wrapper { break-inside: avoid; page-break-inside: avoid; margin-bottom: 40px; }
}
body { font-family: sans-serif; padding: 40px; }
.screen-wrapper { margin-bottom: 60px; }
.screen-label { font-weight: bold; color: #666; margin-bottom: 10px; }
.screen-content { border: 1px solid #eee; border-radius: 12px; overflow: hidden; position: relative; background: white; }
`

// BuildDocument assembles the export document. Screens appear in
// registry order; markup is embedded verbatim after the injected tool
// script is stripped, so the export carries no live behavior.
func BuildDocument(title string, screens []domain.Screen, platform domain.PlatformType) string {
	dims := domain.ScreenDimensions(platform)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<title>%s - Vector Export</title>\n", title)
	b.WriteString(`<script src="https://cdn.tailwindcss.com"></script>` + "\n")
	fmt.Fprintf(&b, "<style>%s</style>\n", documentStyle)
	b.WriteString("</head>\n<body>\n")

	fmt.Fprintf(&b, `<div style="text-align: center; margin-bottom: 40px;">
<h1 style="font-size: 24px; font-weight: bold;">%s</h1>
<p style="color: #666;">Print this page and save as PDF to edit the layers elsewhere.</p>
</div>
`, title)

	for i, s := range screens {
		content := frame.StripToolScript(s.HTML)
		if content == "" {
			content = "<div>Not generated yet</div>"
		}
		fmt.Fprintf(&b, `<div class="screen-wrapper">
<div class="screen-label">Screen %d: %s</div>
<div class="screen-content" style="width: %.0fpx; height: %.0fpx;">
%s
</div>
</div>
`, i+1, s.Name, dims.Width, dims.Height, content)
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}
