package explorer

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

const maxCachedPreviews = 128

func renderPreview(path string, width int) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return "Error reading file"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(previewWrap(width)),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "Error preparing renderer"
	}

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown" // Displayed in Preview Pane
	}

	return markdown
}

// previewWrap keeps rendered lines inside the pane. Glamour output wider than
// 100 columns reads poorly, so that stays the ceiling.
func previewWrap(width int) int {
	if width <= 0 || width > 100 {
		return 100
	}
	return width
}
