package console

import (
	"embed"
	"fmt"
	"io/fs"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html templates/partials/*.html
var embeddedTemplates embed.FS

// DefaultTemplate is the page shell rendered by the controller.
const DefaultTemplate = "console.html"

// NewTemplateRenderer creates a go-template renderer backed by the embedded templates.
// It never reads from disk, so it works regardless of the working directory.
func NewTemplateRenderer() (Renderer, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("console: embedded templates: %w", err)
	}
	return template.NewRenderer(
		template.WithFS(sub),
		template.WithExtension(".html"),
	)
}
