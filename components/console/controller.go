package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type pageService interface {
	RenderPage(ctx context.Context, viewer ViewerContext, code string) (PageView, error)
	Menu(ctx context.Context, viewer ViewerContext) []MenuItem
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Service  pageService
	Renderer Renderer
	Template string
	// BasePath prefixes links and API calls emitted by the templates.
	BasePath string
}

// Controller turns rendered pages into template payloads and HTML.
type Controller struct {
	service  pageService
	renderer Renderer
	template string
	basePath string
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	tpl := opts.Template
	if tpl == "" {
		tpl = DefaultTemplate
	}
	base := strings.TrimRight(opts.BasePath, "/")
	if base == "" {
		base = "/admin"
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		template: tpl,
		basePath: base,
	}
}

// BasePath returns the mount point used for links.
func (c *Controller) BasePath() string {
	return c.basePath
}

// PagePayload renders a page and packs it with the navigation menu.
func (c *Controller) PagePayload(ctx context.Context, viewer ViewerContext, code string) (map[string]any, error) {
	if c.service == nil {
		return nil, errors.New("console: controller requires a service")
	}
	view, err := c.service.RenderPage(ctx, viewer, code)
	if err != nil {
		return nil, err
	}
	var selected map[string]any
	if len(view.State.Selected) > 0 {
		if err := json.Unmarshal(view.State.Selected, &selected); err != nil {
			return nil, fmt.Errorf("console: decode selected record for %s: %w", code, err)
		}
	}
	return map[string]any{
		"page":      view,
		"menu":      c.service.Menu(ctx, viewer),
		"active":    code,
		"viewer":    viewer,
		"selected":  selected,
		"modals":    view.State.OpenModals(),
		"base_path": c.basePath,
		"api_path":  c.basePath + "/api",
	}, nil
}

// RenderTemplate renders the page shell into out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, code string, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("console: controller requires a renderer")
	}
	payload, err := c.PagePayload(ctx, viewer, code)
	if err != nil {
		return err
	}
	if _, err := c.renderer.Render(c.template, payload, out); err != nil {
		return fmt.Errorf("console: render %s: %w", code, err)
	}
	return nil
}
