package dashboard

import (
	"context"
	"errors"
	"io"
	"sort"
)

const defaultTemplate = "dashboard.html"

// DashboardResolver is the service capability the controller needs.
type DashboardResolver interface {
	ResolveDashboard(ctx context.Context, viewer ViewerContext) (View, error)
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Service  DashboardResolver
	Renderer Renderer
	Template string
}

// Controller turns resolved dashboards into HTML or JSON payloads.
type Controller struct {
	service  DashboardResolver
	renderer Renderer
	template string
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = defaultTemplate
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		template: opts.Template,
	}
}

// LayoutPayload resolves the dashboard and flattens it into template-friendly data.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	if c.service == nil {
		return nil, errors.New("dashboard: controller service not configured")
	}
	view, err := c.service.ResolveDashboard(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return viewPayload(view), nil
}

// RenderTemplate renders the dashboard page for the viewer into out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("dashboard: controller renderer not configured")
	}
	payload, err := c.LayoutPayload(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, payload, out)
	return err
}

// viewPayload orders items top-to-bottom then left-to-right so the static page reads
// in grid order.
func viewPayload(view View) map[string]any {
	layout := append([]LayoutItem(nil), view.Layout...)
	sort.SliceStable(layout, func(i, j int) bool {
		if layout[i].Y != layout[j].Y {
			return layout[i].Y < layout[j].Y
		}
		return layout[i].X < layout[j].X
	})
	items := make([]map[string]any, 0, len(layout))
	for _, item := range layout {
		widget := view.Widgets[item.I]
		title := widget.Title
		if title == "" {
			title = displayName(widget.Type)
		}
		data := view.Data[item.I]
		entry := map[string]any{
			"id":     item.I,
			"type":   string(widget.Type),
			"title":  title,
			"column": item.X + 1,
			"row":    item.Y + 1,
			"w":      item.W,
			"h":      item.H,
			"data":   data,
		}
		if html, ok := data["chart_html"].(string); ok {
			entry["chart_html"] = html
		}
		items = append(items, entry)
	}
	return map[string]any{
		"user_id":    view.UserID,
		"columns":    view.Columns,
		"is_editing": view.IsEditing,
		"items":      items,
		"view":       view,
	}
}
