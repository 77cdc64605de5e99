package dashboard

import (
	"context"
	"time"
)

// Provider fetches data required to render a widget.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch implements Provider.
func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}

// WidgetContext contains the metadata needed by providers.
type WidgetContext struct {
	Widget Widget
	Item   LayoutItem
	Viewer ViewerContext
	Now    time.Time
}

// WidgetData is an opaque payload passed to renderers.
type WidgetData map[string]any
