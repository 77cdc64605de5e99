package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboardResolver struct {
	view View
	err  error
}

func (s *stubDashboardResolver) ResolveDashboard(context.Context, ViewerContext) (View, error) {
	return s.view, s.err
}

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func TestControllerRenderTemplate(t *testing.T) {
	service := &stubDashboardResolver{
		view: View{
			UserID:  "user",
			Columns: 3,
			Layout: []LayoutItem{
				{I: "notes-1", X: 2, Y: 0, W: 1, H: 1, Type: WidgetNotes},
				{I: "todo-1", X: 0, Y: 0, W: 2, H: 2, Type: WidgetTodo},
			},
			Widgets: map[string]Widget{
				"notes-1": {ID: "notes-1", Type: WidgetNotes, Title: "Ideas"},
				"todo-1":  {ID: "todo-1", Type: WidgetTodo},
			},
			Data: map[string]WidgetData{"notes-1": {"text": "ship it"}},
		},
	}
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{Service: service, Renderer: renderer})

	var buf bytes.Buffer
	if err := controller.RenderTemplate(context.Background(), ViewerContext{UserID: "user"}, &buf); err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if renderer.lastTemplate != "dashboard.html" {
		t.Fatalf("expected dashboard template to render, got %s", renderer.lastTemplate)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected rendered output")
	}
	items, ok := renderer.lastPayload["items"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "todo-1", items[0]["id"])
	assert.Equal(t, "Todo", items[0]["title"])
	assert.Equal(t, "Ideas", items[1]["title"])
	assert.Equal(t, 3, items[1]["column"])
}

func TestControllerPropagatesErrors(t *testing.T) {
	controller := NewController(ControllerOptions{
		Service:  &stubDashboardResolver{err: ErrMissingViewer},
		Renderer: &stubRenderer{},
	})
	err := controller.RenderTemplate(context.Background(), ViewerContext{}, io.Discard)
	assert.True(t, errors.Is(err, ErrMissingViewer))

	_, err = NewController(ControllerOptions{}).LayoutPayload(context.Background(), ViewerContext{})
	assert.Error(t, err)
}
