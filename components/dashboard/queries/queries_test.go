package queries

import (
	"context"
	"testing"

	dashboard "github.com/goliatone/go-deskboard/components/dashboard"
)

type stubService struct {
	calls int
}

func (s *stubService) ResolveDashboard(_ context.Context, viewer dashboard.ViewerContext) (dashboard.View, error) {
	s.calls++
	return dashboard.View{UserID: viewer.UserID}, nil
}

func (s *stubService) State(context.Context, dashboard.ViewerContext) (dashboard.State, error) {
	s.calls++
	return dashboard.State{IsEditing: true}, nil
}

func (s *stubService) Definitions() []dashboard.WidgetDefinition {
	s.calls++
	return dashboard.DefaultWidgetDefinitions()
}

func TestDashboardQuery(t *testing.T) {
	service := &stubService{}
	view, err := NewDashboardQuery(service).Query(context.Background(), dashboard.ViewerContext{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 || view.UserID != "user-1" {
		t.Fatalf("unexpected result %#v after %d calls", view, service.calls)
	}
}

func TestStateQuery(t *testing.T) {
	service := &stubService{}
	state, err := NewStateQuery(service).Query(context.Background(), dashboard.ViewerContext{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if !state.IsEditing {
		t.Fatalf("expected state from service")
	}
}

func TestDefinitionsQuery(t *testing.T) {
	service := &stubService{}
	defs, err := NewDefinitionsQuery(service).Query(context.Background(), dashboard.ViewerContext{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(defs) != len(dashboard.WidgetTypes()) {
		t.Fatalf("expected %d definitions, got %d", len(dashboard.WidgetTypes()), len(defs))
	}
}
