package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-deskboard/components/dashboard"
)

type stateService interface {
	State(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.State, error)
}

// StateQuery returns the raw board state without running providers.
type StateQuery struct {
	service stateService
}

// NewStateQuery builds the query.
func NewStateQuery(service stateService) *StateQuery {
	return &StateQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.State] = (*StateQuery)(nil)

// Query returns the viewer's state.
func (q *StateQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.State, error) {
	return q.service.State(ctx, viewer)
}

type definitionService interface {
	Definitions() []dashboard.WidgetDefinition
}

// DefinitionsQuery lists the widget types a viewer can add.
type DefinitionsQuery struct {
	service definitionService
}

// NewDefinitionsQuery builds the query.
func NewDefinitionsQuery(service definitionService) *DefinitionsQuery {
	return &DefinitionsQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, []dashboard.WidgetDefinition] = (*DefinitionsQuery)(nil)

// Query returns every registered definition.
func (q *DefinitionsQuery) Query(_ context.Context, _ dashboard.ViewerContext) ([]dashboard.WidgetDefinition, error) {
	return q.service.Definitions(), nil
}
