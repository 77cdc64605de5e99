package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/components/dashboard/commands"
	"github.com/goliatone/go-deskboard/components/dashboard/queries"
)

// Executor is the command/query surface shared by the net/http and go-router transports.
type Executor interface {
	AddWidget(ctx context.Context, input commands.AddWidgetInput) error
	RemoveWidget(ctx context.Context, input commands.RemoveWidgetInput) error
	UpdateLayout(ctx context.Context, input commands.UpdateLayoutInput) error
	ToggleEdit(ctx context.Context, input commands.ToggleEditInput) error
	SaveLayout(ctx context.Context, input commands.SaveLayoutInput) error
	ReloadLayout(ctx context.Context, input commands.ReloadLayoutInput) error
	Refresh(ctx context.Context, input commands.RefreshWidgetInput) error
	Dashboard(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.View, error)
	State(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.State, error)
	Definitions(ctx context.Context, viewer dashboard.ViewerContext) ([]dashboard.WidgetDefinition, error)
}

// CommandExecutor adapts go-command commanders and queriers to Executor.
type CommandExecutor struct {
	AddCommander       gocommand.Commander[commands.AddWidgetInput]
	RemoveCommander    gocommand.Commander[commands.RemoveWidgetInput]
	LayoutCommander    gocommand.Commander[commands.UpdateLayoutInput]
	EditCommander      gocommand.Commander[commands.ToggleEditInput]
	SaveCommander      gocommand.Commander[commands.SaveLayoutInput]
	ReloadCommander    gocommand.Commander[commands.ReloadLayoutInput]
	RefreshCommander   gocommand.Commander[commands.RefreshWidgetInput]
	DashboardQuerier   gocommand.Querier[dashboard.ViewerContext, dashboard.View]
	StateQuerier       gocommand.Querier[dashboard.ViewerContext, dashboard.State]
	DefinitionsQuerier gocommand.Querier[dashboard.ViewerContext, []dashboard.WidgetDefinition]
}

// NewCommandExecutor wires every command and query against the dashboard service.
func NewCommandExecutor(service *dashboard.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		AddCommander:       commands.NewAddWidgetCommand(service, telemetry),
		RemoveCommander:    commands.NewRemoveWidgetCommand(service, telemetry),
		LayoutCommander:    commands.NewUpdateLayoutCommand(service, telemetry),
		EditCommander:      commands.NewToggleEditCommand(service, telemetry),
		SaveCommander:      commands.NewSaveLayoutCommand(service, telemetry),
		ReloadCommander:    commands.NewReloadLayoutCommand(service, telemetry),
		RefreshCommander:   commands.NewRefreshWidgetCommand(service, telemetry),
		DashboardQuerier:   queries.NewDashboardQuery(service),
		StateQuerier:       queries.NewStateQuery(service),
		DefinitionsQuerier: queries.NewDefinitionsQuery(service),
	}
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) AddWidget(ctx context.Context, input commands.AddWidgetInput) error {
	if e.AddCommander == nil {
		return errors.New("httpapi: add commander not configured")
	}
	return e.AddCommander.Execute(ctx, input)
}

func (e *CommandExecutor) RemoveWidget(ctx context.Context, input commands.RemoveWidgetInput) error {
	if e.RemoveCommander == nil {
		return errors.New("httpapi: remove commander not configured")
	}
	return e.RemoveCommander.Execute(ctx, input)
}

func (e *CommandExecutor) UpdateLayout(ctx context.Context, input commands.UpdateLayoutInput) error {
	if e.LayoutCommander == nil {
		return errors.New("httpapi: layout commander not configured")
	}
	return e.LayoutCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleEdit(ctx context.Context, input commands.ToggleEditInput) error {
	if e.EditCommander == nil {
		return errors.New("httpapi: edit commander not configured")
	}
	return e.EditCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SaveLayout(ctx context.Context, input commands.SaveLayoutInput) error {
	if e.SaveCommander == nil {
		return errors.New("httpapi: save commander not configured")
	}
	return e.SaveCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ReloadLayout(ctx context.Context, input commands.ReloadLayoutInput) error {
	if e.ReloadCommander == nil {
		return errors.New("httpapi: reload commander not configured")
	}
	return e.ReloadCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshWidgetInput) error {
	if e.RefreshCommander == nil {
		return errors.New("httpapi: refresh commander not configured")
	}
	return e.RefreshCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Dashboard(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.View, error) {
	if e.DashboardQuerier == nil {
		return dashboard.View{}, errors.New("httpapi: dashboard querier not configured")
	}
	return e.DashboardQuerier.Query(ctx, viewer)
}

func (e *CommandExecutor) State(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.State, error) {
	if e.StateQuerier == nil {
		return dashboard.State{}, errors.New("httpapi: state querier not configured")
	}
	return e.StateQuerier.Query(ctx, viewer)
}

func (e *CommandExecutor) Definitions(ctx context.Context, viewer dashboard.ViewerContext) ([]dashboard.WidgetDefinition, error) {
	if e.DefinitionsQuerier == nil {
		return nil, errors.New("httpapi: definitions querier not configured")
	}
	return e.DefinitionsQuerier.Query(ctx, viewer)
}
