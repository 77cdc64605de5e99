package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-deskboard/components/dashboard"
)

// RefreshWidgetInput emits a refresh notification for a single widget.
type RefreshWidgetInput struct {
	Event dashboard.WidgetEvent
}

type refreshNotifier interface {
	NotifyWidgetUpdated(ctx context.Context, event dashboard.WidgetEvent) error
}

// RefreshWidgetCommand triggers refresh hooks without forcing transports.
type RefreshWidgetCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshWidgetCommand creates the command.
func NewRefreshWidgetCommand(service refreshNotifier, telemetry Telemetry) *RefreshWidgetCommand {
	return &RefreshWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshWidgetInput] = (*RefreshWidgetCommand)(nil)

// Execute notifies the dashboard service's refresh hooks.
func (c *RefreshWidgetCommand) Execute(ctx context.Context, msg RefreshWidgetInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if err := c.service.NotifyWidgetUpdated(ctx, msg.Event); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.refresh_widget", map[string]any{
		"user_id":   msg.Event.UserID,
		"widget_id": msg.Event.Widget.ID,
	})
	return nil
}

// RefreshTypesInput lists the widget types whose data went stale.
type RefreshTypesInput struct {
	Types []dashboard.WidgetType
}

type typeRefresher interface {
	RefreshWidgets(ctx context.Context, types ...dashboard.WidgetType) int
}

// RefreshTypesCommand signals every live widget of the given types.
type RefreshTypesCommand struct {
	service   typeRefresher
	telemetry Telemetry
}

// NewRefreshTypesCommand creates the command.
func NewRefreshTypesCommand(service typeRefresher, telemetry Telemetry) *RefreshTypesCommand {
	return &RefreshTypesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshTypesInput] = (*RefreshTypesCommand)(nil)

// Execute fans a refresh out to the matching widgets.
func (c *RefreshTypesCommand) Execute(ctx context.Context, msg RefreshTypesInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if len(msg.Types) == 0 {
		return errors.New("refresh command requires widget types")
	}
	count := c.service.RefreshWidgets(ctx, msg.Types...)
	types := make([]string, len(msg.Types))
	for i, t := range msg.Types {
		types[i] = string(t)
	}
	c.telemetry.Record(ctx, "dashboard.command.refresh_types", map[string]any{
		"types":   types,
		"widgets": count,
	})
	return nil
}
