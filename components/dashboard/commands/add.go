package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-deskboard/components/dashboard"
)

// AddWidgetInput asks for a new widget on the viewer's board.
type AddWidgetInput struct {
	Viewer  dashboard.ViewerContext
	Request dashboard.AddWidgetRequest
}

type addService interface {
	AddWidget(ctx context.Context, viewer dashboard.ViewerContext, req dashboard.AddWidgetRequest) (dashboard.State, error)
}

// AddWidgetCommand wraps Service.AddWidget so transports can add widgets without
// linking directly against the service.
type AddWidgetCommand struct {
	service   addService
	telemetry Telemetry
}

// NewAddWidgetCommand creates a command instance.
func NewAddWidgetCommand(service addService, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddWidgetInput] = (*AddWidgetCommand)(nil)

// Execute delegates to the dashboard service.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg AddWidgetInput) error {
	if c.service == nil {
		return errors.New("add command requires service")
	}
	state, err := c.service.AddWidget(ctx, msg.Viewer, msg.Request)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.add_widget", map[string]any{
		"user_id": msg.Viewer.UserID,
		"type":    string(msg.Request.Type),
		"widgets": len(state.Widgets),
	})
	return nil
}
