package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-deskboard/components/dashboard"
)

// UpdateLayoutInput carries a rearranged layout from the grid editor.
type UpdateLayoutInput struct {
	Viewer dashboard.ViewerContext
	Layout []dashboard.LayoutItem
}

type layoutService interface {
	UpdateLayout(ctx context.Context, viewer dashboard.ViewerContext, items []dashboard.LayoutItem) (dashboard.State, error)
}

// UpdateLayoutCommand wraps Service.UpdateLayout.
type UpdateLayoutCommand struct {
	service   layoutService
	telemetry Telemetry
}

// NewUpdateLayoutCommand builds the command.
func NewUpdateLayoutCommand(service layoutService, telemetry Telemetry) *UpdateLayoutCommand {
	return &UpdateLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateLayoutInput] = (*UpdateLayoutCommand)(nil)

// Execute applies the new layout.
func (c *UpdateLayoutCommand) Execute(ctx context.Context, msg UpdateLayoutInput) error {
	if c.service == nil {
		return errors.New("layout command requires service")
	}
	if _, err := c.service.UpdateLayout(ctx, msg.Viewer, msg.Layout); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.update_layout", map[string]any{
		"user_id": msg.Viewer.UserID,
		"count":   len(msg.Layout),
	})
	return nil
}
