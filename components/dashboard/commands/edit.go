package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-deskboard/components/dashboard"
)

// ToggleEditInput flips edit mode for the viewer.
type ToggleEditInput struct {
	Viewer dashboard.ViewerContext
}

type editService interface {
	ToggleEdit(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.State, error)
}

// ToggleEditCommand wraps Service.ToggleEdit.
type ToggleEditCommand struct {
	service   editService
	telemetry Telemetry
}

// NewToggleEditCommand builds the command.
func NewToggleEditCommand(service editService, telemetry Telemetry) *ToggleEditCommand {
	return &ToggleEditCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleEditInput] = (*ToggleEditCommand)(nil)

// Execute toggles edit mode.
func (c *ToggleEditCommand) Execute(ctx context.Context, msg ToggleEditInput) error {
	if c.service == nil {
		return errors.New("edit command requires service")
	}
	state, err := c.service.ToggleEdit(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.toggle_edit", map[string]any{
		"user_id":    msg.Viewer.UserID,
		"is_editing": state.IsEditing,
	})
	return nil
}
