package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-deskboard/components/dashboard"
)

// SaveLayoutInput persists the viewer's current board.
type SaveLayoutInput struct {
	Viewer dashboard.ViewerContext
}

// ReloadLayoutInput discards unsaved changes and loads the stored board.
type ReloadLayoutInput struct {
	Viewer dashboard.ViewerContext
}

type persistService interface {
	SaveLayout(ctx context.Context, viewer dashboard.ViewerContext) error
	ReloadLayout(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.State, error)
}

// SaveLayoutCommand wraps Service.SaveLayout.
type SaveLayoutCommand struct {
	service   persistService
	telemetry Telemetry
}

// NewSaveLayoutCommand builds the command.
func NewSaveLayoutCommand(service persistService, telemetry Telemetry) *SaveLayoutCommand {
	return &SaveLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveLayoutInput] = (*SaveLayoutCommand)(nil)

// Execute saves the layout.
func (c *SaveLayoutCommand) Execute(ctx context.Context, msg SaveLayoutInput) error {
	if c.service == nil {
		return errors.New("save command requires service")
	}
	if err := c.service.SaveLayout(ctx, msg.Viewer); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.save_layout", map[string]any{
		"user_id": msg.Viewer.UserID,
	})
	return nil
}

// ReloadLayoutCommand wraps Service.ReloadLayout.
type ReloadLayoutCommand struct {
	service   persistService
	telemetry Telemetry
}

// NewReloadLayoutCommand builds the command.
func NewReloadLayoutCommand(service persistService, telemetry Telemetry) *ReloadLayoutCommand {
	return &ReloadLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReloadLayoutInput] = (*ReloadLayoutCommand)(nil)

// Execute reloads the layout.
func (c *ReloadLayoutCommand) Execute(ctx context.Context, msg ReloadLayoutInput) error {
	if c.service == nil {
		return errors.New("reload command requires service")
	}
	state, err := c.service.ReloadLayout(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.reload_layout", map[string]any{
		"user_id": msg.Viewer.UserID,
		"widgets": len(state.Widgets),
	})
	return nil
}
