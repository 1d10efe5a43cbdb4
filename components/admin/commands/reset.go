package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ResetInput reloads every collection from the data source.
type ResetInput struct{}

type resetter interface {
	Reset(ctx context.Context) error
}

// ResetCommand discards in-memory changes.
type ResetCommand struct {
	service   resetter
	telemetry Telemetry
}

// NewResetCommand creates the command.
func NewResetCommand(service resetter, telemetry Telemetry) *ResetCommand {
	return &ResetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetInput] = (*ResetCommand)(nil)

// Execute reloads the dataset.
func (c *ResetCommand) Execute(ctx context.Context, _ ResetInput) error {
	if c.service == nil {
		return errors.New("reset command requires service")
	}
	if err := c.service.Reset(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "admin.dataset.reset", nil)
	return nil
}
