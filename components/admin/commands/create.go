package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-notify-admin/components/admin"
)

type creator[T any] interface {
	Name() string
	Create(ctx context.Context, draft T) (T, error)
}

// CreateRecordInput carries a draft; Result receives the stored record.
type CreateRecordInput[T any] struct {
	Record T
	Result *T
}

// CreateRecordCommand validates and inserts a record into a collection.
type CreateRecordCommand[T any] struct {
	collection creator[T]
	telemetry  Telemetry
}

// NewCreateRecordCommand creates a command instance.
func NewCreateRecordCommand[T any](collection creator[T], telemetry Telemetry) *CreateRecordCommand[T] {
	return &CreateRecordCommand[T]{collection: collection, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateRecordInput[admin.Channel]] = (*CreateRecordCommand[admin.Channel])(nil)

// Execute delegates to the collection.
func (c *CreateRecordCommand[T]) Execute(ctx context.Context, msg CreateRecordInput[T]) error {
	if c.collection == nil {
		return errors.New("create command requires collection")
	}
	record, err := c.collection.Create(ctx, msg.Record)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = record
	}
	c.telemetry.Record(ctx, "admin.record.create", map[string]any{
		"collection": c.collection.Name(),
	})
	return nil
}
