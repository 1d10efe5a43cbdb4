package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-notify-admin/components/admin"
)

type editor[T any] interface {
	Name() string
	BeginEdit(id admin.ID) (T, error)
	SaveEdit(ctx context.Context, id admin.ID, draft T) (T, error)
	CancelEdit(id admin.ID)
}

// BeginEditInput opens a draft; Draft receives the current values.
type BeginEditInput[T any] struct {
	ID    admin.ID
	Draft *T
}

// BeginEditCommand opens an edit draft.
type BeginEditCommand[T any] struct {
	collection editor[T]
}

// NewBeginEditCommand creates the command.
func NewBeginEditCommand[T any](collection editor[T]) *BeginEditCommand[T] {
	return &BeginEditCommand[T]{collection: collection}
}

var _ gocommand.Commander[BeginEditInput[admin.User]] = (*BeginEditCommand[admin.User])(nil)

// Execute loads the draft.
func (c *BeginEditCommand[T]) Execute(_ context.Context, msg BeginEditInput[T]) error {
	if c.collection == nil {
		return errors.New("begin edit command requires collection")
	}
	draft, err := c.collection.BeginEdit(msg.ID)
	if err != nil {
		return err
	}
	if msg.Draft != nil {
		*msg.Draft = draft
	}
	return nil
}

// UpdateRecordInput replaces the record with ID by Record.
type UpdateRecordInput[T any] struct {
	ID     admin.ID
	Record T
	Result *T
}

// UpdateRecordCommand validates and saves an edit.
type UpdateRecordCommand[T any] struct {
	collection editor[T]
	telemetry  Telemetry
}

// NewUpdateRecordCommand creates the command.
func NewUpdateRecordCommand[T any](collection editor[T], telemetry Telemetry) *UpdateRecordCommand[T] {
	return &UpdateRecordCommand[T]{collection: collection, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateRecordInput[admin.User]] = (*UpdateRecordCommand[admin.User])(nil)

// Execute saves the edit; the record keeps its id.
func (c *UpdateRecordCommand[T]) Execute(ctx context.Context, msg UpdateRecordInput[T]) error {
	if c.collection == nil {
		return errors.New("update command requires collection")
	}
	if msg.ID.IsZero() {
		return errors.New("update command requires id")
	}
	record, err := c.collection.SaveEdit(ctx, msg.ID, msg.Record)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = record
	}
	c.telemetry.Record(ctx, "admin.record.update", map[string]any{
		"collection": c.collection.Name(),
		"id":         msg.ID.String(),
	})
	return nil
}

// CancelEditInput discards the draft for ID.
type CancelEditInput struct {
	ID admin.ID
}

// CancelEditCommand discards an edit draft.
type CancelEditCommand[T any] struct {
	collection editor[T]
}

// NewCancelEditCommand creates the command.
func NewCancelEditCommand[T any](collection editor[T]) *CancelEditCommand[T] {
	return &CancelEditCommand[T]{collection: collection}
}

var _ gocommand.Commander[CancelEditInput] = (*CancelEditCommand[admin.User])(nil)

// Execute drops the draft.
func (c *CancelEditCommand[T]) Execute(_ context.Context, msg CancelEditInput) error {
	if c.collection == nil {
		return errors.New("cancel edit command requires collection")
	}
	c.collection.CancelEdit(msg.ID)
	return nil
}
