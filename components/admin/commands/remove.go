package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-notify-admin/components/admin"
)

type remover[T any] interface {
	Name() string
	RequestDelete(id admin.ID) (admin.DeleteRequest, error)
	ConfirmDelete(ctx context.Context, id admin.ID) (T, error)
	CancelDelete()
	Delete(ctx context.Context, id admin.ID) (T, error)
}

// RequestDeleteInput opens the confirmation dialog for ID.
type RequestDeleteInput struct {
	ID      admin.ID
	Request *admin.DeleteRequest
}

// RequestDeleteCommand opens a delete confirmation.
type RequestDeleteCommand[T any] struct {
	collection remover[T]
}

// NewRequestDeleteCommand creates the command.
func NewRequestDeleteCommand[T any](collection remover[T]) *RequestDeleteCommand[T] {
	return &RequestDeleteCommand[T]{collection: collection}
}

var _ gocommand.Commander[RequestDeleteInput] = (*RequestDeleteCommand[admin.Category])(nil)

// Execute opens the dialog.
func (c *RequestDeleteCommand[T]) Execute(_ context.Context, msg RequestDeleteInput) error {
	if c.collection == nil {
		return errors.New("request delete command requires collection")
	}
	req, err := c.collection.RequestDelete(msg.ID)
	if err != nil {
		return err
	}
	if msg.Request != nil {
		*msg.Request = req
	}
	return nil
}

// ConfirmDeleteInput removes the record named by the open dialog.
type ConfirmDeleteInput struct {
	ID admin.ID
}

// ConfirmDeleteCommand confirms an open delete.
type ConfirmDeleteCommand[T any] struct {
	collection remover[T]
	telemetry  Telemetry
}

// NewConfirmDeleteCommand creates the command.
func NewConfirmDeleteCommand[T any](collection remover[T], telemetry Telemetry) *ConfirmDeleteCommand[T] {
	return &ConfirmDeleteCommand[T]{collection: collection, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ConfirmDeleteInput] = (*ConfirmDeleteCommand[admin.Category])(nil)

// Execute removes the record.
func (c *ConfirmDeleteCommand[T]) Execute(ctx context.Context, msg ConfirmDeleteInput) error {
	if c.collection == nil {
		return errors.New("confirm delete command requires collection")
	}
	if _, err := c.collection.ConfirmDelete(ctx, msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "admin.record.delete", map[string]any{
		"collection": c.collection.Name(),
		"id":         msg.ID.String(),
	})
	return nil
}

// CancelDeleteInput closes the dialog.
type CancelDeleteInput struct{}

// CancelDeleteCommand closes the dialog without mutation.
type CancelDeleteCommand[T any] struct {
	collection remover[T]
}

// NewCancelDeleteCommand creates the command.
func NewCancelDeleteCommand[T any](collection remover[T]) *CancelDeleteCommand[T] {
	return &CancelDeleteCommand[T]{collection: collection}
}

var _ gocommand.Commander[CancelDeleteInput] = (*CancelDeleteCommand[admin.Category])(nil)

// Execute closes the dialog.
func (c *CancelDeleteCommand[T]) Execute(_ context.Context, _ CancelDeleteInput) error {
	if c.collection == nil {
		return errors.New("cancel delete command requires collection")
	}
	c.collection.CancelDelete()
	return nil
}

// DeleteRecordInput removes ID in one step.
type DeleteRecordInput struct {
	ID admin.ID
}

// DeleteRecordCommand removes a record in one call. It backs the JSON
// API, where the client owns the confirmation prompt.
type DeleteRecordCommand[T any] struct {
	collection remover[T]
	telemetry  Telemetry
}

// NewDeleteRecordCommand creates the command.
func NewDeleteRecordCommand[T any](collection remover[T], telemetry Telemetry) *DeleteRecordCommand[T] {
	return &DeleteRecordCommand[T]{collection: collection, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteRecordInput] = (*DeleteRecordCommand[admin.Category])(nil)

// Execute removes the record.
func (c *DeleteRecordCommand[T]) Execute(ctx context.Context, msg DeleteRecordInput) error {
	if c.collection == nil {
		return errors.New("delete command requires collection")
	}
	if _, err := c.collection.Delete(ctx, msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "admin.record.delete", map[string]any{
		"collection": c.collection.Name(),
		"id":         msg.ID.String(),
	})
	return nil
}
