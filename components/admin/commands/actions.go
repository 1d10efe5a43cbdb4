package commands

import (
	"context"

	"github.com/goliatone/go-notify-admin/components/admin"
)

// Actions dispatches page form actions through a command Set.
type Actions[T any] struct {
	set Set[T]
}

// NewActions wraps a Set.
func NewActions[T any](set Set[T]) *Actions[T] {
	return &Actions[T]{set: set}
}

var _ admin.RecordActions[admin.Channel] = (*Actions[admin.Channel])(nil)

func (a *Actions[T]) Create(ctx context.Context, draft T) error {
	return a.set.Create.Execute(ctx, CreateRecordInput[T]{Record: draft})
}

func (a *Actions[T]) BeginEdit(ctx context.Context, id admin.ID) (T, error) {
	var draft T
	err := a.set.BeginEdit.Execute(ctx, BeginEditInput[T]{ID: id, Draft: &draft})
	return draft, err
}

func (a *Actions[T]) Save(ctx context.Context, id admin.ID, draft T) error {
	return a.set.Update.Execute(ctx, UpdateRecordInput[T]{ID: id, Record: draft})
}

func (a *Actions[T]) CancelEdit(ctx context.Context, id admin.ID) error {
	return a.set.CancelEdit.Execute(ctx, CancelEditInput{ID: id})
}

func (a *Actions[T]) RequestDelete(ctx context.Context, id admin.ID) error {
	return a.set.RequestDelete.Execute(ctx, RequestDeleteInput{ID: id})
}

func (a *Actions[T]) ConfirmDelete(ctx context.Context, id admin.ID) error {
	return a.set.ConfirmDelete.Execute(ctx, ConfirmDeleteInput{ID: id})
}

func (a *Actions[T]) CancelDelete(ctx context.Context) error {
	return a.set.CancelDelete.Execute(ctx, CancelDeleteInput{})
}

// NewPageActions routes every page of the service through commands.
func NewPageActions(service *admin.Service, telemetry Telemetry) admin.PageActions {
	return admin.PageActions{
		Categories: NewActions(NewSet[admin.Category](service.Categories(), telemetry)),
		Channels:   NewActions(NewSet[admin.Channel](service.Channels(), telemetry)),
		Templates:  NewActions(NewSet[admin.Template](service.Templates(), telemetry)),
		Users:      NewActions(NewSet[admin.User](service.Users(), telemetry)),
		Payments:   NewActions(NewSet[admin.PaymentMethod](service.Payments(), telemetry)),
	}
}
