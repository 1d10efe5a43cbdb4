package commands

import "github.com/goliatone/go-notify-admin/components/admin"

type collection[T any] interface {
	creator[T]
	editor[T]
	remover[T]
}

// Set bundles every command of one collection.
type Set[T any] struct {
	Create        *CreateRecordCommand[T]
	BeginEdit     *BeginEditCommand[T]
	Update        *UpdateRecordCommand[T]
	CancelEdit    *CancelEditCommand[T]
	RequestDelete *RequestDeleteCommand[T]
	ConfirmDelete *ConfirmDeleteCommand[T]
	CancelDelete  *CancelDeleteCommand[T]
	Delete        *DeleteRecordCommand[T]
}

// NewSet builds the commands for a collection.
func NewSet[T any](c collection[T], telemetry Telemetry) Set[T] {
	return Set[T]{
		Create:        NewCreateRecordCommand[T](c, telemetry),
		BeginEdit:     NewBeginEditCommand[T](c),
		Update:        NewUpdateRecordCommand[T](c, telemetry),
		CancelEdit:    NewCancelEditCommand[T](c),
		RequestDelete: NewRequestDeleteCommand[T](c),
		ConfirmDelete: NewConfirmDeleteCommand[T](c, telemetry),
		CancelDelete:  NewCancelDeleteCommand[T](c),
		Delete:        NewDeleteRecordCommand[T](c, telemetry),
	}
}

var _ collection[admin.Template] = (*admin.Collection[admin.Template])(nil)
