package admin

import "context"

// RecordActions performs the mutations behind a page's form actions.
type RecordActions[T any] interface {
	Create(ctx context.Context, draft T) error
	BeginEdit(ctx context.Context, id ID) (T, error)
	Save(ctx context.Context, id ID, draft T) error
	CancelEdit(ctx context.Context, id ID) error
	RequestDelete(ctx context.Context, id ID) error
	ConfirmDelete(ctx context.Context, id ID) error
	CancelDelete(ctx context.Context) error
}

// PageActions routes the form actions of each page. Nil entries mutate the
// collection directly.
type PageActions struct {
	Categories RecordActions[Category]
	Channels   RecordActions[Channel]
	Templates  RecordActions[Template]
	Users      RecordActions[User]
	Payments   RecordActions[PaymentMethod]
}

// collectionActions applies form actions straight to a collection.
type collectionActions[T any] struct {
	coll *Collection[T]
}

var _ RecordActions[User] = collectionActions[User]{}

func (a collectionActions[T]) Create(ctx context.Context, draft T) error {
	_, err := a.coll.Create(ctx, draft)
	return err
}

func (a collectionActions[T]) BeginEdit(_ context.Context, id ID) (T, error) {
	return a.coll.BeginEdit(id)
}

func (a collectionActions[T]) Save(ctx context.Context, id ID, draft T) error {
	_, err := a.coll.SaveEdit(ctx, id, draft)
	return err
}

func (a collectionActions[T]) CancelEdit(_ context.Context, id ID) error {
	a.coll.CancelEdit(id)
	return nil
}

func (a collectionActions[T]) RequestDelete(_ context.Context, id ID) error {
	_, err := a.coll.RequestDelete(id)
	return err
}

func (a collectionActions[T]) ConfirmDelete(ctx context.Context, id ID) error {
	_, err := a.coll.ConfirmDelete(ctx, id)
	return err
}

func (a collectionActions[T]) CancelDelete(context.Context) error {
	a.coll.CancelDelete()
	return nil
}

func actionsOr[T any](actions RecordActions[T], coll *Collection[T]) RecordActions[T] {
	if actions != nil {
		return actions
	}
	return collectionActions[T]{coll: coll}
}
