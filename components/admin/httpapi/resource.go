package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-notify-admin/components/admin"
	"github.com/goliatone/go-notify-admin/components/admin/commands"
	"github.com/goliatone/go-notify-admin/components/admin/queries"
)

// ErrBadRequest marks payloads that cannot be decoded.
var ErrBadRequest = errors.New("httpapi: invalid payload")

// Resource exposes one collection through shared commands and queries.
type Resource[T any] struct {
	List   gocommand.Querier[queries.ListInput, queries.ListResult[T]]
	Get    gocommand.Querier[queries.GetInput, T]
	Create gocommand.Commander[commands.CreateRecordInput[T]]
	Update gocommand.Commander[commands.UpdateRecordInput[T]]
	Delete gocommand.Commander[commands.DeleteRecordInput]
}

// CollectionResource wires a resource straight onto a collection.
func CollectionResource[T any](c *admin.Collection[T], telemetry commands.Telemetry) *Resource[T] {
	set := commands.NewSet[T](c, telemetry)
	return &Resource[T]{
		List:   queries.NewListRecordsQuery[T](c),
		Get:    queries.NewGetRecordQuery[T](c),
		Create: set.Create,
		Update: set.Update,
		Delete: set.Delete,
	}
}

type resource interface {
	list(ctx context.Context, filter admin.Filter) (any, error)
	get(ctx context.Context, id admin.ID) (any, error)
	create(ctx context.Context, payload []byte) (any, error)
	update(ctx context.Context, id admin.ID, payload []byte) (any, error)
	remove(ctx context.Context, id admin.ID) error
	facetKeys(ctx context.Context) []string
}

func (r *Resource[T]) list(ctx context.Context, filter admin.Filter) (any, error) {
	if r.List == nil {
		return nil, errors.New("httpapi: list not supported")
	}
	return r.List.Query(ctx, queries.ListInput{Filter: filter})
}

func (r *Resource[T]) get(ctx context.Context, id admin.ID) (any, error) {
	if r.Get == nil {
		return nil, errors.New("httpapi: get not supported")
	}
	return r.Get.Query(ctx, queries.GetInput{ID: id})
}

func (r *Resource[T]) create(ctx context.Context, payload []byte) (any, error) {
	if r.Create == nil {
		return nil, errors.New("httpapi: create not supported")
	}
	record, err := decode[T](payload)
	if err != nil {
		return nil, err
	}
	var created T
	if err := r.Create.Execute(ctx, commands.CreateRecordInput[T]{Record: record, Result: &created}); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Resource[T]) update(ctx context.Context, id admin.ID, payload []byte) (any, error) {
	if r.Update == nil {
		return nil, errors.New("httpapi: update not supported")
	}
	record, err := decode[T](payload)
	if err != nil {
		return nil, err
	}
	var updated T
	if err := r.Update.Execute(ctx, commands.UpdateRecordInput[T]{ID: id, Record: record, Result: &updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Resource[T]) remove(ctx context.Context, id admin.ID) error {
	if r.Delete == nil {
		return errors.New("httpapi: delete not supported")
	}
	return r.Delete.Execute(ctx, commands.DeleteRecordInput{ID: id})
}

func (r *Resource[T]) facetKeys(ctx context.Context) []string {
	if r.List == nil {
		return nil
	}
	result, err := r.List.Query(ctx, queries.ListInput{})
	if err != nil {
		return nil
	}
	keys := make([]string, len(result.Facets))
	for i, facet := range result.Facets {
		keys[i] = facet.Key
	}
	return keys
}

func decode[T any](payload []byte) (T, error) {
	var record T
	if err := json.Unmarshal(payload, &record); err != nil {
		return record, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return record, nil
}
