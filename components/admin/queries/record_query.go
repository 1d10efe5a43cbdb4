package queries

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-notify-admin/components/admin"
)

// ListInput is the list state of a page.
type ListInput struct {
	Filter admin.Filter
}

// ListResult is one filtered page of records with its filter panel.
type ListResult[T any] struct {
	Records      []T               `json:"records"`
	Shown        int               `json:"shown"`
	Total        int               `json:"total"`
	Facets       []admin.FacetInfo `json:"facets"`
	ActiveFacets int               `json:"active_facets"`
}

type lister[T any] interface {
	List(filter admin.Filter) []T
	Len() int
	DescribeFacets(filter admin.Filter) []admin.FacetInfo
	ActiveFacets(filter admin.Filter) int
}

// ListRecordsQuery filters a collection.
type ListRecordsQuery[T any] struct {
	collection lister[T]
}

// NewListRecordsQuery builds the query.
func NewListRecordsQuery[T any](collection lister[T]) *ListRecordsQuery[T] {
	return &ListRecordsQuery[T]{collection: collection}
}

var _ gocommand.Querier[ListInput, ListResult[admin.Channel]] = (*ListRecordsQuery[admin.Channel])(nil)

// Query applies the search text and facets.
func (q *ListRecordsQuery[T]) Query(ctx context.Context, input ListInput) (ListResult[T], error) {
	if err := ctx.Err(); err != nil {
		return ListResult[T]{}, err
	}
	records := q.collection.List(input.Filter)
	return ListResult[T]{
		Records:      records,
		Shown:        len(records),
		Total:        q.collection.Len(),
		Facets:       q.collection.DescribeFacets(input.Filter),
		ActiveFacets: q.collection.ActiveFacets(input.Filter),
	}, nil
}

// GetInput identifies one record.
type GetInput struct {
	ID admin.ID
}

type getter[T any] interface {
	Name() string
	Get(id admin.ID) (T, bool)
}

// GetRecordQuery fetches one record by id.
type GetRecordQuery[T any] struct {
	collection getter[T]
}

// NewGetRecordQuery builds the query.
func NewGetRecordQuery[T any](collection getter[T]) *GetRecordQuery[T] {
	return &GetRecordQuery[T]{collection: collection}
}

var _ gocommand.Querier[GetInput, admin.Channel] = (*GetRecordQuery[admin.Channel])(nil)

// Query returns admin.ErrNotFound for unknown ids.
func (q *GetRecordQuery[T]) Query(_ context.Context, input GetInput) (T, error) {
	record, ok := q.collection.Get(input.ID)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %s", admin.ErrNotFound, q.collection.Name(), input.ID)
	}
	return record, nil
}
