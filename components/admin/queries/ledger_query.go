package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-notify-admin/components/admin"
)

// OrdersResult is the filtered ledger.
type OrdersResult struct {
	Orders []admin.Order     `json:"orders"`
	Shown  int               `json:"shown"`
	Total  int               `json:"total"`
	Facets []admin.FacetInfo `json:"facets"`
}

type ledger interface {
	List(filter admin.Filter) []admin.Order
	Len() int
	DescribeFacets(filter admin.Filter) []admin.FacetInfo
}

// OrdersQuery filters the order ledger.
type OrdersQuery struct {
	ledger ledger
}

// NewOrdersQuery builds the query.
func NewOrdersQuery(l ledger) *OrdersQuery {
	return &OrdersQuery{ledger: l}
}

var _ gocommand.Querier[ListInput, OrdersResult] = (*OrdersQuery)(nil)

// Query applies search and the status facet.
func (q *OrdersQuery) Query(ctx context.Context, input ListInput) (OrdersResult, error) {
	if err := ctx.Err(); err != nil {
		return OrdersResult{}, err
	}
	orders := q.ledger.List(input.Filter)
	return OrdersResult{
		Orders: orders,
		Shown:  len(orders),
		Total:  q.ledger.Len(),
		Facets: q.ledger.DescribeFacets(input.Filter),
	}, nil
}

// FeedInput requests the header notifications.
type FeedInput struct{}

type feedService interface {
	Feed(ctx context.Context) ([]admin.FeedItem, error)
}

// FeedQuery returns the header notification feed.
type FeedQuery struct {
	service feedService
}

// NewFeedQuery builds the query.
func NewFeedQuery(service feedService) *FeedQuery {
	return &FeedQuery{service: service}
}

var _ gocommand.Querier[FeedInput, []admin.FeedItem] = (*FeedQuery)(nil)

// Query returns the most recent orders as feed items.
func (q *FeedQuery) Query(ctx context.Context, _ FeedInput) ([]admin.FeedItem, error) {
	return q.service.Feed(ctx)
}

// OverviewInput requests the dashboard model.
type OverviewInput struct{}

type overviewService interface {
	Overview(ctx context.Context) (admin.Overview, error)
}

// OverviewQuery returns the dashboard model.
type OverviewQuery struct {
	service overviewService
}

// NewOverviewQuery builds the query.
func NewOverviewQuery(service overviewService) *OverviewQuery {
	return &OverviewQuery{service: service}
}

var _ gocommand.Querier[OverviewInput, admin.Overview] = (*OverviewQuery)(nil)

// Query builds the overview.
func (q *OverviewQuery) Query(ctx context.Context, _ OverviewInput) (admin.Overview, error) {
	return q.service.Overview(ctx)
}
