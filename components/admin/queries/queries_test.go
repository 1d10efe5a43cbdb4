package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-notify-admin/components/admin"
)

func newService(t *testing.T) *admin.Service {
	t.Helper()
	service := admin.NewService(admin.Options{})
	if err := service.Reset(context.Background()); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	t.Cleanup(service.Close)
	return service
}

func TestListRecordsQuery(t *testing.T) {
	service := newService(t)
	query := NewListRecordsQuery[admin.User](service.Users())

	result, err := query.Query(context.Background(), ListInput{Filter: admin.Filter{}.With("domain", "gmail")})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.Shown != 2 || result.Total != 5 {
		t.Fatalf("expected 2 of 5 users, got %d of %d", result.Shown, result.Total)
	}
	if result.ActiveFacets != 1 {
		t.Fatalf("expected one active facet, got %d", result.ActiveFacets)
	}
	if len(result.Facets) != 3 {
		t.Fatalf("expected 3 facets, got %d", len(result.Facets))
	}
}

func TestListRecordsQueryCancelled(t *testing.T) {
	service := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewListRecordsQuery[admin.Channel](service.Channels()).Query(ctx, ListInput{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGetRecordQuery(t *testing.T) {
	service := newService(t)
	query := NewGetRecordQuery[admin.PaymentMethod](service.Payments())

	record, err := query.Query(context.Background(), GetInput{ID: "302"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if record.Provider != "WinPay" {
		t.Fatalf("unexpected record %#v", record)
	}
	if _, err := query.Query(context.Background(), GetInput{ID: "999"}); !errors.Is(err, admin.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrdersQuery(t *testing.T) {
	service := newService(t)
	result, err := NewOrdersQuery(service.Orders()).Query(context.Background(), ListInput{
		Filter: admin.Filter{}.With("status", "pending"),
	})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.Shown != 2 || result.Total != 6 {
		t.Fatalf("expected 2 of 6 orders, got %d of %d", result.Shown, result.Total)
	}
	if result.Facets[0].Selected != "pending" {
		t.Fatalf("expected status facet selected, got %#v", result.Facets[0])
	}
}

func TestFeedAndOverviewQueries(t *testing.T) {
	service := newService(t)

	items, err := NewFeedQuery(service).Query(context.Background(), FeedInput{})
	if err != nil {
		t.Fatalf("feed returned error: %v", err)
	}
	if len(items) != admin.DefaultFeedLimit {
		t.Fatalf("expected %d feed items, got %d", admin.DefaultFeedLimit, len(items))
	}

	ov, err := NewOverviewQuery(service).Query(context.Background(), OverviewInput{})
	if err != nil {
		t.Fatalf("overview returned error: %v", err)
	}
	if ov.Totals.Orders != 6 {
		t.Fatalf("expected 6 orders, got %d", ov.Totals.Orders)
	}
}
