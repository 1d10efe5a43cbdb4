package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusStyle(t *testing.T) {
	pending := StatusStyle(OrderPending)
	assert.Equal(t, "Menunggu", pending.Label)
	assert.Contains(t, pending.Class, "amber")

	assert.Equal(t, "Berhasil", StatusStyle(OrderPaid).Label)
	assert.Equal(t, "Gagal", StatusStyle(OrderFailed).Label)
	assert.Equal(t, pending, StatusStyle("refunded"))
}

func TestOrderLedgerFilters(t *testing.T) {
	service := newTestService(t, newFakeClock(testNow))
	ledger := service.Orders()

	require.Equal(t, 6, ledger.Len())
	assert.Len(t, ledger.List(Filter{}.With("status", "paid")), 3)
	assert.Len(t, ledger.List(Filter{}.With("status", "failed")), 1)
	assert.Len(t, ledger.List(Filter{Search: "mandiri"}), 2)
	assert.Len(t, ledger.List(Filter{Search: "ORD-20250402"}), 1)

	order, ok := ledger.ByCode("ORD-20250401-0001")
	require.True(t, ok)
	assert.Equal(t, int64(154000), order.TotalAmount)
	_, ok = ledger.ByCode("missing")
	assert.False(t, ok)
}

func TestOrderLedgerLatest(t *testing.T) {
	ledger := NewOrderLedger(nil)
	ledger.Replace([]Order{{OrderID: 1}, {OrderID: 2}, {OrderID: 3}})

	latest := ledger.Latest(2)
	require.Len(t, latest, 2)
	assert.Equal(t, int64(3), latest[0].OrderID)
	assert.Equal(t, int64(2), latest[1].OrderID)
	assert.Len(t, ledger.Latest(10), 3)
	assert.Len(t, ledger.Latest(0), 3)
}

func TestOrderFeed(t *testing.T) {
	service := newTestService(t, newFakeClock(testNow))

	items, err := service.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 5)

	first := items[0]
	assert.Equal(t, "order-5006", first.ID)
	assert.Equal(t, "2 menit yang lalu", first.Time)
	assert.Equal(t, "/orders?highlight=ORD-20250405-0006", first.Link)
	assert.Equal(t, "Pembayaran berhasil dari "+first.VAName, first.Title)

	assert.Equal(t, "order-5002", items[4].ID)
	assert.Equal(t, OrderPending, items[4].Type)
	assert.Equal(t, "clock", items[4].Icon)
}

func TestFeedTimeLabel(t *testing.T) {
	assert.Equal(t, "2 menit yang lalu", FeedTimeLabel(0))
	assert.Equal(t, "15 menit yang lalu", FeedTimeLabel(3))
	assert.Equal(t, "20 menit yang lalu", FeedTimeLabel(4))
	assert.Equal(t, "20 menit yang lalu", FeedTimeLabel(-1))
}

func TestOrderFeedWithoutLedger(t *testing.T) {
	items, err := OrderFeed{}.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, items)
}
