package admin

import (
	"context"
	"fmt"
	"net/url"
)

// DefaultFeedLimit caps the header feed.
const DefaultFeedLimit = 5

// feedTimeLabels is indexed by feed position, not by elapsed time.
var feedTimeLabels = []string{
	"2 menit yang lalu",
	"5 menit yang lalu",
	"10 menit yang lalu",
	"15 menit yang lalu",
}

const feedTimeFallback = "20 menit yang lalu"

// FeedItem is one entry of the header notification dropdown.
type FeedItem struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Time          string      `json:"time"`
	Type          OrderStatus `json:"type"`
	Icon          string      `json:"icon"`
	ColorClass    string      `json:"color_class"`
	Link          string      `json:"link"`
	KodeOrder     string      `json:"kode_order"`
	VAName        string      `json:"va_name"`
	TotalAmount   int64       `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"`
}

// NotificationFeed lists recent entries for the header.
type NotificationFeed interface {
	Recent(ctx context.Context, limit int) ([]FeedItem, error)
}

// OrderFeed derives notifications from the tail of the order ledger.
type OrderFeed struct {
	Ledger *OrderLedger
}

// Recent returns up to limit entries, most recent order first.
func (f OrderFeed) Recent(_ context.Context, limit int) ([]FeedItem, error) {
	if f.Ledger == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	orders := f.Ledger.Latest(limit)
	items := make([]FeedItem, 0, len(orders))
	for idx, order := range orders {
		items = append(items, feedItemFor(order, idx))
	}
	return items, nil
}

// FeedTimeLabel returns the relative time label for a feed position.
func FeedTimeLabel(position int) string {
	if position >= 0 && position < len(feedTimeLabels) {
		return feedTimeLabels[position]
	}
	return feedTimeFallback
}

// OrdersLink is the orders page url that highlights an order code.
func OrdersLink(code string) string {
	return "/orders?highlight=" + url.QueryEscape(code)
}

func feedItemFor(order Order, position int) FeedItem {
	item := FeedItem{
		ID:            fmt.Sprintf("order-%d", order.OrderID),
		Time:          FeedTimeLabel(position),
		Type:          order.Status,
		Link:          OrdersLink(order.KodeOrder),
		KodeOrder:     order.KodeOrder,
		VAName:        order.VAName,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
	}
	switch order.Status {
	case OrderPaid:
		item.Title = "Pembayaran berhasil dari " + order.VAName
		item.Icon = "check-circle"
		item.ColorClass = "bg-green-100 text-green-600"
	case OrderPending:
		item.Title = "Pembayaran menunggu dari " + order.VAName
		item.Icon = "clock"
		item.ColorClass = "bg-yellow-100 text-yellow-600"
	case OrderFailed:
		item.Title = "Pembayaran gagal dari " + order.VAName
		item.Icon = "x-circle"
		item.ColorClass = "bg-red-100 text-red-600"
	default:
		item.Title = "Update order dari " + order.VAName
		item.Icon = "credit-card"
		item.ColorClass = "bg-blue-100 text-blue-600"
	}
	return item
}
