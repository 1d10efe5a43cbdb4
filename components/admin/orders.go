package admin

import (
	"sync"
	"time"
)

// OrderStatusStyle is the label and styling shown for an order status.
type OrderStatusStyle struct {
	Label string `json:"label"`
	Class string `json:"class"`
	Icon  string `json:"icon"`
}

var orderStatusStyles = map[OrderStatus]OrderStatusStyle{
	OrderPaid:    {Label: "Berhasil", Class: "text-emerald-700 bg-emerald-50 border-emerald-200", Icon: "check-circle"},
	OrderPending: {Label: "Menunggu", Class: "text-amber-700 bg-amber-50 border-amber-200", Icon: "clock"},
	OrderFailed:  {Label: "Gagal", Class: "text-red-700 bg-red-50 border-red-200", Icon: "x-circle"},
}

// StatusStyle returns the display style for a status. Unknown statuses
// use the pending style.
func StatusStyle(status OrderStatus) OrderStatusStyle {
	if style, ok := orderStatusStyles[status]; ok {
		return style
	}
	return orderStatusStyles[OrderPending]
}

var orderFacets = []Facet[Order]{
	{
		Key:   "status",
		Label: "Status",
		Options: []FacetOption{
			{Value: string(OrderPaid), Label: "Berhasil"},
			{Value: string(OrderPending), Label: "Menunggu"},
			{Value: string(OrderFailed), Label: "Gagal"},
		},
		Match: func(o Order, value string, _ time.Time) bool {
			return string(o.Status) == value
		},
	},
}

func searchOrder(o Order, q string) bool {
	return containsFold(q, o.VAName, o.PaymentMethod, o.KodeOrder)
}

// OrderLedger holds the read-only order list.
type OrderLedger struct {
	clock   Clock
	mu      sync.RWMutex
	records []Order
}

// NewOrderLedger builds an empty ledger.
func NewOrderLedger(clock Clock) *OrderLedger {
	return &OrderLedger{clock: normalizeClock(clock)}
}

// Replace swaps the ledger contents.
func (l *OrderLedger) Replace(orders []Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append([]Order(nil), orders...)
}

// All returns every order in seed order.
func (l *OrderLedger) All() []Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Order(nil), l.records...)
}

// Len returns the number of orders.
func (l *OrderLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// List filters by search text (customer name, payment method, order
// code) and the single status facet.
func (l *OrderLedger) List(filter Filter) []Order {
	return ApplyFilter(l.All(), searchOrder, orderFacets, filter, l.clock.Now())
}

// DescribeFacets returns the status selector.
func (l *OrderLedger) DescribeFacets(filter Filter) []FacetInfo {
	return DescribeFacets(orderFacets, filter)
}

// ByCode finds an order by kode_order.
func (l *OrderLedger) ByCode(code string) (Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, o := range l.records {
		if o.KodeOrder == code {
			return o, true
		}
	}
	return Order{}, false
}

// Latest returns the last n orders, most recent first.
func (l *OrderLedger) Latest(n int) []Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 || n > len(l.records) {
		n = len(l.records)
	}
	out := make([]Order, 0, n)
	for i := len(l.records) - 1; i >= len(l.records)-n; i-- {
		out = append(out, l.records[i])
	}
	return out
}
