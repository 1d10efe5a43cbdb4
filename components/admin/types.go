package admin

import "time"

// Collection names as they appear in the seed document.
const (
	CollectionCategories = "categories"
	CollectionChannels   = "channels"
	CollectionTemplates  = "templates"
	CollectionUsers      = "users"
	CollectionPayments   = "payment"
	CollectionOrders     = "orderlist"
)

// Category groups templates by purpose.
type Category struct {
	ID          ID         `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Channel is a delivery medium such as email or WhatsApp.
type Channel struct {
	ID          ID        `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Template is a notification body bound to a category and a channel.
// Category and Channel hold copies taken when the template was last saved.
type Template struct {
	ID            ID        `json:"id" yaml:"id"`
	CategoryID    ID        `json:"category_id" yaml:"category_id"`
	ChannelID     ID        `json:"channel_id" yaml:"channel_id"`
	TemplateName  string    `json:"template_name" yaml:"template_name"`
	Subject       string    `json:"subject" yaml:"subject"`
	Body          string    `json:"body" yaml:"body"`
	HasAttachment bool      `json:"has_attachment" yaml:"has_attachment"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	Category      *Category `json:"category,omitempty" yaml:"category,omitempty"`
	Channel       *Channel  `json:"channel,omitempty" yaml:"channel,omitempty"`
}

// User is a platform account.
type User struct {
	ID        ID         `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Email     string     `json:"email" yaml:"email"`
	Phone     string     `json:"phone" yaml:"phone"`
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// PaymentMethod is a payment provider option offered to customers.
type PaymentMethod struct {
	ID        ID         `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Provider  string     `json:"provider" yaml:"provider"`
	ImageURL  string     `json:"image_url" yaml:"image_url"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" yaml:"updated_at"`
}

// OrderStatus is the payment state of an order.
type OrderStatus string

const (
	OrderPaid    OrderStatus = "paid"
	OrderPending OrderStatus = "pending"
	OrderFailed  OrderStatus = "failed"
)

// Order is a read-only ledger entry.
type Order struct {
	OrderID        int64       `json:"order_id" yaml:"order_id"`
	IDPayment      int64       `json:"id_payment" yaml:"id_payment"`
	KodeOrder      string      `json:"kode_order" yaml:"kode_order"`
	VAName         string      `json:"va_name" yaml:"va_name"`
	VirtualAccount string      `json:"virtual_account" yaml:"virtual_account"`
	PaymentMethod  string      `json:"payment_method" yaml:"payment_method"`
	Tagihan        int64       `json:"tagihan" yaml:"tagihan"`
	Admin          int64       `json:"admin" yaml:"admin"`
	TotalAmount    int64       `json:"total_amount" yaml:"total_amount"`
	Status         OrderStatus `json:"status" yaml:"status"`
	ContractID     string      `json:"contract_id,omitempty" yaml:"contract_id,omitempty"`
	TrxID          string      `json:"trx_id,omitempty" yaml:"trx_id,omitempty"`
	ExpiredAt      time.Time   `json:"expired_at" yaml:"expired_at"`
}

// Banner is the transient payload shown after a successful create.
type Banner struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Notice is a short-lived toast raised by a mutation.
type Notice struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DeleteRequest is an open delete confirmation.
type DeleteRequest struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// ChangeAction names a mutation on a collection.
type ChangeAction string

const (
	ChangeCreated ChangeAction = "created"
	ChangeUpdated ChangeAction = "updated"
	ChangeDeleted ChangeAction = "deleted"
	ChangeReset   ChangeAction = "reset"
)

// ChangeEvent describes a committed mutation.
type ChangeEvent struct {
	Collection string       `json:"collection"`
	Action     ChangeAction `json:"action"`
	ID         ID           `json:"id,omitempty"`
	Name       string       `json:"name,omitempty"`
	At         time.Time    `json:"at"`
}
