package entities

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

// OrderPaidItem is the line-item snapshot carried by OrderPaid. It mirrors
// OrderItem at the moment of payment.
type OrderPaidItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Money  `json:"unit_price"`
}

// OrderPaid is the fact that an order was paid. A fresh header (and thus a
// fresh event ID) is generated per publish attempt.
type OrderPaid struct {
	Header EventHeader `json:"header"`

	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	Items       []OrderPaidItem `json:"items"`
	TotalAmount Money           `json:"total_amount"`
	PaidAt      time.Time       `json:"paid_at"`
}

func (e OrderPaid) PartitionKey() string { return e.OrderID }

func NewOrderPaid(order Order) OrderPaid {
	items := make([]OrderPaidItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderPaidItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return OrderPaid{
		Header:      NewEventHeader(),
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		Items:       items,
		TotalAmount: order.TotalAmount,
		PaidAt:      order.UpdatedAt,
	}
}

type StockUpdateStatus string

const (
	StockUpdateSuccess StockUpdateStatus = "SUCCESS"
	StockUpdateFailed  StockUpdateStatus = "FAILED"
)

// StockUpdate records a single line-item adjustment. PreviousStock and
// NewStock are independent outputs of the adjustment calculation.
type StockUpdate struct {
	ProductID       string `json:"product_id"`
	PreviousStock   int    `json:"previous_stock"`
	NewStock        int    `json:"new_stock"`
	QuantityReduced int    `json:"quantity_reduced"`
}

type StockUpdated struct {
	Header EventHeader `json:"header"`

	OrderID     string            `json:"order_id"`
	Updates     []StockUpdate     `json:"updates"`
	ProcessedAt time.Time         `json:"processed_at"`
	Status      StockUpdateStatus `json:"status"`
}

func (e StockUpdated) PartitionKey() string { return e.OrderID }

// OrderFailed is the dead-letter fact. It is append-only: once published it
// is never mutated, only drained by the DLQ monitor.
type OrderFailed struct {
	Header EventHeader `json:"header"`

	OriginalEventID string    `json:"original_event_id"`
	OrderID         string    `json:"order_id"`
	Error           string    `json:"error"`
	RetryCount      int       `json:"retry_count"`
	FailedAt        time.Time `json:"failed_at"`
}

func (e OrderFailed) PartitionKey() string { return e.OrderID }

// OrderCreated is published through the transactional outbox together with
// the order insert.
type OrderCreated struct {
	Header EventHeader `json:"header"`

	OrderID     string `json:"order_id"`
	UserID      string `json:"user_id"`
	TotalAmount Money  `json:"total_amount"`
}

func (e OrderCreated) PartitionKey() string { return e.OrderID }
