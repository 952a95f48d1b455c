package entities

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem snapshots the product at order time. It is never mutated, so a
// later product price change does not affect an existing order.
type OrderItem struct {
	ProductID   string `json:"product_id" db:"product_id"`
	ProductName string `json:"product_name" db:"product_name"`
	UnitPrice   Money  `json:"unit_price" db:"unit_price"`
	Quantity    int    `json:"quantity" db:"quantity"`
}

func NewOrderItem(productID, productName string, unitPrice Money, quantity int) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}, nil
}

func (i OrderItem) Subtotal() Money {
	return i.UnitPrice.MultiplyInt(i.Quantity)
}

// Order is a value: status transitions return a new Order instead of
// mutating the receiver.
type Order struct {
	OrderID     string      `json:"order_id" db:"order_id"`
	UserID      string      `json:"user_id" db:"user_id"`
	Items       []OrderItem `json:"items"`
	TotalAmount Money       `json:"total_amount" db:"total_amount"`
	Status      OrderStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

func NewOrder(orderID, userID string, items []OrderItem) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrNoItems
	}

	var total Money
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	now := time.Now().UTC()
	return Order{
		OrderID:     orderID,
		UserID:      userID,
		Items:       items,
		TotalAmount: total,
		Status:      OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MarkAsPaid is legal only from PENDING. PAID is terminal.
func (o Order) MarkAsPaid() (Order, error) {
	if o.Status != OrderStatusPending {
		return Order{}, fmt.Errorf("%w: cannot pay order %s in status %s", ErrInvalidState, o.OrderID, o.Status)
	}

	paid := o
	paid.Status = OrderStatusPaid
	paid.UpdatedAt = time.Now().UTC()
	return paid, nil
}

// Cancel is legal from PENDING and is a no-op from CANCELLED. A paid order
// is a financial fact and cannot be cancelled here.
func (o Order) Cancel() (Order, error) {
	if o.Status == OrderStatusPaid {
		return Order{}, fmt.Errorf("%w: cannot cancel order %s in status %s", ErrInvalidState, o.OrderID, o.Status)
	}

	cancelled := o
	cancelled.Status = OrderStatusCancelled
	cancelled.UpdatedAt = time.Now().UTC()
	return cancelled, nil
}
