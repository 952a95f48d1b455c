package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fulfillment/entities"
	"fulfillment/message/event"
	"fulfillment/message/outbox"
)

type IOrderRepository interface {
	Create(ctx context.Context, order entities.Order) error
	Save(ctx context.Context, order entities.Order) error
	FindByID(ctx context.Context, orderID string) (entities.Order, error)
	Exists(ctx context.Context, orderID string) (bool, error)
}

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) OrderRepository {
	if db == nil {
		panic("db is nil")
	}
	return OrderRepository{db: db}
}

// Create inserts the order and publishes OrderCreated through the outbox in
// the same transaction, so the fact is never lost between commit and send.
func (or OrderRepository) Create(ctx context.Context, order entities.Order) (err error) {
	tx, err := or.db.Conn.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO
		    orders (order_id, user_id, total_amount, status, created_at, updated_at)
		VALUES
		    (:order_id, :user_id, :total_amount, :status, :created_at, :updated_at)`,
		order,
	)
	if isErrorUniqueViolation(err) {
		return fmt.Errorf("%w: %s", entities.ErrOrderExists, order.OrderID)
	}
	if err != nil {
		return fmt.Errorf("could not insert order: %w", err)
	}

	for i, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO
			    order_items (order_id, line_number, product_id, product_name, unit_price, quantity)
			VALUES
			    ($1, $2, $3, $4, $5, $6)`,
			order.OrderID, i+1, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("could not insert order item: %w", err)
		}
	}

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return fmt.Errorf("could not create outbox publisher: %w", err)
	}
	err = event.NewBus(outboxPublisher).Publish(ctx, entities.OrderCreated{
		Header:      entities.NewEventHeader(),
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
	})
	if err != nil {
		return fmt.Errorf("could not publish OrderCreated: %w", err)
	}

	return nil
}

// Save persists a status transition. Items are immutable after creation and
// are not touched.
func (or OrderRepository) Save(ctx context.Context, order entities.Order) error {
	result, err := or.db.Conn.NamedExecContext(ctx, `
		UPDATE orders
		SET status = :status, updated_at = :updated_at
		WHERE order_id = :order_id`,
		order,
	)
	if err != nil {
		return fmt.Errorf("could not save order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check saved order: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", entities.ErrOrderNotFound, order.OrderID)
	}

	return nil
}

func (or OrderRepository) FindByID(ctx context.Context, orderID string) (entities.Order, error) {
	var order entities.Order
	err := or.db.Conn.GetContext(ctx, &order, `
		SELECT order_id, user_id, total_amount, status, created_at, updated_at
		FROM orders
		WHERE order_id = $1`,
		orderID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, fmt.Errorf("%w: %s", entities.ErrOrderNotFound, orderID)
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not get order: %w", err)
	}

	err = or.db.Conn.SelectContext(ctx, &order.Items, `
		SELECT product_id, product_name, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY line_number`,
		orderID,
	)
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not get order items: %w", err)
	}

	return order, nil
}

func (or OrderRepository) Exists(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := or.db.Conn.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`,
		orderID,
	)
	if err != nil {
		return false, fmt.Errorf("could not check if order exists: %w", err)
	}
	return exists, nil
}
