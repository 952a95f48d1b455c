package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fulfillment/entities"
)

type IProductRepository interface {
	Save(ctx context.Context, product entities.Product) error
	FindByID(ctx context.Context, productID string) (entities.Product, error)
	Exists(ctx context.Context, productID string) (bool, error)
	List(ctx context.Context) ([]entities.Product, error)
	ReduceStock(ctx context.Context, items []entities.OrderPaidItem) ([]entities.StockUpdate, error)
}

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) ProductRepository {
	if db == nil {
		panic("db is nil")
	}
	return ProductRepository{db: db}
}

func (pr ProductRepository) Save(ctx context.Context, product entities.Product) error {
	_, err := pr.db.Conn.NamedExecContext(ctx, `
		INSERT INTO
		    products (product_id, name, price, stock)
		VALUES
		    (:product_id, :name, :price, :stock)
		ON CONFLICT (product_id) DO UPDATE
		SET name = EXCLUDED.name, price = EXCLUDED.price, stock = EXCLUDED.stock`,
		product,
	)
	if err != nil {
		return fmt.Errorf("could not save product: %w", err)
	}
	return nil
}

func (pr ProductRepository) FindByID(ctx context.Context, productID string) (entities.Product, error) {
	var product entities.Product
	err := pr.db.Conn.GetContext(ctx, &product, `
		SELECT product_id, name, price, stock
		FROM products
		WHERE product_id = $1`,
		productID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, fmt.Errorf("%w: %s", entities.ErrProductNotFound, productID)
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not get product: %w", err)
	}

	return product, nil
}

func (pr ProductRepository) Exists(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := pr.db.Conn.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)`,
		productID,
	)
	if err != nil {
		return false, fmt.Errorf("could not check if product exists: %w", err)
	}
	return exists, nil
}

func (pr ProductRepository) List(ctx context.Context) ([]entities.Product, error) {
	var products []entities.Product
	err := pr.db.Conn.SelectContext(ctx, &products, `
		SELECT product_id, name, price, stock
		FROM products
		ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	return products, nil
}

// ReduceStock applies all line adjustments in one transaction: either every
// product row is decremented or none is. Rows are locked in item order.
func (pr ProductRepository) ReduceStock(ctx context.Context, items []entities.OrderPaidItem) (updates []entities.StockUpdate, err error) {
	tx, err := pr.db.Conn.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	updates = make([]entities.StockUpdate, 0, len(items))
	for _, item := range items {
		var stock int
		err = tx.GetContext(ctx, &stock, `
			SELECT stock FROM products WHERE product_id = $1 FOR UPDATE`,
			item.ProductID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", entities.ErrProductNotFound, item.ProductID)
		}
		if err != nil {
			return nil, fmt.Errorf("could not lock product %s: %w", item.ProductID, err)
		}

		newStock := stock - item.Quantity
		if newStock < 0 {
			return nil, fmt.Errorf("%w: product %s has %d, order needs %d",
				entities.ErrInsufficientStock, item.ProductID, stock, item.Quantity)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE products SET stock = $1 WHERE product_id = $2`,
			newStock, item.ProductID,
		)
		if err != nil {
			return nil, fmt.Errorf("could not update stock for product %s: %w", item.ProductID, err)
		}

		updates = append(updates, entities.StockUpdate{
			ProductID:       item.ProductID,
			PreviousStock:   stock,
			NewStock:        newStock,
			QuantityReduced: item.Quantity,
		})
	}

	return updates, nil
}
