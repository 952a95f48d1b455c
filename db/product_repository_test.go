package db

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/entities"
)

var testDb *sqlx.DB
var getDbOnce sync.Once

func getDb(t *testing.T) *sqlx.DB {
	if os.Getenv("POSTGRES_URL") == "" {
		t.Skip("POSTGRES_URL not set")
	}

	getDbOnce.Do(func() {
		var err error
		testDb, err = sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
		if err != nil {
			panic(err)
		}
	})
	return testDb
}

func TestReduceStock(t *testing.T) {
	db := DB{Conn: getDb(t)}
	db.MigrateSchema()
	productRepo := NewProductRepository(&db)
	ctx := context.Background()

	product := entities.Product{
		ProductID: uuid.NewString(),
		Name:      "Widget",
		Price:     entities.MustMoney("10.00"),
		Stock:     10,
	}
	require.NoError(t, productRepo.Save(ctx, product))

	updates, err := productRepo.ReduceStock(ctx, []entities.OrderPaidItem{
		{ProductID: product.ProductID, Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, 10, updates[0].PreviousStock)
	assert.Equal(t, 7, updates[0].NewStock)
	assert.Equal(t, 3, updates[0].QuantityReduced)

	stored, err := productRepo.FindByID(ctx, product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Stock)
}

func TestReduceStock_InsufficientStock(t *testing.T) {
	db := DB{Conn: getDb(t)}
	db.MigrateSchema()
	productRepo := NewProductRepository(&db)
	ctx := context.Background()

	product := entities.Product{
		ProductID: uuid.NewString(),
		Name:      "Widget",
		Price:     entities.MustMoney("10.00"),
		Stock:     1,
	}
	require.NoError(t, productRepo.Save(ctx, product))

	_, err := productRepo.ReduceStock(ctx, []entities.OrderPaidItem{
		{ProductID: product.ProductID, Quantity: 5},
	})
	assert.ErrorIs(t, err, entities.ErrInsufficientStock)

	stored, err := productRepo.FindByID(ctx, product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Stock)
}

func TestReduceStock_AllOrNothing(t *testing.T) {
	db := DB{Conn: getDb(t)}
	db.MigrateSchema()
	productRepo := NewProductRepository(&db)
	ctx := context.Background()

	inStock := entities.Product{
		ProductID: uuid.NewString(),
		Name:      "Widget",
		Price:     entities.MustMoney("10.00"),
		Stock:     10,
	}
	outOfStock := entities.Product{
		ProductID: uuid.NewString(),
		Name:      "Gadget",
		Price:     entities.MustMoney("5.00"),
		Stock:     0,
	}
	require.NoError(t, productRepo.Save(ctx, inStock))
	require.NoError(t, productRepo.Save(ctx, outOfStock))

	_, err := productRepo.ReduceStock(ctx, []entities.OrderPaidItem{
		{ProductID: inStock.ProductID, Quantity: 2},
		{ProductID: outOfStock.ProductID, Quantity: 1},
	})
	assert.ErrorIs(t, err, entities.ErrInsufficientStock)

	// the first line item must not have been committed
	stored, err := productRepo.FindByID(ctx, inStock.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Stock)
}

func TestReduceStock_UnknownProduct(t *testing.T) {
	db := DB{Conn: getDb(t)}
	db.MigrateSchema()
	productRepo := NewProductRepository(&db)

	_, err := productRepo.ReduceStock(context.Background(), []entities.OrderPaidItem{
		{ProductID: uuid.NewString(), Quantity: 1},
	})
	assert.ErrorIs(t, err, entities.ErrProductNotFound)
}
