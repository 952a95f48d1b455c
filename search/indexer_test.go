package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/entities"
	"fulfillment/search"
)

type failingIndexer struct{}

func (failingIndexer) IndexProduct(context.Context, entities.Product) error {
	return errors.New("search backend unavailable")
}

func TestMemoryIndexerKeepsLatestSnapshot(t *testing.T) {
	indexer := search.NewMemoryIndexer()
	ctx := context.Background()

	product := entities.Product{ProductID: "product-1", Name: "Widget", Price: entities.MustMoney("10.00"), Stock: 10}
	require.NoError(t, indexer.IndexProduct(ctx, product))

	product.Stock = 7
	require.NoError(t, indexer.IndexProduct(ctx, product))

	all := indexer.All()
	require.Len(t, all, 1)
	assert.Equal(t, 7, all[0].Stock)
}

func TestLoggingIndexerSwallowsFailures(t *testing.T) {
	indexer := search.NewLoggingIndexer(failingIndexer{})

	assert.NotPanics(t, func() {
		indexer.IndexProduct(context.Background(), entities.Product{ProductID: "product-1"})
	})
}
