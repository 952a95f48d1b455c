package search

import (
	"context"
	"sync"

	"fulfillment/entities"
	"fulfillment/pkg/log"
)

// Indexer pushes product snapshots to the search backend. Indexing is
// best effort: a failed push is logged and never fails the caller.
type Indexer interface {
	IndexProduct(ctx context.Context, product entities.Product) error
}

type LoggingIndexer struct {
	indexer Indexer
}

func NewLoggingIndexer(indexer Indexer) LoggingIndexer {
	if indexer == nil {
		panic("missing indexer")
	}

	return LoggingIndexer{indexer: indexer}
}

func (i LoggingIndexer) IndexProduct(ctx context.Context, product entities.Product) {
	err := i.indexer.IndexProduct(ctx, product)
	if err != nil {
		log.FromContext(ctx).
			WithField("product_id", product.ProductID).
			WithError(err).
			Error("failed to index product")
		return
	}

	log.FromContext(ctx).
		WithField("product_id", product.ProductID).
		Debug("product indexed")
}

// MemoryIndexer keeps the latest snapshot per product. It backs the
// search endpoint until an external engine is plugged in.
type MemoryIndexer struct {
	lock     sync.RWMutex
	products map[string]entities.Product
}

func NewMemoryIndexer() *MemoryIndexer {
	return &MemoryIndexer{products: map[string]entities.Product{}}
}

func (m *MemoryIndexer) IndexProduct(_ context.Context, product entities.Product) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.products[product.ProductID] = product

	return nil
}

func (m *MemoryIndexer) All() []entities.Product {
	m.lock.RLock()
	defer m.lock.RUnlock()

	products := make([]entities.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}

	return products
}
