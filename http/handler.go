package http

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"fulfillment/entities"
	"fulfillment/search"
)

type Handler struct {
	eventBus    *cqrs.EventBus
	cmdBus      *cqrs.CommandBus
	orderRepo   OrderRepository
	productRepo ProductRepository
	failureRepo FailureRepository
	indexer     search.LoggingIndexer
}

type OrderRepository interface {
	Create(ctx context.Context, order entities.Order) error
	Save(ctx context.Context, order entities.Order) error
	FindByID(ctx context.Context, orderID string) (entities.Order, error)
}

type ProductRepository interface {
	Save(ctx context.Context, product entities.Product) error
	FindByID(ctx context.Context, productID string) (entities.Product, error)
	List(ctx context.Context) ([]entities.Product, error)
}

type FailureRepository interface {
	List(ctx context.Context) ([]entities.OrderFailed, error)
}
