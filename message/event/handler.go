package event

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"fulfillment/dedup"
	"fulfillment/entities"
	"fulfillment/observability"
)

// StockRepository is the slice of the persistence store the consumer needs:
// an all-or-nothing stock adjustment for a paid order's line items.
type StockRepository interface {
	ReduceStock(ctx context.Context, items []entities.OrderPaidItem) ([]entities.StockUpdate, error)
}

// FailureRepository is the append-only audit trail the DLQ monitor writes.
type FailureRepository interface {
	Create(ctx context.Context, failure entities.OrderFailed) error
}

type Handler struct {
	stockRepo   StockRepository
	failureRepo FailureRepository
	registry    dedup.Registry
	eventBus    *cqrs.EventBus
	metrics     *observability.ConsumerMetrics
}

func NewHandler(
	stockRepo StockRepository,
	failureRepo FailureRepository,
	registry dedup.Registry,
	eventBus *cqrs.EventBus,
	metrics *observability.ConsumerMetrics,
) Handler {
	if stockRepo == nil {
		panic("missing stockRepo")
	}
	if registry == nil {
		panic("missing registry")
	}
	if eventBus == nil {
		panic("missing eventBus")
	}

	return Handler{
		stockRepo:   stockRepo,
		failureRepo: failureRepo,
		registry:    registry,
		eventBus:    eventBus,
		metrics:     metrics,
	}
}
