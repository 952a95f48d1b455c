package command

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"fulfillment/entities"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (entities.Order, error)
}

type Handler struct {
	orderRepo OrderRepository
	eventBus  *cqrs.EventBus
}

func NewHandler(eventBus *cqrs.EventBus, orderRepo OrderRepository) Handler {
	if eventBus == nil {
		panic("eventBus is required")
	}
	if orderRepo == nil {
		panic("orderRepo is required")
	}

	return Handler{
		orderRepo: orderRepo,
		eventBus:  eventBus,
	}
}
