package command

import (
	"context"
	"fmt"

	"fulfillment/entities"
	"fulfillment/pkg/log"
)

// RetryStockUpdate republishes the OrderPaid fact for an already paid
// order. The fact gets a fresh event ID, so the idempotency registry will
// not swallow the retry.
func (h Handler) RetryStockUpdate(ctx context.Context, cmd *entities.RetryStockUpdate) error {
	log.FromContext(ctx).WithField("order_id", cmd.OrderID).Info("Retrying stock update")

	order, err := h.orderRepo.FindByID(ctx, cmd.OrderID)
	if err != nil {
		return fmt.Errorf("could not load order for retry: %w", err)
	}

	if order.Status != entities.OrderStatusPaid {
		return fmt.Errorf("%w: order %s is %s, only paid orders can retry stock updates",
			entities.ErrInvalidState, order.OrderID, order.Status)
	}

	return h.eventBus.Publish(ctx, entities.NewOrderPaid(order))
}
