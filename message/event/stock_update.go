package event

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"fulfillment/entities"
	"fulfillment/pkg/log"
)

// OnOrderPaid reconciles stock for a paid order. The contract with the
// broker is at-least-once, so the handler must be idempotent; the contract
// with the partition is that it is never blocked, so the handler returns
// nil (acks) even when processing fails and the fact goes to quarantine.
func (h Handler) OnOrderPaid(ctx context.Context, event *entities.OrderPaid) error {
	logger := log.FromContext(ctx).WithFields(logrus.Fields{
		"event_id": event.Header.ID,
		"order_id": event.OrderID,
	})

	processed, err := h.registry.IsProcessed(ctx, event.Header.ID)
	if err != nil {
		// no side effect happened yet: returning the error lets the message
		// retry and redeliver instead of quarantining a healthy fact
		return fmt.Errorf("could not check idempotency registry: %w", err)
	}
	if processed {
		logger.Info("Skipping already processed fact")
		if h.metrics != nil {
			h.metrics.FactsDeduplicated.Inc()
		}
		return nil
	}

	updates, err := h.stockRepo.ReduceStock(ctx, event.Items)
	if err != nil {
		h.deadLetter(ctx, logger, event, err)
		return nil
	}

	if err := h.registry.MarkProcessed(ctx, event.Header.ID); err != nil {
		// the adjustment is committed; a redelivery before the registry
		// recovers would re-apply it, so make this loud
		logger.WithError(err).Error("Stock adjusted but idempotency registry write failed")
	}

	err = h.eventBus.Publish(ctx, entities.StockUpdated{
		Header:      entities.NewEventHeaderWithIdempotencyKey(event.Header.IdempotencyKey),
		OrderID:     event.OrderID,
		Updates:     updates,
		ProcessedAt: time.Now().UTC(),
		Status:      entities.StockUpdateSuccess,
	})
	if err != nil {
		// the adjustment itself is done; a lost audit fact is a logging
		// problem, not a reason to redeliver an already-applied fact
		logger.WithError(err).Error("Could not publish StockUpdated")
	}

	if h.metrics != nil {
		h.metrics.FactsProcessed.Inc()
	}
	logger.WithField("updates", len(updates)).Info("Stock reconciled for paid order")

	return nil
}

// deadLetter quarantines the fact. A failure of the quarantine publish
// itself is logged and swallowed: raising it would either crash the loop or
// leave an unprocessable message redelivering forever.
func (h Handler) deadLetter(ctx context.Context, logger *logrus.Entry, event *entities.OrderPaid, cause error) {
	logger.WithError(cause).Error("Could not process order paid fact, dead-lettering")

	failure := entities.OrderFailed{
		Header:          entities.NewEventHeader(),
		OriginalEventID: event.Header.ID,
		OrderID:         event.OrderID,
		Error:           cause.Error(),
		RetryCount:      1,
		FailedAt:        time.Now().UTC(),
	}

	if err := h.eventBus.Publish(ctx, failure); err != nil {
		logger.WithError(err).Error("Could not publish to dead-letter channel")
		return
	}

	if h.metrics != nil {
		h.metrics.FactsDeadLettered.Inc()
	}
}
