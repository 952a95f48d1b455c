package event

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"fulfillment/entities"
	"fulfillment/pkg/log"
)

// OnOrderFailed makes quarantined facts observable: log at error severity,
// persist to the audit table, ack. Remediation is operator-driven.
func (h Handler) OnOrderFailed(ctx context.Context, event *entities.OrderFailed) error {
	log.FromContext(ctx).WithFields(logrus.Fields{
		"event_id":          event.Header.ID,
		"original_event_id": event.OriginalEventID,
		"order_id":          event.OrderID,
		"retry_count":       event.RetryCount,
		"error":             event.Error,
	}).Error("Order fact landed on the dead-letter channel")

	if h.failureRepo == nil {
		return nil
	}

	if err := h.failureRepo.Create(ctx, *event); err != nil {
		// returning the error retries the audit write; the DLQ channel is
		// single-partition, so ordering is preserved across redeliveries
		return fmt.Errorf("could not record order failure: %w", err)
	}

	return nil
}
