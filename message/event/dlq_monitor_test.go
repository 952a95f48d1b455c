package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/dedup"
	"fulfillment/entities"
	"fulfillment/message/event"
)

func TestOnOrderFailed_PersistsFailureAndAcks(t *testing.T) {
	failureRepo := &fakeFailureRepo{}
	handler := event.NewHandler(&fakeStockRepo{}, failureRepo, dedup.NewMemoryRegistry(), event.NewBus(&capturePublisher{}), nil)

	failure := &entities.OrderFailed{
		Header:          entities.NewEventHeader(),
		OriginalEventID: "original-event-1",
		OrderID:         "order-1",
		Error:           "insufficient stock",
		RetryCount:      1,
		FailedAt:        time.Now().UTC(),
	}

	err := handler.OnOrderFailed(context.Background(), failure)
	require.NoError(t, err)

	require.Len(t, failureRepo.failures, 1)
	assert.Equal(t, *failure, failureRepo.failures[0])
}

func TestOnOrderFailed_RetriesAuditWriteFailure(t *testing.T) {
	failureRepo := &fakeFailureRepo{err: errors.New("db unavailable")}
	handler := event.NewHandler(&fakeStockRepo{}, failureRepo, dedup.NewMemoryRegistry(), event.NewBus(&capturePublisher{}), nil)

	failure := &entities.OrderFailed{
		Header:  entities.NewEventHeader(),
		OrderID: "order-1",
	}

	// the audit write must not be lost: the message redelivers until it lands
	err := handler.OnOrderFailed(context.Background(), failure)
	assert.Error(t, err)
}
