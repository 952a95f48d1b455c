package event_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/dedup"
	"fulfillment/entities"
	"fulfillment/message/event"
)

// runPipeline wires both consumers onto an in-process pubsub, the way the
// service wires them onto Kafka.
func runPipeline(t *testing.T, ctx context.Context, stockRepo *fakeStockRepo, failureRepo *fakeFailureRepo) *gochannel.GoChannel {
	t.Helper()

	logger := watermill.NopLogger{}
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	require.NoError(t, err)

	processorConfig := event.NewProcessorConfig(
		func(consumerGroup string, partitions int32) (message.Subscriber, error) {
			return pubsub, nil
		},
		logger,
	)

	processor, err := cqrs.NewEventProcessorWithConfig(router, processorConfig)
	require.NoError(t, err)

	handler := event.NewHandler(stockRepo, failureRepo, dedup.NewMemoryRegistry(), event.NewBus(pubsub), nil)

	err = processor.AddHandlers(
		cqrs.NewEventHandler("stock-update", handler.OnOrderPaid),
		cqrs.NewEventHandler("dlq-monitoring", handler.OnOrderFailed),
	)
	require.NoError(t, err)

	go func() {
		_ = router.Run(ctx)
	}()

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}

	return pubsub
}

func TestPipeline_OrderPaidProducesStockUpdated(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stockRepo := &fakeStockRepo{
		updates: []entities.StockUpdate{
			{ProductID: "product-1", PreviousStock: 10, NewStock: 8, QuantityReduced: 2},
		},
	}
	pubsub := runPipeline(t, ctx, stockRepo, &fakeFailureRepo{})

	stockUpdatedMessages, err := pubsub.Subscribe(ctx, event.TopicStockUpdated)
	require.NoError(t, err)

	fact := newOrderPaidFact()
	require.NoError(t, event.NewBus(pubsub).Publish(ctx, *fact))

	select {
	case msg := <-stockUpdatedMessages:
		msg.Ack()

		var stockUpdated entities.StockUpdated
		require.NoError(t, json.Unmarshal(msg.Payload, &stockUpdated))
		assert.Equal(t, fact.OrderID, stockUpdated.OrderID)
		assert.Equal(t, entities.StockUpdateSuccess, stockUpdated.Status)
	case <-ctx.Done():
		t.Fatal("no StockUpdated fact arrived")
	}
}

func TestPipeline_UnprocessableFactLandsInFailureAudit(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stockRepo := &fakeStockRepo{err: entities.ErrInsufficientStock}
	failureRepo := &fakeFailureRepo{}
	pubsub := runPipeline(t, ctx, stockRepo, failureRepo)

	fact := newOrderPaidFact()
	require.NoError(t, event.NewBus(pubsub).Publish(ctx, *fact))

	// the quarantined fact flows through the dead-letter channel into the
	// audit trail without blocking anything
	assert.Eventually(t, func() bool {
		failureRepo.mu.Lock()
		defer failureRepo.mu.Unlock()
		return len(failureRepo.failures) == 1
	}, 5*time.Second, 10*time.Millisecond)

	failureRepo.mu.Lock()
	defer failureRepo.mu.Unlock()
	require.Len(t, failureRepo.failures, 1)
	assert.Equal(t, fact.Header.ID, failureRepo.failures[0].OriginalEventID)
	assert.Equal(t, 1, failureRepo.failures[0].RetryCount)
}
