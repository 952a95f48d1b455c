package message_test

import (
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/entities"
	"fulfillment/message"
)

type recordingPublisher struct {
	mu        sync.Mutex
	published []string
}

func (p *recordingPublisher) Publish(topic string, messages ...*watermillMessage.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for range messages {
		p.published = append(p.published, topic)
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

// blockingPublisher parks the worker goroutine until released, so tests can
// fill the outbound buffer deterministically.
type blockingPublisher struct {
	started chan struct{}
	release chan struct{}
}

func (p *blockingPublisher) Publish(string, ...*watermillMessage.Message) error {
	p.started <- struct{}{}
	<-p.release
	return nil
}

func (p *blockingPublisher) Close() error { return nil }

func TestAsyncPublisher_DeliversInBackground(t *testing.T) {
	broker := &recordingPublisher{}
	publisher := message.NewAsyncPublisher(broker, 8, watermill.NopLogger{})

	err := publisher.Publish("order.paid", watermillMessage.NewMessage(watermill.NewUUID(), nil))
	require.NoError(t, err)

	// Close drains the buffer, so after it returns the write has happened
	require.NoError(t, publisher.Close())
	assert.Equal(t, 1, broker.count())
}

func TestAsyncPublisher_RejectsWhenBufferIsFull(t *testing.T) {
	broker := &blockingPublisher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	publisher := message.NewAsyncPublisher(broker, 1, watermill.NopLogger{})

	require.NoError(t, publisher.Publish("order.paid", watermillMessage.NewMessage(watermill.NewUUID(), nil)))

	// the worker is now parked inside the broker and the buffer is empty
	select {
	case <-broker.started:
	case <-time.After(5 * time.Second):
		t.Fatal("worker never picked up the first message")
	}

	require.NoError(t, publisher.Publish("order.paid", watermillMessage.NewMessage(watermill.NewUUID(), nil)))

	err := publisher.Publish("order.paid", watermillMessage.NewMessage(watermill.NewUUID(), nil))
	assert.ErrorIs(t, err, entities.ErrEventPublication)

	close(broker.release)
	go func() {
		for range broker.started {
		}
	}()
	require.NoError(t, publisher.Close())
	close(broker.started)
}

func TestAsyncPublisher_RejectsAfterClose(t *testing.T) {
	publisher := message.NewAsyncPublisher(&recordingPublisher{}, 8, watermill.NopLogger{})
	require.NoError(t, publisher.Close())

	err := publisher.Publish("order.paid", watermillMessage.NewMessage(watermill.NewUUID(), nil))
	assert.ErrorIs(t, err, entities.ErrEventPublication)
}
