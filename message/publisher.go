package message

import (
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"fulfillment/entities"
)

type envelope struct {
	topic string
	msg   *message.Message
}

// AsyncPublisher decouples callers from broker latency: Publish only
// submits to an outbound buffer and returns. A background worker performs
// the broker write and logs the outcome. The caller-visible contract is
// "accepted", not "delivered" — delivery failures are observable through
// logs, never through the payment flow.
type AsyncPublisher struct {
	publisher message.Publisher
	outbound  chan envelope
	logger    watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewAsyncPublisher(publisher message.Publisher, bufferSize int, logger watermill.LoggerAdapter) *AsyncPublisher {
	if bufferSize <= 0 {
		bufferSize = 256
	}

	p := &AsyncPublisher{
		publisher: publisher,
		outbound:  make(chan envelope, bufferSize),
		logger:    logger,
		done:      make(chan struct{}),
	}

	go p.run()

	return p
}

// Publish submits for sending. It fails synchronously only when the message
// cannot be accepted at all: the publisher is closed or the buffer is full.
func (p *AsyncPublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return fmt.Errorf("%w: publisher is closed", entities.ErrEventPublication)
	}

	for _, msg := range messages {
		select {
		case p.outbound <- envelope{topic: topic, msg: msg}:
		default:
			return fmt.Errorf("%w: outbound buffer is full", entities.ErrEventPublication)
		}
	}

	return nil
}

func (p *AsyncPublisher) run() {
	defer close(p.done)

	for env := range p.outbound {
		fields := watermill.LogFields{
			"topic":      env.topic,
			"message_id": env.msg.UUID,
		}

		if err := p.publisher.Publish(env.topic, env.msg); err != nil {
			p.logger.Error("Broker rejected message", err, fields)
			continue
		}

		p.logger.Debug("Message delivered to broker", fields)
	}
}

// Close drains the buffer before returning.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.outbound)
	p.mu.Unlock()

	<-p.done
	return p.publisher.Close()
}
