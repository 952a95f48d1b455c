package log

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

const correlationIDMetadataKey = "correlation_id"

// CorrelationPublisherDecorator stamps outgoing messages with the
// correlation ID found in the publishing context.
type CorrelationPublisherDecorator struct {
	message.Publisher
}

func (d CorrelationPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		// if the correlation ID is already set, it was propagated from an
		// upstream message and wins
		if messages[i].Metadata.Get(correlationIDMetadataKey) != "" {
			continue
		}

		correlationID := CorrelationIDFromContext(messages[i].Context())
		if correlationID != "" {
			messages[i].Metadata.Set(correlationIDMetadataKey, correlationID)
		}
	}

	return d.Publisher.Publish(topic, messages...)
}

func CorrelationIDFromMessage(msg *message.Message) string {
	return msg.Metadata.Get(correlationIDMetadataKey)
}
