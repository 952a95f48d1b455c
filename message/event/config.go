package event

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

// SubscriberConstructor builds a consumer-group subscriber for one handler.
// It receives the group name and the partition count for the subscribed
// topic.
type SubscriberConstructor func(consumerGroup string, partitions int32) (message.Subscriber, error)

func NewProcessorConfig(constructor SubscriberConstructor, watermillLogger watermill.LoggerAdapter) cqrs.EventProcessorConfig {
	return cqrs.EventProcessorConfig{
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return TopicFor(params.EventName)
		},
		SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			topic, err := TopicFor(params.EventName)
			if err != nil {
				return nil, err
			}

			// single partition on the dead-letter channel: a total order of
			// failures is worth more than parallelism there
			partitions := int32(3)
			if topic == TopicOrderFailedDLQ {
				partitions = 1
			}

			return constructor("svc-fulfillment."+params.HandlerName, partitions)
		},
		Marshaler: marshaler,
		Logger:    watermillLogger,
	}
}
