package command

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

var marshaler = cqrs.JSONMarshaler{
	GenerateName: cqrs.StructName,
}

// SubscriberConstructor builds a consumer-group subscriber for one command
// handler.
type SubscriberConstructor func(consumerGroup string) (message.Subscriber, error)

func NewCommandProcessorConfig(constructor SubscriberConstructor, watermillLogger watermill.LoggerAdapter) cqrs.CommandProcessorConfig {
	return cqrs.CommandProcessorConfig{
		GenerateSubscribeTopic: func(params cqrs.CommandProcessorGenerateSubscribeTopicParams) (string, error) {
			return fmt.Sprintf("commands.%s", params.CommandName), nil
		},
		SubscriberConstructor: func(params cqrs.CommandProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return constructor("svc-fulfillment.commands." + params.HandlerName)
		},
		Marshaler: marshaler,
		Logger:    watermillLogger,
	}
}
