package event

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	TopicOrderPaid      = "order.paid"
	TopicStockUpdated   = "stock.updated"
	TopicOrderFailedDLQ = "order.failed.dlq"
	TopicOrderCreated   = "order.created"
)

// TopicFor maps an event name to its channel. Every fact about one order
// ends up keyed by that order's ID, so facts for the same order stay in
// order on their partition.
func TopicFor(eventName string) (string, error) {
	switch eventName {
	case "OrderPaid":
		return TopicOrderPaid, nil
	case "StockUpdated":
		return TopicStockUpdated, nil
	case "OrderFailed":
		return TopicOrderFailedDLQ, nil
	case "OrderCreated":
		return TopicOrderCreated, nil
	default:
		return "", fmt.Errorf("no topic mapping for event %s", eventName)
	}
}

// PartitionKeyMetadataField is read by the Kafka partitioning marshaler.
const PartitionKeyMetadataField = "partition_key"

type partitionedEvent interface {
	PartitionKey() string
}

// partitionAwareMarshaler stamps every marshaled event with its partition
// key so the transport can route it.
type partitionAwareMarshaler struct {
	cqrs.CommandEventMarshaler
}

func (m partitionAwareMarshaler) Marshal(v interface{}) (*message.Message, error) {
	msg, err := m.CommandEventMarshaler.Marshal(v)
	if err != nil {
		return nil, err
	}

	if event, ok := v.(partitionedEvent); ok {
		msg.Metadata.Set(PartitionKeyMetadataField, event.PartitionKey())
	}

	return msg, nil
}

var marshaler = partitionAwareMarshaler{
	CommandEventMarshaler: cqrs.JSONMarshaler{
		GenerateName: cqrs.StructName,
	},
}
