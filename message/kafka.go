package message

import (
	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"

	"fulfillment/message/event"
)

// NewKafkaPublisher routes every message to the partition derived from its
// partition key metadata, so facts for one order land on one partition.
func NewKafkaPublisher(brokers []string, logger watermill.LoggerAdapter) message.Publisher {
	pub, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers: brokers,
		Marshaler: kafka.NewWithPartitioningMarshaler(func(topic string, msg *message.Message) (string, error) {
			return msg.Metadata.Get(event.PartitionKeyMetadataField), nil
		}),
	}, logger)
	if err != nil {
		panic(err)
	}

	return pub
}

// NewKafkaSubscriber creates a consumer-group subscriber. Primary channels
// get three partitions for parallelism across orders; the dead-letter
// channel stays single-partition so failures keep a total order.
func NewKafkaSubscriber(brokers []string, consumerGroup string, partitions int32, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:       brokers,
		Unmarshaler:   kafka.DefaultMarshaler{},
		ConsumerGroup: consumerGroup,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     partitions,
			ReplicationFactor: 1,
		},
		OverwriteSaramaConfig: newSaramaConfig(),
	}, logger)
}

func newSaramaConfig() *sarama.Config {
	cfg := kafka.DefaultSaramaSubscriberConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	return cfg
}
