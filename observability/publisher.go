package observability

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingPublisherDecorator opens a publish span per message and injects
// the trace context into message metadata so consumers continue the trace.
type TracingPublisherDecorator struct {
	message.Publisher
}

func (d TracingPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	tracer := otel.Tracer("fulfillment/message")

	for i := range messages {
		ctx, span := tracer.Start(
			messages[i].Context(),
			"publish "+topic,
			trace.WithSpanKind(trace.SpanKindProducer),
			trace.WithAttributes(attribute.String("messaging.destination", topic)),
		)

		otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(messages[i].Metadata))
		messages[i].SetContext(ctx)
		span.End()
	}

	return d.Publisher.Publish(topic, messages...)
}
