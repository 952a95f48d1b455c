package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConsumerMetrics counts what happens to consumed facts. Dead-lettered
// facts are invisible to end users, so this is where operators see them.
type ConsumerMetrics struct {
	FactsProcessed    prometheus.Counter
	FactsDeduplicated prometheus.Counter
	FactsDeadLettered prometheus.Counter
}

func NewConsumerMetrics(reg prometheus.Registerer) *ConsumerMetrics {
	factory := promauto.With(reg)

	return &ConsumerMetrics{
		FactsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fulfillment",
			Name:      "facts_processed_total",
			Help:      "Facts applied successfully by the stock-update consumer.",
		}),
		FactsDeduplicated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fulfillment",
			Name:      "facts_deduplicated_total",
			Help:      "Redelivered facts skipped by the idempotency registry.",
		}),
		FactsDeadLettered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "fulfillment",
			Name:      "facts_dead_lettered_total",
			Help:      "Facts quarantined on the dead-letter channel.",
		}),
	}
}
