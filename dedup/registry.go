// Package dedup keeps track of already-processed event IDs so that broker
// redeliveries become no-ops. The registry must be durable and shared by
// every consumer instance of a group: a process-local set does not survive
// restarts or rebalances.
package dedup

import "context"

type Registry interface {
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
}
