package db

import (
	"context"
	"fmt"
	"time"

	"fulfillment/entities"
)

type IFailureRepository interface {
	Create(ctx context.Context, failure entities.OrderFailed) error
	List(ctx context.Context) ([]entities.OrderFailed, error)
}

// FailureRepository is the append-only audit trail behind the DLQ monitor.
type FailureRepository struct {
	db *DB
}

func NewFailureRepository(db *DB) FailureRepository {
	if db == nil {
		panic("db is nil")
	}
	return FailureRepository{db: db}
}

func (fr FailureRepository) Create(ctx context.Context, failure entities.OrderFailed) error {
	_, err := fr.db.Conn.ExecContext(ctx, `
		INSERT INTO
		    order_failures (event_id, original_event_id, order_id, error, retry_count, failed_at)
		VALUES
		    ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING`,
		failure.Header.ID, failure.OriginalEventID, failure.OrderID,
		failure.Error, failure.RetryCount, failure.FailedAt,
	)
	if err != nil {
		return fmt.Errorf("could not store order failure: %w", err)
	}
	return nil
}

type orderFailureRow struct {
	EventID         string    `db:"event_id"`
	OriginalEventID string    `db:"original_event_id"`
	OrderID         string    `db:"order_id"`
	Error           string    `db:"error"`
	RetryCount      int       `db:"retry_count"`
	FailedAt        time.Time `db:"failed_at"`
}

func (fr FailureRepository) List(ctx context.Context) ([]entities.OrderFailed, error) {
	var rows []orderFailureRow
	err := fr.db.Conn.SelectContext(ctx, &rows, `
		SELECT event_id, original_event_id, order_id, error, retry_count, failed_at
		FROM order_failures
		ORDER BY failed_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("could not list order failures: %w", err)
	}

	failures := make([]entities.OrderFailed, 0, len(rows))
	for _, row := range rows {
		failures = append(failures, entities.OrderFailed{
			Header:          entities.EventHeader{ID: row.EventID},
			OriginalEventID: row.OriginalEventID,
			OrderID:         row.OrderID,
			Error:           row.Error,
			RetryCount:      row.RetryCount,
			FailedAt:        row.FailedAt,
		})
	}

	return failures, nil
}
