package domain

import (
	"context"
	"time"
)

// RawRecordSource defines the interface for fetching one raw batch of
// transaction records for a date range.
type RawRecordSource interface {
	// FetchRange returns the raw records for dates between startDate and endDate (inclusive)
	FetchRange(ctx context.Context, startDate, endDate time.Time) ([]RawRecord, error)

	// SourceIdentifier returns a short name identifying where records came from
	SourceIdentifier() string
}

// TransactionStore defines the interface for persisting one projected batch
// as a single atomic unit of work.
type TransactionStore interface {
	// SaveBatch applies all entity sets inside one transaction. On any
	// failure nothing from the batch remains committed.
	SaveBatch(ctx context.Context, sets EntitySets) (WriteSummary, error)

	// Close releases the underlying connection
	Close() error
}
