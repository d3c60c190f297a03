package domain

import "github.com/shopspring/decimal"

// AmountCategory is the derived spend band of a transaction amount
type AmountCategory string

// Amount categories
const (
	AmountLow     AmountCategory = "low"
	AmountMedium  AmountCategory = "medium"
	AmountHigh    AmountCategory = "high"
	AmountUnknown AmountCategory = "unknown"
)

// EnrichedRecord is a CleanRecord plus the derived attributes computed by the
// enricher. TotalCustomerTransactions is batch-scoped: the sum of amounts over
// all records sharing the customer within one batch, not a running total
// across runs.
type EnrichedRecord struct {
	CleanRecord
	AmountCategory            AmountCategory
	TotalCustomerTransactions decimal.Decimal
}
