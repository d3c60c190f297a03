package enricher

import (
	"github.com/shopspring/decimal"
	"github.com/tirasundara/transaction-etl/internal/domain"
)

var (
	lowUpperBound    = decimal.NewFromInt(50)
	mediumUpperBound = decimal.NewFromInt(200)
)

// Categorize maps a transaction amount to its amount category. Both
// thresholds are closed on the medium side: 50 and 200 belong to medium.
func Categorize(amount decimal.Decimal) domain.AmountCategory {
	switch {
	case amount.LessThan(lowUpperBound):
		return domain.AmountLow
	case amount.LessThanOrEqual(mediumUpperBound):
		return domain.AmountMedium
	default:
		return domain.AmountHigh
	}
}

// CategorizeValue is the string-input variant of Categorize. A value that
// cannot be read as a number is categorized as unknown.
func CategorizeValue(value string) domain.AmountCategory {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return domain.AmountUnknown
	}
	return Categorize(amount)
}

// Enricher derives computed attributes from cleaned records
type Enricher struct{}

// New creates an Enricher
func New() *Enricher {
	return &Enricher{}
}

// Enrich attaches the amount category and the batch-scoped customer total to
// every record. Totals are recomputed per batch, so the result is independent
// of input ordering.
func (e *Enricher) Enrich(records []domain.CleanRecord) []domain.EnrichedRecord {
	if len(records) == 0 {
		return nil
	}

	customerTotals := make(map[string]decimal.Decimal, len(records))
	for _, record := range records {
		customerTotals[record.CustomerID] = customerTotals[record.CustomerID].Add(record.Amount)
	}

	enriched := make([]domain.EnrichedRecord, 0, len(records))
	for _, record := range records {
		enriched = append(enriched, domain.EnrichedRecord{
			CleanRecord:               record,
			AmountCategory:            Categorize(record.Amount),
			TotalCustomerTransactions: customerTotals[record.CustomerID],
		})
	}

	return enriched
}
