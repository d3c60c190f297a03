package cleaner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/transaction-etl/internal/domain"
)

// criticalFields are dropped-on-missing, but only when the field exists in
// the batch schema at all.
var criticalFields = []string{"transaction_date"}

// defaultDateLayouts are the accepted input forms for transaction dates, in
// the order they are tried.
var defaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// candidate is a record after critical-field filtering and date
// normalization, before amount coercion. Duplicate elimination happens at
// this point so that two identical raw records collapse even when both would
// later be dropped for their amount.
type candidate struct {
	customerID      string
	productID       string
	productCategory string
	transactionDate string
	rawAmount       string
	amountPresent   bool
	transactionType string
	spendCategory   string
}

func (c candidate) key() string {
	return strings.Join([]string{
		c.customerID, c.productID, c.productCategory,
		c.transactionDate, c.rawAmount, c.transactionType, c.spendCategory,
	}, "|")
}

// Cleaner validates and normalizes raw provider records into CleanRecords
type Cleaner struct {
	dateLayouts []string
}

// New creates a Cleaner with the default accepted date layouts
func New() *Cleaner {
	return &Cleaner{dateLayouts: defaultDateLayouts}
}

// Clean transforms a raw batch into a clean batch. An empty result is a valid
// terminal state, not an error; the report carries the per-rule drop counts.
func (c *Cleaner) Clean(records []domain.RawRecord) ([]domain.CleanRecord, domain.CleaningReport) {
	report := domain.CleaningReport{InputCount: len(records)}
	if len(records) == 0 {
		return nil, report
	}

	// Only enforce critical fields that exist in the batch schema
	var activeCritical []string
	for _, field := range criticalFields {
		if domain.HasColumn(records, field) {
			activeCritical = append(activeCritical, field)
		}
	}

	seen := make(map[string]bool)
	var candidates []candidate

recordLoop:
	for _, record := range records {
		for _, field := range activeCritical {
			if _, ok := record.Field(field); !ok {
				report.MissingCriticalDropped++
				continue recordLoop
			}
		}

		cand := candidate{
			customerID:      stringField(record, "customer_id"),
			productID:       stringField(record, "product_id"),
			productCategory: stringField(record, "product_category"),
			transactionType: stringField(record, "transaction_type"),
			spendCategory:   stringField(record, "spend_category"),
		}

		if raw, ok := record.Field("transaction_date"); ok {
			normalized, err := c.normalizeDate(asString(raw))
			if err != nil {
				report.BadDateDropped++
				continue
			}
			cand.transactionDate = normalized
		}

		if raw, ok := record.Field("transaction_amount"); ok {
			cand.rawAmount = asString(raw)
			cand.amountPresent = true
		}

		// Remove exact duplicates (all fields equal)
		if seen[cand.key()] {
			report.DuplicatesRemoved++
			continue
		}
		seen[cand.key()] = true

		candidates = append(candidates, cand)
	}

	var cleaned []domain.CleanRecord
	for _, cand := range candidates {
		// A non-numeric amount becomes a missing value, not an error
		amount, ok := parseAmount(cand)
		if !ok {
			report.MissingAmountDropped++
			continue
		}
		if amount.IsNegative() {
			report.NegativeAmountDropped++
			continue
		}

		cleaned = append(cleaned, domain.CleanRecord{
			CustomerID:      cand.customerID,
			ProductID:       cand.productID,
			ProductCategory: cand.productCategory,
			TransactionDate: cand.transactionDate,
			Amount:          amount,
			TransactionType: cand.transactionType,
			SpendCategory:   cand.spendCategory,
		})
	}

	report.OutputCount = len(cleaned)
	return cleaned, report
}

func (c *Cleaner) normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range c.dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(domain.DateFormat), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", value)
}

func parseAmount(cand candidate) (decimal.Decimal, bool) {
	if !cand.amountPresent {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(cand.rawAmount))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}

func stringField(record domain.RawRecord, name string) string {
	v, ok := record.Field(name)
	if !ok {
		return ""
	}
	return asString(v)
}

// asString renders a raw value in its canonical string form. Providers send
// identifiers as strings or as JSON numbers interchangeably.
func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}
