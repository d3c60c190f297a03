package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical form every transaction date is normalized to.
const DateFormat = "2006-01-02"

// CleanRecord is the canonical transaction shape produced by the cleaner.
// TransactionDate is always in YYYY-MM-DD form and Amount is never negative.
type CleanRecord struct {
	CustomerID      string
	ProductID       string
	ProductCategory string
	TransactionDate string
	Amount          decimal.Decimal
	TransactionType string
	SpendCategory   string
}

// Key returns the all-fields identity of the record, used for duplicate
// elimination within a batch.
func (c CleanRecord) Key() string {
	return strings.Join([]string{
		c.CustomerID,
		c.ProductID,
		c.ProductCategory,
		c.TransactionDate,
		c.Amount.String(),
		c.TransactionType,
		c.SpendCategory,
	}, "|")
}
