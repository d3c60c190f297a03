package domain

import "github.com/shopspring/decimal"

// Customer is a distinct customer identifier observed in a batch
type Customer struct {
	CustomerID string
}

// Product is a distinct (product, category) pair observed in a batch
type Product struct {
	ProductID       string
	ProductCategory string
}

// TransactionType is a distinct transaction type name observed in a batch
type TransactionType struct {
	Name string
}

// SpendCategory is a distinct spend category name observed in a batch
type SpendCategory struct {
	Name string
}

// AmountBand is one row of the fixed amount-category reference set
type AmountBand struct {
	Name      AmountCategory
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
}

// TransactionFact is one transaction row destined for the facts table,
// referencing the dimension rows by natural key.
type TransactionFact struct {
	CustomerID      string
	ProductID       string
	TransactionDate string
	Amount          decimal.Decimal
	TransactionType string
	SpendCategory   string
	AmountCategory  AmountCategory
}

// EntitySets holds the normalized decomposition of one enriched batch, ready
// for the persistence writer.
type EntitySets struct {
	Customers        []Customer
	Products         []Product
	TransactionTypes []TransactionType
	SpendCategories  []SpendCategory
	AmountBands      []AmountBand
	Facts            []TransactionFact
}

// Empty reports whether the sets carry no fact rows
func (s EntitySets) Empty() bool {
	return len(s.Facts) == 0
}

// DefaultAmountBands returns the fixed amount-category reference rows. They
// are independent of any batch: low=[0,50), medium=[50,200], high=(200,999999.99].
func DefaultAmountBands() []AmountBand {
	return []AmountBand{
		{Name: AmountLow, MinAmount: decimal.NewFromInt(0), MaxAmount: decimal.NewFromInt(50)},
		{Name: AmountMedium, MinAmount: decimal.NewFromInt(50), MaxAmount: decimal.NewFromInt(200)},
		{Name: AmountHigh, MinAmount: decimal.NewFromInt(200), MaxAmount: decimal.RequireFromString("999999.99")},
	}
}
