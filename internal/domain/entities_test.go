package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tirasundara/transaction-etl/internal/domain"
)

func TestDefaultAmountBands(t *testing.T) {
	bands := domain.DefaultAmountBands()

	if len(bands) != 3 {
		t.Fatalf("Expected 3 amount bands, got %d", len(bands))
	}

	if bands[0].Name != domain.AmountLow || !bands[0].MinAmount.Equal(decimal.Zero) {
		t.Errorf("Expected low band starting at 0, got %s starting at %s", bands[0].Name, bands[0].MinAmount)
	}

	if bands[1].Name != domain.AmountMedium || !bands[1].MinAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected medium band starting at 50, got %s starting at %s", bands[1].Name, bands[1].MinAmount)
	}

	if bands[2].Name != domain.AmountHigh || !bands[2].MaxAmount.Equal(decimal.RequireFromString("999999.99")) {
		t.Errorf("Expected high band capped at 999999.99, got %s capped at %s", bands[2].Name, bands[2].MaxAmount)
	}
}

func TestCleanRecordKey(t *testing.T) {
	base := domain.CleanRecord{
		CustomerID:      "C1",
		ProductID:       "P1",
		ProductCategory: "electronics",
		TransactionDate: "2023-01-15",
		Amount:          decimal.NewFromInt(100),
		TransactionType: "purchase",
		SpendCategory:   "retail",
	}

	same := base
	if base.Key() != same.Key() {
		t.Errorf("Expected identical records to share a key")
	}

	differentAmount := base
	differentAmount.Amount = decimal.NewFromInt(101)
	if base.Key() == differentAmount.Key() {
		t.Errorf("Expected records differing by amount to have different keys")
	}
}

func TestRawRecordField(t *testing.T) {
	record := domain.RawRecord{
		"customer_id":      "C1",
		"transaction_date": nil,
	}

	if _, ok := record.Field("customer_id"); !ok {
		t.Errorf("Expected customer_id to be present")
	}

	if _, ok := record.Field("transaction_date"); ok {
		t.Errorf("Expected null transaction_date to read as missing")
	}

	if _, ok := record.Field("absent"); ok {
		t.Errorf("Expected absent field to read as missing")
	}
}
