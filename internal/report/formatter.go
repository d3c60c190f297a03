package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tirasundara/transaction-etl/internal/domain"
)

// OutputFormatter defines the interface for formatting run reports
type OutputFormatter interface {
	Format(report domain.RunReport) ([]byte, error)
	FileExtension() string
}

// JSONFormatter formats run reports as JSON
type JSONFormatter struct {
	PrettyPrint bool
}

func NewJSONFormatter(prettyPrint bool) *JSONFormatter {
	return &JSONFormatter{
		PrettyPrint: prettyPrint,
	}
}

// Format implements the OutputFormatter interface for JSON
func (f *JSONFormatter) Format(report domain.RunReport) ([]byte, error) {
	if f.PrettyPrint {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

func (f *JSONFormatter) FileExtension() string {
	return "json"
}

// TextFormatter renders the human-readable console summary of a run
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format implements the OutputFormatter interface for console text
func (f *TextFormatter) Format(report domain.RunReport) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Run %s ===\n", report.RunID)
	fmt.Fprintf(&b, "Source: %s\n", report.Source)
	fmt.Fprintf(&b, "Date range: %s .. %s\n", report.StartDate, report.EndDate)
	fmt.Fprintf(&b, "Fetched records: %d\n", report.FetchedCount)

	if report.StoppedAfter == domain.StageFetch {
		fmt.Fprintf(&b, "\nNo data returned by the provider; nothing written.\n")
		return []byte(b.String()), nil
	}

	c := report.Cleaning
	fmt.Fprintf(&b, "\n=== Data Cleaning Report ===\n")
	fmt.Fprintf(&b, "Original row count: %d\n", c.InputCount)
	fmt.Fprintf(&b, "Missing critical field: %d removed\n", c.MissingCriticalDropped)
	fmt.Fprintf(&b, "Unparseable dates: %d removed\n", c.BadDateDropped)
	fmt.Fprintf(&b, "Duplicates removed: %d\n", c.DuplicatesRemoved)
	fmt.Fprintf(&b, "Missing amounts: %d removed\n", c.MissingAmountDropped)
	fmt.Fprintf(&b, "Negative transactions removed: %d\n", c.NegativeAmountDropped)
	fmt.Fprintf(&b, "Final row count: %d\n", c.OutputCount)

	if report.StoppedAfter != "" {
		fmt.Fprintf(&b, "\nNo records survived cleaning; nothing written.\n")
		return []byte(b.String()), nil
	}

	fmt.Fprintf(&b, "\n=== Enrichment ===\n")
	fmt.Fprintf(&b, "Enriched records: %d\n", report.EnrichedCount)
	if report.ProductConflicts > 0 {
		fmt.Fprintf(&b, "Warning: %d product category conflict(s); first category kept\n", report.ProductConflicts)
	}

	if len(report.Sample) > 0 {
		fmt.Fprintf(&b, "\n=== Sample of Enriched Data ===\n")
		for _, r := range report.Sample {
			fmt.Fprintf(&b, "%s  customer=%s product=%s amount=%s category=%s customer_total=%s\n",
				r.TransactionDate, r.CustomerID, r.ProductID,
				r.Amount.String(), r.AmountCategory, r.TotalCustomerTransactions.String())
		}
	}

	w := report.Write
	fmt.Fprintf(&b, "\n=== Insert Summary ===\n")
	fmt.Fprintf(&b, "Customers processed: %d\n", w.Customers)
	fmt.Fprintf(&b, "Products processed: %d\n", w.Products)
	fmt.Fprintf(&b, "Transaction types processed: %d\n", w.TransactionTypes)
	fmt.Fprintf(&b, "Spend categories processed: %d\n", w.SpendCategories)
	fmt.Fprintf(&b, "Amount categories processed: %d\n", w.AmountBands)
	fmt.Fprintf(&b, "Transactions processed: %d\n", w.Facts)
	fmt.Fprintf(&b, "\nCompleted in %s\n", report.Duration.Round(time.Millisecond))

	return []byte(b.String()), nil
}

func (f *TextFormatter) FileExtension() string {
	return "txt"
}
