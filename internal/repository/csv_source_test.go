package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tirasundara/transaction-etl/internal/repository"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVSourceFetchRange(t *testing.T) {
	path := writeCSV(t, `customer_id,product_id,transaction_date,transaction_amount
C1,P1,2023-01-10,42.50
C2,P2,2023-02-20,10.00
C3,P3,2023-01-31,99.99
`)

	source := repository.NewCSVSource(path, "")

	start, _ := time.Parse("2006-01-02", "2023-01-01")
	end, _ := time.Parse("2006-01-02", "2023-01-31")

	records, err := source.FetchRange(context.Background(), start, end)
	require.NoError(t, err)

	// The February record falls outside the window
	require.Len(t, records, 2)

	v, ok := records[0].Field("customer_id")
	require.True(t, ok)
	assert.Equal(t, "C1", v)

	v, ok = records[1].Field("transaction_date")
	require.True(t, ok)
	assert.Equal(t, "2023-01-31", v)
}

func TestCSVSourceEmptyCellIsMissing(t *testing.T) {
	path := writeCSV(t, `customer_id,transaction_date,transaction_amount
C1,,10.00
`)

	source := repository.NewCSVSource(path, "")

	start, _ := time.Parse("2006-01-02", "2023-01-01")
	end, _ := time.Parse("2006-01-02", "2023-12-31")

	records, err := source.FetchRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, records, 1)

	_, ok := records[0].Field("transaction_date")
	assert.False(t, ok, "empty cell should read as a missing value")
}

func TestCSVSourceKeepsUnparseableDates(t *testing.T) {
	path := writeCSV(t, `customer_id,transaction_date,transaction_amount
C1,garbage,10.00
`)

	source := repository.NewCSVSource(path, "")

	start, _ := time.Parse("2006-01-02", "2023-01-01")
	end, _ := time.Parse("2006-01-02", "2023-01-31")

	// A bad date is the cleaner's call to report, not the source's to hide
	records, err := source.FetchRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCSVSourceMissingFile(t *testing.T) {
	source := repository.NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"), "")

	_, err := source.FetchRange(context.Background(), time.Now(), time.Now())
	require.Error(t, err)
}

func TestCSVSourceIdentifier(t *testing.T) {
	source := repository.NewCSVSource("/data/exports/january.csv", "")
	assert.Equal(t, "january", source.SourceIdentifier())
}
